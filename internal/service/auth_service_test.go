package service

import (
	"context"
	"testing"

	"github.com/seanvillas05-art/pos-app1/internal/config"
	"github.com/seanvillas05-art/pos-app1/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthFixture(t *testing.T) (AuthService, *stubUserRepo) {
	t.Helper()
	repo := newStubUserRepo()
	cfg := &config.Config{
		JWTSecret:          "test-secret",
		JWTExpirationHours: 1,
		JWTRefreshHours:    24,
	}
	return NewAuthService(repo, cfg), repo
}

func TestAuthCreateUserAndLogin(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, dto.CreateUserRequest{
		Username: "cashier",
		Name:     "Front Cashier",
		Password: "supersecret",
		Role:     "cashier",
	})
	require.NoError(t, err)
	assert.Equal(t, "cashier", created.Role)
	assert.True(t, created.Active)

	resp, err := svc.Login(ctx, dto.LoginRequest{Username: "cashier", Password: "supersecret"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, "cashier", resp.User.Username)
}

func TestAuthLogin_WrongPassword(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, dto.CreateUserRequest{
		Username: "admin", Name: "Admin", Password: "rightpass", Role: "admin",
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, dto.LoginRequest{Username: "admin", Password: "wrongpass"})
	assert.Error(t, err)

	_, err = svc.Login(ctx, dto.LoginRequest{Username: "ghost", Password: "whatever"})
	assert.Error(t, err)
}

func TestAuthRefresh(t *testing.T) {
	svc, repo := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, dto.CreateUserRequest{
		Username: "cashier", Name: "Front Cashier", Password: "supersecret", Role: "cashier",
	})
	require.NoError(t, err)

	login, err := svc.Login(ctx, dto.LoginRequest{Username: "cashier", Password: "supersecret"})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(ctx, login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	_, err = svc.Refresh(ctx, "not.a.token")
	assert.Error(t, err)

	// Deactivated users cannot refresh
	for _, u := range repo.users {
		u.Active = false
	}
	_, err = svc.Refresh(ctx, login.RefreshToken)
	assert.Error(t, err)
}
