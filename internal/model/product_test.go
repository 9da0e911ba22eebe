package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestProductIsExpired_DateGranularity(t *testing.T) {
	now := time.Date(2026, 8, 31, 15, 0, 0, 0, time.UTC)

	endOfToday := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	yesterday := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	tomorrow := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	assert.False(t, (&Product{Expiry: &endOfToday}).IsExpired(now), "expiring today is still sellable")
	assert.True(t, (&Product{Expiry: &yesterday}).IsExpired(now))
	assert.False(t, (&Product{Expiry: &tomorrow}).IsExpired(now))
	assert.False(t, (&Product{}).IsExpired(now), "no expiry never expires")
}

func TestProductDaysUntilExpiry(t *testing.T) {
	now := time.Date(2026, 8, 31, 9, 30, 0, 0, time.UTC)

	in5 := time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC)
	days, ok := (&Product{Expiry: &in5}).DaysUntilExpiry(now)
	assert.True(t, ok)
	assert.Equal(t, 5, days)

	past := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)
	days, ok = (&Product{Expiry: &past}).DaysUntilExpiry(now)
	assert.True(t, ok)
	assert.Equal(t, -2, days)

	_, ok = (&Product{}).DaysUntilExpiry(now)
	assert.False(t, ok)
}
