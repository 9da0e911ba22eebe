package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/seanvillas05-art/pos-app1/internal/dto"
	"github.com/seanvillas05-art/pos-app1/internal/middleware"
	"github.com/seanvillas05-art/pos-app1/internal/service"
)

type CheckoutHandler struct {
	checkout service.CheckoutService
	cart     service.CartService
}

func NewCheckoutHandler(checkout service.CheckoutService, cart service.CartService) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout, cart: cart}
}

// Complete commits the operator's cart as a sale. The cart is cleared here,
// after the commit succeeds, so a failed checkout leaves it intact for
// correction.
func (h *CheckoutHandler) Complete(c *gin.Context) {
	var req dto.CheckoutRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	operator := claims.UserID
	lines := h.cart.Lines(operator)

	receipt, err := h.checkout.CompleteSale(
		c.Request.Context(),
		service.Identity{ID: claims.UserID, Username: claims.Username},
		lines,
		req.PaymentMethod,
		req.CashGiven,
		req.CustomerEmail,
	)
	if err != nil {
		respondError(c, err)
		return
	}

	h.cart.Clear(operator)
	c.JSON(http.StatusCreated, receipt)
}

func (h *CheckoutHandler) Receipt(c *gin.Context) {
	resp, err := h.checkout.Receipt(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CheckoutHandler) LatestReceipt(c *gin.Context) {
	resp, err := h.checkout.LatestReceipt(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
