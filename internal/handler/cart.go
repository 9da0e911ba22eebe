package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/seanvillas05-art/pos-app1/internal/dto"
	"github.com/seanvillas05-art/pos-app1/internal/middleware"
	"github.com/seanvillas05-art/pos-app1/internal/service"
)

// CartHandler exposes the per-operator cart. Totals are recomputed from the
// live cart and settings on every read, so a discount or tax change is
// reflected immediately.
type CartHandler struct {
	cart     service.CartService
	catalog  service.CatalogService
	settings service.SettingsService
}

func NewCartHandler(cart service.CartService, catalog service.CatalogService, settings service.SettingsService) *CartHandler {
	return &CartHandler{cart: cart, catalog: catalog, settings: settings}
}

func (h *CartHandler) Get(c *gin.Context) {
	operator := middleware.GetClaims(c).UserID
	c.JSON(http.StatusOK, h.cartResponse(c, operator))
}

// Add resolves a scanner token (sku or id) and puts one unit in the cart.
func (h *CartHandler) Add(c *gin.Context) {
	var req dto.AddCartItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	operator := middleware.GetClaims(c).UserID

	product, err := h.catalog.Resolve(c.Request.Context(), req.Token)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.cart.Add(c.Request.Context(), operator, product.ID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.cartResponse(c, operator))
}

func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	var req dto.UpdateQuantityRequest
	if !bindAndValidate(c, &req) {
		return
	}
	operator := middleware.GetClaims(c).UserID

	if err := h.cart.UpdateQuantity(c.Request.Context(), operator, c.Param("productId"), req.Quantity); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.cartResponse(c, operator))
}

func (h *CartHandler) Remove(c *gin.Context) {
	operator := middleware.GetClaims(c).UserID
	h.cart.Remove(operator, c.Param("productId"))
	c.JSON(http.StatusOK, h.cartResponse(c, operator))
}

func (h *CartHandler) Clear(c *gin.Context) {
	operator := middleware.GetClaims(c).UserID
	h.cart.Clear(operator)
	c.JSON(http.StatusOK, h.cartResponse(c, operator))
}

func (h *CartHandler) cartResponse(c *gin.Context, operator string) dto.CartResponse {
	lines := h.cart.Lines(operator)
	settings := h.settings.Get(c.Request.Context())
	pricing := service.ComputePricing(lines, settings.DiscountPct, settings.TaxPct)

	out := dto.CartResponse{
		Lines:          make([]dto.CartLineResponse, 0, len(lines)),
		ItemCount:      h.cart.ItemCount(operator),
		Subtotal:       service.RoundMoney(pricing.Subtotal),
		DiscountPct:    settings.DiscountPct,
		DiscountAmount: service.RoundMoney(pricing.DiscountAmount),
		TaxPct:         settings.TaxPct,
		TaxAmount:      service.RoundMoney(pricing.TaxAmount),
		Total:          service.RoundMoney(pricing.Total),
		Currency:       settings.Currency,
	}
	for _, ln := range lines {
		out.Lines = append(out.Lines, dto.CartLineResponse{
			ProductID: ln.ProductID,
			Name:      ln.Name,
			UnitPrice: ln.UnitPrice,
			Quantity:  ln.Quantity,
			LineTotal: service.RoundMoney(ln.UnitPrice.Mul(decimal.NewFromInt(int64(ln.Quantity)))),
		})
	}
	return out
}
