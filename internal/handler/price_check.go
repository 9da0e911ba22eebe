package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/seanvillas05-art/pos-app1/internal/apierror"
	"github.com/seanvillas05-art/pos-app1/internal/dto"
	"github.com/seanvillas05-art/pos-app1/internal/service"
)

const priceCacheTTL = 4 * time.Hour

// PriceCheckHandler serves the public price lookup endpoint.
// No authentication required; no side effects whatsoever.
type PriceCheckHandler struct {
	catalog  service.CatalogService
	settings service.SettingsService
	rdb      *redis.Client
}

func NewPriceCheckHandler(catalog service.CatalogService, settings service.SettingsService, rdb *redis.Client) *PriceCheckHandler {
	return &PriceCheckHandler{catalog: catalog, settings: settings, rdb: rdb}
}

// GetPrice resolves a sku or product id and returns name, price, and stock.
func (h *PriceCheckHandler) GetPrice(c *gin.Context) {
	token := c.Param("token")
	ctx := c.Request.Context()

	// Try Redis cache first. The catalog service evicts both keys whenever
	// the product is mutated.
	for _, key := range []string{"price:" + token, "price:" + strings.ToUpper(token)} {
		if cached, err := h.rdb.Get(ctx, key).Bytes(); err == nil {
			var resp dto.PriceCheckResponse
			if jsonErr := json.Unmarshal(cached, &resp); jsonErr == nil {
				c.JSON(http.StatusOK, resp)
				return
			}
		}
	}

	product, err := h.catalog.Resolve(ctx, token)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Product not found"))
		return
	}

	resp := dto.PriceCheckResponse{
		ID:       product.ID,
		Name:     product.Name,
		Price:    product.Price,
		Stock:    product.Stock,
		Category: product.Category,
		Currency: h.settings.Get(ctx).Currency,
	}

	// Populate cache under both lookup keys. Best effort, ignore errors.
	if b, jsonErr := json.Marshal(resp); jsonErr == nil {
		bg := context.Background()
		_ = h.rdb.Set(bg, "price:"+product.SKU, b, priceCacheTTL).Err()
		_ = h.rdb.Set(bg, "price:"+strings.ToUpper(product.ID), b, priceCacheTTL).Err()
	}

	c.JSON(http.StatusOK, resp)
}
