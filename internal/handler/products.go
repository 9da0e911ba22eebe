package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/seanvillas05-art/pos-app1/internal/apierror"
	"github.com/seanvillas05-art/pos-app1/internal/config"
	"github.com/seanvillas05-art/pos-app1/internal/dto"
	"github.com/seanvillas05-art/pos-app1/internal/service"
)

type ProductsHandler struct {
	svc service.CatalogService
	cfg *config.Config
}

func NewProductsHandler(svc service.CatalogService, cfg *config.Config) *ProductsHandler {
	return &ProductsHandler{svc: svc, cfg: cfg}
}

func (h *ProductsHandler) Create(c *gin.Context) {
	var req dto.CreateProductRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ProductsHandler) List(c *gin.Context) {
	var filter dto.ProductFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.Search(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to list products"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProductsHandler) Get(c *gin.Context) {
	resp, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProductsHandler) Update(c *gin.Context) {
	var req dto.UpdateProductRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProductsHandler) Delete(c *gin.Context) {
	if err := h.svc.Remove(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ProductsHandler) AdjustStock(c *gin.Context) {
	var req dto.AdjustStockRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AdjustStock(c.Request.Context(), c.Param("id"), req.Delta, req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProductsHandler) Movements(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	resp, err := h.svc.Movements(c.Request.Context(), c.Param("id"), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProductsHandler) Categories(c *gin.Context) {
	cats, err := h.svc.Categories(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to list categories"))
		return
	}
	c.JSON(http.StatusOK, dto.CategoryListResponse{Categories: cats})
}

// LowStock lists products at or below the threshold. The configured default
// can be overridden per request with ?threshold=N.
func (h *ProductsHandler) LowStock(c *gin.Context) {
	threshold := h.cfg.LowStockThreshold
	if raw := c.Query("threshold"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v >= 0 {
			threshold = v
		}
	}
	resp, err := h.svc.LowStock(c.Request.Context(), threshold)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to list low stock products"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ExpiringSoon lists unexpired products whose expiry falls within the warning
// window. ?days=N overrides the configured default.
func (h *ProductsHandler) ExpiringSoon(c *gin.Context) {
	days := h.cfg.ExpiryWarningDays
	if raw := c.Query("days"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v >= 0 {
			days = v
		}
	}
	resp, err := h.svc.ExpiringSoon(c.Request.Context(), days)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to list expiring products"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProductsHandler) Expired(c *gin.Context) {
	resp, err := h.svc.Expired(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to list expired products"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
