package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/adamcernik/biketime-public-sub000/internal/apierror"
	"github.com/adamcernik/biketime-public-sub000/internal/dto"
	"github.com/adamcernik/biketime-public-sub000/internal/middleware"
	"github.com/adamcernik/biketime-public-sub000/internal/service"
)

type CatalogHandler struct{ svc service.CatalogService }

func NewCatalogHandler(svc service.CatalogService) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

// List serves the public storefront list. No tier prices, ever.
func (h *CatalogHandler) List(c *gin.Context) {
	h.list(c, service.ResponseOptions{})
}

// DealerList serves the same list with the caller's tier price attached.
func (h *CatalogHandler) DealerList(c *gin.Context) {
	h.list(c, dealerOptions(c))
}

// dealerOptions shapes responses for the authenticated dealer's tier letter.
func dealerOptions(c *gin.Context) service.ResponseOptions {
	claims := middleware.GetClaims(c)
	return service.ResponseOptions{DealerTier: strings.ToUpper(strings.TrimSpace(claims.Tier))}
}

func (h *CatalogHandler) list(c *gin.Context, opts service.ResponseOptions) {
	var filter dto.CatalogFilter
	// Query binding on string fields never fails; values are parsed leniently
	// downstream.
	_ = c.ShouldBindQuery(&filter)

	resp, err := h.svc.List(c.Request.Context(), filter, opts)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Detail serves the public product detail with size family and battery
// variants.
func (h *CatalogHandler) Detail(c *gin.Context) {
	h.detail(c, service.ResponseOptions{})
}

// DealerDetail is Detail plus the caller's tier price.
func (h *CatalogHandler) DealerDetail(c *gin.Context) {
	h.detail(c, dealerOptions(c))
}

func (h *CatalogHandler) detail(c *gin.Context, opts service.ResponseOptions) {
	resp, err := h.svc.Detail(c.Request.Context(), c.Param("id"), opts)
	if errors.Is(err, service.ErrNotFound) {
		c.JSON(http.StatusNotFound, apierror.NotFound())
		return
	}
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
