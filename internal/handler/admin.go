package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adamcernik/biketime-public-sub000/internal/apierror"
	"github.com/adamcernik/biketime-public-sub000/internal/dto"
	"github.com/adamcernik/biketime-public-sub000/internal/service"
)

type AdminHandler struct{ svc service.AdminService }

func NewAdminHandler(svc service.AdminService) *AdminHandler { return &AdminHandler{svc: svc} }

// Data returns the combined admin view: aggregated catalog with full tier
// prices plus the raw per-SKU grid.
func (h *AdminHandler) Data(c *gin.Context) {
	resp, err := h.svc.Data(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AdminHandler) UpdateProduct(c *gin.Context) {
	var req dto.UpdateProductRequest
	if !bindAndValidate(c, &req) {
		return
	}

	err := h.svc.UpdateProduct(c.Request.Context(), c.Param("id"), req)
	if errors.Is(err, service.ErrNotFound) {
		c.JSON(http.StatusNotFound, apierror.NotFound())
		return
	}
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": true})
}

func (h *AdminHandler) UpsertStock(c *gin.Context) {
	var req dto.UpsertStockRequest
	if !bindAndValidate(c, &req) {
		return
	}

	err := h.svc.UpsertStock(c.Request.Context(), c.Param("partNumber"), req)
	if errors.Is(err, service.ErrNotFound) {
		c.JSON(http.StatusNotFound, apierror.NotFound())
		return
	}
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": true})
}

// TriggerImport enqueues a supplier feed refresh. The work itself runs on
// the worker pool; the response only acknowledges the job.
func (h *AdminHandler) TriggerImport(c *gin.Context) {
	var req dto.ImportRequest
	if !bindAndValidate(c, &req) {
		return
	}

	jobID, err := h.svc.TriggerImport(c.Request.Context(), req.FeedURL)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusAccepted, dto.ImportAcceptedResponse{JobID: jobID})
}
