package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/adamcernik/biketime-public-sub000/internal/apierror"
	"github.com/adamcernik/biketime-public-sub000/internal/service"
)

type ExportHandler struct{ svc service.AdminService }

func NewExportHandler(svc service.AdminService) *ExportHandler { return &ExportHandler{svc: svc} }

// PriceList streams the wholesale price list PDF for one tier letter (A-F).
func (h *ExportHandler) PriceList(c *gin.Context) {
	tier := strings.ToUpper(strings.TrimSpace(c.Query("tier")))
	if len(tier) != 1 || tier[0] < 'A' || tier[0] > 'F' {
		c.JSON(http.StatusBadRequest, apierror.New("Query parameter tier must be a letter A-F"))
		return
	}

	pdf, err := h.svc.PriceListPDF(c.Request.Context(), tier)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="pricelist-%s.pdf"`, tier))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
