package handler

import (
	"github.com/agro/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// ReportHandler serves the aggregate registry reports
type ReportHandler struct {
	BaseHandler
	reportService ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// TotalFarms godoc
// @Summary      Count registered farms
// @Tags         reports
// @Produce      json
// @Success      200 {object} dto.Response
// @Router       /properties/report/total-farms [get]
// @Router       /reports/total-fazendas [get]
func (h *ReportHandler) TotalFarms(c *gin.Context) {
	total, err := h.reportService.TotalFarms(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dto.FarmCountResponse{Total: total})
}

// TotalHectares godoc
// @Summary      Sum the total area of every farm, in hectares
// @Tags         reports
// @Produce      json
// @Success      200 {object} dto.Response
// @Router       /properties/report/total-hectares [get]
// @Router       /reports/total-hectares [get]
func (h *ReportHandler) TotalHectares(c *gin.Context) {
	total, err := h.reportService.TotalHectares(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dto.HectaresResponse{Total: total.InexactFloat64()})
}
