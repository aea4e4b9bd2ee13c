package handlers

import (
	"github.com/gin-gonic/gin"

	"stocktake/internal/core/id"
	"stocktake/internal/domain/reports"
	"stocktake/internal/domain/stocktake"
	"stocktake/internal/infrastructure/http/v1/dto"
)

// ReportsHandler handles report endpoints.
type ReportsHandler struct {
	*BaseHandler
	service *reports.Service
}

// NewReportsHandler creates a new reports handler.
func NewReportsHandler(base *BaseHandler, service *reports.Service) *ReportsHandler {
	return &ReportsHandler{
		BaseHandler: base,
		service:     service,
	}
}

// GetMonthlyValuation handles GET /reports/monthly-valuation?month=YYYY-MM.
func (h *ReportsHandler) GetMonthlyValuation(c *gin.Context) {
	var q dto.MonthlyValuationQuery
	if !h.BindQuery(c, &q) {
		return
	}

	month, err := stocktake.NormalizeMonth(q.Month)
	if err != nil {
		h.Error(c, err)
		return
	}

	filter := reports.MonthlyValuationFilter{Month: month}
	if q.BranchID != "" {
		branchID, err := id.Parse(q.BranchID)
		if err == nil {
			filter.BranchID = &branchID
		}
	}

	report, err := h.service.GetMonthlyValuation(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromMonthlyValuation(report))
}
