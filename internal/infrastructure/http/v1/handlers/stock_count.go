package handlers

import (
	"github.com/gin-gonic/gin"

	"stocktake/internal/domain"
	"stocktake/internal/domain/stocktake"
	"stocktake/internal/infrastructure/http/v1/dto"
)

// StockCountHandler serves the monthly inventory endpoints.
type StockCountHandler struct {
	*BaseHandler
	recorder *stocktake.CountRecorder
}

// NewStockCountHandler creates the stock count handler.
func NewStockCountHandler(base *BaseHandler, recorder *stocktake.CountRecorder) *StockCountHandler {
	return &StockCountHandler{
		BaseHandler: base,
		recorder:    recorder,
	}
}

// Record handles POST /stock-counts.
func (h *StockCountHandler) Record(c *gin.Context) {
	var req dto.RecordCountRequest
	if !h.BindJSON(c, &req) {
		return
	}

	count, err := h.recorder.RecordCount(c.Request.Context(), req.BranchAssignmentID, req.ProductID, *req.Quantity)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, dto.FromStockCount(count))
}

// List handles GET /monthly-inventory.
func (h *StockCountHandler) List(c *gin.Context) {
	var q dto.CountListQuery
	if !h.BindQuery(c, &q) {
		return
	}
	q.Normalize(domain.MaxPageSize)

	result, err := h.recorder.List(c.Request.Context(), q.ToFilter())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Page(c, dto.NewListResponse(result, q.PageQuery, dto.FromCountView))
}
