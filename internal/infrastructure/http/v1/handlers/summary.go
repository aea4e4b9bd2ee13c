package handlers

import (
	"github.com/gin-gonic/gin"

	"stocktake/internal/domain"
	"stocktake/internal/domain/stocktake"
	"stocktake/internal/infrastructure/http/v1/dto"
)

// SummaryHandler serves stocktake summaries.
type SummaryHandler struct {
	*BaseHandler
	finalizer *stocktake.Finalizer
}

// NewSummaryHandler creates the summary handler.
func NewSummaryHandler(base *BaseHandler, finalizer *stocktake.Finalizer) *SummaryHandler {
	return &SummaryHandler{
		BaseHandler: base,
		finalizer:   finalizer,
	}
}

// Finish handles POST /stocktake-summaries/finish.
func (h *SummaryHandler) Finish(c *gin.Context) {
	var req dto.FinishRequest
	if !h.BindJSON(c, &req) {
		return
	}

	s, err := h.finalizer.Finalize(c.Request.Context(), req.BranchAssignmentID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, dto.FromSummary(s))
}

// List handles GET /stocktake-summaries.
func (h *SummaryHandler) List(c *gin.Context) {
	var q dto.SummaryListQuery
	if !h.BindQuery(c, &q) {
		return
	}
	q.Normalize(domain.MaxPageSize)

	filter, err := q.ToFilter()
	if err != nil {
		h.Error(c, err)
		return
	}

	result, err := h.finalizer.ListSummaries(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Page(c, dto.NewListResponse(result, q.PageQuery, dto.FromSummaryView))
}

// Get handles GET /stocktake-summaries/:assignmentId.
func (h *SummaryHandler) Get(c *gin.Context) {
	assignmentID, ok := h.ParseID(c, "assignmentId")
	if !ok {
		return
	}

	s, err := h.finalizer.Summary(c.Request.Context(), assignmentID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromSummary(s))
}
