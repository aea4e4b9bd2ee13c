package handlers

import (
	"github.com/gin-gonic/gin"

	"stocktake/internal/core/apperror"
	"stocktake/internal/domain"
	"stocktake/internal/domain/stocktake"
	"stocktake/internal/infrastructure/http/v1/dto"
)

// AssignmentHandler serves branch assignments and their counts.
type AssignmentHandler struct {
	*BaseHandler
	service  *stocktake.AssignmentService
	recorder *stocktake.CountRecorder
}

// NewAssignmentHandler creates the assignment handler.
func NewAssignmentHandler(base *BaseHandler, service *stocktake.AssignmentService, recorder *stocktake.CountRecorder) *AssignmentHandler {
	return &AssignmentHandler{
		BaseHandler: base,
		service:     service,
		recorder:    recorder,
	}
}

// List handles GET /branch-assignments.
func (h *AssignmentHandler) List(c *gin.Context) {
	var q dto.AssignmentListQuery
	if !h.BindQuery(c, &q) {
		return
	}
	q.Normalize(domain.MaxPageSize)

	filter, err := q.ToFilter()
	if err != nil {
		h.Error(c, err)
		return
	}

	result, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Page(c, dto.NewListResponse(result, q.PageQuery, dto.FromAssignment))
}

// Get handles GET /branch-assignments/:id.
func (h *AssignmentHandler) Get(c *gin.Context) {
	assignmentID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	a, err := h.service.Get(c.Request.Context(), assignmentID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromAssignment(a))
}

// Create handles POST /branch-assignments.
// Posting an existing (branch, month) renames that assignment.
func (h *AssignmentHandler) Create(c *gin.Context) {
	var req dto.CreateAssignmentRequest
	if !h.BindJSON(c, &req) {
		return
	}

	in, err := req.ToInput()
	if err != nil {
		h.Error(c, err)
		return
	}

	a, err := h.service.Create(c.Request.Context(), in)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, dto.FromAssignment(a))
}

// Update handles PATCH /branch-assignments/:id.
func (h *AssignmentHandler) Update(c *gin.Context) {
	assignmentID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateAssignmentRequest
	if !h.BindJSON(c, &req) {
		return
	}

	patch, err := req.ToPatch()
	if err != nil {
		h.Error(c, err)
		return
	}

	a, err := h.service.Update(c.Request.Context(), assignmentID, patch)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromAssignment(a))
}

// Delete handles DELETE /branch-assignments/:id.
func (h *AssignmentHandler) Delete(c *gin.Context) {
	assignmentID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), assignmentID); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}

// ListCounts handles GET /branch-assignments/:id/counts.
func (h *AssignmentHandler) ListCounts(c *gin.Context) {
	ctx := c.Request.Context()

	assignmentID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	var q dto.PageQuery
	if !h.BindQuery(c, &q) {
		return
	}
	q.Normalize(domain.MaxPageSize)

	if _, err := h.service.Get(ctx, assignmentID); err != nil {
		h.Error(c, err)
		return
	}

	result, err := h.recorder.List(ctx, stocktake.CountFilter{
		AssignmentID: &assignmentID,
		Limit:        q.Limit,
		Offset:       q.Offset(),
	})
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Page(c, dto.NewListResponse(result, q, dto.FromCountView))
}

// PutCount handles PUT /branch-assignments/:id/counts/:productId.
func (h *AssignmentHandler) PutCount(c *gin.Context) {
	assignmentID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	productID, ok := h.ParseID(c, "productId")
	if !ok {
		return
	}

	var req dto.PutCountRequest
	if !h.BindJSON(c, &req) {
		return
	}
	if req.Quantity == nil {
		h.Error(c, apperror.NewValidation("quantity is required").WithDetail("field", "quantity"))
		return
	}

	count, err := h.recorder.RecordCount(c.Request.Context(), assignmentID, productID, *req.Quantity)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromStockCount(count))
}
