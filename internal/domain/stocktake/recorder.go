package stocktake

import (
	"context"
	"fmt"
	"time"

	"stocktake/internal/core/apperror"
	"stocktake/internal/core/id"
	"stocktake/internal/domain"
	"stocktake/pkg/logger"
)

// CountRecorder validates and upserts stock counts.
// It never touches assignment status or summaries.
type CountRecorder struct {
	assignments AssignmentRepository
	counts      CountRepository
	pricing     *PricingLookup
}

// NewCountRecorder creates a CountRecorder.
func NewCountRecorder(assignments AssignmentRepository, counts CountRepository, pricing *PricingLookup) *CountRecorder {
	return &CountRecorder{
		assignments: assignments,
		counts:      counts,
		pricing:     pricing,
	}
}

// RecordCount stores quantity for (assignmentID, productID) with value = price × quantity
// rounded to cents. Re-recording the same pair overwrites the previous row.
func (r *CountRecorder) RecordCount(ctx context.Context, assignmentID, productID id.ID, quantity int64) (*StockCount, error) {
	if err := ValidateQuantity(quantity); err != nil {
		return nil, err
	}
	if id.IsNil(assignmentID) {
		return nil, apperror.NewValidation("branchAssignmentId is required").
			WithDetail("field", "branchAssignmentId")
	}
	if id.IsNil(productID) {
		return nil, apperror.NewValidation("productId is required").
			WithDetail("field", "productId")
	}

	exists, err := r.assignments.Exists(ctx, assignmentID)
	if err != nil {
		return nil, fmt.Errorf("check assignment: %w", err)
	}
	if !exists {
		return nil, apperror.NewNotFound("branch assignment", assignmentID.String())
	}

	value, err := r.pricing.Value(ctx, productID, quantity)
	if err != nil {
		return nil, err
	}

	saved, err := r.counts.Upsert(ctx, &StockCount{
		ID:           id.New(),
		AssignmentID: assignmentID,
		ProductID:    productID,
		Quantity:     quantity,
		Value:        value,
		UpdatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("upsert stock count: %w", err)
	}

	logger.Debug(ctx, "stock count recorded",
		"assignment_id", assignmentID,
		"product_id", productID,
		"quantity", quantity,
		"value", value.StringFixed(2))

	return saved, nil
}

// List returns stock counts with product and category names.
func (r *CountRecorder) List(ctx context.Context, filter CountFilter) (domain.ListResult[*CountView], error) {
	clampPage(&filter.Limit, &filter.Offset)
	return r.counts.List(ctx, filter)
}

func clampPage(limit, offset *int) {
	if *limit <= 0 || *limit > domain.MaxPageSize {
		*limit = domain.MaxPageSize
	}
	if *offset < 0 {
		*offset = 0
	}
}
