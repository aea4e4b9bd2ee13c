// Package stocktake records per-branch monthly stock counts and reduces them
// into category-level valuation summaries.
package stocktake

import (
	"context"

	"stocktake/internal/core/id"
	"stocktake/internal/core/types"
	"stocktake/internal/domain"
)

// AssignmentRepository persists branch assignments.
type AssignmentRepository interface {
	// Upsert inserts a, or renames the existing assignment for the same
	// (branch, month). Returns the stored row.
	Upsert(ctx context.Context, a *Assignment) (*Assignment, error)

	GetByID(ctx context.Context, id id.ID) (*Assignment, error)

	// GetForUpdate reads the assignment and locks its row until the transaction ends.
	GetForUpdate(ctx context.Context, id id.ID) (*Assignment, error)

	// Update writes name, branch, month and status of a.
	Update(ctx context.Context, a *Assignment) error

	// SetStatus changes only the status column.
	SetStatus(ctx context.Context, id id.ID, status Status) error

	Delete(ctx context.Context, id id.ID) error
	List(ctx context.Context, filter AssignmentFilter) (domain.ListResult[*Assignment], error)
	Exists(ctx context.Context, id id.ID) (bool, error)
}

// CountRepository persists stock counts.
type CountRepository interface {
	// Upsert writes c in a single statement keyed by (assignment, product),
	// replacing quantity and value of an existing row.
	Upsert(ctx context.Context, c *StockCount) (*StockCount, error)

	// ListValued returns every count of the assignment with its product's category name.
	ListValued(ctx context.Context, assignmentID id.ID) ([]ValuedLine, error)

	List(ctx context.Context, filter CountFilter) (domain.ListResult[*CountView], error)
}

// SummaryRepository persists stocktake summaries.
type SummaryRepository interface {
	// Upsert replaces the summary of s.AssignmentID in full.
	Upsert(ctx context.Context, s *Summary) (*Summary, error)

	GetByAssignment(ctx context.Context, assignmentID id.ID) (*Summary, error)
	List(ctx context.Context, filter SummaryFilter) (domain.ListResult[*SummaryView], error)
}

// PriceReader reads a product's current unit price.
// A nil price means the product exists without a price; a missing product is NOT_FOUND.
type PriceReader interface {
	ProductPrice(ctx context.Context, productID id.ID) (*types.Money, error)
}

// BranchReader checks branch existence.
type BranchReader interface {
	Exists(ctx context.Context, id id.ID) (bool, error)
}
