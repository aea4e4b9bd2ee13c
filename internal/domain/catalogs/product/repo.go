package product

import (
	"context"

	"stocktake/internal/core/id"
	"stocktake/internal/domain"
)

// Repository defines the interface for Product persistence.
type Repository interface {
	domain.CatalogRepository[*Product]

	// ListViews lists products joined with their category.
	// filter.Category restricts the result to one category name.
	ListViews(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*View], error)

	// GetView retrieves one product with its category name.
	GetView(ctx context.Context, id id.ID) (*View, error)
}

// ReferenceChecker reports whether a referenced catalog row exists.
type ReferenceChecker interface {
	Exists(ctx context.Context, id id.ID) (bool, error)
}
