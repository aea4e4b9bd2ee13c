package category

import (
	"context"

	"stocktake/internal/domain"
)

// Repository defines the interface for Category persistence.
type Repository interface {
	domain.CatalogRepository[*Category]

	// FindByName retrieves a category by its exact name.
	FindByName(ctx context.Context, name string) (*Category, error)
}
