// Package branch provides the Branch catalog.
// A branch is a location whose stock is counted each month.
package branch

import (
	"context"

	"stocktake/internal/core/entity"
)

// Branch is a counted location.
type Branch struct {
	entity.Catalog
}

// NewBranch creates a new Branch.
func NewBranch(name string) *Branch {
	return &Branch{Catalog: entity.NewCatalog(name)}
}

// Validate implements entity.Validatable interface.
func (b *Branch) Validate(ctx context.Context) error {
	return b.Catalog.Validate(ctx)
}
