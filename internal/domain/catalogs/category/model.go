// Package category provides the product category catalog.
// Stocktake summaries group counted values by category name.
package category

import (
	"context"

	"stocktake/internal/core/entity"
)

// DescriptionMaxLength bounds the optional description.
const DescriptionMaxLength = 255

// Category groups products for valuation rollups.
type Category struct {
	entity.Catalog

	// Description is a free-form note
	Description *string `db:"description" json:"description"`
}

// NewCategory creates a new Category with required fields.
func NewCategory(name string, description *string) *Category {
	return &Category{
		Catalog:     entity.NewCatalog(name),
		Description: description,
	}
}

// Validate implements entity.Validatable interface.
func (c *Category) Validate(ctx context.Context) error {
	if err := c.Catalog.Validate(ctx); err != nil {
		return err
	}
	return entity.ValidateOptionalLength("description", c.Description, DescriptionMaxLength)
}
