// Package uom provides the units of measure catalog.
package uom

import (
	"context"

	"stocktake/internal/core/entity"
)

// UOM is a unit of measure products are counted in (e.g. "bottle", "kg").
type UOM struct {
	entity.Catalog

	// Description is a free-form note
	Description *string `db:"description" json:"description"`
}

// NewUOM creates a new unit of measure.
func NewUOM(name string, description *string) *UOM {
	return &UOM{
		Catalog:     entity.NewCatalog(name),
		Description: description,
	}
}

// Validate implements entity.Validatable interface.
func (u *UOM) Validate(ctx context.Context) error {
	if err := u.Catalog.Validate(ctx); err != nil {
		return err
	}
	return entity.ValidateOptionalLength("description", u.Description, 255)
}
