package entity

import (
	"context"
	"strings"

	"stocktake/internal/core/apperror"
)

// NameMaxLength matches the varchar(255) columns of the reference tables.
const NameMaxLength = 255

// Catalog is the base type for reference data.
// Examples: categories, suppliers, units of measure, branches, products.
type Catalog struct {
	BaseEntity

	// Name is the display name
	Name string `db:"name" json:"name"`
}

// NewCatalog creates a new Catalog with generated ID.
func NewCatalog(name string) Catalog {
	return Catalog{
		BaseEntity: NewBaseEntity(),
		Name:       strings.TrimSpace(name),
	}
}

// Validate implements Validatable interface.
func (c *Catalog) Validate(ctx context.Context) error {
	if strings.TrimSpace(c.Name) == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}
	return ValidateLength("name", c.Name, NameMaxLength)
}

// ValidateLength rejects values longer than max runes.
func ValidateLength(field, value string, max int) error {
	if len([]rune(value)) > max {
		return apperror.NewValidation(field+" is too long").
			WithDetail("field", field).
			WithDetail("max", max)
	}
	return nil
}

// ValidateOptionalLength is ValidateLength for nullable columns.
func ValidateOptionalLength(field string, value *string, max int) error {
	if value == nil {
		return nil
	}
	return ValidateLength(field, *value, max)
}
