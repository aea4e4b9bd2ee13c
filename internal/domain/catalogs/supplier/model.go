// Package supplier provides the Supplier catalog.
package supplier

import (
	"context"

	"github.com/go-playground/validator/v10"

	"stocktake/internal/core/apperror"
	"stocktake/internal/core/entity"
)

// validate applies the same tag rules as request binding.
var validate = validator.New()

// Supplier is a vendor that products are bought from.
type Supplier struct {
	entity.Catalog

	ContactName *string `db:"contact_name" json:"contactName"`
	Email       *string `db:"email" json:"email"`
	Phone       *string `db:"phone" json:"phone"`
	Website     *string `db:"website" json:"website"`
}

// NewSupplier creates a new Supplier.
func NewSupplier(name string) *Supplier {
	return &Supplier{
		Catalog: entity.NewCatalog(name),
	}
}

// Validate implements entity.Validatable interface.
func (s *Supplier) Validate(ctx context.Context) error {
	if err := s.Catalog.Validate(ctx); err != nil {
		return err
	}

	for _, f := range []struct {
		name  string
		value *string
		max   int
	}{
		{"contactName", s.ContactName, 255},
		{"email", s.Email, 255},
		{"phone", s.Phone, 50},
		{"website", s.Website, 255},
	} {
		if err := entity.ValidateOptionalLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	if s.Email != nil && *s.Email != "" {
		if err := validate.Var(*s.Email, "email"); err != nil {
			return apperror.NewValidation("invalid email").
				WithDetail("field", "email")
		}
	}

	return nil
}
