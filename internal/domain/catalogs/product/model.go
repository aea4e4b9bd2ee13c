// Package product provides the Product catalog.
// A product carries the unit price and the category used when valuing stock counts.
package product

import (
	"context"
	"math"

	"stocktake/internal/core/apperror"
	"stocktake/internal/core/entity"
	"stocktake/internal/core/id"
	"stocktake/internal/core/types"
)

// Product is a countable item.
type Product struct {
	entity.Catalog

	CategoryID id.ID `db:"category_id" json:"categoryId"`
	SupplierID id.ID `db:"supplier_id" json:"supplierId"`
	UomID      id.ID `db:"uom_id" json:"uomId"`

	// Price is the current unit price; nil means no price has been set
	Price *types.Money `db:"price" json:"price"`

	// Pkg is the package size (units per case)
	Pkg int `db:"pkg" json:"pkg"`

	Barcode *string `db:"barcode" json:"barcode"`
}

// View is a product with its category name, as returned by listings.
type View struct {
	Product
	CategoryName string `db:"category_name" json:"categoryName"`
}

// NewProduct creates a new Product with required references.
func NewProduct(name string, categoryID, supplierID, uomID id.ID) *Product {
	return &Product{
		Catalog:    entity.NewCatalog(name),
		CategoryID: categoryID,
		SupplierID: supplierID,
		UomID:      uomID,
	}
}

// UnitPrice returns the price, treating an unset price as zero.
func (p *Product) UnitPrice() types.Money {
	if p.Price == nil {
		return types.Zero()
	}
	return *p.Price
}

// Validate implements entity.Validatable interface.
func (p *Product) Validate(ctx context.Context) error {
	if err := p.Catalog.Validate(ctx); err != nil {
		return err
	}

	refs := []struct {
		field string
		ref   id.ID
	}{
		{"categoryId", p.CategoryID},
		{"supplierId", p.SupplierID},
		{"uomId", p.UomID},
	}
	for _, r := range refs {
		if id.IsNil(r.ref) {
			return apperror.NewValidation(r.field + " is required").
				WithDetail("field", r.field)
		}
	}

	if p.Price != nil {
		if p.Price.IsNegative() {
			return apperror.NewValidation("price must not be negative").
				WithDetail("field", "price")
		}
		// numeric(12,2)
		if !p.Price.Equal(types.RoundMoney(*p.Price)) {
			return apperror.NewValidation("price must have at most 2 decimal places").
				WithDetail("field", "price")
		}
		if p.Price.GreaterThanOrEqual(types.MustMoney("10000000000")) {
			return apperror.NewValidation("price is too large").
				WithDetail("field", "price")
		}
	}

	if p.Pkg < 0 || p.Pkg > math.MaxInt32 {
		return apperror.NewValidation("pkg must be a non-negative integer").
			WithDetail("field", "pkg")
	}

	return entity.ValidateOptionalLength("barcode", p.Barcode, 255)
}
