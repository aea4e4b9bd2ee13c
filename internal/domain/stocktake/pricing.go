package stocktake

import (
	"context"

	"stocktake/internal/core/apperror"
	"stocktake/internal/core/id"
	"stocktake/internal/core/types"
)

// PricingLookup resolves unit prices for valuation.
type PricingLookup struct {
	reader PriceReader
}

// NewPricingLookup creates a PricingLookup.
func NewPricingLookup(reader PriceReader) *PricingLookup {
	return &PricingLookup{reader: reader}
}

// UnitPrice returns the product's price, or zero when none is set.
// A product that does not exist is a NOT_FOUND error.
func (l *PricingLookup) UnitPrice(ctx context.Context, productID id.ID) (types.Money, error) {
	price, err := l.reader.ProductPrice(ctx, productID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return types.Zero(), apperror.NewNotFound("product", productID.String())
		}
		return types.Zero(), err
	}
	if price == nil {
		return types.Zero(), nil
	}
	return *price, nil
}

// Value prices quantity units of the product, rounded to cents.
func (l *PricingLookup) Value(ctx context.Context, productID id.ID, quantity int64) (types.Money, error) {
	price, err := l.UnitPrice(ctx, productID)
	if err != nil {
		return types.Zero(), err
	}
	return types.Extend(price, quantity), nil
}
