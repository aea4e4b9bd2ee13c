package product

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"stocktake/internal/core/apperror"
	"stocktake/internal/core/id"
	"stocktake/internal/core/types"
)

func validProduct() *Product {
	p := NewProduct("Cola 330ml", id.New(), id.New(), id.New())
	price := types.MustMoney("10.00")
	p.Price = &price
	p.Pkg = 24
	return p
}

func TestProduct_Validate(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(p *Product)
		field  string
	}{
		{"valid", func(p *Product) {}, ""},
		{"unset price is allowed", func(p *Product) { p.Price = nil }, ""},
		{"blank name", func(p *Product) { p.Name = "  " }, "name"},
		{"missing category", func(p *Product) { p.CategoryID = id.Nil() }, "categoryId"},
		{"missing uom", func(p *Product) { p.UomID = id.Nil() }, "uomId"},
		{"negative price", func(p *Product) {
			v := types.MustMoney("-0.01")
			p.Price = &v
		}, "price"},
		{"three decimals", func(p *Product) {
			v := types.MustMoney("1.005")
			p.Price = &v
		}, "price"},
		{"negative pkg", func(p *Product) { p.Pkg = -1 }, "pkg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validProduct()
			tt.mutate(p)

			err := p.Validate(ctx)
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}

			appErr, ok := apperror.AsAppError(err)
			if assert.True(t, ok) {
				assert.Equal(t, apperror.CodeValidation, appErr.Code)
				assert.Equal(t, tt.field, appErr.Details["field"])
			}
		})
	}
}

func TestProduct_UnitPrice(t *testing.T) {
	p := validProduct()
	assert.Equal(t, "10.00", types.FormatMoney(p.UnitPrice()))

	p.Price = nil
	assert.True(t, p.UnitPrice().IsZero())
}
