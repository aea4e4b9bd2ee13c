// Package types provides common type aliases and utilities.
package types

import (
	"github.com/shopspring/decimal"
)

// MoneyScale is the number of fractional digits kept for monetary values.
const MoneyScale int32 = 2

// Money represents a monetary value with full precision.
// Uses decimal.Decimal to avoid floating-point errors.
type Money = decimal.Decimal

// NewMoneyFromString creates a Money value from a string.
// This is the preferred method for monetary values.
func NewMoneyFromString(s string) (Money, error) {
	return decimal.NewFromString(s)
}

// MustMoney creates a Money value from a string, panics on error.
// Use only for constants and tests.
func MustMoney(s string) Money {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Zero returns zero Money value.
func Zero() Money {
	return decimal.Zero
}

// RoundMoney rounds to two decimal places, half away from zero.
// For the non-negative amounts handled here this is half-up.
func RoundMoney(m Money) Money {
	return m.Round(MoneyScale)
}

// Extend multiplies a unit price by an integer quantity and rounds the result.
func Extend(price Money, quantity int64) Money {
	return RoundMoney(price.Mul(decimal.NewFromInt(quantity)))
}

// FormatMoney renders m with exactly two fractional digits.
func FormatMoney(m Money) string {
	return m.StringFixed(MoneyScale)
}

// SumMoney adds values without re-rounding.
func SumMoney(values ...Money) Money {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}
