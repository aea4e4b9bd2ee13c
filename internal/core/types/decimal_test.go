package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtend_RoundsHalfUp(t *testing.T) {
	tests := []struct {
		price string
		qty   int64
		want  string
	}{
		{"10.00", 3, "30.00"},
		{"5", 2, "10.00"},
		{"0.125", 1, "0.13"},
		{"0.005", 1, "0.01"},
		{"0.004", 1, "0.00"},
		{"1.335", 3, "4.01"},
		{"19.99", 0, "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.price, func(t *testing.T) {
			got := Extend(MustMoney(tt.price), tt.qty)
			assert.Equal(t, tt.want, FormatMoney(got))
		})
	}
}

func TestSumMoney_DoesNotReRound(t *testing.T) {
	total := SumMoney(MustMoney("0.01"), MustMoney("0.02"), MustMoney("10.10"))
	assert.Equal(t, "10.13", FormatMoney(total))
	assert.True(t, SumMoney().IsZero())
}
