package stocktake

import (
	"math"
	"time"

	"stocktake/internal/core/apperror"
	"stocktake/internal/core/id"
	"stocktake/internal/core/types"
)

// MaxQuantity is the largest quantity the store column accepts.
const MaxQuantity = math.MaxInt32

// StockCount is the counted quantity of one product within one assignment.
// Unique per (AssignmentID, ProductID).
type StockCount struct {
	ID           id.ID       `db:"id" json:"id"`
	AssignmentID id.ID       `db:"branch_assignment_id" json:"branchAssignmentId"`
	ProductID    id.ID       `db:"product_id" json:"productId"`
	Quantity     int64       `db:"quantity" json:"quantity"`
	Value        types.Money `db:"stock_value" json:"stockValue"`
	UpdatedAt    time.Time   `db:"updated_at" json:"updatedAt"`
}

// CountView is a stock count with product and category names.
type CountView struct {
	StockCount
	ProductName  string `db:"product_name" json:"productName"`
	CategoryName string `db:"category_name" json:"categoryName"`
}

// CountFilter narrows stock count listings.
type CountFilter struct {
	AssignmentID *id.ID
	ProductID    *id.ID
	Limit        int
	Offset       int
}

// ValidateQuantity rejects negative or out-of-range quantities.
func ValidateQuantity(quantity int64) error {
	if quantity < 0 {
		return apperror.NewValidation("quantity must be a non-negative integer").
			WithDetail("field", "quantity").
			WithDetail("value", quantity)
	}
	if quantity > MaxQuantity {
		return apperror.NewValidation("quantity is too large").
			WithDetail("field", "quantity").
			WithDetail("max", MaxQuantity)
	}
	return nil
}
