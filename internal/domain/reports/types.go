// Package reports provides read-only valuation reports over finalized stocktakes.
package reports

import (
	"time"

	"stocktake/internal/core/id"
	"stocktake/internal/core/types"
)

// --- Monthly Valuation Report ---

// MonthlyValuationFilter selects the month to report on.
type MonthlyValuationFilter struct {
	// Month is the first day of the reported month
	Month time.Time

	BranchID *id.ID
}

// BranchValuation is one branch's assignment for the month.
// GrandTotal is nil until the assignment has been finalized.
type BranchValuation struct {
	BranchID       id.ID        `db:"branch_id" json:"branchId"`
	BranchName     string       `db:"branch_name" json:"branchName"`
	AssignmentID   id.ID        `db:"assignment_id" json:"branchAssignmentId"`
	AssignmentName string       `db:"assignment_name" json:"assignmentName"`
	Status         string       `db:"status" json:"status"`
	GrandTotal     *types.Money `db:"grand_total" json:"grandTotal"`
	FinalizedAt    *time.Time   `db:"finalized_at" json:"finalizedAt"`
}

// CategoryValuation sums one category across the month's finalized summaries.
type CategoryValuation struct {
	Category   string      `db:"category" json:"category"`
	TotalValue types.Money `db:"total_value" json:"totalValue"`
}

// MonthlyValuation is the full report.
type MonthlyValuation struct {
	Month      time.Time           `json:"month"`
	Branches   []BranchValuation   `json:"branches"`
	Categories []CategoryValuation `json:"categories"`

	// Total sums the finalized branches only
	Total          types.Money `json:"total"`
	FinalizedCount int         `json:"finalizedCount"`
	PendingCount   int         `json:"pendingCount"`
}
