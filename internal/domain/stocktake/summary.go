package stocktake

import (
	"encoding/json"
	"sort"
	"time"

	"stocktake/internal/core/id"
	"stocktake/internal/core/types"
)

// CategoryTotal is the summed value of one category's counts.
type CategoryTotal struct {
	Category   string      `json:"category"`
	TotalValue types.Money `json:"totalValue"`
}

// MarshalJSON renders TotalValue with exactly two decimals so stored
// snapshots compare byte for byte.
func (c CategoryTotal) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Category   string `json:"category"`
		TotalValue string `json:"totalValue"`
	}{
		Category:   c.Category,
		TotalValue: types.FormatMoney(c.TotalValue),
	})
}

// CategoryTotals is an ordered category breakdown.
type CategoryTotals []CategoryTotal

// Sum adds the category totals.
func (ct CategoryTotals) Sum() types.Money {
	total := types.Zero()
	for _, c := range ct {
		total = total.Add(c.TotalValue)
	}
	return total
}

// Snapshot is the derived valuation of an assignment at finalize time.
// It is not refreshed when counts change afterwards.
type Snapshot struct {
	GrandTotal       types.Money
	TotalsByCategory CategoryTotals
}

// ValuedLine is one stock count reduced to what the rollup needs.
type ValuedLine struct {
	CategoryName string      `db:"category_name"`
	Value        types.Money `db:"stock_value"`
}

// Rollup groups already-rounded line values by category name.
//
// Categories appear only if they have at least one line, ordered by name.
// Totals are plain sums of the rounded line values, and the grand total is the
// sum of the category totals.
func Rollup(lines []ValuedLine) Snapshot {
	byCategory := make(map[string]types.Money)
	for _, l := range lines {
		byCategory[l.CategoryName] = byCategory[l.CategoryName].Add(l.Value)
	}

	names := make([]string, 0, len(byCategory))
	for name := range byCategory {
		names = append(names, name)
	}
	sort.Strings(names)

	totals := make(CategoryTotals, 0, len(names))
	for _, name := range names {
		totals = append(totals, CategoryTotal{
			Category:   name,
			TotalValue: byCategory[name],
		})
	}

	return Snapshot{
		GrandTotal:       totals.Sum(),
		TotalsByCategory: totals,
	}
}

// Summary is the stored snapshot for one assignment.
type Summary struct {
	ID               id.ID          `db:"id" json:"id"`
	AssignmentID     id.ID          `db:"branch_assignment_id" json:"branchAssignmentId"`
	GrandTotal       types.Money    `db:"grand_total" json:"grandTotal"`
	TotalsByCategory CategoryTotals `db:"totals_by_category" json:"totalsByCategory"`
	CreatedAt        time.Time      `db:"created_at" json:"createdAt"`
	UpdatedAt        time.Time      `db:"updated_at" json:"updatedAt"`
}

// SummaryView is a summary joined with its assignment.
type SummaryView struct {
	Summary
	AssignmentName string    `db:"assignment_name" json:"assignmentName"`
	AssignedMonth  time.Time `db:"assigned_month" json:"assignedMonth"`
	BranchID       id.ID     `db:"branch_id" json:"branchId"`
}

// SummaryFilter narrows summary listings.
type SummaryFilter struct {
	BranchID *id.ID
	Month    *time.Time
	Limit    int
	Offset   int
}
