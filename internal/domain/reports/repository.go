package reports

import (
	"context"
)

// Repository defines report data access interface.
type Repository interface {
	// GetBranchValuations returns every assignment of the month with its summary total, by branch name.
	GetBranchValuations(ctx context.Context, filter MonthlyValuationFilter) ([]BranchValuation, error)

	// GetCategoryValuations sums stored category snapshots of the month, by category name.
	GetCategoryValuations(ctx context.Context, filter MonthlyValuationFilter) ([]CategoryValuation, error)
}
