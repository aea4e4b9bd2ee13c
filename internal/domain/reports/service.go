package reports

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"stocktake/internal/core/apperror"
	"stocktake/internal/core/types"
)

// Service provides report generation operations.
type Service struct {
	repo Repository
}

// NewService creates a new reports service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// GetMonthlyValuation reports the month's stocktake values per branch and per category.
// Totals come from stored summaries, so they reflect each assignment's last finalize.
func (s *Service) GetMonthlyValuation(ctx context.Context, filter MonthlyValuationFilter) (*MonthlyValuation, error) {
	if filter.Month.IsZero() {
		return nil, apperror.NewValidation("month is required").WithDetail("field", "month")
	}

	var (
		branches   []BranchValuation
		categories []CategoryValuation
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		branches, err = s.repo.GetBranchValuations(gctx, filter)
		if err != nil {
			return fmt.Errorf("get branch valuations: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		categories, err = s.repo.GetCategoryValuations(gctx, filter)
		if err != nil {
			return fmt.Errorf("get category valuations: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &MonthlyValuation{
		Month:      filter.Month,
		Branches:   branches,
		Categories: categories,
		Total:      types.Zero(),
	}
	if report.Branches == nil {
		report.Branches = []BranchValuation{}
	}
	if report.Categories == nil {
		report.Categories = []CategoryValuation{}
	}

	for _, b := range report.Branches {
		if b.GrandTotal == nil {
			report.PendingCount++
			continue
		}
		report.FinalizedCount++
		report.Total = report.Total.Add(*b.GrandTotal)
	}

	return report, nil
}
