package reports

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stocktake/internal/core/apperror"
	"stocktake/internal/core/id"
	"stocktake/internal/core/types"
)

type stubRepo struct {
	branches   []BranchValuation
	categories []CategoryValuation
	err        error
	gotFilter  MonthlyValuationFilter
}

func (r *stubRepo) GetBranchValuations(ctx context.Context, f MonthlyValuationFilter) ([]BranchValuation, error) {
	r.gotFilter = f
	return r.branches, r.err
}

func (r *stubRepo) GetCategoryValuations(ctx context.Context, f MonthlyValuationFilter) ([]CategoryValuation, error) {
	return r.categories, nil
}

func money(s string) *types.Money {
	m := types.MustMoney(s)
	return &m
}

func TestGetMonthlyValuation_Totals(t *testing.T) {
	repo := &stubRepo{
		branches: []BranchValuation{
			{BranchID: id.New(), BranchName: "Downtown", Status: "done", GrandTotal: money("40.00")},
			{BranchID: id.New(), BranchName: "Harbor", Status: "in progress"},
			{BranchID: id.New(), BranchName: "Uptown", Status: "done", GrandTotal: money("12.35")},
		},
		categories: []CategoryValuation{
			{Category: "Beverages", TotalValue: types.MustMoney("30.00")},
		},
	}
	month := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	report, err := NewService(repo).GetMonthlyValuation(context.Background(), MonthlyValuationFilter{Month: month})
	require.NoError(t, err)

	assert.Equal(t, month, repo.gotFilter.Month)
	assert.Equal(t, "52.35", types.FormatMoney(report.Total))
	assert.Equal(t, 2, report.FinalizedCount)
	assert.Equal(t, 1, report.PendingCount)
	assert.Len(t, report.Categories, 1)
}

func TestGetMonthlyValuation_Empty(t *testing.T) {
	report, err := NewService(&stubRepo{}).GetMonthlyValuation(context.Background(), MonthlyValuationFilter{
		Month: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.NotNil(t, report.Branches)
	assert.NotNil(t, report.Categories)
	assert.True(t, report.Total.IsZero())
}

func TestGetMonthlyValuation_Errors(t *testing.T) {
	_, err := NewService(&stubRepo{}).GetMonthlyValuation(context.Background(), MonthlyValuationFilter{})
	assert.True(t, apperror.IsValidation(err))

	boom := errors.New("db down")
	_, err = NewService(&stubRepo{err: boom}).GetMonthlyValuation(context.Background(), MonthlyValuationFilter{
		Month: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, boom)
}
