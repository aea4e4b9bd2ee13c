package stocktake_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"stocktake/internal/core/id"
	"stocktake/internal/domain/stocktake"
	"stocktake/internal/domain/stocktake/stocktaketest"
)

type fixture struct {
	store       *stocktaketest.Store
	assignments *stocktake.AssignmentService
	recorder    *stocktake.CountRecorder
	finalizer   *stocktake.Finalizer
	branchID    id.ID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := stocktaketest.NewStore()
	assignments := stocktake.NewAssignmentService(store.Assignments(), store.Branches(), store)

	return &fixture{
		store:       store,
		assignments: assignments,
		recorder: stocktake.NewCountRecorder(
			store.Assignments(),
			store.Counts(),
			stocktake.NewPricingLookup(store.Prices()),
		),
		finalizer: stocktake.NewFinalizer(stocktake.FinalizerConfig{
			TxManager:   store,
			Assignments: assignments,
			Counts:      store.Counts(),
			Summaries:   store.Summaries(),
			Events:      store.Publisher(),
		}),
		branchID: store.AddBranch("Downtown"),
	}
}

func (f *fixture) newAssignment(t *testing.T, month string) *stocktake.Assignment {
	t.Helper()

	m, err := stocktake.NormalizeMonth(month)
	require.NoError(t, err)

	a, err := f.assignments.Create(context.Background(), stocktake.CreateAssignmentInput{
		Name:          "Count " + month,
		BranchID:      f.branchID,
		AssignedMonth: m,
	})
	require.NoError(t, err)
	return a
}

func mustMonth(t *testing.T, s string) time.Time {
	t.Helper()
	m, err := stocktake.NormalizeMonth(s)
	require.NoError(t, err)
	return m
}
