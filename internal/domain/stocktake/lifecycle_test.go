package stocktake_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stocktake/internal/core/apperror"
	"stocktake/internal/core/id"
	"stocktake/internal/domain/stocktake"
)

func TestAssignmentService_CreateUpsertsPerBranchMonth(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	first, err := f.assignments.Create(ctx, stocktake.CreateAssignmentInput{
		Name:          "January",
		BranchID:      f.branchID,
		AssignedMonth: mustMonth(t, "2026-01-15"),
	})
	require.NoError(t, err)
	assert.Equal(t, stocktake.StatusNotStarted, first.Status)
	assert.Equal(t, "2026-01-01", stocktake.FormatMonth(first.AssignedMonth))

	inProgress := stocktake.StatusInProgress
	_, err = f.assignments.Update(ctx, first.ID, stocktake.AssignmentPatch{Status: &inProgress})
	require.NoError(t, err)

	second, err := f.assignments.Create(ctx, stocktake.CreateAssignmentInput{
		Name:          "January (recount)",
		BranchID:      f.branchID,
		AssignedMonth: mustMonth(t, "2026-01"),
	})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "January (recount)", second.Name)
	assert.Equal(t, stocktake.StatusInProgress, second.Status)

	res, err := f.assignments.List(ctx, stocktake.AssignmentFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.TotalCount)
}

func TestAssignmentService_CreateValidates(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.assignments.Create(ctx, stocktake.CreateAssignmentInput{
		Name:          "",
		BranchID:      f.branchID,
		AssignedMonth: mustMonth(t, "2026-01"),
	})
	assert.True(t, apperror.IsValidation(err))

	_, err = f.assignments.Create(ctx, stocktake.CreateAssignmentInput{
		Name:          "Ghost",
		BranchID:      id.New(),
		AssignedMonth: mustMonth(t, "2026-01"),
	})
	assert.True(t, apperror.IsNotFound(err))
}

func TestAssignmentService_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	a := f.newAssignment(t, "2026-01")

	inProgress := stocktake.StatusInProgress
	updated, err := f.assignments.Update(ctx, a.ID, stocktake.AssignmentPatch{Status: &inProgress})
	require.NoError(t, err)
	assert.Equal(t, stocktake.StatusInProgress, updated.Status)

	done := stocktake.StatusDone
	_, err = f.assignments.Update(ctx, a.ID, stocktake.AssignmentPatch{Status: &done})
	assert.True(t, apperror.IsValidation(err))

	_, err = f.finalizer.Finalize(ctx, a.ID)
	require.NoError(t, err)

	notStarted := stocktake.StatusNotStarted
	_, err = f.assignments.Update(ctx, a.ID, stocktake.AssignmentPatch{Status: &notStarted})
	assert.True(t, apperror.HasCode(err, apperror.CodeAssignmentDone))

	stored, _ := f.store.Assignment(a.ID)
	assert.Equal(t, stocktake.StatusDone, stored.Status)

	// Renaming a done assignment is still allowed.
	name := "January (closed)"
	updated, err = f.assignments.Update(ctx, a.ID, stocktake.AssignmentPatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, name, updated.Name)
	assert.Equal(t, stocktake.StatusDone, updated.Status)
}

func TestAssignmentService_UpdateRejects(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	jan := f.newAssignment(t, "2026-01")
	f.newAssignment(t, "2026-02")

	_, err := f.assignments.Update(ctx, jan.ID, stocktake.AssignmentPatch{})
	assert.True(t, apperror.IsValidation(err))

	_, err = f.assignments.Update(ctx, id.New(), stocktake.AssignmentPatch{Name: new(string)})
	assert.True(t, apperror.IsNotFound(err))

	feb := mustMonth(t, "2026-02")
	_, err = f.assignments.Update(ctx, jan.ID, stocktake.AssignmentPatch{AssignedMonth: &feb})
	assert.True(t, apperror.HasCode(err, apperror.CodeDuplicate))

	blank := "  "
	_, err = f.assignments.Update(ctx, jan.ID, stocktake.AssignmentPatch{Name: &blank})
	assert.True(t, apperror.IsValidation(err))

	stored, _ := f.store.Assignment(jan.ID)
	assert.Equal(t, "Count 2026-01", stored.Name)
}

func TestAssignmentService_Delete(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	a := f.newAssignment(t, "2026-01")
	empty := f.newAssignment(t, "2026-02")
	pid := f.store.AddProduct("Cola", "Beverages", "10.00")

	_, err := f.recorder.RecordCount(ctx, a.ID, pid, 1)
	require.NoError(t, err)

	err = f.assignments.Delete(ctx, a.ID)
	assert.True(t, apperror.HasCode(err, apperror.CodeReferenceInUse))

	_, err = f.finalizer.Finalize(ctx, empty.ID)
	require.NoError(t, err)
	require.NoError(t, f.assignments.Delete(ctx, empty.ID))

	_, ok := f.store.StoredSummary(empty.ID)
	assert.False(t, ok, "summary is removed with its assignment")

	assert.True(t, apperror.IsNotFound(f.assignments.Delete(ctx, empty.ID)))
}

func TestAssignmentService_ListFilters(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.newAssignment(t, "2026-01")
	f.newAssignment(t, "2026-02")
	f.newAssignment(t, "2026-03")

	month := mustMonth(t, "2026-02")
	res, err := f.assignments.List(ctx, stocktake.AssignmentFilter{Month: &month})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, month, res.Items[0].AssignedMonth)

	res, err = f.assignments.List(ctx, stocktake.AssignmentFilter{Limit: 2, Offset: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), res.TotalCount)
	assert.Len(t, res.Items, 1)
}
