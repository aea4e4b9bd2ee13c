package stocktake

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stocktake/internal/core/apperror"
	"stocktake/internal/core/id"
)

func TestNormalizeMonth(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2026-01", "2026-01-01"},
		{"2026-01-01", "2026-01-01"},
		{"2026-02-17", "2026-02-01"},
		{" 2025-12 ", "2025-12-01"},
	}
	for _, tt := range tests {
		got, err := NormalizeMonth(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, FormatMonth(got))
		assert.Equal(t, time.UTC, got.Location())
	}

	for _, bad := range []string{"", "2026", "2026-13", "2026-1", "01-2026", "2026-02-30", "next month"} {
		_, err := NormalizeMonth(bad)
		assert.True(t, apperror.IsValidation(err), bad)
	}
}

func TestAssignment_Validate(t *testing.T) {
	ctx := context.Background()
	month := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	a := NewAssignment("  March count ", id.New(), month.AddDate(0, 0, 9))
	require.NoError(t, a.Validate(ctx))
	assert.Equal(t, "March count", a.Name)
	assert.Equal(t, month, a.AssignedMonth)
	assert.Equal(t, StatusNotStarted, a.Status)

	a.Name = ""
	assert.True(t, apperror.IsValidation(a.Validate(ctx)))

	a = NewAssignment("x", id.Nil(), month)
	assert.True(t, apperror.IsValidation(a.Validate(ctx)))

	a = NewAssignment("x", id.New(), month)
	a.Status = "paused"
	assert.True(t, apperror.IsValidation(a.Validate(ctx)))
}

func TestAssignmentPatch_IsEmpty(t *testing.T) {
	assert.True(t, AssignmentPatch{}.IsEmpty())
	name := "x"
	assert.False(t, AssignmentPatch{Name: &name}.IsEmpty())
}
