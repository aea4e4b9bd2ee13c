package stocktake

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stocktake/internal/core/apperror"
)

func TestParseStatus(t *testing.T) {
	for _, s := range Statuses() {
		got, err := ParseStatus(string(s))
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}

	for _, bad := range []string{"", "Done", "finished", "in_progress"} {
		_, err := ParseStatus(bad)
		assert.True(t, apperror.IsValidation(err), bad)
	}
}

func TestCheckStatusEdit(t *testing.T) {
	tests := []struct {
		from, to Status
		wantCode string
	}{
		{StatusNotStarted, StatusInProgress, ""},
		{StatusInProgress, StatusNotStarted, ""},
		{StatusInProgress, StatusInProgress, ""},
		{StatusDone, StatusDone, ""},
		{StatusNotStarted, StatusDone, apperror.CodeValidation},
		{StatusInProgress, StatusDone, apperror.CodeValidation},
		{StatusDone, StatusInProgress, apperror.CodeAssignmentDone},
		{StatusDone, StatusNotStarted, apperror.CodeAssignmentDone},
		{StatusNotStarted, Status("archived"), apperror.CodeValidation},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			err := checkStatusEdit(tt.from, tt.to)
			if tt.wantCode == "" {
				assert.NoError(t, err)
				return
			}
			assert.True(t, apperror.HasCode(err, tt.wantCode), "got %v", err)
		})
	}
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.True(t, StatusDone.IsTerminal())
	assert.False(t, StatusNotStarted.IsTerminal())
	assert.False(t, StatusInProgress.IsTerminal())
}
