package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_WrappedStillMatches(t *testing.T) {
	base := NewNotFound("product", "42")
	wrapped := fmt.Errorf("record count: %w", base)

	appErr, ok := AsAppError(wrapped)
	require.True(t, ok)
	assert.Equal(t, CodeNotFound, appErr.Code)
	assert.Equal(t, http.StatusNotFound, GetHTTPStatus(wrapped))
	assert.True(t, IsNotFound(wrapped))
	assert.True(t, IsReference(wrapped))
	assert.False(t, IsValidation(wrapped))
}

func TestAppError_Taxonomy(t *testing.T) {
	cause := errors.New("conn reset")

	tests := []struct {
		name   string
		err    *AppError
		status int
		check  func(error) bool
	}{
		{"validation", NewValidation("quantity must be non-negative"), http.StatusBadRequest, IsValidation},
		{"missing reference", NewNotFound("branch assignment", "x"), http.StatusNotFound, IsReference},
		{"restrict delete", NewReferenceInUse("category", "x"), http.StatusConflict, IsReference},
		{"transient", NewTransient(cause), http.StatusServiceUnavailable, IsTransient},
		{"timeout", NewTimeout(cause), http.StatusGatewayTimeout, IsTransient},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.HTTPStatus)
			assert.True(t, tt.check(tt.err))
		})
	}
}

func TestAppError_ErrorStringIncludesCause(t *testing.T) {
	err := NewTransient(errors.New("conn reset"))
	assert.Contains(t, err.Error(), "TRANSIENT_STORE_ERROR")
	assert.Contains(t, err.Error(), "conn reset")
	assert.ErrorIs(t, err, err.Err)
}

func TestWithDetail_InitializesMap(t *testing.T) {
	err := NewConflict("taken").WithDetail("field", "name")
	assert.Equal(t, "name", err.Details["field"])
}

func TestGetHTTPStatus_PlainError(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, GetHTTPStatus(errors.New("boom")))
}
