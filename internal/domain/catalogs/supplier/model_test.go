package supplier

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"stocktake/internal/core/apperror"
)

func TestSupplier_ValidateEmail(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name  string
		email *string
		field string
	}{
		{"unset", nil, ""},
		{"empty", ptr(""), ""},
		{"plain address", ptr("orders@acme.io"), ""},
		{"display name form", ptr("Bob <b@x.io>"), "email"},
		{"missing domain", ptr("orders@"), "email"},
		{"not an address", ptr("acme"), "email"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSupplier("Acme")
			s.Email = tt.email

			err := s.Validate(ctx)
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}

			appErr, ok := apperror.AsAppError(err)
			if assert.True(t, ok) {
				assert.Equal(t, apperror.CodeValidation, appErr.Code)
				assert.Equal(t, tt.field, appErr.Details["field"])
			}
		})
	}
}

func ptr(s string) *string { return &s }
