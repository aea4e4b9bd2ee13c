package tx_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"stocktake/internal/core/tx"
)

func fastPolicy(attempts int) tx.RetryPolicy {
	return tx.RetryPolicy{
		MaxAttempts: attempts,
		MinBackoff:  time.Millisecond,
		MaxBackoff:  time.Millisecond,
		IsConflict: func(err error) bool {
			return errors.Is(err, tx.ErrSerializationConflict)
		},
	}
}

func TestRetryOnConflict(t *testing.T) {
	boom := errors.New("boom")

	tests := []struct {
		name      string
		failures  []error
		wantErr   error
		wantCalls int
	}{
		{"succeeds first time", nil, nil, 1},
		{"converges after conflicts", []error{tx.ErrSerializationConflict, tx.ErrSerializationConflict}, nil, 3},
		{"non-conflict error stops", []error{boom}, boom, 1},
		{"gives up after max attempts", []error{
			tx.ErrSerializationConflict, tx.ErrSerializationConflict, tx.ErrSerializationConflict,
			tx.ErrSerializationConflict, tx.ErrSerializationConflict, tx.ErrSerializationConflict,
		}, tx.ErrSerializationConflict, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := tx.RetryOnConflict(context.Background(), fastPolicy(3), func(context.Context) error {
				calls++
				if calls <= len(tt.failures) {
					return tt.failures[calls-1]
				}
				return nil
			})
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			assert.Equal(t, tt.wantCalls, calls)
		})
	}
}

func TestRetryOnConflict_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := fastPolicy(10)
	p.MinBackoff = time.Hour
	p.MaxBackoff = time.Hour

	calls := 0
	err := tx.RetryOnConflict(ctx, p, func(context.Context) error {
		calls++
		cancel()
		return tx.ErrSerializationConflict
	})
	assert.ErrorIs(t, err, tx.ErrSerializationConflict)
	assert.Equal(t, 1, calls)
}
