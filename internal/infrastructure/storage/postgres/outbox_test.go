package postgres

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stocktake/internal/core/id"
)

// execRecorder is a Querier that records Exec calls and fails the ones
// whose SQL contains failOn.
type execRecorder struct {
	failOn string
	execs  []string
}

func (q *execRecorder) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	q.execs = append(q.execs, sql)
	if q.failOn != "" && strings.Contains(sql, q.failOn) {
		return pgconn.CommandTag{}, &pgconn.PgError{Code: "25P02", Message: "current transaction is aborted"}
	}
	return pgconn.NewCommandTag("UPDATE 1"), nil
}

func (q *execRecorder) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, errors.New("not used")
}

func (q *execRecorder) QueryRow(context.Context, string, ...any) pgx.Row {
	return nil
}

// handlerFunc delivers by calling fn.
type handlerFunc func(msg *OutboxMessage) error

func (f handlerFunc) Handle(_ context.Context, msg *OutboxMessage) error { return f(msg) }

func outboxMessages(n int) []*OutboxMessage {
	out := make([]*OutboxMessage, n)
	for i := range out {
		out[i] = &OutboxMessage{ID: id.New(), EventType: "StocktakeFinalized"}
	}
	return out
}

func TestDeliverAll_SkipsDeliveryFailures(t *testing.T) {
	msgs := outboxMessages(3)
	relay := NewOutboxRelay(nil, 10, handlerFunc(func(msg *OutboxMessage) error {
		if msg == msgs[1] {
			return errors.New("redis down")
		}
		return nil
	}))
	q := &execRecorder{}

	delivered, err := relay.deliverAll(context.Background(), q, msgs)
	require.NoError(t, err)
	assert.Equal(t, 2, delivered)
	require.Len(t, q.execs, 3)
	assert.Contains(t, q.execs[1], "retry_count = retry_count + 1")
}

func TestDeliverAll_StopsOnFailedUpdate(t *testing.T) {
	tests := []struct {
		name       string
		handlerErr error
		failOn     string
	}{
		{"failure bookkeeping", errors.New("redis down"), "retry_count"},
		{"published mark", nil, "published_at"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			relay := NewOutboxRelay(nil, 10, handlerFunc(func(*OutboxMessage) error {
				calls++
				return tt.handlerErr
			}))
			q := &execRecorder{failOn: tt.failOn}

			delivered, err := relay.deliverAll(context.Background(), q, outboxMessages(3))
			require.Error(t, err)

			var pgErr *pgconn.PgError
			assert.ErrorAs(t, err, &pgErr)
			assert.Zero(t, delivered)
			assert.Equal(t, 1, calls)
			assert.Len(t, q.execs, 1)
		})
	}
}
