// Package tx provides transaction management abstractions.
// Domain services depend on these interfaces; the PostgreSQL implementation
// lives in infrastructure/storage/postgres and an in-memory one backs tests.
package tx

import (
	"context"
)

// Manager defines the contract for transaction management.
type Manager interface {
	// RunInTransaction executes fn within a database transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn succeeds, the transaction is committed.
	//
	// Nested calls reuse the existing transaction from context.
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// SerializableManager runs units of work that must observe a consistent
// snapshot and apply all of their writes or none.
type SerializableManager interface {
	Manager

	// RunSerializable executes fn in a transaction with serializable isolation.
	RunSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}
