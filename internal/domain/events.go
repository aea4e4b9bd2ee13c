package domain

import (
	"context"

	"stocktake/internal/core/id"
)

// Event is a domain event recorded alongside the state change that caused it.
type Event struct {
	AggregateType string
	AggregateID   id.ID
	EventType     string
	Payload       any
}

// EventPublisher records events. Implementations must write within the
// caller's transaction so that the event and the change commit together.
type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
}
