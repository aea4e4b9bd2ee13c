package stocktake

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"stocktake/internal/core/apperror"
	"stocktake/internal/core/id"
	"stocktake/internal/core/tx"
	"stocktake/internal/core/types"
	"stocktake/internal/domain"
	"stocktake/pkg/logger"
)

var tracer = otel.Tracer("stocktake/finalize")

// Event names written to the outbox.
const (
	AggregateAssignment = "BranchAssignment"
	EventFinalized      = "StocktakeFinalized"
)

// FinalizedEvent is the payload of EventFinalized.
type FinalizedEvent struct {
	AssignmentID     id.ID          `json:"branchAssignmentId"`
	BranchID         id.ID          `json:"branchId"`
	AssignedMonth    string         `json:"assignedMonth"`
	GrandTotal       string         `json:"grandTotal"`
	TotalsByCategory CategoryTotals `json:"totalsByCategory"`
	FinalizedAt      time.Time      `json:"finalizedAt"`
}

// Finalizer freezes an assignment's counts into its summary and marks it done.
type Finalizer struct {
	txm       tx.SerializableManager
	lifecycle *AssignmentService
	counts    CountRepository
	summaries SummaryRepository
	events    domain.EventPublisher
}

// FinalizerConfig wires a Finalizer. Events is optional.
type FinalizerConfig struct {
	TxManager   tx.SerializableManager
	Assignments *AssignmentService
	Counts      CountRepository
	Summaries   SummaryRepository
	Events      domain.EventPublisher
}

// NewFinalizer creates a Finalizer.
func NewFinalizer(cfg FinalizerConfig) *Finalizer {
	return &Finalizer{
		txm:       cfg.TxManager,
		lifecycle: cfg.Assignments,
		counts:    cfg.Counts,
		summaries: cfg.Summaries,
		events:    cfg.Events,
	}
}

// Finalize recomputes the summary of an assignment from its current counts and
// marks the assignment done. Calling it again refreshes the snapshot.
//
// All reads and writes run in one serializable transaction holding the
// assignment row lock, so either the summary and the status both change or
// neither does.
func (f *Finalizer) Finalize(ctx context.Context, assignmentID id.ID) (*Summary, error) {
	ctx, span := tracer.Start(ctx, "stocktake.finalize")
	defer span.End()
	span.SetAttributes(attribute.String("assignment.id", assignmentID.String()))

	var saved *Summary
	err := f.txm.RunSerializable(ctx, func(ctx context.Context) error {
		a, err := f.lifecycle.repo.GetForUpdate(ctx, assignmentID)
		if err != nil {
			return notFoundAs(err, assignmentID)
		}

		lines, err := f.counts.ListValued(ctx, assignmentID)
		if err != nil {
			return fmt.Errorf("load stock counts: %w", err)
		}

		snap := Rollup(lines)
		now := time.Now().UTC()

		saved, err = f.summaries.Upsert(ctx, &Summary{
			ID:               id.New(),
			AssignmentID:     assignmentID,
			GrandTotal:       snap.GrandTotal,
			TotalsByCategory: snap.TotalsByCategory,
			CreatedAt:        now,
			UpdatedAt:        now,
		})
		if err != nil {
			return fmt.Errorf("upsert summary: %w", err)
		}

		if err := f.lifecycle.markDone(ctx, a); err != nil {
			return err
		}

		if f.events != nil {
			err := f.events.Publish(ctx, domain.Event{
				AggregateType: AggregateAssignment,
				AggregateID:   assignmentID,
				EventType:     EventFinalized,
				Payload: FinalizedEvent{
					AssignmentID:     assignmentID,
					BranchID:         a.BranchID,
					AssignedMonth:    FormatMonth(a.AssignedMonth),
					GrandTotal:       types.FormatMoney(snap.GrandTotal),
					TotalsByCategory: snap.TotalsByCategory,
					FinalizedAt:      now,
				},
			})
			if err != nil {
				return fmt.Errorf("publish finalized event: %w", err)
			}
		}

		span.SetAttributes(
			attribute.Int("stocktake.lines", len(lines)),
			attribute.Int("stocktake.categories", len(snap.TotalsByCategory)),
		)
		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "finalize failed")
		return nil, err
	}

	logger.Info(ctx, "stocktake finalized",
		"assignment_id", assignmentID,
		"grand_total", types.FormatMoney(saved.GrandTotal),
		"categories", len(saved.TotalsByCategory))

	return saved, nil
}

// Summary returns the stored snapshot of an assignment.
func (f *Finalizer) Summary(ctx context.Context, assignmentID id.ID) (*Summary, error) {
	s, err := f.summaries.GetByAssignment(ctx, assignmentID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("stocktake summary", assignmentID.String())
		}
		return nil, err
	}
	return s, nil
}

// ListSummaries returns summaries joined with their assignments, newest first.
func (f *Finalizer) ListSummaries(ctx context.Context, filter SummaryFilter) (domain.ListResult[*SummaryView], error) {
	clampPage(&filter.Limit, &filter.Offset)
	return f.summaries.List(ctx, filter)
}
