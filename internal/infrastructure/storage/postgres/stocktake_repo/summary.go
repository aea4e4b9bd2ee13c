package stocktake_repo

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"stocktake/internal/core/apperror"
	"stocktake/internal/core/id"
	"stocktake/internal/domain"
	"stocktake/internal/domain/stocktake"
	"stocktake/internal/infrastructure/storage/postgres"
)

const summaryTable = "stocktake_summaries"

var summaryCols = postgres.ExtractDBColumns[stocktake.Summary]()

var _ stocktake.SummaryRepository = (*SummaryRepo)(nil)

// SummaryRepo implements stocktake.SummaryRepository.
type SummaryRepo struct {
	txm *postgres.TxManager
}

// NewSummaryRepo creates a new summary repository.
func NewSummaryRepo(txm *postgres.TxManager) *SummaryRepo {
	return &SummaryRepo{txm: txm}
}

func upsertSummaryQuery(s *stocktake.Summary) (squirrel.InsertBuilder, error) {
	totals := s.TotalsByCategory
	if totals == nil {
		totals = stocktake.CategoryTotals{}
	}
	raw, err := json.Marshal(totals)
	if err != nil {
		return squirrel.InsertBuilder{}, fmt.Errorf("marshal totals: %w", err)
	}

	return builder().
		Insert(summaryTable).
		Columns(summaryCols...).
		Values(s.ID, s.AssignmentID, s.GrandTotal, raw, s.CreatedAt, s.UpdatedAt).
		Suffix("ON CONFLICT (branch_assignment_id) DO UPDATE SET " +
			"grand_total = EXCLUDED.grand_total, totals_by_category = EXCLUDED.totals_by_category, updated_at = EXCLUDED.updated_at").
		Suffix("RETURNING " + joinCols(summaryCols)), nil
}

// Upsert implements stocktake.SummaryRepository.
// The existing row keeps its id and created_at.
func (r *SummaryRepo) Upsert(ctx context.Context, s *stocktake.Summary) (*stocktake.Summary, error) {
	q, err := upsertSummaryQuery(s)
	if err != nil {
		return nil, err
	}
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build upsert: %w", err)
	}

	var saved stocktake.Summary
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &saved, sql, args...); err != nil {
		return nil, postgres.MapError(fmt.Errorf("upsert summary: %w", err))
	}
	return &saved, nil
}

// GetByAssignment implements stocktake.SummaryRepository.
func (r *SummaryRepo) GetByAssignment(ctx context.Context, assignmentID id.ID) (*stocktake.Summary, error) {
	sql, args, err := builder().
		Select(summaryCols...).
		From(summaryTable).
		Where(squirrel.Eq{"branch_assignment_id": assignmentID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var s stocktake.Summary
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &s, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("stocktake summary", assignmentID.String())
		}
		return nil, postgres.MapError(fmt.Errorf("get summary: %w", err))
	}
	return &s, nil
}

func listSummariesQuery(f stocktake.SummaryFilter) squirrel.SelectBuilder {
	cols := make([]string, 0, len(summaryCols)+3)
	for _, c := range summaryCols {
		cols = append(cols, summaryTable+"."+c)
	}
	cols = append(cols,
		"branch_assignments.name AS assignment_name",
		"branch_assignments.assigned_month",
		"branch_assignments.branch_id")

	q := builder().
		Select(cols...).
		From(summaryTable).
		Join("branch_assignments ON branch_assignments.id = stocktake_summaries.branch_assignment_id")
	if f.BranchID != nil {
		q = q.Where(squirrel.Eq{"branch_assignments.branch_id": *f.BranchID})
	}
	if f.Month != nil {
		q = q.Where(squirrel.Eq{"branch_assignments.assigned_month": *f.Month})
	}
	return q
}

// List implements stocktake.SummaryRepository.
func (r *SummaryRepo) List(ctx context.Context, f stocktake.SummaryFilter) (domain.ListResult[*stocktake.SummaryView], error) {
	return postgres.ListPage[*stocktake.SummaryView](ctx, r.txm.GetQuerier(ctx), builder(),
		listSummariesQuery(f),
		"branch_assignments.assigned_month DESC, stocktake_summaries.updated_at DESC",
		domain.ListFilter{Limit: f.Limit, Offset: f.Offset})
}
