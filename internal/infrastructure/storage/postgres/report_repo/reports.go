// Package report_repo provides PostgreSQL implementations for report repositories.
package report_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"stocktake/internal/domain/reports"
	"stocktake/internal/infrastructure/storage/postgres"
)

var _ reports.Repository = (*ReportRepo)(nil)

// ReportRepo implements reports.Repository.
type ReportRepo struct {
	txm     *postgres.TxManager
	builder squirrel.StatementBuilderType
}

// NewReportRepo creates a new report repository.
func NewReportRepo(txm *postgres.TxManager) *ReportRepo {
	return &ReportRepo{
		txm:     txm,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *ReportRepo) branchValuationsQuery(filter reports.MonthlyValuationFilter) squirrel.SelectBuilder {
	q := r.builder.
		Select(
			"b.id AS branch_id",
			"b.name AS branch_name",
			"a.id AS assignment_id",
			"a.name AS assignment_name",
			"a.status",
			"s.grand_total",
			"s.updated_at AS finalized_at",
		).
		From("branch_assignments a").
		Join("branches b ON b.id = a.branch_id").
		LeftJoin("stocktake_summaries s ON s.branch_assignment_id = a.id").
		Where(squirrel.Eq{"a.assigned_month": filter.Month}).
		OrderBy("b.name ASC", "a.id ASC")
	if filter.BranchID != nil {
		q = q.Where(squirrel.Eq{"a.branch_id": *filter.BranchID})
	}
	return q
}

// GetBranchValuations implements reports.Repository.
func (r *ReportRepo) GetBranchValuations(ctx context.Context, filter reports.MonthlyValuationFilter) ([]reports.BranchValuation, error) {
	sql, args, err := r.branchValuationsQuery(filter).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []reports.BranchValuation
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &rows, sql, args...); err != nil {
		return nil, postgres.MapError(fmt.Errorf("branch valuations: %w", err))
	}
	return rows, nil
}

func (r *ReportRepo) categoryValuationsQuery(filter reports.MonthlyValuationFilter) squirrel.SelectBuilder {
	q := r.builder.
		Select(
			"t.elem->>'category' AS category",
			"SUM((t.elem->>'totalValue')::numeric) AS total_value",
		).
		From("stocktake_summaries s").
		Join("branch_assignments a ON a.id = s.branch_assignment_id").
		JoinClause("CROSS JOIN LATERAL jsonb_array_elements(s.totals_by_category) AS t(elem)").
		Where(squirrel.Eq{"a.assigned_month": filter.Month}).
		GroupBy("t.elem->>'category'").
		OrderBy("category ASC")
	if filter.BranchID != nil {
		q = q.Where(squirrel.Eq{"a.branch_id": *filter.BranchID})
	}
	return q
}

// GetCategoryValuations implements reports.Repository.
func (r *ReportRepo) GetCategoryValuations(ctx context.Context, filter reports.MonthlyValuationFilter) ([]reports.CategoryValuation, error) {
	sql, args, err := r.categoryValuationsQuery(filter).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []reports.CategoryValuation
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &rows, sql, args...); err != nil {
		return nil, postgres.MapError(fmt.Errorf("category valuations: %w", err))
	}
	return rows, nil
}
