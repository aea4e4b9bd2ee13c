// Package stocktake_repo provides PostgreSQL implementations of the stocktake repositories.
package stocktake_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"stocktake/internal/core/apperror"
	"stocktake/internal/core/id"
	"stocktake/internal/domain"
	"stocktake/internal/domain/stocktake"
	"stocktake/internal/infrastructure/storage/postgres"
)

const assignmentTable = "branch_assignments"

var assignmentCols = postgres.ExtractDBColumns[stocktake.Assignment]()

func builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

var _ stocktake.AssignmentRepository = (*AssignmentRepo)(nil)

// AssignmentRepo implements stocktake.AssignmentRepository.
type AssignmentRepo struct {
	txm *postgres.TxManager
}

// NewAssignmentRepo creates a new assignment repository.
func NewAssignmentRepo(txm *postgres.TxManager) *AssignmentRepo {
	return &AssignmentRepo{txm: txm}
}

func upsertAssignmentQuery(a *stocktake.Assignment) squirrel.InsertBuilder {
	return builder().
		Insert(assignmentTable).
		Columns(assignmentCols...).
		Values(a.ID, a.Name, a.AssignedMonth, a.BranchID, a.Status, a.AssignedAt, a.UpdatedAt).
		Suffix("ON CONFLICT (branch_id, assigned_month) DO UPDATE SET name = EXCLUDED.name, updated_at = EXCLUDED.updated_at").
		Suffix("RETURNING " + joinCols(assignmentCols))
}

// Upsert implements stocktake.AssignmentRepository.
func (r *AssignmentRepo) Upsert(ctx context.Context, a *stocktake.Assignment) (*stocktake.Assignment, error) {
	sql, args, err := upsertAssignmentQuery(a).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build upsert: %w", err)
	}

	var saved stocktake.Assignment
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &saved, sql, args...); err != nil {
		return nil, postgres.MapError(fmt.Errorf("upsert assignment: %w", err))
	}
	return &saved, nil
}

func (r *AssignmentRepo) get(ctx context.Context, assignmentID id.ID, lock bool) (*stocktake.Assignment, error) {
	q := builder().
		Select(assignmentCols...).
		From(assignmentTable).
		Where(squirrel.Eq{"id": assignmentID})
	if lock {
		q = q.Suffix("FOR UPDATE")
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var a stocktake.Assignment
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &a, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("branch assignment", assignmentID.String())
		}
		return nil, postgres.MapError(fmt.Errorf("get assignment: %w", err))
	}
	return &a, nil
}

// GetByID implements stocktake.AssignmentRepository.
func (r *AssignmentRepo) GetByID(ctx context.Context, assignmentID id.ID) (*stocktake.Assignment, error) {
	return r.get(ctx, assignmentID, false)
}

// GetForUpdate implements stocktake.AssignmentRepository.
// Must run inside a transaction for the lock to outlive the statement.
func (r *AssignmentRepo) GetForUpdate(ctx context.Context, assignmentID id.ID) (*stocktake.Assignment, error) {
	if r.txm.GetTx(ctx) == nil {
		return nil, apperror.NewInternal(fmt.Errorf("GetForUpdate requires a transaction"))
	}
	return r.get(ctx, assignmentID, true)
}

// Update implements stocktake.AssignmentRepository.
func (r *AssignmentRepo) Update(ctx context.Context, a *stocktake.Assignment) error {
	sql, args, err := builder().
		Update(assignmentTable).
		Set("name", a.Name).
		Set("branch_id", a.BranchID).
		Set("assigned_month", a.AssignedMonth).
		Set("status", a.Status).
		Set("updated_at", a.UpdatedAt).
		Where(squirrel.Eq{"id": a.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	tag, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(fmt.Errorf("update assignment: %w", err))
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("branch assignment", a.ID.String())
	}
	return nil
}

// SetStatus implements stocktake.AssignmentRepository.
func (r *AssignmentRepo) SetStatus(ctx context.Context, assignmentID id.ID, status stocktake.Status) error {
	sql, args, err := builder().
		Update(assignmentTable).
		Set("status", status).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": assignmentID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	tag, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(fmt.Errorf("set assignment status: %w", err))
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("branch assignment", assignmentID.String())
	}
	return nil
}

// Delete implements stocktake.AssignmentRepository.
// Restricted by monthly_inventory; the summary is removed by cascade.
func (r *AssignmentRepo) Delete(ctx context.Context, assignmentID id.ID) error {
	sql, args, err := builder().
		Delete(assignmentTable).
		Where(squirrel.Eq{"id": assignmentID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	tag, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(fmt.Errorf("delete assignment: %w", err))
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("branch assignment", assignmentID.String())
	}
	return nil
}

func listAssignmentsQuery(f stocktake.AssignmentFilter) squirrel.SelectBuilder {
	q := builder().
		Select(assignmentCols...).
		From(assignmentTable)
	if f.BranchID != nil {
		q = q.Where(squirrel.Eq{"branch_id": *f.BranchID})
	}
	if f.Month != nil {
		q = q.Where(squirrel.Eq{"assigned_month": *f.Month})
	}
	if f.Status != nil {
		q = q.Where(squirrel.Eq{"status": *f.Status})
	}
	return q
}

// List implements stocktake.AssignmentRepository.
func (r *AssignmentRepo) List(ctx context.Context, f stocktake.AssignmentFilter) (domain.ListResult[*stocktake.Assignment], error) {
	return postgres.ListPage[*stocktake.Assignment](ctx, r.txm.GetQuerier(ctx), builder(),
		listAssignmentsQuery(f),
		"assigned_at DESC, id DESC",
		domain.ListFilter{Limit: f.Limit, Offset: f.Offset})
}

// Exists implements stocktake.AssignmentRepository.
func (r *AssignmentRepo) Exists(ctx context.Context, assignmentID id.ID) (bool, error) {
	var exists bool
	err := r.txm.GetQuerier(ctx).QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM branch_assignments WHERE id = $1)`, assignmentID).Scan(&exists)
	if err != nil {
		return false, postgres.MapError(fmt.Errorf("assignment exists: %w", err))
	}
	return exists, nil
}
