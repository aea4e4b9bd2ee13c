package stocktake_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"stocktake/internal/core/id"
	"stocktake/internal/domain"
	"stocktake/internal/domain/stocktake"
	"stocktake/internal/infrastructure/storage/postgres"
)

const countTable = "monthly_inventory"

var countCols = postgres.ExtractDBColumns[stocktake.StockCount]()

var _ stocktake.CountRepository = (*CountRepo)(nil)

// CountRepo implements stocktake.CountRepository.
type CountRepo struct {
	txm *postgres.TxManager
}

// NewCountRepo creates a new stock count repository.
func NewCountRepo(txm *postgres.TxManager) *CountRepo {
	return &CountRepo{txm: txm}
}

func upsertCountQuery(c *stocktake.StockCount) squirrel.InsertBuilder {
	return builder().
		Insert(countTable).
		Columns(countCols...).
		Values(c.ID, c.AssignmentID, c.ProductID, c.Quantity, c.Value, c.UpdatedAt).
		Suffix("ON CONFLICT (branch_assignment_id, product_id) DO UPDATE SET " +
			"quantity = EXCLUDED.quantity, stock_value = EXCLUDED.stock_value, updated_at = EXCLUDED.updated_at").
		Suffix("RETURNING " + joinCols(countCols))
}

// Upsert implements stocktake.CountRepository.
func (r *CountRepo) Upsert(ctx context.Context, c *stocktake.StockCount) (*stocktake.StockCount, error) {
	sql, args, err := upsertCountQuery(c).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build upsert: %w", err)
	}

	var saved stocktake.StockCount
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &saved, sql, args...); err != nil {
		return nil, postgres.MapError(fmt.Errorf("upsert stock count: %w", err))
	}
	return &saved, nil
}

func listValuedQuery(assignmentID id.ID) squirrel.SelectBuilder {
	return builder().
		Select("categories.name AS category_name", "monthly_inventory.stock_value").
		From(countTable).
		Join("products ON products.id = monthly_inventory.product_id").
		Join("categories ON categories.id = products.category_id").
		Where(squirrel.Eq{"monthly_inventory.branch_assignment_id": assignmentID})
}

// ListValued implements stocktake.CountRepository.
func (r *CountRepo) ListValued(ctx context.Context, assignmentID id.ID) ([]stocktake.ValuedLine, error) {
	sql, args, err := listValuedQuery(assignmentID).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var lines []stocktake.ValuedLine
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &lines, sql, args...); err != nil {
		return nil, postgres.MapError(fmt.Errorf("list valued counts: %w", err))
	}
	return lines, nil
}

func listCountsQuery(f stocktake.CountFilter) squirrel.SelectBuilder {
	cols := make([]string, 0, len(countCols)+2)
	for _, c := range countCols {
		cols = append(cols, countTable+"."+c)
	}
	cols = append(cols, "products.name AS product_name", "categories.name AS category_name")

	q := builder().
		Select(cols...).
		From(countTable).
		Join("products ON products.id = monthly_inventory.product_id").
		Join("categories ON categories.id = products.category_id")
	if f.AssignmentID != nil {
		q = q.Where(squirrel.Eq{"monthly_inventory.branch_assignment_id": *f.AssignmentID})
	}
	if f.ProductID != nil {
		q = q.Where(squirrel.Eq{"monthly_inventory.product_id": *f.ProductID})
	}
	return q
}

// List implements stocktake.CountRepository.
func (r *CountRepo) List(ctx context.Context, f stocktake.CountFilter) (domain.ListResult[*stocktake.CountView], error) {
	return postgres.ListPage[*stocktake.CountView](ctx, r.txm.GetQuerier(ctx), builder(),
		listCountsQuery(f),
		"categories.name ASC, products.name ASC, monthly_inventory.id ASC",
		domain.ListFilter{Limit: f.Limit, Offset: f.Offset})
}
