package stocktake_repo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stocktake/internal/core/id"
	"stocktake/internal/core/types"
	"stocktake/internal/domain/stocktake"
)

func TestColumns(t *testing.T) {
	assert.Equal(t,
		[]string{"id", "name", "assigned_month", "branch_id", "status", "assigned_at", "updated_at"},
		assignmentCols)
	assert.Equal(t,
		[]string{"id", "branch_assignment_id", "product_id", "quantity", "stock_value", "updated_at"},
		countCols)
	assert.Equal(t,
		[]string{"id", "branch_assignment_id", "grand_total", "totals_by_category", "created_at", "updated_at"},
		summaryCols)
}

func TestUpsertAssignmentQuery(t *testing.T) {
	a := stocktake.NewAssignment("March", id.New(), time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))

	sql, args, err := upsertAssignmentQuery(a).ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "INSERT INTO branch_assignments (id,name,assigned_month,branch_id,status,assigned_at,updated_at) VALUES ($1,$2,$3,$4,$5,$6,$7)")
	assert.Contains(t, sql, "ON CONFLICT (branch_id, assigned_month) DO UPDATE SET name = EXCLUDED.name")
	assert.NotContains(t, sql, "status = EXCLUDED.status")
	assert.Contains(t, sql, "RETURNING id, name, assigned_month")
	assert.Len(t, args, 7)
}

func TestListAssignmentsQuery(t *testing.T) {
	branchID := id.New()
	month := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	status := stocktake.StatusDone

	sql, args, err := listAssignmentsQuery(stocktake.AssignmentFilter{
		BranchID: &branchID,
		Month:    &month,
		Status:   &status,
	}).ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "WHERE branch_id = $1 AND assigned_month = $2 AND status = $3")
	assert.Equal(t, []any{branchID, month, status}, args)

	sql, args, err = listAssignmentsQuery(stocktake.AssignmentFilter{}).ToSql()
	require.NoError(t, err)
	assert.NotContains(t, sql, "WHERE")
	assert.Empty(t, args)
}

func TestUpsertCountQuery(t *testing.T) {
	c := &stocktake.StockCount{
		ID:           id.New(),
		AssignmentID: id.New(),
		ProductID:    id.New(),
		Quantity:     3,
		Value:        types.MustMoney("30.00"),
		UpdatedAt:    time.Now(),
	}

	sql, args, err := upsertCountQuery(c).ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "ON CONFLICT (branch_assignment_id, product_id) DO UPDATE SET quantity = EXCLUDED.quantity, stock_value = EXCLUDED.stock_value")
	assert.Equal(t, int64(3), args[3])
}

func TestListValuedQuery(t *testing.T) {
	assignmentID := id.New()

	sql, args, err := listValuedQuery(assignmentID).ToSql()
	require.NoError(t, err)

	assert.Equal(t,
		"SELECT categories.name AS category_name, monthly_inventory.stock_value FROM monthly_inventory "+
			"JOIN products ON products.id = monthly_inventory.product_id "+
			"JOIN categories ON categories.id = products.category_id "+
			"WHERE monthly_inventory.branch_assignment_id = $1",
		sql)
	assert.Equal(t, []any{assignmentID}, args)
}

func TestListCountsQuery(t *testing.T) {
	assignmentID := id.New()

	sql, _, err := listCountsQuery(stocktake.CountFilter{AssignmentID: &assignmentID}).ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "monthly_inventory.quantity")
	assert.Contains(t, sql, "products.name AS product_name")
	assert.Contains(t, sql, "WHERE monthly_inventory.branch_assignment_id = $1")
}

func TestUpsertSummaryQuery(t *testing.T) {
	s := &stocktake.Summary{
		ID:           id.New(),
		AssignmentID: id.New(),
		GrandTotal:   types.MustMoney("40.00"),
		TotalsByCategory: stocktake.CategoryTotals{
			{Category: "Drinks", TotalValue: types.MustMoney("40")},
		},
	}

	q, err := upsertSummaryQuery(s)
	require.NoError(t, err)
	sql, args, err := q.ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "ON CONFLICT (branch_assignment_id) DO UPDATE SET grand_total = EXCLUDED.grand_total")
	assert.NotContains(t, sql, "created_at = EXCLUDED")
	assert.Equal(t, `[{"category":"Drinks","totalValue":"40.00"}]`, string(args[3].([]byte)))
}

func TestUpsertSummaryQuery_EmptyTotals(t *testing.T) {
	q, err := upsertSummaryQuery(&stocktake.Summary{ID: id.New(), AssignmentID: id.New()})
	require.NoError(t, err)
	_, args, err := q.ToSql()
	require.NoError(t, err)

	assert.Equal(t, "[]", string(args[3].([]byte)))
}

func TestListSummariesQuery(t *testing.T) {
	branchID := id.New()

	sql, args, err := listSummariesQuery(stocktake.SummaryFilter{BranchID: &branchID}).ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "JOIN branch_assignments ON branch_assignments.id = stocktake_summaries.branch_assignment_id")
	assert.Contains(t, sql, "WHERE branch_assignments.branch_id = $1")
	assert.Equal(t, []any{branchID}, args)
}
