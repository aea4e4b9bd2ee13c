package report_repo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stocktake/internal/core/id"
	"stocktake/internal/domain/reports"
)

func TestBranchValuationsQuery(t *testing.T) {
	r := NewReportRepo(nil)
	month := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	branchID := id.New()

	sql, args, err := r.branchValuationsQuery(reports.MonthlyValuationFilter{Month: month, BranchID: &branchID}).ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "LEFT JOIN stocktake_summaries s ON s.branch_assignment_id = a.id")
	assert.Contains(t, sql, "WHERE a.assigned_month = $1 AND a.branch_id = $2")
	assert.Contains(t, sql, "ORDER BY b.name ASC, a.id ASC")
	assert.Equal(t, []any{month, branchID}, args)
}

func TestCategoryValuationsQuery(t *testing.T) {
	r := NewReportRepo(nil)
	month := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	sql, args, err := r.categoryValuationsQuery(reports.MonthlyValuationFilter{Month: month}).ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "CROSS JOIN LATERAL jsonb_array_elements(s.totals_by_category) AS t(elem)")
	assert.Contains(t, sql, "GROUP BY t.elem->>'category'")
	assert.Contains(t, sql, "ORDER BY category ASC")
	assert.Equal(t, []any{month}, args)
}
