package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stocktake/internal/core/id"
	"stocktake/internal/core/types"
	"stocktake/internal/domain"
	"stocktake/internal/domain/stocktake"
)

func TestPageQuery(t *testing.T) {
	var p PageQuery
	p.Normalize(10)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 10, p.Limit)
	assert.Equal(t, 0, p.Offset())

	p = PageQuery{Page: 3, Limit: 25}
	p.Normalize(10)
	assert.Equal(t, 50, p.Offset())
}

func TestNewPaginationResponse(t *testing.T) {
	assert.Equal(t, 3, NewPaginationResponse(1, 10, 21).TotalPages)
	assert.Equal(t, 2, NewPaginationResponse(1, 10, 20).TotalPages)
	assert.Equal(t, 0, NewPaginationResponse(1, 10, 0).TotalPages)
}

func TestNewListResponse_NeverNull(t *testing.T) {
	resp := NewListResponse(domain.ListResult[int]{}, PageQuery{Page: 1, Limit: 10}, func(i int) int { return i })
	assert.NotNil(t, resp.Data)
	assert.Empty(t, resp.Data)
}

func TestFromSummary_FormatsMoney(t *testing.T) {
	s := &stocktake.Summary{
		ID:           id.New(),
		AssignmentID: id.New(),
		GrandTotal:   types.MustMoney("40"),
		TotalsByCategory: stocktake.CategoryTotals{
			{Category: "Beverages", TotalValue: types.MustMoney("30")},
			{Category: "Snacks", TotalValue: types.MustMoney("10")},
		},
	}

	resp := FromSummary(s)
	assert.Equal(t, "40.00", resp.GrandTotal)
	require.Len(t, resp.TotalsByCategory, 2)
	assert.Equal(t, CategoryTotalResponse{Category: "Beverages", TotalValue: "30.00"}, resp.TotalsByCategory[0])
}

func TestUpdateAssignmentRequest_ToPatch(t *testing.T) {
	month := "2024-03"
	status := "in progress"
	req := UpdateAssignmentRequest{AssignedMonth: &month, Status: &status}

	patch, err := req.ToPatch()
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", stocktake.FormatMonth(*patch.AssignedMonth))
	assert.Equal(t, stocktake.StatusInProgress, *patch.Status)

	bad := "finished"
	_, err = (&UpdateAssignmentRequest{Status: &bad}).ToPatch()
	assert.Error(t, err)
}
