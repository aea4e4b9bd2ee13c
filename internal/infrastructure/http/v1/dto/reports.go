package dto

import (
	"time"

	"stocktake/internal/domain/reports"
	"stocktake/internal/domain/stocktake"
)

// MonthlyValuationQuery selects the reported month.
type MonthlyValuationQuery struct {
	Month    string `form:"month" binding:"required"`
	BranchID string `form:"branchId" binding:"omitempty,uuid"`
}

// BranchValuationResponse is one branch row of the monthly report.
type BranchValuationResponse struct {
	BranchID           string     `json:"branchId"`
	BranchName         string     `json:"branchName"`
	BranchAssignmentID string     `json:"branchAssignmentId"`
	AssignmentName     string     `json:"assignmentName"`
	Status             string     `json:"status"`
	GrandTotal         *string    `json:"grandTotal"`
	FinalizedAt        *time.Time `json:"finalizedAt"`
}

// MonthlyValuationResponse is the monthly valuation report.
type MonthlyValuationResponse struct {
	Month          string                    `json:"month"`
	Branches       []BranchValuationResponse `json:"branches"`
	Categories     []CategoryTotalResponse   `json:"categories"`
	Total          string                    `json:"total"`
	FinalizedCount int                       `json:"finalizedCount"`
	PendingCount   int                       `json:"pendingCount"`
}

// FromMonthlyValuation creates response DTO from the domain report.
func FromMonthlyValuation(r *reports.MonthlyValuation) MonthlyValuationResponse {
	branches := make([]BranchValuationResponse, len(r.Branches))
	for i, b := range r.Branches {
		branches[i] = BranchValuationResponse{
			BranchID:           b.BranchID.String(),
			BranchName:         b.BranchName,
			BranchAssignmentID: b.AssignmentID.String(),
			AssignmentName:     b.AssignmentName,
			Status:             b.Status,
			GrandTotal:         OptionalMoney(b.GrandTotal),
			FinalizedAt:        b.FinalizedAt,
		}
	}

	categories := make([]CategoryTotalResponse, len(r.Categories))
	for i, c := range r.Categories {
		categories[i] = CategoryTotalResponse{
			Category:   c.Category,
			TotalValue: Money(c.TotalValue),
		}
	}

	return MonthlyValuationResponse{
		Month:          stocktake.FormatMonth(r.Month),
		Branches:       branches,
		Categories:     categories,
		Total:          Money(r.Total),
		FinalizedCount: r.FinalizedCount,
		PendingCount:   r.PendingCount,
	}
}
