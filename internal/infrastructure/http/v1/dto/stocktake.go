package dto

import (
	"time"

	"stocktake/internal/core/id"
	"stocktake/internal/domain/stocktake"
)

// --- Branch assignments ---

// CreateAssignmentRequest is the request body for scheduling a stocktake.
// AssignedMonth is "YYYY-MM" or "YYYY-MM-DD".
type CreateAssignmentRequest struct {
	Name          string `json:"name" binding:"required,max=255"`
	BranchID      id.ID  `json:"branchId" binding:"required"`
	AssignedMonth string `json:"assignedMonth" binding:"required"`
}

// ToInput converts the request to domain input.
func (r *CreateAssignmentRequest) ToInput() (stocktake.CreateAssignmentInput, error) {
	month, err := stocktake.NormalizeMonth(r.AssignedMonth)
	if err != nil {
		return stocktake.CreateAssignmentInput{}, err
	}
	return stocktake.CreateAssignmentInput{
		Name:          r.Name,
		BranchID:      r.BranchID,
		AssignedMonth: month,
	}, nil
}

// UpdateAssignmentRequest is the PATCH body for an assignment.
type UpdateAssignmentRequest struct {
	Name          *string `json:"name" binding:"omitempty,max=255"`
	BranchID      *id.ID  `json:"branchId"`
	AssignedMonth *string `json:"assignedMonth"`
	Status        *string `json:"status"`
}

// ToPatch converts the request to a domain patch.
func (r *UpdateAssignmentRequest) ToPatch() (stocktake.AssignmentPatch, error) {
	patch := stocktake.AssignmentPatch{
		Name:     r.Name,
		BranchID: r.BranchID,
	}
	if r.AssignedMonth != nil {
		month, err := stocktake.NormalizeMonth(*r.AssignedMonth)
		if err != nil {
			return patch, err
		}
		patch.AssignedMonth = &month
	}
	if r.Status != nil {
		status, err := stocktake.ParseStatus(*r.Status)
		if err != nil {
			return patch, err
		}
		patch.Status = &status
	}
	return patch, nil
}

// AssignmentListQuery filters assignment listings.
type AssignmentListQuery struct {
	PageQuery
	BranchID string `form:"branchId" binding:"omitempty,uuid"`
	Month    string `form:"month"`
	Status   string `form:"status"`
}

// ToFilter converts query parameters to a domain filter.
func (q *AssignmentListQuery) ToFilter() (stocktake.AssignmentFilter, error) {
	f := stocktake.AssignmentFilter{
		Limit:  q.Limit,
		Offset: q.Offset(),
	}
	if q.BranchID != "" {
		branchID, err := id.Parse(q.BranchID)
		if err != nil {
			return f, err
		}
		f.BranchID = &branchID
	}
	if q.Month != "" {
		month, err := stocktake.NormalizeMonth(q.Month)
		if err != nil {
			return f, err
		}
		f.Month = &month
	}
	if q.Status != "" {
		status, err := stocktake.ParseStatus(q.Status)
		if err != nil {
			return f, err
		}
		f.Status = &status
	}
	return f, nil
}

// AssignmentResponse is the response body for an assignment.
type AssignmentResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	AssignedMonth string    `json:"assignedMonth"`
	BranchID      string    `json:"branchId"`
	Status        string    `json:"status"`
	AssignedAt    time.Time `json:"assignedAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// FromAssignment creates response DTO from domain entity.
func FromAssignment(a *stocktake.Assignment) AssignmentResponse {
	return AssignmentResponse{
		ID:            a.ID.String(),
		Name:          a.Name,
		AssignedMonth: stocktake.FormatMonth(a.AssignedMonth),
		BranchID:      a.BranchID.String(),
		Status:        string(a.Status),
		AssignedAt:    a.AssignedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

// --- Stock counts ---

// RecordCountRequest is the body of POST /stock-counts.
// Quantity is a pointer so that an explicit 0 passes the required check.
type RecordCountRequest struct {
	BranchAssignmentID id.ID  `json:"branchAssignmentId" binding:"required"`
	ProductID          id.ID  `json:"productId" binding:"required"`
	Quantity           *int64 `json:"quantity" binding:"required"`
}

// PutCountRequest is the body of PUT /branch-assignments/:id/counts/:productId.
type PutCountRequest struct {
	Quantity *int64 `json:"quantity" binding:"required"`
}

// CountListQuery filters stock count listings.
type CountListQuery struct {
	PageQuery
	BranchAssignmentID string `form:"branchAssignmentId" binding:"omitempty,uuid"`
	ProductID          string `form:"productId" binding:"omitempty,uuid"`
}

// ToFilter converts query parameters to a domain filter.
func (q *CountListQuery) ToFilter() stocktake.CountFilter {
	f := stocktake.CountFilter{
		Limit:  q.Limit,
		Offset: q.Offset(),
	}
	if v, err := id.Parse(q.BranchAssignmentID); err == nil {
		f.AssignmentID = &v
	}
	if v, err := id.Parse(q.ProductID); err == nil {
		f.ProductID = &v
	}
	return f
}

// StockCountResponse is the response body for a stock count.
type StockCountResponse struct {
	ID                 string    `json:"id"`
	BranchAssignmentID string    `json:"branchAssignmentId"`
	ProductID          string    `json:"productId"`
	Quantity           int64     `json:"quantity"`
	StockValue         string    `json:"stockValue"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// FromStockCount creates response DTO from domain entity.
func FromStockCount(c *stocktake.StockCount) StockCountResponse {
	return StockCountResponse{
		ID:                 c.ID.String(),
		BranchAssignmentID: c.AssignmentID.String(),
		ProductID:          c.ProductID.String(),
		Quantity:           c.Quantity,
		StockValue:         Money(c.Value),
		UpdatedAt:          c.UpdatedAt,
	}
}

// CountViewResponse is a stock count with product and category names.
type CountViewResponse struct {
	StockCountResponse
	ProductName  string `json:"productName"`
	CategoryName string `json:"categoryName"`
}

// FromCountView creates response DTO from a domain view.
func FromCountView(v *stocktake.CountView) CountViewResponse {
	return CountViewResponse{
		StockCountResponse: FromStockCount(&v.StockCount),
		ProductName:        v.ProductName,
		CategoryName:       v.CategoryName,
	}
}

// --- Summaries ---

// FinishRequest is the body of POST /stocktake-summaries/finish.
type FinishRequest struct {
	BranchAssignmentID id.ID `json:"branchAssignmentId" binding:"required"`
}

// SummaryListQuery filters summary listings.
type SummaryListQuery struct {
	PageQuery
	BranchID string `form:"branchId" binding:"omitempty,uuid"`
	Month    string `form:"month"`
}

// ToFilter converts query parameters to a domain filter.
func (q *SummaryListQuery) ToFilter() (stocktake.SummaryFilter, error) {
	f := stocktake.SummaryFilter{
		Limit:  q.Limit,
		Offset: q.Offset(),
	}
	if v, err := id.Parse(q.BranchID); err == nil {
		f.BranchID = &v
	}
	if q.Month != "" {
		month, err := stocktake.NormalizeMonth(q.Month)
		if err != nil {
			return f, err
		}
		f.Month = &month
	}
	return f, nil
}

// CategoryTotalResponse is one entry of a summary's category breakdown.
type CategoryTotalResponse struct {
	Category   string `json:"category"`
	TotalValue string `json:"totalValue"`
}

// SummaryResponse is the response body for a stocktake summary.
type SummaryResponse struct {
	ID                 string                  `json:"id"`
	BranchAssignmentID string                  `json:"branchAssignmentId"`
	GrandTotal         string                  `json:"grandTotal"`
	TotalsByCategory   []CategoryTotalResponse `json:"totalsByCategory"`
	CreatedAt          time.Time               `json:"createdAt"`
	UpdatedAt          time.Time               `json:"updatedAt"`
}

// FromSummary creates response DTO from domain entity.
func FromSummary(s *stocktake.Summary) SummaryResponse {
	totals := make([]CategoryTotalResponse, len(s.TotalsByCategory))
	for i, t := range s.TotalsByCategory {
		totals[i] = CategoryTotalResponse{
			Category:   t.Category,
			TotalValue: Money(t.TotalValue),
		}
	}
	return SummaryResponse{
		ID:                 s.ID.String(),
		BranchAssignmentID: s.AssignmentID.String(),
		GrandTotal:         Money(s.GrandTotal),
		TotalsByCategory:   totals,
		CreatedAt:          s.CreatedAt,
		UpdatedAt:          s.UpdatedAt,
	}
}

// SummaryViewResponse is a summary with its assignment.
type SummaryViewResponse struct {
	SummaryResponse
	AssignmentName string `json:"assignmentName"`
	AssignedMonth  string `json:"assignedMonth"`
	BranchID       string `json:"branchId"`
}

// FromSummaryView creates response DTO from a domain view.
func FromSummaryView(v *stocktake.SummaryView) SummaryViewResponse {
	return SummaryViewResponse{
		SummaryResponse: FromSummary(&v.Summary),
		AssignmentName:  v.AssignmentName,
		AssignedMonth:   stocktake.FormatMonth(v.AssignedMonth),
		BranchID:        v.BranchID.String(),
	}
}
