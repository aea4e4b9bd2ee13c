// Package dto provides Data Transfer Objects for API requests/responses.
package dto

import (
	"stocktake/internal/core/types"
	"stocktake/internal/domain"
)

// --- Pagination ---

// PageQuery contains page-based pagination parameters.
type PageQuery struct {
	Page  int `form:"page" binding:"omitempty,min=1"`
	Limit int `form:"limit" binding:"omitempty,min=1,max=100"`
}

// Normalize fills unset values; defaultLimit applies when no limit was given.
func (p *PageQuery) Normalize(defaultLimit int) {
	if p.Page == 0 {
		p.Page = 1
	}
	if p.Limit == 0 {
		p.Limit = defaultLimit
	}
}

// Offset calculates SQL offset.
func (p PageQuery) Offset() int {
	return (p.Page - 1) * p.Limit
}

// PaginationResponse contains pagination metadata.
type PaginationResponse struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// NewPaginationResponse creates pagination response.
func NewPaginationResponse(page, pageSize int, total int64) PaginationResponse {
	totalPages := 0
	if pageSize > 0 {
		totalPages = int(total) / pageSize
		if int(total)%pageSize > 0 {
			totalPages++
		}
	}
	return PaginationResponse{
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}

// --- Envelopes ---

// DataResponse wraps a single object.
type DataResponse struct {
	Data any `json:"data"`
}

// ListResponse wraps one page of results.
type ListResponse[T any] struct {
	Data       []T                `json:"data"`
	Pagination PaginationResponse `json:"pagination"`
}

// NewListResponse maps a page of domain items to DTOs.
func NewListResponse[S, T any](result domain.ListResult[S], page PageQuery, mapFn func(S) T) ListResponse[T] {
	items := make([]T, len(result.Items))
	for i, item := range result.Items {
		items[i] = mapFn(item)
	}
	return ListResponse[T]{
		Data:       items,
		Pagination: NewPaginationResponse(page.Page, page.Limit, result.TotalCount),
	}
}

// --- Error Response ---

// ErrorResponse for error details.
type ErrorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// --- Money ---

// Money renders an amount with two decimals.
func Money(m types.Money) string {
	return types.FormatMoney(m)
}

// OptionalMoney renders a nullable amount.
func OptionalMoney(m *types.Money) *string {
	if m == nil {
		return nil
	}
	s := types.FormatMoney(*m)
	return &s
}
