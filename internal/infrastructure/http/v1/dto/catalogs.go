package dto

import (
	"strings"
	"time"

	"stocktake/internal/core/id"
	"stocktake/internal/core/types"
	"stocktake/internal/domain/catalogs/branch"
	"stocktake/internal/domain/catalogs/category"
	"stocktake/internal/domain/catalogs/product"
	"stocktake/internal/domain/catalogs/supplier"
	"stocktake/internal/domain/catalogs/uom"
)

// Patch is implemented by partial-update requests.
type Patch interface {
	IsEmpty() bool
}

// CatalogResponse contains fields shared by every catalog response.
type CatalogResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// --- Category ---

// CreateCategoryRequest is the request body for creating a category.
type CreateCategoryRequest struct {
	Name        string  `json:"name" binding:"required,max=255"`
	Description *string `json:"description" binding:"omitempty,max=255"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateCategoryRequest) ToEntity() *category.Category {
	return category.NewCategory(r.Name, r.Description)
}

// UpdateCategoryRequest is the PATCH body for a category.
type UpdateCategoryRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=255"`
	Description *string `json:"description" binding:"omitempty,max=255"`
}

// IsEmpty implements Patch.
func (r UpdateCategoryRequest) IsEmpty() bool {
	return r.Name == nil && r.Description == nil
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateCategoryRequest) ApplyTo(c *category.Category) {
	if r.Name != nil {
		c.Name = strings.TrimSpace(*r.Name)
	}
	if r.Description != nil {
		c.Description = r.Description
	}
}

// CategoryResponse is the response body for a category.
type CategoryResponse struct {
	CatalogResponse
	Description *string `json:"description"`
}

// FromCategory creates response DTO from domain entity.
func FromCategory(c *category.Category) CategoryResponse {
	return CategoryResponse{
		CatalogResponse: CatalogResponse{
			ID:        c.ID.String(),
			Name:      c.Name,
			CreatedAt: c.CreatedAt,
			UpdatedAt: c.UpdatedAt,
		},
		Description: c.Description,
	}
}

// --- Supplier ---

// CreateSupplierRequest is the request body for creating a supplier.
type CreateSupplierRequest struct {
	Name        string  `json:"name" binding:"required,max=255"`
	ContactName *string `json:"contactName" binding:"omitempty,max=255"`
	Email       *string `json:"email" binding:"omitempty,email,max=255"`
	Phone       *string `json:"phone" binding:"omitempty,max=50"`
	Website     *string `json:"website" binding:"omitempty,url,max=255"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateSupplierRequest) ToEntity() *supplier.Supplier {
	s := supplier.NewSupplier(r.Name)
	s.ContactName = r.ContactName
	s.Email = r.Email
	s.Phone = r.Phone
	s.Website = r.Website
	return s
}

// UpdateSupplierRequest is the PATCH body for a supplier.
type UpdateSupplierRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=255"`
	ContactName *string `json:"contactName" binding:"omitempty,max=255"`
	Email       *string `json:"email" binding:"omitempty,email,max=255"`
	Phone       *string `json:"phone" binding:"omitempty,max=50"`
	Website     *string `json:"website" binding:"omitempty,url,max=255"`
}

// IsEmpty implements Patch.
func (r UpdateSupplierRequest) IsEmpty() bool {
	return r.Name == nil && r.ContactName == nil && r.Email == nil && r.Phone == nil && r.Website == nil
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateSupplierRequest) ApplyTo(s *supplier.Supplier) {
	if r.Name != nil {
		s.Name = strings.TrimSpace(*r.Name)
	}
	if r.ContactName != nil {
		s.ContactName = r.ContactName
	}
	if r.Email != nil {
		s.Email = r.Email
	}
	if r.Phone != nil {
		s.Phone = r.Phone
	}
	if r.Website != nil {
		s.Website = r.Website
	}
}

// SupplierResponse is the response body for a supplier.
type SupplierResponse struct {
	CatalogResponse
	ContactName *string `json:"contactName"`
	Email       *string `json:"email"`
	Phone       *string `json:"phone"`
	Website     *string `json:"website"`
}

// FromSupplier creates response DTO from domain entity.
func FromSupplier(s *supplier.Supplier) SupplierResponse {
	return SupplierResponse{
		CatalogResponse: CatalogResponse{
			ID:        s.ID.String(),
			Name:      s.Name,
			CreatedAt: s.CreatedAt,
			UpdatedAt: s.UpdatedAt,
		},
		ContactName: s.ContactName,
		Email:       s.Email,
		Phone:       s.Phone,
		Website:     s.Website,
	}
}

// --- Unit of measure ---

// CreateUOMRequest is the request body for creating a unit of measure.
type CreateUOMRequest struct {
	Name        string  `json:"name" binding:"required,max=255"`
	Description *string `json:"description" binding:"omitempty,max=255"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateUOMRequest) ToEntity() *uom.UOM {
	return uom.NewUOM(r.Name, r.Description)
}

// UpdateUOMRequest is the PATCH body for a unit of measure.
type UpdateUOMRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=255"`
	Description *string `json:"description" binding:"omitempty,max=255"`
}

// IsEmpty implements Patch.
func (r UpdateUOMRequest) IsEmpty() bool {
	return r.Name == nil && r.Description == nil
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateUOMRequest) ApplyTo(u *uom.UOM) {
	if r.Name != nil {
		u.Name = strings.TrimSpace(*r.Name)
	}
	if r.Description != nil {
		u.Description = r.Description
	}
}

// UOMResponse is the response body for a unit of measure.
type UOMResponse struct {
	CatalogResponse
	Description *string `json:"description"`
}

// FromUOM creates response DTO from domain entity.
func FromUOM(u *uom.UOM) UOMResponse {
	return UOMResponse{
		CatalogResponse: CatalogResponse{
			ID:        u.ID.String(),
			Name:      u.Name,
			CreatedAt: u.CreatedAt,
			UpdatedAt: u.UpdatedAt,
		},
		Description: u.Description,
	}
}

// --- Branch ---

// CreateBranchRequest is the request body for creating a branch.
type CreateBranchRequest struct {
	Name string `json:"name" binding:"required,max=255"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateBranchRequest) ToEntity() *branch.Branch {
	return branch.NewBranch(r.Name)
}

// UpdateBranchRequest is the PATCH body for a branch.
type UpdateBranchRequest struct {
	Name *string `json:"name" binding:"omitempty,max=255"`
}

// IsEmpty implements Patch.
func (r UpdateBranchRequest) IsEmpty() bool {
	return r.Name == nil
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateBranchRequest) ApplyTo(b *branch.Branch) {
	if r.Name != nil {
		b.Name = strings.TrimSpace(*r.Name)
	}
}

// BranchResponse is the response body for a branch.
type BranchResponse struct {
	CatalogResponse
}

// FromBranch creates response DTO from domain entity.
func FromBranch(b *branch.Branch) BranchResponse {
	return BranchResponse{
		CatalogResponse: CatalogResponse{
			ID:        b.ID.String(),
			Name:      b.Name,
			CreatedAt: b.CreatedAt,
			UpdatedAt: b.UpdatedAt,
		},
	}
}

// --- Product ---

// CreateProductRequest is the request body for creating a product.
// Price accepts a JSON number or a decimal string.
type CreateProductRequest struct {
	Name       string       `json:"name" binding:"required,max=255"`
	CategoryID id.ID        `json:"categoryId" binding:"required"`
	SupplierID id.ID        `json:"supplierId" binding:"required"`
	UomID      id.ID        `json:"uomId" binding:"required"`
	Price      *types.Money `json:"price"`
	Pkg        int          `json:"pkg" binding:"min=0"`
	Barcode    *string      `json:"barcode" binding:"omitempty,max=255"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateProductRequest) ToEntity() *product.Product {
	p := product.NewProduct(r.Name, r.CategoryID, r.SupplierID, r.UomID)
	p.Price = r.Price
	p.Pkg = r.Pkg
	p.Barcode = r.Barcode
	return p
}

// UpdateProductRequest is the PATCH body for a product.
type UpdateProductRequest struct {
	Name       *string      `json:"name" binding:"omitempty,max=255"`
	CategoryID *id.ID       `json:"categoryId"`
	SupplierID *id.ID       `json:"supplierId"`
	UomID      *id.ID       `json:"uomId"`
	Price      *types.Money `json:"price"`
	Pkg        *int         `json:"pkg" binding:"omitempty,min=0"`
	Barcode    *string      `json:"barcode" binding:"omitempty,max=255"`
}

// IsEmpty implements Patch.
func (r UpdateProductRequest) IsEmpty() bool {
	return r.Name == nil && r.CategoryID == nil && r.SupplierID == nil && r.UomID == nil &&
		r.Price == nil && r.Pkg == nil && r.Barcode == nil
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateProductRequest) ApplyTo(p *product.Product) {
	if r.Name != nil {
		p.Name = strings.TrimSpace(*r.Name)
	}
	if r.CategoryID != nil {
		p.CategoryID = *r.CategoryID
	}
	if r.SupplierID != nil {
		p.SupplierID = *r.SupplierID
	}
	if r.UomID != nil {
		p.UomID = *r.UomID
	}
	if r.Price != nil {
		p.Price = r.Price
	}
	if r.Pkg != nil {
		p.Pkg = *r.Pkg
	}
	if r.Barcode != nil {
		p.Barcode = r.Barcode
	}
}

// CategoryRef is the category embedded in a product response.
type CategoryRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ProductResponse is the response body for a product.
type ProductResponse struct {
	CatalogResponse
	CategoryID string       `json:"categoryId"`
	Category   *CategoryRef `json:"category,omitempty"`
	SupplierID string       `json:"supplierId"`
	UomID      string       `json:"uomId"`
	Price      *string      `json:"price"`
	Pkg        int          `json:"pkg"`
	Barcode    *string      `json:"barcode"`
}

// FromProduct creates response DTO from domain entity.
func FromProduct(p *product.Product) ProductResponse {
	return ProductResponse{
		CatalogResponse: CatalogResponse{
			ID:        p.ID.String(),
			Name:      p.Name,
			CreatedAt: p.CreatedAt,
			UpdatedAt: p.UpdatedAt,
		},
		CategoryID: p.CategoryID.String(),
		SupplierID: p.SupplierID.String(),
		UomID:      p.UomID.String(),
		Price:      OptionalMoney(p.Price),
		Pkg:        p.Pkg,
		Barcode:    p.Barcode,
	}
}

// FromProductView creates response DTO with the embedded category.
func FromProductView(v *product.View) ProductResponse {
	resp := FromProduct(&v.Product)
	resp.Category = &CategoryRef{
		ID:   v.CategoryID.String(),
		Name: v.CategoryName,
	}
	return resp
}
