package handlers

import (
	"stocktake/internal/domain/catalogs/branch"
	"stocktake/internal/domain/catalogs/category"
	"stocktake/internal/domain/catalogs/supplier"
	"stocktake/internal/domain/catalogs/uom"
	"stocktake/internal/infrastructure/http/v1/dto"
)

// CategoryHTTPHandler is the catalog handler for categories.
type CategoryHTTPHandler = CatalogHandler[*category.Category, dto.CreateCategoryRequest, dto.UpdateCategoryRequest]

// NewCategoryHandler creates the category handler.
func NewCategoryHandler(base *BaseHandler, service *category.Service) *CategoryHTTPHandler {
	return NewCatalogHandler(base, CatalogHandlerConfig[*category.Category, dto.CreateCategoryRequest, dto.UpdateCategoryRequest]{
		Service: service.CatalogService,
		MapCreateDTO: func(req dto.CreateCategoryRequest) *category.Category {
			return req.ToEntity()
		},
		MapUpdateDTO: func(req dto.UpdateCategoryRequest, existing *category.Category) *category.Category {
			req.ApplyTo(existing)
			return existing
		},
		MapToDTO: func(c *category.Category) any {
			return dto.FromCategory(c)
		},
	})
}

// SupplierHTTPHandler is the catalog handler for suppliers.
type SupplierHTTPHandler = CatalogHandler[*supplier.Supplier, dto.CreateSupplierRequest, dto.UpdateSupplierRequest]

// NewSupplierHandler creates the supplier handler.
func NewSupplierHandler(base *BaseHandler, service *supplier.Service) *SupplierHTTPHandler {
	return NewCatalogHandler(base, CatalogHandlerConfig[*supplier.Supplier, dto.CreateSupplierRequest, dto.UpdateSupplierRequest]{
		Service: service.CatalogService,
		MapCreateDTO: func(req dto.CreateSupplierRequest) *supplier.Supplier {
			return req.ToEntity()
		},
		MapUpdateDTO: func(req dto.UpdateSupplierRequest, existing *supplier.Supplier) *supplier.Supplier {
			req.ApplyTo(existing)
			return existing
		},
		MapToDTO: func(s *supplier.Supplier) any {
			return dto.FromSupplier(s)
		},
	})
}

// UOMHTTPHandler is the catalog handler for units of measure.
type UOMHTTPHandler = CatalogHandler[*uom.UOM, dto.CreateUOMRequest, dto.UpdateUOMRequest]

// NewUOMHandler creates the unit of measure handler.
func NewUOMHandler(base *BaseHandler, service *uom.Service) *UOMHTTPHandler {
	return NewCatalogHandler(base, CatalogHandlerConfig[*uom.UOM, dto.CreateUOMRequest, dto.UpdateUOMRequest]{
		Service: service.CatalogService,
		MapCreateDTO: func(req dto.CreateUOMRequest) *uom.UOM {
			return req.ToEntity()
		},
		MapUpdateDTO: func(req dto.UpdateUOMRequest, existing *uom.UOM) *uom.UOM {
			req.ApplyTo(existing)
			return existing
		},
		MapToDTO: func(u *uom.UOM) any {
			return dto.FromUOM(u)
		},
	})
}

// BranchHTTPHandler is the catalog handler for branches.
type BranchHTTPHandler = CatalogHandler[*branch.Branch, dto.CreateBranchRequest, dto.UpdateBranchRequest]

// NewBranchHandler creates the branch handler.
func NewBranchHandler(base *BaseHandler, service *branch.Service) *BranchHTTPHandler {
	return NewCatalogHandler(base, CatalogHandlerConfig[*branch.Branch, dto.CreateBranchRequest, dto.UpdateBranchRequest]{
		Service: service.CatalogService,
		MapCreateDTO: func(req dto.CreateBranchRequest) *branch.Branch {
			return req.ToEntity()
		},
		MapUpdateDTO: func(req dto.UpdateBranchRequest, existing *branch.Branch) *branch.Branch {
			req.ApplyTo(existing)
			return existing
		},
		MapToDTO: func(b *branch.Branch) any {
			return dto.FromBranch(b)
		},
	})
}
