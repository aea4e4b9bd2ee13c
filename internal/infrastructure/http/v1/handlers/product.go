package handlers

import (
	"github.com/gin-gonic/gin"

	"stocktake/internal/domain"
	"stocktake/internal/domain/catalogs/product"
	"stocktake/internal/infrastructure/http/v1/dto"
)

// ProductHandler serves the product catalog. Reads embed the product's category.
type ProductHandler struct {
	*CatalogHandler[*product.Product, dto.CreateProductRequest, dto.UpdateProductRequest]
	service *product.Service
}

// NewProductHandler creates the product handler.
func NewProductHandler(base *BaseHandler, service *product.Service) *ProductHandler {
	generic := NewCatalogHandler(base, CatalogHandlerConfig[*product.Product, dto.CreateProductRequest, dto.UpdateProductRequest]{
		Service: service.CatalogService,
		MapCreateDTO: func(req dto.CreateProductRequest) *product.Product {
			return req.ToEntity()
		},
		MapUpdateDTO: func(req dto.UpdateProductRequest, existing *product.Product) *product.Product {
			req.ApplyTo(existing)
			return existing
		},
		MapToDTO: func(p *product.Product) any {
			return dto.FromProduct(p)
		},
	})

	return &ProductHandler{
		CatalogHandler: generic,
		service:        service,
	}
}

type productListQuery struct {
	catalogListQuery
	Category string `form:"category"`
}

// List handles GET /products - filter by name search and category name.
func (h *ProductHandler) List(c *gin.Context) {
	var q productListQuery
	if !h.BindQuery(c, &q) {
		return
	}
	q.Normalize(product.DefaultPageSize)

	filter := h.listFilter(q)
	result, err := h.service.ListViews(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Page(c, dto.NewListResponse(result, q.PageQuery, dto.FromProductView))
}

func (h *ProductHandler) listFilter(q productListQuery) domain.ListFilter {
	f := domain.DefaultListFilter()
	f.Search = q.Search
	if q.OrderBy != "" {
		f.OrderBy = q.OrderBy
	}
	f.Category = q.Category
	f.Limit = q.Limit
	f.Offset = q.Offset()
	return f
}

// Get handles GET /products/:id.
func (h *ProductHandler) Get(c *gin.Context) {
	productID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	v, err := h.service.GetView(c.Request.Context(), productID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromProductView(v))
}
