package product

import (
	"context"

	"stocktake/internal/core/apperror"
	"stocktake/internal/core/id"
	"stocktake/internal/core/tx"
	"stocktake/internal/domain"
)

// DefaultPageSize is the product listing page size when none is requested.
const DefaultPageSize = 10

// References groups the catalogs a product points at.
type References struct {
	Categories ReferenceChecker
	Suppliers  ReferenceChecker
	UOMs       ReferenceChecker
}

// Service provides business logic for the Product catalog.
type Service struct {
	*domain.CatalogService[*Product]
	repo Repository
	refs References
}

// NewService creates a new Product service.
func NewService(repo Repository, txm tx.Manager, refs References) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Product]{
		Repo:       repo,
		TxManager:  txm,
		EntityName: "product",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
		refs:           refs,
	}

	base.Hooks().OnBeforeCreate(svc.checkReferences)
	base.Hooks().OnBeforeUpdate(svc.checkReferences)

	return svc
}

func (s *Service) checkReferences(ctx context.Context, p *Product) error {
	checks := []struct {
		entity  string
		id      id.ID
		checker ReferenceChecker
	}{
		{"category", p.CategoryID, s.refs.Categories},
		{"supplier", p.SupplierID, s.refs.Suppliers},
		{"uom", p.UomID, s.refs.UOMs},
	}

	for _, c := range checks {
		if c.checker == nil {
			continue
		}
		ok, err := c.checker.Exists(ctx, c.id)
		if err != nil {
			return err
		}
		if !ok {
			return apperror.NewNotFound(c.entity, c.id.String())
		}
	}
	return nil
}

// ListViews lists products with their category names.
func (s *Service) ListViews(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*View], error) {
	if filter.Limit <= 0 {
		filter.Limit = DefaultPageSize
	}
	if filter.Limit > domain.MaxPageSize {
		filter.Limit = domain.MaxPageSize
	}
	return s.repo.ListViews(ctx, filter)
}

// GetView retrieves a product with its category name.
func (s *Service) GetView(ctx context.Context, productID id.ID) (*View, error) {
	v, err := s.repo.GetView(ctx, productID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("product", productID.String())
		}
		return nil, err
	}
	return v, nil
}
