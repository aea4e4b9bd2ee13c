package branch

import (
	"stocktake/internal/core/tx"
	"stocktake/internal/domain"
)

// Repository defines the interface for Branch persistence.
type Repository interface {
	domain.CatalogRepository[*Branch]
}

// Service provides business logic for the Branch catalog.
type Service struct {
	*domain.CatalogService[*Branch]
}

// NewService creates a new Branch service.
func NewService(repo Repository, txm tx.Manager) *Service {
	return &Service{
		CatalogService: domain.NewCatalogService(domain.CatalogServiceConfig[*Branch]{
			Repo:       repo,
			TxManager:  txm,
			EntityName: "branch",
		}),
	}
}
