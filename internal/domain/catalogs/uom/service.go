package uom

import (
	"stocktake/internal/core/tx"
	"stocktake/internal/domain"
)

// Repository defines the interface for UOM persistence.
type Repository interface {
	domain.CatalogRepository[*UOM]
}

// Service provides business logic for the UOM catalog.
type Service struct {
	*domain.CatalogService[*UOM]
}

// NewService creates a new UOM service.
func NewService(repo Repository, txm tx.Manager) *Service {
	return &Service{
		CatalogService: domain.NewCatalogService(domain.CatalogServiceConfig[*UOM]{
			Repo:       repo,
			TxManager:  txm,
			EntityName: "uom",
		}),
	}
}
