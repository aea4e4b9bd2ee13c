package catalog_repo

import (
	"stocktake/internal/domain/catalogs/uom"
	"stocktake/internal/infrastructure/storage/postgres"
)

const uomTable = "uom"

// UOMRepo implements uom.Repository.
type UOMRepo struct {
	*BaseCatalogRepo[*uom.UOM]
}

// NewUOMRepo creates a new unit of measure repository.
func NewUOMRepo(txm *postgres.TxManager) *UOMRepo {
	return &UOMRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txm,
			uomTable,
			"uom",
			postgres.ExtractDBColumns[uom.UOM](),
			func() *uom.UOM { return new(uom.UOM) },
		),
	}
}
