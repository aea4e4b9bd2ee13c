package catalog_repo

import (
	"stocktake/internal/domain/catalogs/branch"
	"stocktake/internal/infrastructure/storage/postgres"
)

const branchTable = "branches"

// BranchRepo implements branch.Repository and stocktake.BranchReader.
type BranchRepo struct {
	*BaseCatalogRepo[*branch.Branch]
}

// NewBranchRepo creates a new branch repository.
func NewBranchRepo(txm *postgres.TxManager) *BranchRepo {
	return &BranchRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txm,
			branchTable,
			"branch",
			postgres.ExtractDBColumns[branch.Branch](),
			func() *branch.Branch { return new(branch.Branch) },
		),
	}
}
