package catalog_repo

import (
	"context"
	"strings"

	"github.com/Masterminds/squirrel"

	"stocktake/internal/domain/catalogs/category"
	"stocktake/internal/infrastructure/storage/postgres"
)

const categoryTable = "categories"

// CategoryRepo implements category.Repository.
type CategoryRepo struct {
	*BaseCatalogRepo[*category.Category]
}

// NewCategoryRepo creates a new category repository.
func NewCategoryRepo(txm *postgres.TxManager) *CategoryRepo {
	return &CategoryRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txm,
			categoryTable,
			"category",
			postgres.ExtractDBColumns[category.Category](),
			func() *category.Category { return new(category.Category) },
		),
	}
}

// FindByName retrieves a category by name, case-insensitively.
func (r *CategoryRepo) FindByName(ctx context.Context, name string) (*category.Category, error) {
	q := r.baseSelect().
		Where(squirrel.Expr("lower(categories.name) = lower(?)", strings.TrimSpace(name))).
		Limit(1)
	return r.FindOne(ctx, q, name)
}
