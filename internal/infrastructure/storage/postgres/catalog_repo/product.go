package catalog_repo

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"stocktake/internal/core/apperror"
	"stocktake/internal/core/id"
	"stocktake/internal/core/types"
	"stocktake/internal/domain"
	"stocktake/internal/domain/catalogs/product"
	"stocktake/internal/infrastructure/storage/postgres"
)

const productTable = "products"

// ProductRepo implements product.Repository and stocktake.PriceReader.
type ProductRepo struct {
	*BaseCatalogRepo[*product.Product]
}

// NewProductRepo creates a new product repository.
func NewProductRepo(txm *postgres.TxManager) *ProductRepo {
	return &ProductRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txm,
			productTable,
			"product",
			postgres.ExtractDBColumns[product.Product](),
			func() *product.Product { return new(product.Product) },
		),
	}
}

// viewSelect selects products with their category name.
func (r *ProductRepo) viewSelect() squirrel.SelectBuilder {
	return r.Builder().
		Select(append(r.qualifiedCols(), "categories.name AS category_name")...).
		From(productTable).
		Join("categories ON categories.id = products.category_id")
}

func (r *ProductRepo) viewQuery(filter domain.ListFilter) squirrel.SelectBuilder {
	q := r.listQuery(r.viewSelect(), filter)
	if c := strings.TrimSpace(filter.Category); c != "" {
		q = q.Where(squirrel.Expr("lower(categories.name) = lower(?)", c))
	}
	return q
}

// ListViews lists products joined with their category.
func (r *ProductRepo) ListViews(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*product.View], error) {
	orderBy, err := r.parseOrderBy(filter.OrderBy)
	if err != nil {
		return domain.ListResult[*product.View]{}, err
	}
	return postgres.ListPage[*product.View](ctx, r.querier(ctx), r.Builder(), r.viewQuery(filter), orderBy, filter)
}

// GetView retrieves one product with its category name.
func (r *ProductRepo) GetView(ctx context.Context, productID id.ID) (*product.View, error) {
	sql, args, err := r.viewSelect().
		Where(squirrel.Eq{"products.id": productID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var v product.View
	if err := pgxscan.Get(ctx, r.querier(ctx), &v, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("product", productID.String())
		}
		return nil, postgres.MapError(fmt.Errorf("get product view: %w", err))
	}
	return &v, nil
}

// ProductPrice implements stocktake.PriceReader.
// Returns nil for a product without a price.
func (r *ProductRepo) ProductPrice(ctx context.Context, productID id.ID) (*types.Money, error) {
	sql, args, err := r.Builder().
		Select("price").
		From(productTable).
		Where(squirrel.Eq{"id": productID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var price *types.Money
	if err := r.querier(ctx).QueryRow(ctx, sql, args...).Scan(&price); err != nil {
		if postgres.IsNoRows(err) {
			return nil, apperror.NewNotFound("product", productID.String())
		}
		return nil, postgres.MapError(fmt.Errorf("get product price: %w", err))
	}
	return price, nil
}
