package catalog_repo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stocktake/internal/core/apperror"
	"stocktake/internal/core/id"
	"stocktake/internal/domain"
	"stocktake/internal/domain/catalogs/category"
)

func newTestRepo() *BaseCatalogRepo[*category.Category] {
	return NewCategoryRepo(nil).BaseCatalogRepo
}

func TestBaseCatalogRepo_ListQuery(t *testing.T) {
	repo := newTestRepo()

	q := repo.listQuery(repo.baseSelect(), domain.ListFilter{Search: "bev_"})
	sql, args, err := q.ToSql()
	require.NoError(t, err)

	assert.Equal(t,
		"SELECT categories.id, categories.created_at, categories.updated_at, categories.name, categories.description "+
			"FROM categories WHERE categories.name ILIKE $1",
		sql)
	assert.Equal(t, []any{`%bev\_%`}, args)
}

func TestBaseCatalogRepo_ParseOrderBy(t *testing.T) {
	repo := newTestRepo()

	tests := []struct {
		in   string
		want string
	}{
		{"", "categories.created_at DESC, categories.id DESC"},
		{"name", "categories.name ASC"},
		{"+name", "categories.name ASC"},
		{"-created_at", "categories.created_at DESC"},
		{"description", "categories.description ASC"},
	}
	for _, tt := range tests {
		got, err := repo.parseOrderBy(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}

	for _, bad := range []string{"-", "price; DROP TABLE categories", "unknown"} {
		_, err := repo.parseOrderBy(bad)
		assert.True(t, apperror.IsValidation(err), bad)
	}
}

func TestBaseCatalogRepo_UpdateQuery(t *testing.T) {
	repo := newTestRepo()
	c := category.NewCategory("Beverages", nil)

	q, entityID, err := repo.updateQuery(c)
	require.NoError(t, err)
	assert.Equal(t, c.ID, entityID)

	sql, args, err := q.ToSql()
	require.NoError(t, err)
	assert.Equal(t, "UPDATE categories SET description = $1, name = $2, updated_at = $3 WHERE id = $4", sql)
	assert.Len(t, args, 4)
	assert.Equal(t, "Beverages", args[1])
	assert.Equal(t, c.ID, args[3])
}

func TestBaseCatalogRepo_DeleteSQL(t *testing.T) {
	repo := newTestRepo()
	entityID := id.New()

	sql, args, err := repo.Builder().
		Delete(repo.tableName).
		Where("id = ?", entityID).
		ToSql()
	require.NoError(t, err)
	assert.Equal(t, "DELETE FROM categories WHERE id = $1", sql)
	assert.Equal(t, []any{entityID}, args)
}

func TestProductRepo_ViewQuery(t *testing.T) {
	repo := NewProductRepo(nil)

	sql, args, err := repo.viewQuery(domain.ListFilter{Category: "Snacks"}).ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "categories.name AS category_name")
	assert.Contains(t, sql, "JOIN categories ON categories.id = products.category_id")
	assert.Contains(t, sql, "WHERE lower(categories.name) = lower($1)")
	assert.Equal(t, []any{"Snacks"}, args)
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `50\% off\_x\\y`, escapeLike(`50% off_x\y`))
}
