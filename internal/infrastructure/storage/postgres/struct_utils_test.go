package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"stocktake/internal/core/entity"
	"stocktake/internal/core/id"
)

type mockCatalog struct {
	entity.Catalog
	Description *string `db:"description" json:"description"`
	Ignored     string  `db:"-"`
	NoTag       string
}

func TestExtractDBColumns_EmbeddedFields(t *testing.T) {
	cols := ExtractDBColumns[mockCatalog]()

	assert.Equal(t, []string{"id", "created_at", "updated_at", "name", "description"}, cols)
}

func TestStructToMap_EmbeddedFields(t *testing.T) {
	now := time.Now().UTC()
	desc := "Soft drinks"
	cat := mockCatalog{
		Catalog: entity.Catalog{
			BaseEntity: entity.BaseEntity{
				ID:        id.New(),
				CreatedAt: now,
				UpdatedAt: now,
			},
			Name: "Beverages",
		},
		Description: &desc,
		Ignored:     "x",
	}

	m := StructToMap(cat)

	assert.Len(t, m, 5)
	assert.Equal(t, cat.ID, m["id"])
	assert.Equal(t, now, m["created_at"])
	assert.Equal(t, "Beverages", m["name"])
	assert.Equal(t, &desc, m["description"])
	assert.NotContains(t, m, "Ignored")

	// Pointer input uses the same cached metadata
	assert.Equal(t, m, StructToMap(&cat))
}
