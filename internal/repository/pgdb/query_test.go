package pgdb

import (
	"testing"

	"github.com/shopsphere/catalog-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fptr(v float64) *float64 { return &v }

func TestLikePattern(t *testing.T) {
	assert.Equal(t, "%tea%", likePattern("tea"))
	assert.Equal(t, `%100\%%`, likePattern("100%"))
	assert.Equal(t, `%a\_b%`, likePattern("a_b"))
	assert.Equal(t, `%c:\\tmp%`, likePattern(`c:\tmp`))
}

func TestListConditions_Empty(t *testing.T) {
	where, args := listConditions(domain.ProductFilter{})
	assert.Empty(t, where)
	assert.Empty(t, args)
}

func TestListConditions_Numbering(t *testing.T) {
	where, args := listConditions(domain.ProductFilter{
		Name:     "tea",
		Category: "beverages",
		MinPrice: fptr(5),
		MaxPrice: fptr(20),
	})

	assert.Equal(t,
		"WHERE name ILIKE $1 AND category ILIKE $2 AND price >= $3 AND price <= $4",
		where)
	require.Len(t, args, 4)
	assert.Equal(t, "%tea%", args[0])
	assert.Equal(t, 5.0, args[2])
}

func TestListConditions_ZeroBound(t *testing.T) {
	where, args := listConditions(domain.ProductFilter{MaxPrice: fptr(0)})

	assert.Equal(t, "WHERE price <= $1", where)
	require.Len(t, args, 1)
	assert.Equal(t, 0.0, args[0])
}

func TestPatchAssignments(t *testing.T) {
	set, args := patchAssignments(map[string]any{
		domain.FieldPrice: 9.99,
		domain.FieldName:  "New Name",
	}, 2)

	// стабильный порядок: name раньше price
	assert.Equal(t, "name = $2, price = $3", set)
	require.Len(t, args, 2)
	assert.Equal(t, "New Name", args[0])
	assert.Equal(t, 9.99, args[1])
}

func TestPatchAssignments_IgnoresUnknownFields(t *testing.T) {
	set, args := patchAssignments(map[string]any{
		"unknown_field":   "x",
		domain.FieldBrand: "BrewMaster",
	}, 1)

	assert.Equal(t, "brand = $1", set)
	assert.Len(t, args, 1)
}

func TestNormalizePatchValue(t *testing.T) {
	// JSON-декодер отдаёт числа как float64, колонка product_id — BIGINT
	assert.Equal(t, int64(42), normalizePatchValue(domain.FieldProductID, 42.0))
	assert.Equal(t, 4.5, normalizePatchValue(domain.FieldRating, 4.5))

	// числовой вес уходит в TEXT-колонку строкой
	assert.Equal(t, "350", normalizePatchValue(domain.FieldWeight, 350.0))
	assert.Equal(t, "1.2 kg", normalizePatchValue(domain.FieldWeight, "1.2 kg"))
}
