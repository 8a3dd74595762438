package firebasedb

import (
	"testing"

	"github.com/shopsphere/catalog-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fptr(v float64) *float64 { return &v }

func sampleProducts() []domain.Product {
	return []domain.Product{
		{ProductID: 1, Name: "Green Tea", Brand: "TeaHouse", Category: "Beverages", Price: 5, Rating: 4.5},
		{ProductID: 2, Name: "Black Tea", Brand: "TeaHouse", Category: "Beverages", Price: 4, Rating: 4.0},
		{ProductID: 3, Name: "Coffee Beans", Brand: "BrewMaster", Category: "Beverages", Price: 12, Rating: 4.8},
		{ProductID: 4, Name: "Tea Pot", Brand: "HomeWare", Category: "Kitchen", Price: 25, Rating: 3.9},
	}
}

func TestFilterProducts(t *testing.T) {
	items := sampleProducts()

	t.Run("zero filter returns all", func(t *testing.T) {
		assert.Equal(t, items, filterProducts(items, domain.ProductFilter{}))
	})

	t.Run("name and category", func(t *testing.T) {
		got := filterProducts(items, domain.ProductFilter{Name: "tea", Category: "beverages"})
		require.Len(t, got, 2)
		assert.EqualValues(t, 1, got[0].ProductID)
		assert.EqualValues(t, 2, got[1].ProductID)
	})

	t.Run("price bounds", func(t *testing.T) {
		got := filterProducts(items, domain.ProductFilter{MinPrice: fptr(5), MaxPrice: fptr(12)})
		require.Len(t, got, 2)
		assert.EqualValues(t, 1, got[0].ProductID)
		assert.EqualValues(t, 3, got[1].ProductID)
	})

	t.Run("no matches", func(t *testing.T) {
		assert.Empty(t, filterProducts(items, domain.ProductFilter{Brand: "nosuch"}))
	})
}

func TestSearchProducts(t *testing.T) {
	items := sampleProducts()

	got := searchProducts(items, "tea")
	require.Len(t, got, 3) // имя или бренд

	got = searchProducts(items, "brewmaster")
	require.Len(t, got, 1)
	assert.EqualValues(t, 3, got[0].ProductID)

	assert.Empty(t, searchProducts(items, "grinder"))
}

func TestPaginate(t *testing.T) {
	items := sampleProducts()

	t.Run("first page", func(t *testing.T) {
		got := paginate(items, 2, 0)
		require.Len(t, got, 2)
		assert.EqualValues(t, 1, got[0].ProductID)
	})

	t.Run("second page", func(t *testing.T) {
		got := paginate(items, 2, 2)
		require.Len(t, got, 2)
		assert.EqualValues(t, 3, got[0].ProductID)
	})

	t.Run("partial last page", func(t *testing.T) {
		got := paginate(items, 3, 3)
		require.Len(t, got, 1)
		assert.EqualValues(t, 4, got[0].ProductID)
	})

	t.Run("offset past the end", func(t *testing.T) {
		assert.Nil(t, paginate(items, 10, 100))
	})

	t.Run("negative offset from page overflow", func(t *testing.T) {
		// (1<<57 - 1) * 80 перепрыгивает через край int
		big := 1<<57 - 1
		offset := big * 80
		require.Negative(t, offset)
		assert.Nil(t, paginate(items, 80, offset))
	})

	// страница P при размере L — это filtered[(P-1)*L : (P-1)*L+L]
	t.Run("window formula", func(t *testing.T) {
		limit, page := 3, 2
		got := paginate(items, limit, (page-1)*limit)
		assert.Equal(t, items[3:4], got)
	})
}
