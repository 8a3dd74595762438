package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func fptr(v float64) *float64 { return &v }

func TestProductFilter_IsZero(t *testing.T) {
	assert.True(t, ProductFilter{}.IsZero())
	assert.False(t, ProductFilter{Name: "tea"}.IsZero())
	assert.False(t, ProductFilter{MinPrice: fptr(0)}.IsZero())
}

func TestProductFilter_Matches_Strings(t *testing.T) {
	p := Product{Name: "Green Tea Premium", Brand: "TeaHouse", Category: "Beverages"}

	assert.True(t, ProductFilter{Name: "green tea"}.Matches(p))
	assert.True(t, ProductFilter{Brand: "TEAHOUSE"}.Matches(p))
	assert.True(t, ProductFilter{Category: "bever"}.Matches(p))
	assert.False(t, ProductFilter{Name: "black"}.Matches(p))

	// AND: один непрошедший предикат валит весь фильтр
	assert.False(t, ProductFilter{Name: "green", Brand: "other"}.Matches(p))
}

func TestProductFilter_Matches_Bounds(t *testing.T) {
	p := Product{Name: "Tea", Price: 100, Rating: 4.5}

	// границы включительные
	assert.True(t, ProductFilter{MinPrice: fptr(100), MaxPrice: fptr(100)}.Matches(p))
	assert.True(t, ProductFilter{MinRating: fptr(4.5), MaxRating: fptr(4.5)}.Matches(p))

	assert.False(t, ProductFilter{MinPrice: fptr(100.01)}.Matches(p))
	assert.False(t, ProductFilter{MaxPrice: fptr(99.99)}.Matches(p))
	assert.False(t, ProductFilter{MinRating: fptr(4.6)}.Matches(p))
	assert.False(t, ProductFilter{MaxRating: fptr(4.4)}.Matches(p))
}

func TestProductFilter_Matches_ZeroBound(t *testing.T) {
	free := Product{Name: "Sample", Price: 0, Rating: 0}
	paid := Product{Name: "Paid", Price: 10, Rating: 3}

	// явный ноль — рабочее значение предиката, а не «параметр не задан»
	zero := ProductFilter{MaxPrice: fptr(0)}
	assert.True(t, zero.Matches(free))
	assert.False(t, zero.Matches(paid))
}

func TestProduct_MatchesQuery(t *testing.T) {
	p := Product{Name: "Espresso Machine", Brand: "BrewMaster"}

	assert.True(t, p.MatchesQuery("espresso"))
	assert.True(t, p.MatchesQuery("brewmaster"))
	assert.True(t, p.MatchesQuery("MACHINE"))
	assert.False(t, p.MatchesQuery("grinder"))

	// пустой запрос совпадает со всеми записями
	assert.True(t, p.MatchesQuery(""))
}
