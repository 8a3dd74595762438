package http

import (
	"net/http/httptest"
	"testing"

	"github.com/shopsphere/catalog-service/pkg/e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseListQuery(t *testing.T) {
	t.Run("absent params skip predicates", func(t *testing.T) {
		req, err := parseListQuery(httptest.NewRequest("GET", "/products", nil))
		require.NoError(t, err)
		assert.True(t, req.Filter.IsZero())
		assert.Zero(t, req.Limit)
		assert.Zero(t, req.Page)
	})

	t.Run("zero is a live predicate", func(t *testing.T) {
		req, err := parseListQuery(httptest.NewRequest("GET", "/products?minPrice=0", nil))
		require.NoError(t, err)
		require.NotNil(t, req.Filter.MinPrice)
		assert.Zero(t, *req.Filter.MinPrice)
	})

	t.Run("full set", func(t *testing.T) {
		req, err := parseListQuery(httptest.NewRequest("GET",
			"/products?name=tea&brand=house&category=bev&minRating=3&maxRating=5&minPrice=1&maxPrice=10&limit=20&page=2", nil))
		require.NoError(t, err)
		assert.Equal(t, "tea", req.Filter.Name)
		assert.Equal(t, "house", req.Filter.Brand)
		require.NotNil(t, req.Filter.MaxPrice)
		assert.Equal(t, 10.0, *req.Filter.MaxPrice)
		assert.Equal(t, 20, req.Limit)
		assert.Equal(t, 2, req.Page)
	})

	t.Run("unparsable values are rejected", func(t *testing.T) {
		for _, target := range []string{
			"/products?minPrice=cheap",
			"/products?maxRating=high",
			"/products?limit=many",
			"/products?page=last",
		} {
			_, err := parseListQuery(httptest.NewRequest("GET", target, nil))
			assert.ErrorIs(t, err, e.ErrInvalidFilterParam, target)
		}
	})
}

func TestParseProductID(t *testing.T) {
	id, err := parseProductID("42")
	require.NoError(t, err)
	assert.EqualValues(t, 42, id)

	// непарсибельный идентификатор не может совпасть ни с одной записью
	_, err = parseProductID("abc")
	assert.ErrorIs(t, err, e.ErrProductNotFound)
}

func TestToHTTPResponse(t *testing.T) {
	code, msg := ToHTTPResponse(e.Wrap("op", e.ErrNoMatchingProducts))
	assert.Equal(t, 404, code)
	assert.Equal(t, e.ErrNoMatchingProducts.Error(), msg)

	code, msg = ToHTTPResponse(e.Wrap("op", e.ErrInvalidFilterParam))
	assert.Equal(t, 400, code)
	assert.Equal(t, e.ErrInvalidFilterParam.Error(), msg)

	// внутренние детали наружу не уходят
	code, msg = ToHTTPResponse(assert.AnError)
	assert.Equal(t, 500, code)
	assert.Equal(t, e.ErrInternalServerError.Error(), msg)
}
