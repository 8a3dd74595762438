package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProduct_UnmarshalJSON_Weight(t *testing.T) {
	t.Run("string weight", func(t *testing.T) {
		var p Product
		require.NoError(t, json.Unmarshal(
			[]byte(`{"product_id": 1, "product_name": "Tea", "product_weight": "1.2 kg"}`), &p))
		assert.Equal(t, Weight("1.2 kg"), p.Weight)
	})

	t.Run("numeric weight passes through as string", func(t *testing.T) {
		var p Product
		require.NoError(t, json.Unmarshal(
			[]byte(`{"product_id": 1, "product_name": "Tea", "product_weight": 350}`), &p))
		assert.Equal(t, Weight("350"), p.Weight)
	})

	t.Run("fractional weight keeps its digits", func(t *testing.T) {
		var p Product
		require.NoError(t, json.Unmarshal(
			[]byte(`{"product_weight": 0.75}`), &p))
		assert.Equal(t, Weight("0.75"), p.Weight)
	})

	t.Run("weight marshals as string", func(t *testing.T) {
		data, err := json.Marshal(Product{ProductID: 1, Name: "Tea", Weight: "350"})
		require.NoError(t, err)
		assert.Contains(t, string(data), `"product_weight":"350"`)
	})
}

func TestProduct_UnmarshalJSON_NameAlias(t *testing.T) {
	t.Run("legacy name key", func(t *testing.T) {
		var p Product
		require.NoError(t, json.Unmarshal(
			[]byte(`{"product_id": 1, "name": "Green Tea"}`), &p))
		assert.Equal(t, "Green Tea", p.Name)
	})

	t.Run("canonical key wins over alias", func(t *testing.T) {
		var p Product
		require.NoError(t, json.Unmarshal(
			[]byte(`{"product_name": "Canonical", "name": "Legacy"}`), &p))
		assert.Equal(t, "Canonical", p.Name)
	})

	t.Run("canonical key only", func(t *testing.T) {
		var p Product
		require.NoError(t, json.Unmarshal(
			[]byte(`{"product_name": "Green Tea"}`), &p))
		assert.Equal(t, "Green Tea", p.Name)
	})
}
