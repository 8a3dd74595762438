package pushid

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Format(t *testing.T) {
	id := New()
	require.Len(t, id, 20)
	for _, r := range id {
		assert.Contains(t, alphabet, string(r))
	}
}

func TestNew_Unique(t *testing.T) {
	const n = 10000

	seen := make(map[string]struct{}, n)
	for i := 0; i < n; i++ {
		id := New()
		_, dup := seen[id]
		require.False(t, dup, "duplicate id %s", id)
		seen[id] = struct{}{}
	}
}

func TestNew_Monotonic(t *testing.T) {
	const n = 1000

	ids := make([]string, n)
	for i := range ids {
		ids[i] = New()
	}

	// лексикографический порядок ключей совпадает с порядком генерации
	assert.True(t, sort.StringsAreSorted(ids))
}
