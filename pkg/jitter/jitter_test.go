package jitter

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDuration_Range(t *testing.T) {
	base := time.Second
	for i := 0; i < 100; i++ {
		d := Duration(base, DefaultJitter)
		assert.GreaterOrEqual(t, d, base)
		assert.LessOrEqual(t, d, base+base/2)
	}
}

func TestDurationWithSeed_Deterministic(t *testing.T) {
	a := DurationWithSeed(time.Second, DefaultJitter, rand.New(rand.NewSource(42)))
	b := DurationWithSeed(time.Second, DefaultJitter, rand.New(rand.NewSource(42)))
	assert.Equal(t, a, b)
}

func TestExponentialBackoff(t *testing.T) {
	base, max := 100*time.Millisecond, time.Second

	// без джиттера: 100ms, 200ms, 400ms, 800ms, затем потолок
	assert.Equal(t, 100*time.Millisecond, ExponentialBackoff(base, max, 0, 0))
	assert.Equal(t, 200*time.Millisecond, ExponentialBackoff(base, max, 1, 0))
	assert.Equal(t, 800*time.Millisecond, ExponentialBackoff(base, max, 3, 0))
	assert.Equal(t, max, ExponentialBackoff(base, max, 10, 0))
}
