package kafka

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAwaitTopicCreate(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		done := make(chan error, 1)
		done <- nil
		assert.NoError(t, awaitTopicCreate(done, time.Second, "events"))
	})

	t.Run("broker error", func(t *testing.T) {
		done := make(chan error, 1)
		done <- errors.New("not enough replicas")
		err := awaitTopicCreate(done, time.Second, "events")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "events")
	})

	t.Run("timeout absorbs late result", func(t *testing.T) {
		done := make(chan error, 1)

		err := awaitTopicCreate(done, 10*time.Millisecond, "events")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "timeout")

		// буфер канала принимает запоздавший результат без блокировки
		select {
		case done <- errors.New("late"):
		default:
			t.Fatal("late result would block the create goroutine")
		}
	})
}
