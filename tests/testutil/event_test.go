package testutil

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordingHandler_Handle(t *testing.T) {
	h := NewRecordingHandler("PropertyRegistered")
	assert.Equal(t, []string{"PropertyRegistered"}, h.EventTypes())

	event := NewTestEvent("PropertyRegistered", "Property")
	require.NoError(t, h.Handle(context.Background(), event))

	assert.Equal(t, 1, h.Count())
	assert.Equal(t, []string{"PropertyRegistered"}, h.Types())
	assert.Same(t, event, h.Handled()[0])
}

func TestRecordingHandler_SetErrorAndReset(t *testing.T) {
	h := NewRecordingHandler()
	h.SetError(assert.AnError)

	err := h.Handle(context.Background(), NewTestEvent("CropCreated", "Crop"))
	assert.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, 1, h.Count())

	h.Reset()
	assert.Zero(t, h.Count())
	assert.NoError(t, h.Handle(context.Background(), NewTestEvent("CropCreated", "Crop")))
}

func TestWaitForCondition(t *testing.T) {
	t.Run("condition met", func(t *testing.T) {
		var flag atomic.Bool
		go func() {
			time.Sleep(20 * time.Millisecond)
			flag.Store(true)
		}()
		assert.True(t, WaitForCondition(t, flag.Load, 500*time.Millisecond, 5*time.Millisecond))
	})

	t.Run("timeout", func(t *testing.T) {
		assert.False(t, WaitForCondition(t, func() bool { return false }, 30*time.Millisecond, 5*time.Millisecond))
	})
}

func TestWaitForEventCount(t *testing.T) {
	h := NewRecordingHandler()
	go func() {
		time.Sleep(10 * time.Millisecond)
		_ = h.Handle(context.Background(), NewTestEvent("ProducerRegistered", "Producer"))
		_ = h.Handle(context.Background(), NewTestEvent("ProducerDeleted", "Producer"))
	}()

	assert.True(t, WaitForEventCount(t, h, 2, 500*time.Millisecond))
}
