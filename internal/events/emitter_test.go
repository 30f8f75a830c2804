package events

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// atomicCountHandler is safe for handling events from concurrent emitters.
type atomicCountHandler struct {
	count atomic.Int64
}

func (h *atomicCountHandler) HandleEvent(ctx context.Context, event *TaskRequestEvent) error {
	h.count.Add(1)
	return nil
}

func TestInMemoryEventEmitter(t *testing.T) {
	// Create a minimal logger that discards output
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("emit event with no handlers", func(t *testing.T) {
		emitter := NewInMemoryEventEmitter(logger)
		event, err := NewTaskRequestEvent("reading_archive", map[string]string{"key": "value"})
		require.NoError(t, err)

		// Should not error even with no handlers
		err = emitter.EmitEvent(context.Background(), event)
		assert.NoError(t, err)
	})

	t.Run("emit event with successful handlers", func(t *testing.T) {
		emitter := NewInMemoryEventEmitter(logger)

		handler1 := &MockEventHandler{}
		handler2 := &MockEventHandler{}

		emitter.RegisterHandler(handler1)
		emitter.RegisterHandler(handler2)

		event, err := NewTaskRequestEvent("reading_archive", map[string]string{"key": "value"})
		require.NoError(t, err)

		err = emitter.EmitEvent(context.Background(), event)
		assert.NoError(t, err)

		// Verify both handlers received the event
		assert.Equal(t, 1, handler1.HandledCount)
		assert.Equal(t, 1, handler2.HandledCount)
		assert.Equal(t, event, handler1.LastEvent)
		assert.Equal(t, event, handler2.LastEvent)
	})

	t.Run("failing handler does not stop delivery", func(t *testing.T) {
		emitter := NewInMemoryEventEmitter(logger)

		failingHandler := &MockEventHandler{
			HandlerError: errors.New("first handler error"),
		}
		successHandler := &MockEventHandler{}

		emitter.RegisterHandler(failingHandler)
		emitter.RegisterHandler(successHandler)

		event, err := NewTaskRequestEvent("reading_archive", map[string]string{"key": "value"})
		require.NoError(t, err)

		err = emitter.EmitEvent(context.Background(), event)
		assert.ErrorContains(t, err, "first handler error")

		// Both handlers should still have received the event
		assert.Equal(t, 1, failingHandler.HandledCount)
		assert.Equal(t, 1, successHandler.HandledCount)
	})

	t.Run("errors from multiple failing handlers are joined", func(t *testing.T) {
		emitter := NewInMemoryEventEmitter(logger)

		errOne := errors.New("handler one failed")
		errTwo := errors.New("handler two failed")
		emitter.RegisterHandler(&MockEventHandler{HandlerError: errOne})
		emitter.RegisterHandler(&MockEventHandler{HandlerError: errTwo})

		event, err := NewTaskRequestEvent("reading_archive", map[string]string{"key": "value"})
		require.NoError(t, err)

		err = emitter.EmitEvent(context.Background(), event)
		assert.ErrorIs(t, err, errOne)
		assert.ErrorIs(t, err, errTwo)
	})

	t.Run("nil logger falls back to default", func(t *testing.T) {
		emitter := NewInMemoryEventEmitter(nil)
		require.NotNil(t, emitter)

		event, err := NewTaskRequestEvent("reading_archive", map[string]string{"key": "value"})
		require.NoError(t, err)
		assert.NoError(t, emitter.EmitEvent(context.Background(), event))
	})

	t.Run("concurrent registration and emission are safe", func(t *testing.T) {
		emitter := NewInMemoryEventEmitter(logger)

		event, err := NewTaskRequestEvent("reading_archive", map[string]string{"key": "value"})
		require.NoError(t, err)

		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(2)
			go func() {
				defer wg.Done()
				emitter.RegisterHandler(&atomicCountHandler{})
			}()
			go func() {
				defer wg.Done()
				_ = emitter.EmitEvent(context.Background(), event)
			}()
		}
		wg.Wait()
	})
}
