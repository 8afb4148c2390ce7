package dashboard

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startDispatcher(t *testing.T) *Dispatcher {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	d := NewDispatcher()
	done := make(chan struct{})
	go func() {
		d.Run(ctx)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return d
}

func TestDispatcher_ReturnsHandlerError(t *testing.T) {
	d := startDispatcher(t)
	boom := errors.New("boom")

	assert.NoError(t, d.Do(context.Background(), func() error { return nil }))
	assert.ErrorIs(t, d.Do(context.Background(), func() error { return boom }), boom)
}

func TestDispatcher_SerializesHandlers(t *testing.T) {
	d := startDispatcher(t)

	var (
		wg      sync.WaitGroup
		running int
		overlap bool
		total   int
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = d.Do(context.Background(), func() error {
				running++
				if running > 1 {
					overlap = true
				}
				total++
				running--
				return nil
			})
		}()
	}
	wg.Wait()

	require.NoError(t, d.Do(context.Background(), func() error {
		assert.False(t, overlap)
		assert.Equal(t, 50, total)
		return nil
	}))
}

func TestDispatcher_StoppedAfterRunReturns(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	d := NewDispatcher()
	done := make(chan struct{})
	go func() {
		d.Run(ctx)
		close(done)
	}()
	cancel()
	<-done

	err := d.Do(context.Background(), func() error { return nil })
	assert.ErrorIs(t, err, ErrDispatcherStopped)
}

func TestDispatcher_CallerContextCancelled(t *testing.T) {
	d := NewDispatcher() // never run

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := d.Do(ctx, func() error { return nil })
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
