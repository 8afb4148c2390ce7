package dashboard

import (
	"context"
	"errors"
)

// ErrDispatcherStopped is returned by Do once Run has returned.
var ErrDispatcherStopped = errors.New("dispatcher stopped")

type event struct {
	fn   func() error
	done chan error
}

// Dispatcher is the single event loop every load and change event runs on.
// Handlers run one at a time, to completion, in submission order, so view
// state needs no locking.
type Dispatcher struct {
	events  chan event
	stopped chan struct{}
}

// NewDispatcher creates a dispatcher. Nothing runs until Run is called.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		events:  make(chan event),
		stopped: make(chan struct{}),
	}
}

// Run processes events until ctx is cancelled.
func (d *Dispatcher) Run(ctx context.Context) {
	defer close(d.stopped)
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-d.events:
			ev.done <- ev.fn()
		}
	}
}

// Do submits fn and blocks until it has run, returning its error.
func (d *Dispatcher) Do(ctx context.Context, fn func() error) error {
	ev := event{fn: fn, done: make(chan error, 1)}
	select {
	case d.events <- ev:
	case <-d.stopped:
		return ErrDispatcherStopped
	case <-ctx.Done():
		return ctx.Err()
	}
	// Once accepted the handler always completes.
	return <-ev.done
}
