package action

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/petems/hotkeyd/internal/config"
)

// DefaultQueueSize is the number of pending actions a Dispatcher holds.
const DefaultQueueSize = 16

// Dispatcher runs actions one at a time on its own goroutine so that hotkey
// callbacks only have to enqueue.
type Dispatcher struct {
	runner Runner
	log    zerolog.Logger
	jobs   chan config.Binding

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}

	mu      sync.Mutex
	stopped bool
}

// NewDispatcher starts a dispatcher with a queue of size entries. Sizes
// below one use DefaultQueueSize.
func NewDispatcher(r Runner, log zerolog.Logger, size int) *Dispatcher {
	if size < 1 {
		size = DefaultQueueSize
	}
	ctx, cancel := context.WithCancel(context.Background())
	d := &Dispatcher{
		runner: r,
		log:    log,
		jobs:   make(chan config.Binding, size),
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	go d.loop()
	return d
}

// Submit queues b without blocking. It returns false when the queue is full
// or the dispatcher is stopped.
func (d *Dispatcher) Submit(b config.Binding) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return false
	}
	select {
	case d.jobs <- b:
		return true
	default:
		d.log.Warn().Str("binding", b.Label()).Msg("Action queue full, dropping trigger")
		return false
	}
}

// Stop cancels the running action, drops queued ones and waits for the
// dispatcher goroutine until ctx expires.
func (d *Dispatcher) Stop(ctx context.Context) error {
	d.mu.Lock()
	d.stopped = true
	d.mu.Unlock()
	d.cancel()

	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *Dispatcher) loop() {
	defer close(d.done)
	for {
		select {
		case <-d.ctx.Done():
			return
		case b := <-d.jobs:
			d.run(b)
		}
	}
}

func (d *Dispatcher) run(b config.Binding) {
	defer func() {
		if r := recover(); r != nil {
			d.log.Error().Interface("panic", r).Str("binding", b.Label()).Msg("Action panicked")
		}
	}()
	if err := d.runner.Run(d.ctx, b); err != nil {
		if d.ctx.Err() != nil {
			return
		}
		d.log.Error().Err(err).Str("binding", b.Label()).Msg("Action failed")
		return
	}
	d.log.Debug().Str("binding", b.Label()).Msg("Action completed")
}
