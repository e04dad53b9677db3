package hotkey

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// queueSize is the capacity of the command and response queues. A Listener
// has at most one request plus the shutdown signal in flight.
const queueSize = 4

type options struct {
	backend  Backend
	log      zerolog.Logger
	interval time.Duration
}

// Option configures a Listener.
type Option func(*options)

// WithBackend replaces the platform backend, e.g. with a FakeBackend.
func WithBackend(b Backend) Option {
	return func(o *options) { o.backend = b }
}

// WithLogger sets the logger used by the worker.
func WithLogger(log zerolog.Logger) Option {
	return func(o *options) { o.log = log }
}

// WithPollInterval sets the pause between worker iterations. Non-positive
// values keep DefaultPollInterval.
func WithPollInterval(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.interval = d
		}
	}
}

// Listener registers global hotkeys through its worker.
//
// Register and Unregister block until the worker answers. Calls are
// serialised so concurrent callers cannot receive each other's responses.
type Listener struct {
	registry *Registry
	log      zerolog.Logger

	cmds  chan command
	resps chan response
	done  chan struct{}

	callMu sync.Mutex
	seq    uint64

	closed    atomic.Bool
	closeOnce sync.Once
}

// NewListener starts the worker and opens the native connection. It returns
// the backend's error when the connection cannot be opened.
func NewListener(opts ...Option) (*Listener, error) {
	o := options{
		log:      zerolog.Nop(),
		interval: DefaultPollInterval,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.backend == nil {
		o.backend = newNativeBackend()
	}

	l := &Listener{
		registry: NewRegistry(),
		log:      o.log,
		cmds:     make(chan command, queueSize),
		resps:    make(chan response, queueSize),
		done:     make(chan struct{}),
	}
	w := &worker{
		backend:  o.backend,
		registry: l.registry,
		log:      o.log,
		interval: o.interval,
		cmds:     l.cmds,
		resps:    l.resps,
		done:     l.done,
	}

	ready := make(chan error, 1)
	go w.run(ready)
	if err := <-ready; err != nil {
		return nil, fmt.Errorf("open hotkey backend: %w", err)
	}
	return l, nil
}

// Register grabs hk globally and stores cb to run on every trigger.
//
// It fails with ErrAlreadyRegistered, without contacting the worker, when an
// equal hotkey is registered, and after the grab when the backend maps hk to
// the native id of a registered hotkey. Native failures are returned as ErrBackend and
// leave the registry untouched.
func (l *Listener) Register(hk Hotkey, cb Callback) error {
	if cb == nil {
		return ErrNilCallback
	}

	l.callMu.Lock()
	defer l.callMu.Unlock()

	if err := l.alive(hk); err != nil {
		return err
	}
	if _, ok := l.registry.Lookup(hk); ok {
		return alreadyRegistered(hk)
	}

	resp, err := l.call(command{kind: cmdRegister, mods: hk.Modifiers, key: hk.Key}, hk)
	if err != nil {
		return err
	}
	if resp.err != nil {
		return backendError(hk, resp.err)
	}

	if !l.registry.Insert(resp.id, hk, cb) {
		if l.closed.Load() {
			return channelError(hk, errListenerClosed)
		}
		// Another hotkey resolved to the same native grab. The grab is
		// held for that entry, so it is not released here.
		return alreadyRegistered(hk)
	}
	l.log.Debug().Stringer("hotkey", hk).Msg("Registered hotkey")
	return nil
}

// Unregister releases hk. It fails with ErrNotRegistered, without contacting
// the worker, when no registered hotkey equals hk.
//
// The entry is removed before the worker is asked to release the grab. If
// the native release fails the entry is restored, since the grab is still
// held; if the worker is gone it is not, since its grabs went with it.
func (l *Listener) Unregister(hk Hotkey) error {
	l.callMu.Lock()
	defer l.callMu.Unlock()

	if err := l.alive(hk); err != nil {
		return err
	}
	id, ok := l.registry.Lookup(hk)
	if !ok {
		return notRegistered(hk)
	}
	cb, ok := l.registry.Remove(id)
	if !ok {
		return unknownError(hk, errRegistryInconsistent)
	}

	resp, err := l.call(command{kind: cmdUnregister, id: id}, hk)
	if err != nil {
		return err
	}
	if resp.err != nil {
		l.registry.Insert(id, hk, cb)
		return backendError(hk, resp.err)
	}

	l.log.Debug().Stringer("hotkey", hk).Msg("Unregistered hotkey")
	return nil
}

// Hotkeys lists the registered hotkeys in no particular order.
func (l *Listener) Hotkeys() []Hotkey {
	return l.registry.Hotkeys()
}

// IsRegistered reports whether a hotkey equal to hk is registered.
func (l *Listener) IsRegistered(hk Hotkey) bool {
	_, ok := l.registry.Lookup(hk)
	return ok
}

// Close signals the worker to release its native connection and stop. It
// does not wait for the worker; use Done for that. Every later Register or
// Unregister fails with ErrChannel.
func (l *Listener) Close() error {
	l.closeOnce.Do(func() {
		l.closed.Store(true)
		select {
		case l.cmds <- command{kind: cmdShutdown}:
		case <-l.done:
		}
		l.registry.Close()
	})
	return nil
}

// Done is closed when the worker has exited.
func (l *Listener) Done() <-chan struct{} {
	return l.done
}

func (l *Listener) alive(hk Hotkey) error {
	if l.closed.Load() {
		return channelError(hk, errListenerClosed)
	}
	select {
	case <-l.done:
		return channelError(hk, errWorkerExited)
	default:
		return nil
	}
}

// call sends cmd and waits for the matching response. l.callMu must be held.
func (l *Listener) call(cmd command, hk Hotkey) (response, error) {
	l.seq++
	cmd.seq = l.seq

	select {
	case l.cmds <- cmd:
	case <-l.done:
		return response{}, channelError(hk, errWorkerExited)
	}

	var resp response
	select {
	case resp = <-l.resps:
	case <-l.done:
		// The worker may have answered just before exiting.
		select {
		case resp = <-l.resps:
		default:
			return response{}, channelError(hk, errWorkerExited)
		}
	}

	if resp.kind != cmd.kind || resp.seq != cmd.seq {
		return response{}, unknownError(hk, fmt.Errorf("got %s response #%d for %s request #%d", resp.kind, resp.seq, cmd.kind, cmd.seq))
	}
	return resp, nil
}
