package hotkey

import (
	"runtime"
	"time"

	"github.com/rs/zerolog"
)

// DefaultPollInterval is the pause between worker iterations. It bounds both
// CPU usage and the latency from key release to callback, and from a
// Register/Unregister call to its response. Polling at a fixed interval keeps
// the worker simple at the cost of up to one interval of latency.
const DefaultPollInterval = 50 * time.Millisecond

type commandKind int

const (
	cmdRegister commandKind = iota
	cmdUnregister
	cmdShutdown
)

func (k commandKind) String() string {
	switch k {
	case cmdRegister:
		return "register"
	case cmdUnregister:
		return "unregister"
	case cmdShutdown:
		return "shutdown"
	default:
		return "invalid"
	}
}

type command struct {
	kind commandKind
	seq  uint64
	mods Modifier
	key  Key
	id   NativeID
}

type response struct {
	kind commandKind
	seq  uint64
	id   NativeID
	err  error
}

type worker struct {
	backend  Backend
	registry *Registry
	log      zerolog.Logger
	interval time.Duration

	cmds  <-chan command
	resps chan<- response
	done  chan struct{}
}

// run owns the backend for its whole life. The OS thread stays locked and is
// discarded when the goroutine returns, which releases any thread-bound
// native state with it.
func (w *worker) run(ready chan<- error) {
	runtime.LockOSThread()
	defer close(w.done)

	if err := w.backend.Open(); err != nil {
		ready <- err
		return
	}
	ready <- nil

	defer func() {
		if r := recover(); r != nil {
			w.log.Error().Interface("panic", r).Msg("Hotkey worker crashed")
			w.closeBackend()
		}
	}()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		w.pollEvent()
		if !w.pollCommand() {
			return
		}
		<-ticker.C
	}
}

func (w *worker) pollEvent() {
	ev, ok, err := w.backend.Poll()
	if err != nil {
		w.log.Warn().Err(err).Msg("Native event poll failed")
		return
	}
	if !ok {
		return
	}
	cb, found := w.registry.Callback(ev.ID)
	if !found {
		w.log.Debug().Uint32("code", ev.ID.Code).Uint32("mods", ev.ID.Mods).Msg("Event for unknown grab")
		return
	}
	w.invoke(ev.ID, cb)
}

func (w *worker) invoke(id NativeID, cb Callback) {
	defer func() {
		if r := recover(); r != nil {
			w.log.Error().Interface("panic", r).Uint32("code", id.Code).Msg("Hotkey callback panicked")
		}
	}()
	cb()
}

// pollCommand handles at most one pending command. It returns false once the
// worker must stop.
func (w *worker) pollCommand() bool {
	select {
	case cmd := <-w.cmds:
		return w.handle(cmd)
	default:
		return true
	}
}

func (w *worker) handle(cmd command) bool {
	switch cmd.kind {
	case cmdRegister:
		hk := New(cmd.mods, cmd.key)
		id, err := w.backend.Grab(cmd.mods, cmd.key)
		if err != nil {
			w.log.Debug().Err(err).Stringer("hotkey", hk).Msg("Grab failed")
			w.reply(response{kind: cmd.kind, seq: cmd.seq, err: err})
			return true
		}
		w.reply(response{kind: cmd.kind, seq: cmd.seq, id: id})
	case cmdUnregister:
		if err := w.backend.Ungrab(cmd.id); err != nil {
			w.log.Debug().Err(err).Uint32("code", cmd.id.Code).Msg("Ungrab failed")
			w.reply(response{kind: cmd.kind, seq: cmd.seq, err: err})
			return true
		}
		w.reply(response{kind: cmd.kind, seq: cmd.seq})
	case cmdShutdown:
		w.closeBackend()
		w.log.Debug().Msg("Hotkey worker stopped")
		return false
	default:
		w.log.Warn().Stringer("command", cmd.kind).Msg("Ignoring invalid command")
	}
	return true
}

// reply never blocks the loop; the listener has at most one request in
// flight, so a full queue means a protocol violation.
func (w *worker) reply(r response) {
	select {
	case w.resps <- r:
	default:
		w.log.Error().Stringer("command", r.kind).Uint64("seq", r.seq).Msg("Response queue full, dropping response")
	}
}

func (w *worker) closeBackend() {
	if err := w.backend.Close(); err != nil {
		w.log.Warn().Err(err).Msg("Closing native connection failed")
	}
}
