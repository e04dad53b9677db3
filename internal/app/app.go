package app

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/petems/hotkeyd/internal/config"
	"github.com/petems/hotkeyd/internal/hotkey"
)

// StatusUpdater is an interface for updating status (e.g., tray icon)
type StatusUpdater interface {
	SetIdle()
	SetPaused()
	SetError()
	SetBindings(states []BindingState)
}

// Listener is the part of *hotkey.Listener the app drives.
type Listener interface {
	Register(hk hotkey.Hotkey, cb hotkey.Callback) error
	Unregister(hk hotkey.Hotkey) error
	Close() error
}

// Dispatcher queues binding actions off the hotkey worker.
type Dispatcher interface {
	Submit(b config.Binding) bool
	Stop(ctx context.Context) error
}

type Config struct {
	Listener      Listener
	Dispatcher    Dispatcher
	Config        *config.Config
	Logger        zerolog.Logger
	StatusUpdater StatusUpdater // Optional - can be nil
}

// BindingState is a configured binding and whether its hotkey is grabbed.
type BindingState struct {
	Binding config.Binding
	Hotkey  hotkey.Hotkey
	Active  bool
	Err     error
}

type entry struct {
	binding config.Binding
	active  bool
	err     error
}

// App keeps the listener's registrations in line with the configured
// bindings. Hotkey callbacks only submit to the dispatcher and never take
// the app lock, since the lock is held while waiting on the listener.
type App struct {
	listener Listener
	dispatch Dispatcher
	log      zerolog.Logger
	status   StatusUpdater

	mu       sync.Mutex
	cfg      *config.Config
	bindings map[hotkey.Hotkey]*entry
	paused   bool
	shutdown bool
}

func New(cfg Config) *App {
	c := cfg.Config
	if c == nil {
		c = config.Default()
	}
	return &App{
		listener: cfg.Listener,
		dispatch: cfg.Dispatcher,
		cfg:      c,
		log:      cfg.Logger,
		status:   cfg.StatusUpdater,
		bindings: make(map[hotkey.Hotkey]*entry),
	}
}

// Start registers every configured binding. A binding that fails to
// register stays listed as inactive; the failures are returned together.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	var errs []error
	for _, b := range a.cfg.Bindings {
		if err := a.addLocked(b); err != nil {
			errs = append(errs, err)
		}
	}
	a.publishLocked(errs)
	a.log.Info().Int("bindings", len(a.bindings)).Int("failed", len(errs)).Msg("Hotkeys registered")
	return errors.Join(errs...)
}

// Bind validates b and registers its hotkey. Unlike Start, a binding that
// cannot be registered is not kept. While paused the binding is stored and
// registered on Resume.
func (a *App) Bind(b config.Binding) error {
	if err := b.Validate(); err != nil {
		return fmt.Errorf("%s: %w", b.Label(), err)
	}
	hk := hotkey.MustParse(b.Hotkey)

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.shutdown {
		return fmt.Errorf("%s: app is shut down", b.Label())
	}
	if prev, ok := a.bindings[hk]; ok {
		return fmt.Errorf("%s: hotkey %s is already bound by %s", b.Label(), hk, prev.binding.Label())
	}

	e := &entry{binding: b}
	if !a.paused {
		if err := a.listener.Register(hk, a.trigger(b)); err != nil {
			return fmt.Errorf("%s: %w", b.Label(), err)
		}
		e.active = true
	}
	a.bindings[hk] = e
	a.log.Info().Str("binding", b.Label()).Stringer("hotkey", hk).Msg("Bound hotkey")
	a.publishLocked(nil)
	return nil
}

// Unbind releases the binding for spec ("ctrl+alt+p").
func (a *App) Unbind(spec string) error {
	hk, err := hotkey.Parse(spec)
	if err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if _, ok := a.bindings[hk]; !ok {
		return fmt.Errorf("%s: %w", hk, hotkey.ErrNotRegistered)
	}
	if err := a.removeLocked(hk); err != nil {
		return err
	}
	a.publishLocked(nil)
	return nil
}

// Reload moves the registrations to cfg. Bindings whose hotkey disappeared
// or whose definition changed are released; new and changed ones are
// registered. Unchanged bindings keep their grab.
//
// A binding that cannot be released keeps firing its old action, so the
// applied config keeps its old definition and the next Reload retries it.
func (a *App) Reload(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.shutdown {
		return errors.New("app is shut down")
	}

	want := make(map[hotkey.Hotkey]config.Binding, len(cfg.Bindings))
	for _, b := range cfg.Bindings {
		want[hotkey.MustParse(b.Hotkey)] = b
	}

	var errs []error
	stuck := make(map[hotkey.Hotkey]config.Binding)
	for hk, e := range a.bindings {
		if b, ok := want[hk]; ok && sameBinding(b, e.binding) && (e.active || a.paused) {
			e.err = nil
			continue
		}
		if err := a.removeLocked(hk); err != nil {
			e.err = err
			stuck[hk] = e.binding
			errs = append(errs, err)
		}
	}
	added := 0
	for _, b := range cfg.Bindings {
		if _, ok := a.bindings[hotkey.MustParse(b.Hotkey)]; ok {
			continue
		}
		added++
		if err := a.addLocked(b); err != nil {
			errs = append(errs, err)
		}
	}

	a.cfg = withStuck(cfg, stuck)
	a.publishLocked(errs)
	a.log.Info().Int("bindings", len(a.bindings)).Int("registered", added).Int("failed", len(errs)).Msg("Config reloaded")
	return errors.Join(errs...)
}

// ReloadFile reads the config file again and applies it.
func (a *App) ReloadFile() error {
	a.mu.Lock()
	path := a.cfg.Path()
	a.mu.Unlock()

	cfg, err := config.Load(path)
	if err != nil {
		a.log.Error().Err(err).Str("path", path).Msg("Failed to load config")
		return err
	}
	return a.Reload(cfg)
}

// Pause releases every grab while keeping the bindings.
func (a *App) Pause() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.paused || a.shutdown {
		return nil
	}
	var errs []error
	for hk, e := range a.bindings {
		if !e.active {
			continue
		}
		if err := a.listener.Unregister(hk); err != nil && !errors.Is(err, hotkey.ErrNotRegistered) {
			errs = append(errs, fmt.Errorf("%s: %w", e.binding.Label(), err))
			continue
		}
		e.active = false
	}
	a.paused = true
	a.log.Info().Msg("Hotkeys paused")
	a.publishLocked(errs)
	return errors.Join(errs...)
}

// Resume registers every binding again after Pause.
func (a *App) Resume() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.paused || a.shutdown {
		return nil
	}
	a.paused = false
	var errs []error
	for hk, e := range a.bindings {
		if e.active {
			continue
		}
		if err := a.registerLocked(hk, e); err != nil {
			errs = append(errs, err)
		}
	}
	a.log.Info().Msg("Hotkeys resumed")
	a.publishLocked(errs)
	return errors.Join(errs...)
}

// TogglePause pauses or resumes depending on the current state.
func (a *App) TogglePause() error {
	if a.IsPaused() {
		return a.Resume()
	}
	return a.Pause()
}

func (a *App) IsPaused() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.paused
}

// Bindings lists the bindings sorted by label.
func (a *App) Bindings() []BindingState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.statesLocked()
}

// Shutdown closes the listener, which releases every grab, and stops the
// dispatcher within ctx.
func (a *App) Shutdown(ctx context.Context) error {
	a.mu.Lock()
	if a.shutdown {
		a.mu.Unlock()
		return nil
	}
	a.shutdown = true
	for _, e := range a.bindings {
		e.active = false
	}
	a.mu.Unlock()

	var errs []error
	if err := a.listener.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close listener: %w", err))
	}
	if err := a.dispatch.Stop(ctx); err != nil {
		errs = append(errs, fmt.Errorf("stop dispatcher: %w", err))
	}
	return errors.Join(errs...)
}

func (a *App) addLocked(b config.Binding) error {
	hk, err := hotkey.Parse(b.Hotkey)
	if err != nil {
		return fmt.Errorf("%s: %w", b.Label(), err)
	}
	e := &entry{binding: b}
	a.bindings[hk] = e
	if a.paused {
		return nil
	}
	return a.registerLocked(hk, e)
}

func (a *App) registerLocked(hk hotkey.Hotkey, e *entry) error {
	if err := a.listener.Register(hk, a.trigger(e.binding)); err != nil {
		e.active, e.err = false, err
		a.log.Error().Err(err).Str("binding", e.binding.Label()).Msg("Failed to register hotkey")
		return fmt.Errorf("%s: %w", e.binding.Label(), err)
	}
	e.active, e.err = true, nil
	return nil
}

func (a *App) removeLocked(hk hotkey.Hotkey) error {
	e := a.bindings[hk]
	if e.active {
		if err := a.listener.Unregister(hk); err != nil && !errors.Is(err, hotkey.ErrNotRegistered) {
			return fmt.Errorf("%s: %w", e.binding.Label(), err)
		}
	}
	delete(a.bindings, hk)
	a.log.Info().Str("binding", e.binding.Label()).Stringer("hotkey", hk).Msg("Unbound hotkey")
	return nil
}

// trigger returns the callback run on the hotkey worker for b.
func (a *App) trigger(b config.Binding) hotkey.Callback {
	return func() {
		a.log.Debug().Str("binding", b.Label()).Msg("Hotkey pressed")
		a.dispatch.Submit(b)
	}
}

func (a *App) statesLocked() []BindingState {
	states := make([]BindingState, 0, len(a.bindings))
	for hk, e := range a.bindings {
		states = append(states, BindingState{Binding: e.binding, Hotkey: hk, Active: e.active, Err: e.err})
	}
	sort.Slice(states, func(i, j int) bool {
		return states[i].Binding.Label() < states[j].Binding.Label()
	})
	return states
}

func (a *App) publishLocked(errs []error) {
	if a.status == nil {
		return
	}
	a.status.SetBindings(a.statesLocked())
	switch {
	case len(errs) > 0:
		a.status.SetError()
	case a.paused:
		a.status.SetPaused()
	default:
		a.status.SetIdle()
	}
}

// withStuck returns cfg with the bindings in stuck in place of the
// definitions cfg has for the same hotkeys.
func withStuck(cfg *config.Config, stuck map[hotkey.Hotkey]config.Binding) *config.Config {
	if len(stuck) == 0 {
		return cfg
	}
	applied := *cfg
	applied.Bindings = make([]config.Binding, 0, len(cfg.Bindings)+len(stuck))
	seen := make(map[hotkey.Hotkey]bool, len(stuck))
	for _, b := range cfg.Bindings {
		hk := hotkey.MustParse(b.Hotkey)
		if old, ok := stuck[hk]; ok {
			b = old
			seen[hk] = true
		}
		applied.Bindings = append(applied.Bindings, b)
	}
	for hk, b := range stuck {
		if !seen[hk] {
			applied.Bindings = append(applied.Bindings, b)
		}
	}
	return &applied
}

func sameBinding(x, y config.Binding) bool {
	if x.Name != y.Name || x.Hotkey != y.Hotkey || x.Action != y.Action ||
		x.Text != y.Text || x.Timeout != y.Timeout || len(x.Command) != len(y.Command) {
		return false
	}
	for i := range x.Command {
		if x.Command[i] != y.Command[i] {
			return false
		}
	}
	return true
}
