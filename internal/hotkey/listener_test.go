package hotkey

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

const testTimeout = 2 * time.Second

func newTestListener(t *testing.T) (*Listener, *FakeBackend) {
	t.Helper()
	fake := NewFakeBackend()
	l, err := NewListener(
		WithBackend(fake),
		WithLogger(zerolog.Nop()),
		WithPollInterval(time.Millisecond),
	)
	if err != nil {
		t.Fatalf("NewListener() error = %v", err)
	}
	t.Cleanup(func() { l.Close() })
	return l, fake
}

func waitFired(t *testing.T, ch <-chan struct{}, what string) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(testTimeout):
		t.Fatalf("timed out waiting for %s", what)
	}
}

func notify(ch chan struct{}) Callback {
	return func() {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

func TestRegisterScenarios(t *testing.T) {
	tests := []struct {
		name string
		hk   Hotkey
	}{
		{name: "alt+a", hk: New(ModAlt, KeyA)},
		{name: "ctrl+b", hk: New(ModControl, KeyB)},
		{name: "ctrl+super+alt+p", hk: New(ModControl|ModSuper|ModAlt, KeyP)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, fake := newTestListener(t)

			if err := l.Register(tt.hk, func() {}); err != nil {
				t.Fatalf("Register(%s) error = %v", tt.hk, err)
			}
			if !l.IsRegistered(tt.hk) {
				t.Errorf("IsRegistered(%s) = false after Register", tt.hk)
			}
			if got := fake.Grabbed(); len(got) != 1 || got[0] != tt.hk {
				t.Errorf("backend grabs = %v, want [%s]", got, tt.hk)
			}

			if err := l.Unregister(tt.hk); err != nil {
				t.Fatalf("Unregister(%s) error = %v", tt.hk, err)
			}
			if l.IsRegistered(tt.hk) {
				t.Errorf("IsRegistered(%s) = true after Unregister", tt.hk)
			}
			if got := fake.Grabbed(); len(got) != 0 {
				t.Errorf("backend grabs = %v after Unregister, want none", got)
			}
		})
	}
}

func TestRegisterTwoThenUnregisterOne(t *testing.T) {
	l, _ := newTestListener(t)
	altA := New(ModAlt, KeyA)
	ctrlB := New(ModControl, KeyB)

	if err := l.Register(altA, func() {}); err != nil {
		t.Fatalf("Register(%s) error = %v", altA, err)
	}
	if n := len(l.Hotkeys()); n != 1 {
		t.Fatalf("Hotkeys() has %d entries, want 1", n)
	}
	if err := l.Register(ctrlB, func() {}); err != nil {
		t.Fatalf("Register(%s) error = %v", ctrlB, err)
	}
	if got := l.Hotkeys(); len(got) != 2 || !l.IsRegistered(altA) || !l.IsRegistered(ctrlB) {
		t.Fatalf("Hotkeys() = %v, want both %s and %s", got, altA, ctrlB)
	}

	if err := l.Unregister(altA); err != nil {
		t.Fatalf("Unregister(%s) error = %v", altA, err)
	}
	got := l.Hotkeys()
	if len(got) != 1 || got[0] != ctrlB {
		t.Errorf("Hotkeys() = %v, want [%s]", got, ctrlB)
	}
}

func TestRegisterDuplicate(t *testing.T) {
	l, fake := newTestListener(t)
	hk := New(ModAlt, KeyA)

	if err := l.Register(hk, func() {}); err != nil {
		t.Fatalf("first Register error = %v", err)
	}

	// A failing grab would surface as ErrBackend if the worker were asked.
	fake.FailNextGrab(FakeBadValue)
	err := l.Register(New(ModAlt, KeyA), func() {})
	if !errors.Is(err, ErrAlreadyRegistered) {
		t.Fatalf("second Register error = %v, want ErrAlreadyRegistered", err)
	}
	var hkErr *Error
	if !errors.As(err, &hkErr) || hkErr.Hotkey != hk {
		t.Errorf("error hotkey = %v, want %s", hkErr, hk)
	}
	if n := len(l.Hotkeys()); n != 1 {
		t.Errorf("Hotkeys() has %d entries, want 1", n)
	}
}

func TestUnregisterNotRegistered(t *testing.T) {
	l, _ := newTestListener(t)

	err := l.Unregister(New(ModAlt, KeyA))
	if !errors.Is(err, ErrNotRegistered) {
		t.Fatalf("Unregister error = %v, want ErrNotRegistered", err)
	}
	if n := len(l.Hotkeys()); n != 0 {
		t.Errorf("Hotkeys() has %d entries, want 0", n)
	}
}

func TestRegisterAgainAfterUnregister(t *testing.T) {
	l, _ := newTestListener(t)
	hk := New(ModControl, KeyB)

	for i := 0; i < 3; i++ {
		if err := l.Register(hk, func() {}); err != nil {
			t.Fatalf("round %d: Register error = %v", i, err)
		}
		if err := l.Unregister(hk); err != nil {
			t.Fatalf("round %d: Unregister error = %v", i, err)
		}
	}
	if l.IsRegistered(hk) {
		t.Error("hotkey still registered after final Unregister")
	}
}

func TestModifiersAreExact(t *testing.T) {
	l, _ := newTestListener(t)

	if err := l.Register(New(ModControl, KeyP), func() {}); err != nil {
		t.Fatalf("Register(ctrl+p) error = %v", err)
	}
	if err := l.Register(New(ModControl|ModShift, KeyP), func() {}); err != nil {
		t.Fatalf("Register(ctrl+shift+p) error = %v", err)
	}
	if l.IsRegistered(New(ModShift, KeyP)) {
		t.Error("shift+p reported as registered")
	}
	if n := len(l.Hotkeys()); n != 2 {
		t.Errorf("Hotkeys() has %d entries, want 2", n)
	}
}

func TestRegisterBackendFailure(t *testing.T) {
	l, fake := newTestListener(t)
	hk := New(ModAlt, KeyA)

	fake.FailNextGrab(FakeBadAccess)
	err := l.Register(hk, func() {})
	if !errors.Is(err, ErrBackend) {
		t.Fatalf("Register error = %v, want ErrBackend", err)
	}
	var hkErr *Error
	if !errors.As(err, &hkErr) {
		t.Fatalf("error %T is not *Error", err)
	}
	if hkErr.Code != FakeBadAccess {
		t.Errorf("error code = %d, want %d", hkErr.Code, FakeBadAccess)
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Op != "GrabKey" {
		t.Errorf("error does not wrap the native failure: %v", err)
	}
	if l.IsRegistered(hk) {
		t.Error("failed Register left an entry in the registry")
	}

	// The failure is not sticky.
	if err := l.Register(hk, func() {}); err != nil {
		t.Errorf("Register after failure error = %v", err)
	}
}

func TestRegisterHeldByAnotherClient(t *testing.T) {
	fake := NewFakeBackend()
	first, err := NewListener(WithBackend(fake), WithPollInterval(time.Millisecond))
	if err != nil {
		t.Fatalf("NewListener() error = %v", err)
	}
	defer first.Close()
	second, err := NewListener(WithBackend(fake), WithPollInterval(time.Millisecond))
	if err != nil {
		t.Fatalf("NewListener() error = %v", err)
	}
	defer second.Close()

	hk := New(ModControl|ModAlt, KeyP)
	if err := first.Register(hk, func() {}); err != nil {
		t.Fatalf("first Register error = %v", err)
	}
	err = second.Register(hk, func() {})
	var hkErr *Error
	if !errors.As(err, &hkErr) || hkErr.Kind != KindBackend || hkErr.Code != FakeBadAccess {
		t.Fatalf("second Register error = %v, want backend error %d", err, FakeBadAccess)
	}
}

func TestUnregisterBackendFailureRestoresEntry(t *testing.T) {
	l, fake := newTestListener(t)
	hk := New(ModControl, KeyB)
	fired := make(chan struct{}, 1)

	if err := l.Register(hk, notify(fired)); err != nil {
		t.Fatalf("Register error = %v", err)
	}

	fake.FailNextUngrab(FakeBadValue)
	err := l.Unregister(hk)
	var hkErr *Error
	if !errors.As(err, &hkErr) || hkErr.Kind != KindBackend || hkErr.Code != FakeBadValue {
		t.Fatalf("Unregister error = %v, want backend error %d", err, FakeBadValue)
	}
	if !l.IsRegistered(hk) {
		t.Fatal("entry not restored after failed Unregister")
	}

	// The restored callback still fires.
	fake.Press(hk)
	waitFired(t, fired, "restored callback")

	if err := l.Unregister(hk); err != nil {
		t.Errorf("second Unregister error = %v", err)
	}
}

func TestCallbackFiresOnTrigger(t *testing.T) {
	l, fake := newTestListener(t)
	alt := New(ModAlt, KeyA)
	ctrl := New(ModControl, KeyB)
	altFired := make(chan struct{}, 1)
	ctrlFired := make(chan struct{}, 1)

	if err := l.Register(alt, notify(altFired)); err != nil {
		t.Fatalf("Register(%s) error = %v", alt, err)
	}
	if err := l.Register(ctrl, notify(ctrlFired)); err != nil {
		t.Fatalf("Register(%s) error = %v", ctrl, err)
	}

	if !fake.Press(ctrl) {
		t.Fatalf("Press(%s) found no grab", ctrl)
	}
	waitFired(t, ctrlFired, "ctrl+b callback")
	select {
	case <-altFired:
		t.Error("alt+a callback fired for ctrl+b")
	default:
	}

	fake.Press(alt)
	waitFired(t, altFired, "alt+a callback")
}

func TestCallbackNotFiredAfterUnregister(t *testing.T) {
	l, fake := newTestListener(t)
	hk := New(ModAlt, KeyA)
	var mu sync.Mutex
	calls := 0

	if err := l.Register(hk, func() {
		mu.Lock()
		calls++
		mu.Unlock()
	}); err != nil {
		t.Fatalf("Register error = %v", err)
	}
	if err := l.Unregister(hk); err != nil {
		t.Fatalf("Unregister error = %v", err)
	}
	if fake.Press(hk) {
		t.Error("Press found a grab after Unregister")
	}

	time.Sleep(20 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	if calls != 0 {
		t.Errorf("callback ran %d times after Unregister", calls)
	}
}

func TestCallbackPanicDoesNotStopWorker(t *testing.T) {
	l, fake := newTestListener(t)
	bad := New(ModAlt, KeyA)
	good := New(ModControl, KeyB)
	fired := make(chan struct{}, 1)

	if err := l.Register(bad, func() { panic("boom") }); err != nil {
		t.Fatalf("Register(%s) error = %v", bad, err)
	}
	if err := l.Register(good, notify(fired)); err != nil {
		t.Fatalf("Register(%s) error = %v", good, err)
	}

	fake.Press(bad)
	fake.Press(good)
	waitFired(t, fired, "callback after panic")

	if err := l.Unregister(bad); err != nil {
		t.Errorf("Unregister after panic error = %v", err)
	}
}

func TestPollErrorIsTolerated(t *testing.T) {
	l, fake := newTestListener(t)
	hk := New(ModControl, KeyB)
	fired := make(chan struct{}, 1)

	if err := l.Register(hk, notify(fired)); err != nil {
		t.Fatalf("Register error = %v", err)
	}
	fake.FailNextPoll(errors.New("connection hiccup"))
	fake.Press(hk)
	waitFired(t, fired, "callback after poll error")
}

func TestNilCallback(t *testing.T) {
	l, fake := newTestListener(t)

	err := l.Register(New(ModAlt, KeyA), nil)
	if !errors.Is(err, ErrNilCallback) {
		t.Fatalf("Register(nil) error = %v, want ErrNilCallback", err)
	}
	if got := fake.Grabbed(); len(got) != 0 {
		t.Errorf("backend grabs = %v, want none", got)
	}
}

func TestNewListenerOpenFailure(t *testing.T) {
	fake := NewFakeBackend()
	openErr := errors.New("cannot open display")
	fake.FailOpen(openErr)

	l, err := NewListener(WithBackend(fake))
	if err == nil {
		l.Close()
		t.Fatal("NewListener succeeded with a failing backend")
	}
	if !errors.Is(err, openErr) {
		t.Errorf("error = %v, want it to wrap %v", err, openErr)
	}
}

func TestCloseStopsWorker(t *testing.T) {
	l, fake := newTestListener(t)
	hk := New(ModAlt, KeyA)

	if err := l.Register(hk, func() {}); err != nil {
		t.Fatalf("Register error = %v", err)
	}
	if err := l.Close(); err != nil {
		t.Fatalf("Close error = %v", err)
	}
	if err := l.Close(); err != nil {
		t.Errorf("second Close error = %v", err)
	}

	select {
	case <-l.Done():
	case <-time.After(testTimeout):
		t.Fatal("worker did not exit after Close")
	}

	if !fake.Closed() {
		t.Error("backend not closed by the worker")
	}
	if n := len(l.Hotkeys()); n != 0 {
		t.Errorf("Hotkeys() has %d entries after Close, want 0", n)
	}
	if err := l.Register(New(ModControl, KeyB), func() {}); !errors.Is(err, ErrChannel) {
		t.Errorf("Register after Close error = %v, want ErrChannel", err)
	}
	if err := l.Unregister(hk); !errors.Is(err, ErrChannel) {
		t.Errorf("Unregister after Close error = %v, want ErrChannel", err)
	}
}

// lockMaskBackend derives ids from the combination with the 0x2 modifier
// bit dropped, so two distinct hotkeys can share one native grab.
type lockMaskBackend struct {
	*FakeBackend

	mu      sync.Mutex
	ungrabs int
}

func (b *lockMaskBackend) Grab(mods Modifier, key Key) (NativeID, error) {
	if _, err := b.FakeBackend.Grab(mods, key); err != nil {
		return NativeID{}, err
	}
	return NativeID{Code: uint32(key), Mods: uint32(mods &^ 0x2)}, nil
}

func (b *lockMaskBackend) Ungrab(NativeID) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.ungrabs++
	return nil
}

func TestRegisterSharedNativeIDKeepsFirst(t *testing.T) {
	backend := &lockMaskBackend{FakeBackend: NewFakeBackend()}
	l, err := NewListener(WithBackend(backend), WithLogger(zerolog.Nop()), WithPollInterval(time.Millisecond))
	if err != nil {
		t.Fatalf("NewListener() error = %v", err)
	}
	defer l.Close()

	first := New(ModControl, KeyA)
	second := New(ModControl|Modifier(0x2), KeyA)
	if err := l.Register(first, func() {}); err != nil {
		t.Fatalf("Register(%s) error = %v", first, err)
	}

	err = l.Register(second, func() {})
	if !errors.Is(err, ErrAlreadyRegistered) {
		t.Fatalf("Register(%s) error = %v, want ErrAlreadyRegistered", second, err)
	}
	if !l.IsRegistered(first) {
		t.Errorf("%s was evicted by %s", first, second)
	}
	if l.IsRegistered(second) {
		t.Errorf("%s registered despite sharing a native id", second)
	}
	if got := l.Hotkeys(); len(got) != 1 {
		t.Errorf("Hotkeys() = %v, want only %s", got, first)
	}

	backend.mu.Lock()
	ungrabs := backend.ungrabs
	backend.mu.Unlock()
	if ungrabs != 0 {
		t.Errorf("shared grab released %d times, want 0", ungrabs)
	}
}

func TestCloseDuringRegisterLeavesRegistryEmpty(t *testing.T) {
	l := &Listener{
		registry: NewRegistry(),
		log:      zerolog.Nop(),
		cmds:     make(chan command, queueSize),
		resps:    make(chan response, queueSize),
		done:     make(chan struct{}),
	}
	go func() {
		cmd := <-l.cmds
		l.Close()
		l.resps <- response{kind: cmd.kind, seq: cmd.seq, id: NativeID{Code: 1}}
	}()

	hk := New(ModAlt, KeyA)
	if err := l.Register(hk, func() {}); !errors.Is(err, ErrChannel) {
		t.Fatalf("Register error = %v, want ErrChannel", err)
	}
	if n := len(l.Hotkeys()); n != 0 {
		t.Errorf("Hotkeys() has %d entries after Close, want 0", n)
	}
}

func TestConcurrentRegister(t *testing.T) {
	l, _ := newTestListener(t)
	keys := []Key{KeyA, KeyB, KeyC, KeyD, KeyE, KeyF, KeyG, KeyH}

	var wg sync.WaitGroup
	errs := make(chan error, len(keys))
	for _, k := range keys {
		wg.Add(1)
		go func(k Key) {
			defer wg.Done()
			if err := l.Register(New(ModControl|ModAlt, k), func() {}); err != nil {
				errs <- fmt.Errorf("Register(%s): %w", New(ModControl|ModAlt, k), err)
			}
		}(k)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
	if n := len(l.Hotkeys()); n != len(keys) {
		t.Errorf("Hotkeys() has %d entries, want %d", n, len(keys))
	}
}

func TestMismatchedResponseIsUnknown(t *testing.T) {
	l := &Listener{
		registry: NewRegistry(),
		log:      zerolog.Nop(),
		cmds:     make(chan command, queueSize),
		resps:    make(chan response, queueSize),
		done:     make(chan struct{}),
	}
	go func() {
		cmd := <-l.cmds
		l.resps <- response{kind: cmd.kind, seq: cmd.seq + 1}
	}()

	hk := New(ModAlt, KeyA)
	err := l.Register(hk, func() {})
	if !errors.Is(err, ErrUnknown) {
		t.Fatalf("Register error = %v, want ErrUnknown", err)
	}
	if l.IsRegistered(hk) {
		t.Error("mismatched response left an entry in the registry")
	}
}

func TestWorkerGoneIsChannelError(t *testing.T) {
	done := make(chan struct{})
	close(done)
	l := &Listener{
		registry: NewRegistry(),
		log:      zerolog.Nop(),
		cmds:     make(chan command, queueSize),
		resps:    make(chan response, queueSize),
		done:     done,
	}

	if err := l.Register(New(ModAlt, KeyA), func() {}); !errors.Is(err, ErrChannel) {
		t.Errorf("Register error = %v, want ErrChannel", err)
	}
	if err := l.Unregister(New(ModAlt, KeyA)); !errors.Is(err, ErrChannel) {
		t.Errorf("Unregister error = %v, want ErrChannel", err)
	}
}
