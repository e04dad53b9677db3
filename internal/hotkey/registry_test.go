package hotkey

import (
	"errors"
	"strings"
	"testing"
)

func TestRegistryInsertLookupRemove(t *testing.T) {
	r := NewRegistry()
	hk := New(ModAlt, KeyA)
	id := NativeID{Code: 38, Mods: 8}
	called := false

	r.Insert(id, hk, func() { called = true })

	got, ok := r.Lookup(hk)
	if !ok || got != id {
		t.Fatalf("Lookup(%s) = %v, %v; want %v, true", hk, got, ok, id)
	}
	cb, ok := r.Callback(id)
	if !ok {
		t.Fatal("Callback(id) not found")
	}
	cb()
	if !called {
		t.Error("stored callback was not the registered one")
	}

	if _, ok := r.Remove(id); !ok {
		t.Fatal("Remove(id) found nothing")
	}
	if _, ok := r.Remove(id); ok {
		t.Error("second Remove(id) reported an entry")
	}
	if _, ok := r.Lookup(hk); ok {
		t.Error("Lookup succeeded after Remove")
	}
	if r.Len() != 0 {
		t.Errorf("Len() = %d, want 0", r.Len())
	}
}

func TestRegistryInsertRejectsTakenID(t *testing.T) {
	r := NewRegistry()
	id := NativeID{Code: 38, Mods: 4}
	first := New(ModControl, KeyA)

	if !r.Insert(id, first, func() {}) {
		t.Fatal("Insert into an empty registry failed")
	}
	if r.Insert(id, New(ModControl|Modifier(0x2), KeyA), func() {}) {
		t.Error("Insert accepted a native id that already has an entry")
	}
	got := r.Hotkeys()
	if len(got) != 1 || got[0] != first {
		t.Errorf("Hotkeys() = %v, want [%s]", got, first)
	}
}

func TestRegistryClose(t *testing.T) {
	r := NewRegistry()
	r.Insert(NativeID{Code: 1}, New(ModAlt, KeyA), func() {})
	r.Insert(NativeID{Code: 2}, New(ModControl, KeyB), func() {})

	if n := len(r.Hotkeys()); n != 2 {
		t.Fatalf("Hotkeys() has %d entries, want 2", n)
	}
	r.Close()
	if r.Len() != 0 {
		t.Errorf("Len() = %d after Close, want 0", r.Len())
	}
	if r.Insert(NativeID{Code: 3}, New(ModShift, KeyC), func() {}) {
		t.Error("Insert succeeded after Close")
	}
	if r.Len() != 0 {
		t.Errorf("Len() = %d after a refused Insert, want 0", r.Len())
	}
}

func TestErrorMatching(t *testing.T) {
	hk := New(ModControl, KeyB)
	err := backendError(hk, &APIError{Op: "GrabKey", Code: FakeBadAccess})

	if !errors.Is(err, ErrBackend) {
		t.Error("backend error does not match ErrBackend")
	}
	if errors.Is(err, ErrChannel) {
		t.Error("backend error matches ErrChannel")
	}
	if err.Code != FakeBadAccess {
		t.Errorf("Code = %d, want %d", err.Code, FakeBadAccess)
	}
	if !strings.Contains(err.Error(), "ctrl+b") {
		t.Errorf("message %q does not name the hotkey", err.Error())
	}

	wrapped := channelError(hk, errWorkerExited)
	if !errors.Is(wrapped, ErrChannel) || !errors.Is(wrapped, errWorkerExited) {
		t.Errorf("channel error %v does not match its kind and cause", wrapped)
	}
	if errors.Is(notRegistered(hk), ErrAlreadyRegistered) {
		t.Error("not-registered error matches ErrAlreadyRegistered")
	}
}
