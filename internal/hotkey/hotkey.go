// Package hotkey registers system-wide key combinations and runs a callback
// when one of them fires, regardless of which window has focus.
//
// A Listener owns a single worker goroutine locked to its OS thread. The
// worker opens the native connection (X11, Win32 or Carbon), performs every
// grab and release on it, and dispatches callbacks. Callers never touch the
// native handle: Register and Unregister send a command to the worker and
// block for its single response.
//
// Callbacks run synchronously on the worker. They must be fast, must not
// block, and must not call Register or Unregister on the same Listener,
// which would deadlock against the worker they are waiting on. Hand slow
// work off to another goroutine.
package hotkey

import (
	"fmt"
	"math/bits"
	"strings"
)

// Modifier is a bitmask of modifier keys. Combine values with |.
type Modifier uint32

// Key is a platform key code: a keysym on X11, a virtual-key code on
// Windows and a Carbon virtual key code on macOS.
type Key uint32

// Hotkey is a modifier mask plus a key code. Two hotkeys are equal when both
// fields match exactly.
type Hotkey struct {
	Modifiers Modifier
	Key       Key
}

// New returns the hotkey for mods and key. No validation is done; invalid
// combinations are reported by the native grab.
func New(mods Modifier, key Key) Hotkey {
	return Hotkey{Modifiers: mods, Key: key}
}

// String renders the hotkey as "ctrl+alt+p".
func (h Hotkey) String() string {
	var parts []string
	rest := h.Modifiers
	for _, m := range modifierOrder {
		if m.mod == 0 || bits.OnesCount32(uint32(m.mod)) != 1 {
			continue
		}
		if rest&m.mod != 0 {
			parts = append(parts, m.name)
			rest &^= m.mod
		}
	}
	if rest != 0 {
		parts = append(parts, fmt.Sprintf("0x%x", uint32(rest)))
	}
	parts = append(parts, keyName(h.Key))
	return strings.Join(parts, "+")
}

// NativeID identifies an active native grab. Its meaning is backend specific
// (keycode and modifier state on X11, hotkey id on Windows and macOS) and it
// is only valid while the grab is held.
type NativeID struct {
	Code uint32
	Mods uint32
}

// Event is a trigger reported by a backend for an active grab.
type Event struct {
	ID NativeID
}

// Callback is the work run when a hotkey fires.
type Callback func()
