//go:build windows

package hotkey

import (
	"errors"
	"fmt"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32 = windows.NewLazySystemDLL("user32.dll")

	procRegisterHotKey   = user32.NewProc("RegisterHotKey")
	procUnregisterHotKey = user32.NewProc("UnregisterHotKey")
	procPeekMessageW     = user32.NewProc("PeekMessageW")
)

const (
	wmHotkey    = 0x0312
	pmNoRemove  = 0x0000
	pmRemove    = 0x0001
	modNoRepeat = 0x4000

	// Application hotkey ids must lie in 0x0000..0xBFFF.
	minHotkeyID uint32 = 0x0001
	maxHotkeyID uint32 = 0xBFFF
)

type point struct {
	x int32
	y int32
}

// winMsg mirrors the Win32 MSG struct; the layout must not change.
type winMsg struct {
	hWnd     uintptr
	message  uint32
	wParam   uintptr
	lParam   uintptr
	time     uint32
	pt       point
	lPrivate uint32
}

// windowsBackend binds hotkeys to the worker thread's message queue
// (RegisterHotKey with a NULL window).
type windowsBackend struct {
	nextID uint32
	ids    map[uint32]struct{}
}

func newNativeBackend() Backend {
	return &windowsBackend{nextID: minHotkeyID, ids: make(map[uint32]struct{})}
}

func (b *windowsBackend) Open() error {
	if err := user32.Load(); err != nil {
		return fmt.Errorf("user32.dll is unavailable: %w", err)
	}
	// PeekMessageW creates the thread message queue that WM_HOTKEY is
	// posted to. Its return value only says whether a message was waiting.
	var msg winMsg
	procPeekMessageW.Call(uintptr(unsafe.Pointer(&msg)), 0, 0, 0, pmNoRemove)
	return nil
}

func (b *windowsBackend) allocID() (uint32, bool) {
	span := maxHotkeyID - minHotkeyID + 1
	for i := uint32(0); i < span; i++ {
		id := b.nextID
		b.nextID++
		if b.nextID > maxHotkeyID {
			b.nextID = minHotkeyID
		}
		if _, used := b.ids[id]; !used {
			return id, true
		}
	}
	return 0, false
}

func (b *windowsBackend) Grab(mods Modifier, key Key) (NativeID, error) {
	id, ok := b.allocID()
	if !ok {
		return NativeID{}, &APIError{Op: "RegisterHotKey", Err: errors.New("hotkey id range exhausted")}
	}
	r, _, err := procRegisterHotKey.Call(0, uintptr(id), uintptr(mods|modNoRepeat), uintptr(key))
	if r == 0 {
		return NativeID{}, win32Error("RegisterHotKey", err)
	}
	b.ids[id] = struct{}{}
	return NativeID{Code: id}, nil
}

func (b *windowsBackend) Ungrab(id NativeID) error {
	if _, ok := b.ids[id.Code]; !ok {
		return &APIError{Op: "UnregisterHotKey", Code: int(windows.ERROR_HOTKEY_NOT_REGISTERED)}
	}
	r, _, err := procUnregisterHotKey.Call(0, uintptr(id.Code))
	if r == 0 {
		return win32Error("UnregisterHotKey", err)
	}
	delete(b.ids, id.Code)
	return nil
}

func (b *windowsBackend) Poll() (Event, bool, error) {
	var msg winMsg
	r, _, _ := procPeekMessageW.Call(uintptr(unsafe.Pointer(&msg)), 0, wmHotkey, wmHotkey, pmRemove)
	if r == 0 || msg.message != wmHotkey {
		return Event{}, false, nil
	}
	return Event{ID: NativeID{Code: uint32(msg.wParam)}}, true, nil
}

func (b *windowsBackend) Close() error {
	var errs []error
	for id := range b.ids {
		if r, _, err := procUnregisterHotKey.Call(0, uintptr(id)); r == 0 {
			errs = append(errs, win32Error("UnregisterHotKey", err))
		}
		delete(b.ids, id)
	}
	return errors.Join(errs...)
}

func win32Error(op string, err error) *APIError {
	var errno syscall.Errno
	if errors.As(err, &errno) && errno != 0 {
		return &APIError{Op: op, Code: int(errno), Err: err}
	}
	return &APIError{Op: op}
}
