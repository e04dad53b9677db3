//go:build linux || freebsd || openbsd || netbsd

package hotkey

import (
	"fmt"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
	"github.com/jezek/xgbutil"
	"github.com/jezek/xgbutil/keybind"
	"github.com/jezek/xgbutil/xevent"
)

// modBits keeps the eight modifier bits of an event state and drops the
// pointer button bits.
const modBits = 0xff

// lockMods is every modifier keybind grabs alongside a combination, so the
// hotkey still fires with CapsLock or NumLock on.
var lockMods = func() uint16 {
	var m uint16
	for _, mod := range xevent.IgnoreMods {
		m |= mod
	}
	return m
}()

type x11Backend struct {
	xu   *xgbutil.XUtil
	conn *xgb.Conn
	root xproto.Window

	pending    xgb.Event
	pendingErr error
}

func newNativeBackend() Backend {
	return &x11Backend{}
}

func (b *x11Backend) Open() error {
	xu, err := xgbutil.NewConn()
	if err != nil {
		return fmt.Errorf("connect to X server: %w", err)
	}
	b.xu = xu
	b.conn = xu.Conn()
	b.root = xu.RootWin()

	if err := keymapCall("GetKeyboardMapping", func() { keybind.Initialize(xu) }); err != nil {
		b.conn.Close()
		return err
	}

	// Only key releases are needed; grabbed keys are reported to the root.
	err = xproto.ChangeWindowAttributesChecked(b.conn, b.root, xproto.CwEventMask,
		[]uint32{xproto.EventMaskKeyRelease}).Check()
	if err != nil {
		b.conn.Close()
		return x11Error("ChangeWindowAttributes", err)
	}
	return nil
}

// keymapCall runs a keybind mapping query, which panics when the server
// refuses it, and reports the panic as an APIError.
func keymapCall(op string, fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &APIError{Op: op, Err: fmt.Errorf("%v", r)}
		}
	}()
	fn()
	return nil
}

// keycode returns the first keycode producing sym in the current mapping.
func (b *x11Backend) keycode(sym xproto.Keysym) (xproto.Keycode, bool) {
	if name := keybind.KeysymToStr(sym); name != "" {
		if codes := keybind.StrToKeycodes(b.xu, name); len(codes) > 0 {
			return codes[0], true
		}
	}
	// KeysymToStr shortens some names ("slash" to "/") that StrToKeycodes
	// cannot look up again, so scan the mapping directly.
	km := keybind.KeyMapGet(b.xu)
	setup := b.xu.Setup()
	for kc := int(setup.MinKeycode); kc <= int(setup.MaxKeycode); kc++ {
		for col := byte(0); col < km.KeysymsPerKeycode; col++ {
			if keybind.KeysymGet(b.xu, xproto.Keycode(kc), col) == sym {
				return xproto.Keycode(kc), true
			}
		}
	}
	return 0, false
}

// Grab rejects masks carrying lock or pointer bits: those are either grabbed
// implicitly or dropped from the native id, and would let two hotkeys share
// one grab.
func (b *x11Backend) Grab(mods Modifier, key Key) (NativeID, error) {
	if uint32(mods)&^modBits != 0 || uint16(mods)&lockMods != 0 {
		return NativeID{}, &APIError{
			Op:   "GrabKey",
			Code: xproto.BadValue,
			Err:  fmt.Errorf("modifier mask 0x%x includes lock or non-modifier bits", uint32(mods)),
		}
	}
	code, ok := b.keycode(xproto.Keysym(key))
	if !ok {
		return NativeID{}, &APIError{
			Op:   "GrabKey",
			Code: xproto.BadValue,
			Err:  fmt.Errorf("no keycode for keysym 0x%x", uint32(key)),
		}
	}

	base := uint16(mods)
	if err := keybind.GrabChecked(b.xu, b.root, base, code); err != nil {
		keybind.Ungrab(b.xu, b.root, base, code)
		return NativeID{}, x11Error("GrabKey", err)
	}
	return NativeID{Code: uint32(code), Mods: uint32(base)}, nil
}

// Ungrab releases every lock variant. keybind discards the per-request
// errors, so a release never fails here.
func (b *x11Backend) Ungrab(id NativeID) error {
	keybind.Ungrab(b.xu, b.root, uint16(id.Mods), xproto.Keycode(id.Code))
	return nil
}

func (b *x11Backend) Poll() (Event, bool, error) {
	ev, err := b.next()
	if err != nil {
		return Event{}, false, err
	}

	switch e := ev.(type) {
	case xproto.KeyReleaseEvent:
		if b.autoRepeat(e) {
			return Event{}, false, nil
		}
		state := e.State & modBits &^ lockMods
		return Event{ID: NativeID{Code: uint32(e.Detail), Mods: uint32(state)}}, true, nil
	case xproto.MappingNotifyEvent:
		err := keymapCall("GetKeyboardMapping", func() {
			keyMap, modMap := keybind.MapsGet(b.xu)
			keybind.KeyMapSet(b.xu, keyMap)
			keybind.ModMapSet(b.xu, modMap)
		})
		if err != nil {
			return Event{}, false, err
		}
	}
	return Event{}, false, nil
}

func (b *x11Backend) next() (xgb.Event, error) {
	if b.pending != nil || b.pendingErr != nil {
		ev, err := b.pending, b.pendingErr
		b.pending, b.pendingErr = nil, nil
		return ev, err
	}
	ev, xerr := b.conn.PollForEvent()
	if xerr != nil {
		return nil, xerr
	}
	return ev, nil
}

// autoRepeat reports whether release is half of a synthetic release/press
// pair sent while a key is held, so only the final release fires. The
// peeked event is kept for the next Poll when it is not the matching press.
func (b *x11Backend) autoRepeat(release xproto.KeyReleaseEvent) bool {
	next, xerr := b.conn.PollForEvent()
	if xerr != nil {
		b.pendingErr = xerr
		return false
	}
	if next == nil {
		return false
	}
	if press, ok := next.(xproto.KeyPressEvent); ok &&
		press.Detail == release.Detail && press.Time == release.Time {
		return true
	}
	b.pending = next
	return false
}

func (b *x11Backend) Close() error {
	if b.conn == nil {
		return nil
	}
	// Closing the connection releases every grab it holds.
	b.conn.Close()
	b.conn = nil
	return nil
}

func x11Error(op string, err error) *APIError {
	code := 0
	switch err.(type) {
	case xproto.AccessError:
		code = xproto.BadAccess
	case xproto.ValueError:
		code = xproto.BadValue
	case xproto.WindowError:
		code = xproto.BadWindow
	case xproto.MatchError:
		code = xproto.BadMatch
	}
	return &APIError{Op: op, Code: code, Err: err}
}
