package hotkey

import (
	"fmt"
	"sort"
	"sync"
)

// keyUnavailable marks keys the platform cannot grab. Grabbing it fails in
// the backend.
const keyUnavailable Key = 0xFFFFFFFF

type namedModifier struct {
	name string
	mod  Modifier
}

// modifierOrder is the rendering order used by Hotkey.String.
var modifierOrder = []namedModifier{
	{"ctrl", ModControl},
	{"alt", ModAlt},
	{"shift", ModShift},
	{"super", ModSuper},
	{"altgr", ModAltGr},
}

var modifierAliases = map[string]Modifier{
	"ctrl":    ModControl,
	"control": ModControl,
	"alt":     ModAlt,
	"option":  ModAlt,
	"shift":   ModShift,
	"super":   ModSuper,
	"win":     ModSuper,
	"cmd":     ModSuper,
	"meta":    ModSuper,
	"altgr":   ModAltGr,
}

// keyNames maps canonical lower-case names to the platform key codes.
var keyNames = map[string]Key{
	"backspace":   KeyBackspace,
	"tab":         KeyTab,
	"enter":       KeyEnter,
	"capslock":    KeyCapsLock,
	"escape":      KeyEscape,
	"space":       KeySpace,
	"pageup":      KeyPageUp,
	"pagedown":    KeyPageDown,
	"end":         KeyEnd,
	"home":        KeyHome,
	"left":        KeyLeft,
	"right":       KeyRight,
	"up":          KeyUp,
	"down":        KeyDown,
	"printscreen": KeyPrintScreen,
	"clear":       KeyClear,
	"insert":      KeyInsert,
	"delete":      KeyDelete,
	"scrolllock":  KeyScrollLock,
	"help":        KeyHelp,
	"numlock":     KeyNumLock,

	"volumemute":     KeyVolumeMute,
	"volumedown":     KeyVolumeDown,
	"volumeup":       KeyVolumeUp,
	"medianext":      KeyMediaNext,
	"mediaprev":      KeyMediaPrev,
	"mediastop":      KeyMediaStop,
	"mediaplaypause": KeyMediaPlayPause,
	"launchmail":     KeyLaunchMail,

	"f1": KeyF1, "f2": KeyF2, "f3": KeyF3, "f4": KeyF4,
	"f5": KeyF5, "f6": KeyF6, "f7": KeyF7, "f8": KeyF8,
	"f9": KeyF9, "f10": KeyF10, "f11": KeyF11, "f12": KeyF12,

	"numpadadd":      KeyNumpadAdd,
	"numpadsubtract": KeyNumpadSubtract,
	"numpadmultiply": KeyNumpadMultiply,
	"numpaddivide":   KeyNumpadDivide,
	"numpaddecimal":  KeyNumpadDecimal,
	"numpad0":        KeyNumpad0,
	"numpad1":        KeyNumpad1,
	"numpad2":        KeyNumpad2,
	"numpad3":        KeyNumpad3,
	"numpad4":        KeyNumpad4,
	"numpad5":        KeyNumpad5,
	"numpad6":        KeyNumpad6,
	"numpad7":        KeyNumpad7,
	"numpad8":        KeyNumpad8,
	"numpad9":        KeyNumpad9,

	"0": Key0, "1": Key1, "2": Key2, "3": Key3, "4": Key4,
	"5": Key5, "6": Key6, "7": Key7, "8": Key8, "9": Key9,

	"a": KeyA, "b": KeyB, "c": KeyC, "d": KeyD, "e": KeyE, "f": KeyF,
	"g": KeyG, "h": KeyH, "i": KeyI, "j": KeyJ, "k": KeyK, "l": KeyL,
	"m": KeyM, "n": KeyN, "o": KeyO, "p": KeyP, "q": KeyQ, "r": KeyR,
	"s": KeyS, "t": KeyT, "u": KeyU, "v": KeyV, "w": KeyW, "x": KeyX,
	"y": KeyY, "z": KeyZ,

	"equal":        KeyEqual,
	"minus":        KeyMinus,
	"quote":        KeyQuote,
	"comma":        KeyComma,
	"period":       KeyPeriod,
	"semicolon":    KeySemicolon,
	"slash":        KeySlash,
	"backquote":    KeyBackquote,
	"leftbracket":  KeyLeftBracket,
	"backslash":    KeyBackslash,
	"rightbracket": KeyRightBracket,
}

var keyAliases = map[string]string{
	"return": "enter",
	"esc":    "escape",
	"del":    "delete",
	"ins":    "insert",
	"pgup":   "pageup",
	"pgdn":   "pagedown",
	"mute":   "volumemute",
	"play":   "mediaplaypause",
	"=":      "equal",
	"-":      "minus",
	"'":      "quote",
	",":      "comma",
	".":      "period",
	";":      "semicolon",
	"/":      "slash",
	"`":      "backquote",
	"grave":  "backquote",
	"[":      "leftbracket",
	"\\":     "backslash",
	"]":      "rightbracket",
}

var (
	keyNamesOnce sync.Once
	namesByKey   map[Key]string
)

// keyName returns the canonical name of k, or its hex code.
func keyName(k Key) string {
	keyNamesOnce.Do(func() {
		names := make([]string, 0, len(keyNames))
		for name := range keyNames {
			names = append(names, name)
		}
		sort.Strings(names)
		namesByKey = make(map[Key]string, len(names))
		for _, name := range names {
			k := keyNames[name]
			if k == keyUnavailable {
				continue
			}
			if _, taken := namesByKey[k]; !taken {
				namesByKey[k] = name
			}
		}
	})
	if name, ok := namesByKey[k]; ok {
		return name
	}
	return fmt.Sprintf("0x%x", uint32(k))
}
