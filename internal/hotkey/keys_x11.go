//go:build !windows && !darwin

package hotkey

import "github.com/jezek/xgb/xproto"

// X11 modifier masks.
const (
	ModAlt     Modifier = xproto.ModMask1
	ModAltGr   Modifier = xproto.ModMask5
	ModControl Modifier = xproto.ModMaskControl
	ModShift   Modifier = xproto.ModMaskShift
	ModSuper   Modifier = xproto.ModMask4
)

// X11 keysyms.
const (
	KeyBackspace   Key = 0xff08
	KeyTab         Key = 0xff09
	KeyEnter       Key = 0xff0d
	KeyCapsLock    Key = 0xffe5
	KeyEscape      Key = 0xff1b
	KeySpace       Key = 0x0020
	KeyPageUp      Key = 0xff55
	KeyPageDown    Key = 0xff56
	KeyEnd         Key = 0xff57
	KeyHome        Key = 0xff50
	KeyLeft        Key = 0xff51
	KeyUp          Key = 0xff52
	KeyRight       Key = 0xff53
	KeyDown        Key = 0xff54
	KeyPrintScreen Key = 0xff61
	KeyClear       Key = 0xff0b
	KeyInsert      Key = 0xff63
	KeyDelete      Key = 0xffff
	KeyScrollLock  Key = 0xff14
	KeyHelp        Key = 0xff6a
	KeyNumLock     Key = 0xff7f

	KeyVolumeMute     Key = 0x1008ff12
	KeyVolumeDown     Key = 0x1008ff11
	KeyVolumeUp       Key = 0x1008ff13
	KeyMediaNext      Key = 0x1008ff17
	KeyMediaPrev      Key = 0x1008ff16
	KeyMediaStop      Key = 0x1008ff15
	KeyMediaPlayPause Key = 0x1008ff14
	KeyLaunchMail     Key = 0x1008ff19

	KeyF1  Key = 0xffbe
	KeyF2  Key = 0xffbf
	KeyF3  Key = 0xffc0
	KeyF4  Key = 0xffc1
	KeyF5  Key = 0xffc2
	KeyF6  Key = 0xffc3
	KeyF7  Key = 0xffc4
	KeyF8  Key = 0xffc5
	KeyF9  Key = 0xffc6
	KeyF10 Key = 0xffc7
	KeyF11 Key = 0xffc8
	KeyF12 Key = 0xffc9

	KeyNumpadAdd      Key = 0xffab
	KeyNumpadSubtract Key = 0xffad
	KeyNumpadMultiply Key = 0xffaa
	KeyNumpadDivide   Key = 0xffaf
	KeyNumpadDecimal  Key = 0xffae
	KeyNumpad0        Key = 0xffb0
	KeyNumpad1        Key = 0xffb1
	KeyNumpad2        Key = 0xffb2
	KeyNumpad3        Key = 0xffb3
	KeyNumpad4        Key = 0xffb4
	KeyNumpad5        Key = 0xffb5
	KeyNumpad6        Key = 0xffb6
	KeyNumpad7        Key = 0xffb7
	KeyNumpad8        Key = 0xffb8
	KeyNumpad9        Key = 0xffb9

	Key0 Key = '0'
	Key1 Key = '1'
	Key2 Key = '2'
	Key3 Key = '3'
	Key4 Key = '4'
	Key5 Key = '5'
	Key6 Key = '6'
	Key7 Key = '7'
	Key8 Key = '8'
	Key9 Key = '9'

	KeyA Key = 'A'
	KeyB Key = 'B'
	KeyC Key = 'C'
	KeyD Key = 'D'
	KeyE Key = 'E'
	KeyF Key = 'F'
	KeyG Key = 'G'
	KeyH Key = 'H'
	KeyI Key = 'I'
	KeyJ Key = 'J'
	KeyK Key = 'K'
	KeyL Key = 'L'
	KeyM Key = 'M'
	KeyN Key = 'N'
	KeyO Key = 'O'
	KeyP Key = 'P'
	KeyQ Key = 'Q'
	KeyR Key = 'R'
	KeyS Key = 'S'
	KeyT Key = 'T'
	KeyU Key = 'U'
	KeyV Key = 'V'
	KeyW Key = 'W'
	KeyX Key = 'X'
	KeyY Key = 'Y'
	KeyZ Key = 'Z'

	KeyEqual        Key = '='
	KeyMinus        Key = '-'
	KeyQuote        Key = '\''
	KeyComma        Key = ','
	KeyPeriod       Key = '.'
	KeySemicolon    Key = ';'
	KeySlash        Key = '/'
	KeyBackquote    Key = '`'
	KeyLeftBracket  Key = '['
	KeyBackslash    Key = '\\'
	KeyRightBracket Key = ']'
)
