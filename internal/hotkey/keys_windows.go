//go:build windows

package hotkey

// RegisterHotKey modifier flags. AltGr is reported by Windows as Ctrl+Alt.
const (
	ModAlt     Modifier = 0x0001
	ModControl Modifier = 0x0002
	ModShift   Modifier = 0x0004
	ModSuper   Modifier = 0x0008
	ModAltGr            = ModControl | ModAlt
)

// Win32 virtual-key codes.
const (
	KeyBackspace   Key = 0x08
	KeyTab         Key = 0x09
	KeyEnter       Key = 0x0D
	KeyCapsLock    Key = 0x14
	KeyEscape      Key = 0x1B
	KeySpace       Key = 0x20
	KeyPageUp      Key = 0x21
	KeyPageDown    Key = 0x22
	KeyEnd         Key = 0x23
	KeyHome        Key = 0x24
	KeyLeft        Key = 0x25
	KeyUp          Key = 0x26
	KeyRight       Key = 0x27
	KeyDown        Key = 0x28
	KeyPrintScreen Key = 0x2C
	KeyClear       Key = 0x0C
	KeyInsert      Key = 0x2D
	KeyDelete      Key = 0x2E
	KeyScrollLock  Key = 0x91
	KeyHelp        Key = 0x2F
	KeyNumLock     Key = 0x90

	KeyVolumeMute     Key = 0xAD
	KeyVolumeDown     Key = 0xAE
	KeyVolumeUp       Key = 0xAF
	KeyMediaNext      Key = 0xB0
	KeyMediaPrev      Key = 0xB1
	KeyMediaStop      Key = 0xB2
	KeyMediaPlayPause Key = 0xB3
	KeyLaunchMail     Key = 0xB4

	KeyF1  Key = 0x70
	KeyF2  Key = 0x71
	KeyF3  Key = 0x72
	KeyF4  Key = 0x73
	KeyF5  Key = 0x74
	KeyF6  Key = 0x75
	KeyF7  Key = 0x76
	KeyF8  Key = 0x77
	KeyF9  Key = 0x78
	KeyF10 Key = 0x79
	KeyF11 Key = 0x7A
	KeyF12 Key = 0x7B

	KeyNumpadAdd      Key = 0x6B
	KeyNumpadSubtract Key = 0x6D
	KeyNumpadMultiply Key = 0x6A
	KeyNumpadDivide   Key = 0x6F
	KeyNumpadDecimal  Key = 0x6E
	KeyNumpad0        Key = 0x60
	KeyNumpad1        Key = 0x61
	KeyNumpad2        Key = 0x62
	KeyNumpad3        Key = 0x63
	KeyNumpad4        Key = 0x64
	KeyNumpad5        Key = 0x65
	KeyNumpad6        Key = 0x66
	KeyNumpad7        Key = 0x67
	KeyNumpad8        Key = 0x68
	KeyNumpad9        Key = 0x69

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

	KeyEqual        Key = 0xBB
	KeyMinus        Key = 0xBD
	KeyQuote        Key = 0xDE
	KeyComma        Key = 0xBC
	KeyPeriod       Key = 0xBE
	KeySemicolon    Key = 0xBA
	KeySlash        Key = 0xBF
	KeyBackquote    Key = 0xC0
	KeyLeftBracket  Key = 0xDB
	KeyBackslash    Key = 0xDC
	KeyRightBracket Key = 0xDD
)
