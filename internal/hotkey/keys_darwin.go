//go:build darwin

package hotkey

import xhotkey "golang.design/x/hotkey"

// Carbon modifier masks. Super is the Command key; AltGr is Option.
const (
	ModAlt     = Modifier(xhotkey.ModOption)
	ModAltGr   = Modifier(xhotkey.ModOption)
	ModControl = Modifier(xhotkey.ModCtrl)
	ModShift   = Modifier(xhotkey.ModShift)
	ModSuper   = Modifier(xhotkey.ModCmd)
)

// Carbon virtual key codes. Keys without a Carbon code are keyUnavailable.
const (
	KeyBackspace   Key = 0x33
	KeyTab             = Key(xhotkey.KeyTab)
	KeyEnter           = Key(xhotkey.KeyReturn)
	KeyCapsLock    Key = 0x39
	KeyEscape          = Key(xhotkey.KeyEscape)
	KeySpace           = Key(xhotkey.KeySpace)
	KeyPageUp      Key = 0x74
	KeyPageDown    Key = 0x79
	KeyEnd         Key = 0x77
	KeyHome        Key = 0x73
	KeyLeft        Key = 0x7B
	KeyRight       Key = 0x7C
	KeyDown        Key = 0x7D
	KeyUp          Key = 0x7E
	KeyPrintScreen     = keyUnavailable
	KeyClear       Key = 0x47
	KeyInsert          = keyUnavailable
	KeyDelete      Key = 0x75
	KeyScrollLock      = keyUnavailable
	KeyHelp        Key = 0x72
	KeyNumLock         = keyUnavailable

	KeyVolumeMute     Key = 0x4A
	KeyVolumeDown     Key = 0x49
	KeyVolumeUp       Key = 0x48
	KeyMediaNext          = keyUnavailable
	KeyMediaPrev          = keyUnavailable
	KeyMediaStop          = keyUnavailable
	KeyMediaPlayPause     = keyUnavailable
	KeyLaunchMail         = keyUnavailable

	KeyF1  = Key(xhotkey.KeyF1)
	KeyF2  = Key(xhotkey.KeyF2)
	KeyF3  = Key(xhotkey.KeyF3)
	KeyF4  = Key(xhotkey.KeyF4)
	KeyF5  = Key(xhotkey.KeyF5)
	KeyF6  = Key(xhotkey.KeyF6)
	KeyF7  = Key(xhotkey.KeyF7)
	KeyF8  = Key(xhotkey.KeyF8)
	KeyF9  = Key(xhotkey.KeyF9)
	KeyF10 = Key(xhotkey.KeyF10)
	KeyF11 = Key(xhotkey.KeyF11)
	KeyF12 = Key(xhotkey.KeyF12)

	KeyNumpadAdd      Key = 0x45
	KeyNumpadSubtract Key = 0x4E
	KeyNumpadMultiply Key = 0x43
	KeyNumpadDivide   Key = 0x4B
	KeyNumpadDecimal  Key = 0x41
	KeyNumpad0        Key = 0x52
	KeyNumpad1        Key = 0x53
	KeyNumpad2        Key = 0x54
	KeyNumpad3        Key = 0x55
	KeyNumpad4        Key = 0x56
	KeyNumpad5        Key = 0x57
	KeyNumpad6        Key = 0x58
	KeyNumpad7        Key = 0x59
	KeyNumpad8        Key = 0x5B
	KeyNumpad9        Key = 0x5C

	Key0 = Key(xhotkey.Key0)
	Key1 = Key(xhotkey.Key1)
	Key2 = Key(xhotkey.Key2)
	Key3 = Key(xhotkey.Key3)
	Key4 = Key(xhotkey.Key4)
	Key5 = Key(xhotkey.Key5)
	Key6 = Key(xhotkey.Key6)
	Key7 = Key(xhotkey.Key7)
	Key8 = Key(xhotkey.Key8)
	Key9 = Key(xhotkey.Key9)

	KeyA = Key(xhotkey.KeyA)
	KeyB = Key(xhotkey.KeyB)
	KeyC = Key(xhotkey.KeyC)
	KeyD = Key(xhotkey.KeyD)
	KeyE = Key(xhotkey.KeyE)
	KeyF = Key(xhotkey.KeyF)
	KeyG = Key(xhotkey.KeyG)
	KeyH = Key(xhotkey.KeyH)
	KeyI = Key(xhotkey.KeyI)
	KeyJ = Key(xhotkey.KeyJ)
	KeyK = Key(xhotkey.KeyK)
	KeyL = Key(xhotkey.KeyL)
	KeyM = Key(xhotkey.KeyM)
	KeyN = Key(xhotkey.KeyN)
	KeyO = Key(xhotkey.KeyO)
	KeyP = Key(xhotkey.KeyP)
	KeyQ = Key(xhotkey.KeyQ)
	KeyR = Key(xhotkey.KeyR)
	KeyS = Key(xhotkey.KeyS)
	KeyT = Key(xhotkey.KeyT)
	KeyU = Key(xhotkey.KeyU)
	KeyV = Key(xhotkey.KeyV)
	KeyW = Key(xhotkey.KeyW)
	KeyX = Key(xhotkey.KeyX)
	KeyY = Key(xhotkey.KeyY)
	KeyZ = Key(xhotkey.KeyZ)

	KeyEqual        Key = 0x18
	KeyMinus        Key = 0x1B
	KeyQuote        Key = 0x27
	KeyComma        Key = 0x2B
	KeyPeriod       Key = 0x2F
	KeySemicolon    Key = 0x29
	KeySlash        Key = 0x2C
	KeyBackquote    Key = 0x32
	KeyLeftBracket  Key = 0x21
	KeyBackslash    Key = 0x2A
	KeyRightBracket Key = 0x1E
)
