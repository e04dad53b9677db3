//go:build !linux && !freebsd && !openbsd && !netbsd && !windows && !darwin

package hotkey

type unsupportedBackend struct{}

func newNativeBackend() Backend {
	return unsupportedBackend{}
}

func (unsupportedBackend) Open() error { return ErrUnsupportedPlatform }

func (unsupportedBackend) Grab(Modifier, Key) (NativeID, error) {
	return NativeID{}, ErrUnsupportedPlatform
}

func (unsupportedBackend) Ungrab(NativeID) error { return ErrUnsupportedPlatform }

func (unsupportedBackend) Poll() (Event, bool, error) { return Event{}, false, nil }

func (unsupportedBackend) Close() error { return nil }
