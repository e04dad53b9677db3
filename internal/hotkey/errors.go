package hotkey

import (
	"errors"
	"fmt"
)

// ErrorKind classifies listener failures.
type ErrorKind int

const (
	// KindUnknown is a response that does not match the request in flight,
	// or a registry inconsistency.
	KindUnknown ErrorKind = iota
	// KindAlreadyRegistered means an equal hotkey is already registered.
	KindAlreadyRegistered
	// KindNotRegistered means no registered hotkey equals the argument.
	KindNotRegistered
	// KindBackend means the native call reported a failure.
	KindBackend
	// KindChannel means the worker is unreachable.
	KindChannel
)

func (k ErrorKind) String() string {
	switch k {
	case KindAlreadyRegistered:
		return "already registered"
	case KindNotRegistered:
		return "not registered"
	case KindBackend:
		return "backend api error"
	case KindChannel:
		return "channel error"
	default:
		return "unknown error"
	}
}

// Error is returned by every Listener operation that fails.
type Error struct {
	Kind   ErrorKind
	Hotkey Hotkey
	// Code is the native error code for KindBackend.
	Code int
	Err  error

	sentinel bool
}

// Sentinels for errors.Is. Is matches on Kind only.
var (
	ErrAlreadyRegistered = &Error{Kind: KindAlreadyRegistered, sentinel: true}
	ErrNotRegistered     = &Error{Kind: KindNotRegistered, sentinel: true}
	ErrBackend           = &Error{Kind: KindBackend, sentinel: true}
	ErrChannel           = &Error{Kind: KindChannel, sentinel: true}
	ErrUnknown           = &Error{Kind: KindUnknown, sentinel: true}
)

var (
	// ErrNilCallback is returned by Register when the callback is nil.
	ErrNilCallback = errors.New("hotkey: nil callback")
	// ErrUnsupportedPlatform is returned by the native backend on platforms
	// without a global hotkey API.
	ErrUnsupportedPlatform = errors.New("hotkey: global hotkeys are not supported on this platform")

	errListenerClosed       = errors.New("listener closed")
	errWorkerExited         = errors.New("worker exited")
	errRegistryInconsistent = errors.New("registry entry vanished during unregister")
)

func (e *Error) Error() string {
	if e.sentinel {
		return "hotkey: " + e.Kind.String()
	}
	var msg string
	switch e.Kind {
	case KindAlreadyRegistered:
		msg = fmt.Sprintf("hotkey: %s is already registered", e.Hotkey)
	case KindNotRegistered:
		msg = fmt.Sprintf("hotkey: %s is not registered", e.Hotkey)
	case KindBackend:
		msg = fmt.Sprintf("hotkey: %s: backend api error %d", e.Hotkey, e.Code)
	default:
		msg = fmt.Sprintf("hotkey: %s: %s", e.Hotkey, e.Kind)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// APIError is the failure of a single native call.
type APIError struct {
	Op   string
	Code int
	Err  error
}

func (e *APIError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s failed with code %d", e.Op, e.Code)
	}
	return fmt.Sprintf("%s failed with code %d: %v", e.Op, e.Code, e.Err)
}

func (e *APIError) Unwrap() error { return e.Err }

func alreadyRegistered(hk Hotkey) *Error {
	return &Error{Kind: KindAlreadyRegistered, Hotkey: hk}
}

func notRegistered(hk Hotkey) *Error {
	return &Error{Kind: KindNotRegistered, Hotkey: hk}
}

func channelError(hk Hotkey, err error) *Error {
	return &Error{Kind: KindChannel, Hotkey: hk, Err: err}
}

func unknownError(hk Hotkey, err error) *Error {
	return &Error{Kind: KindUnknown, Hotkey: hk, Err: err}
}

func backendError(hk Hotkey, err error) *Error {
	e := &Error{Kind: KindBackend, Hotkey: hk, Err: err}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		e.Code = apiErr.Code
	}
	return e
}
