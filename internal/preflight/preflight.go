// Package preflight checks that the session can deliver global hotkeys
// before the listener is started.
package preflight

import (
	"errors"
	"os"
	"runtime"

	"github.com/rs/zerolog"
)

// DisplayServer represents the type of display server in use
type DisplayServer int

const (
	DisplayServerUnknown DisplayServer = iota
	DisplayServerWindows
	DisplayServerMacOS
	DisplayServerX11
	DisplayServerWayland
)

func (ds DisplayServer) String() string {
	switch ds {
	case DisplayServerWindows:
		return "Windows"
	case DisplayServerMacOS:
		return "macOS"
	case DisplayServerX11:
		return "X11"
	case DisplayServerWayland:
		return "Wayland"
	default:
		return "Unknown"
	}
}

var (
	// ErrNoDisplay means no X server is reachable from this session.
	ErrNoDisplay = errors.New("no display: DISPLAY is not set")
	// ErrWaylandOnly means the session is Wayland without XWayland.
	ErrWaylandOnly = errors.New("wayland session without XWayland: global key grabs are not available")
)

// Detect determines the display server from the environment lookup and GOOS.
func Detect(getenv func(string) string, goos string) DisplayServer {
	switch goos {
	case "windows":
		return DisplayServerWindows
	case "darwin":
		return DisplayServerMacOS
	}
	// Check Wayland first (more specific)
	if getenv("WAYLAND_DISPLAY") != "" {
		return DisplayServerWayland
	}
	if getenv("DISPLAY") != "" {
		return DisplayServerX11
	}
	return DisplayServerUnknown
}

// DetectDisplayServer determines which display server is currently in use.
func DetectDisplayServer() DisplayServer {
	return Detect(os.Getenv, runtime.GOOS)
}

// Check reports whether hotkeys can be grabbed in this session. Under
// Wayland with XWayland it succeeds but warns that only X clients will be
// seen while they have focus.
func Check(log zerolog.Logger) error {
	return check(log, os.Getenv, runtime.GOOS)
}

func check(log zerolog.Logger, getenv func(string) string, goos string) error {
	ds := Detect(getenv, goos)
	log.Debug().Stringer("display_server", ds).Msg("Detected display server")

	switch ds {
	case DisplayServerWindows, DisplayServerMacOS, DisplayServerX11:
		return nil
	case DisplayServerWayland:
		if getenv("DISPLAY") == "" {
			return ErrWaylandOnly
		}
		log.Warn().Str("display", getenv("DISPLAY")).
			Msg("Wayland session: hotkeys are grabbed through XWayland and may not fire while native Wayland windows have focus")
		return nil
	default:
		return ErrNoDisplay
	}
}
