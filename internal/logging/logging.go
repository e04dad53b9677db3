package logging

import (
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// New creates a zerolog logger writing to the console and the log file at
// info level.
func New() zerolog.Logger {
	return NewWithLevel("info")
}

// NewWithLevel creates a logger with console and file output filtered at
// level. Unknown levels fall back to info. If the log file cannot be opened
// the logger writes to the console only.
func NewWithLevel(level string) zerolog.Logger {
	console := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}

	var out io.Writer = console
	logFile, err := openLogFile(Path())
	if err == nil {
		out = zerolog.MultiLevelWriter(console, logFile)
	}

	log := zerolog.New(out).Level(ParseLevel(level)).With().Timestamp().Caller().Logger()
	if err != nil {
		log.Warn().Err(err).Str("path", Path()).Msg("Log file unavailable, logging to console only")
	}
	return log
}

// ParseLevel maps a config value such as "debug" to a zerolog level.
func ParseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
}

// Path returns the platform-specific log file path
func Path() string {
	var base string

	switch runtime.GOOS {
	case "darwin":
		base = os.Getenv("HOME") + "/Library/Logs"
	case "windows":
		base = os.Getenv("LOCALAPPDATA")
	default:
		if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
			base = xdg
		} else {
			base = os.Getenv("HOME") + "/.local/state"
		}
	}

	return filepath.Join(base, "hotkeyd", "hotkeyd.log")
}
