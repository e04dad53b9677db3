package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"

	"github.com/petems/hotkeyd/internal/hotkey"
)

// Binding actions.
const (
	ActionExec      = "exec"
	ActionClipboard = "clipboard"
	ActionNotify    = "notify"
	ActionLog       = "log"
)

// Defaults applied before the file is decoded.
const (
	DefaultLogLevel      = "info"
	DefaultPollInterval  = hotkey.DefaultPollInterval
	DefaultActionTimeout = 30 * time.Second
)

type Config struct {
	LogLevel     string    `toml:"log_level"`
	PollInterval Duration  `toml:"poll_interval"`
	Tray         bool      `toml:"tray"`
	Watch        bool      `toml:"watch"`
	Bindings     []Binding `toml:"binding"`

	path string
}

// Binding ties a hotkey to the action run when it fires.
type Binding struct {
	Name    string   `toml:"name,omitempty"`
	Hotkey  string   `toml:"hotkey"`
	Action  string   `toml:"action"`
	Command []string `toml:"command,omitempty"`
	Text    string   `toml:"text,omitempty"`
	Timeout Duration `toml:"timeout,omitempty"`
}

// Duration is a time.Duration written as "50ms" in TOML.
type Duration time.Duration

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		LogLevel:     DefaultLogLevel,
		PollInterval: Duration(DefaultPollInterval),
		Tray:         true,
		Watch:        true,
	}
}

// Load reads the config at path, or DefaultPath when path is empty. A
// missing or empty file yields the defaults. The result is validated.
func Load(path string) (*Config, error) {
	if strings.TrimSpace(path) == "" {
		path = DefaultPath()
	}
	path, err := resolvePath(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	cfg.path = path

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return cfg, nil
	}

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return nil, fmt.Errorf("%s: %s", path, strict.String())
		}
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports every problem in the config at once.
func (c *Config) Validate() error {
	var errs []error

	if _, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel)); err != nil {
		errs = append(errs, fmt.Errorf("log_level %q is not a valid level", c.LogLevel))
	}
	if c.PollInterval <= 0 {
		errs = append(errs, fmt.Errorf("poll_interval must be positive, got %s", c.PollInterval.Std()))
	}

	seen := make(map[hotkey.Hotkey]string)
	for i, b := range c.Bindings {
		label := b.Label()
		if label == "" {
			label = fmt.Sprintf("binding #%d", i+1)
		}
		if err := b.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", label, err))
			continue
		}
		hk := hotkey.MustParse(b.Hotkey)
		if prev, dup := seen[hk]; dup {
			errs = append(errs, fmt.Errorf("%s: hotkey %s is already bound by %s", label, hk, prev))
			continue
		}
		seen[hk] = label
	}

	return errors.Join(errs...)
}

// Path returns the file the config was loaded from.
func (c *Config) Path() string {
	if c.path == "" {
		return DefaultPath()
	}
	return c.path
}

// Save writes the config to the file it was loaded from
func (c *Config) Save() error {
	path := c.Path()

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Validate checks the hotkey and the fields its action needs.
func (b Binding) Validate() error {
	var errs []error
	if _, err := hotkey.Parse(b.Hotkey); err != nil {
		errs = append(errs, err)
	}

	switch b.Action {
	case ActionExec:
		if len(b.Command) == 0 || strings.TrimSpace(b.Command[0]) == "" {
			errs = append(errs, errors.New("exec action needs a command"))
		}
	case ActionClipboard, ActionNotify:
		if b.Text == "" {
			errs = append(errs, fmt.Errorf("%s action needs text", b.Action))
		}
	case ActionLog:
	default:
		errs = append(errs, fmt.Errorf("unknown action %q", b.Action))
	}

	if b.Timeout < 0 {
		errs = append(errs, errors.New("timeout must not be negative"))
	}
	return errors.Join(errs...)
}

// Label names the binding in logs and menus.
func (b Binding) Label() string {
	if b.Name != "" {
		return b.Name
	}
	return b.Hotkey
}

// ActionTimeout returns the binding timeout or DefaultActionTimeout.
func (b Binding) ActionTimeout() time.Duration {
	if b.Timeout > 0 {
		return b.Timeout.Std()
	}
	return DefaultActionTimeout
}

// DefaultPath returns the platform-specific config file path
func DefaultPath() string {
	var base string

	switch runtime.GOOS {
	case "darwin":
		base = os.Getenv("HOME") + "/Library/Application Support"
	case "windows":
		base = os.Getenv("APPDATA")
	default: // linux
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			base = xdg
		} else {
			base = os.Getenv("HOME") + "/.config"
		}
	}

	return filepath.Join(base, "hotkeyd", "config.toml")
}

func resolvePath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, path[2:])
	}
	return filepath.Abs(path)
}
