package action

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/gen2brain/beeep"
	"github.com/rs/zerolog"

	"github.com/petems/hotkeyd/internal/config"
)

// maxOutput caps the command output quoted in errors and logs.
const maxOutput = 512

var errClipboardUnsupported = errors.New("no clipboard utility available (install xclip, xsel or wl-clipboard)")

type runner struct {
	log            zerolog.Logger
	writeClipboard func(string) error
	notify         func(title, message, icon string) error
}

// New creates a Runner for exec, clipboard, notify and log actions
func New(log zerolog.Logger) Runner {
	return &runner{
		log:            log,
		writeClipboard: clipboard.WriteAll,
		notify: func(title, message, icon string) error {
			return beeep.Notify(title, message, icon)
		},
	}
}

// Run executes b's action, bounded by the binding timeout.
func (r *runner) Run(ctx context.Context, b config.Binding) error {
	ctx, cancel := context.WithTimeout(ctx, b.ActionTimeout())
	defer cancel()

	switch b.Action {
	case config.ActionExec:
		return r.exec(ctx, b)
	case config.ActionClipboard:
		return r.copyText(b)
	case config.ActionNotify:
		if err := r.notify(b.Label(), b.Text, ""); err != nil {
			return fmt.Errorf("%s: failed to show notification: %w", b.Label(), err)
		}
		return nil
	case config.ActionLog:
		r.log.Info().Str("binding", b.Label()).Str("hotkey", b.Hotkey).Msg("Hotkey fired")
		return nil
	default:
		return fmt.Errorf("unknown action %q", b.Action)
	}
}

func (r *runner) exec(ctx context.Context, b config.Binding) error {
	if len(b.Command) == 0 {
		return fmt.Errorf("%s: empty command", b.Label())
	}
	args := make([]string, len(b.Command))
	for i, arg := range b.Command {
		args[i] = expandHome(arg)
	}

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	err := cmd.Run()
	output := truncate(strings.TrimSpace(out.String()))
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return fmt.Errorf("%s: command timed out after %s", b.Label(), b.ActionTimeout())
		}
		if output != "" {
			return fmt.Errorf("%s: %w: %s", b.Label(), err, output)
		}
		return fmt.Errorf("%s: %w", b.Label(), err)
	}

	r.log.Debug().Str("binding", b.Label()).Str("output", output).Msg("Command finished")
	return nil
}

func (r *runner) copyText(b config.Binding) error {
	if clipboard.Unsupported {
		return fmt.Errorf("%s: %w", b.Label(), errClipboardUnsupported)
	}
	if err := r.writeClipboard(b.Text); err != nil {
		return fmt.Errorf("%s: failed to write clipboard: %w", b.Label(), err)
	}
	return nil
}

func expandHome(arg string) string {
	if !strings.HasPrefix(arg, "~/") {
		return arg
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return arg
	}
	return filepath.Join(home, arg[2:])
}

func truncate(s string) string {
	if len(s) <= maxOutput {
		return s
	}
	return s[:maxOutput] + "..."
}
