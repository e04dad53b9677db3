package tray

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/getlantern/systray"
	"github.com/rs/zerolog"

	"github.com/petems/hotkeyd/internal/app"
	"github.com/petems/hotkeyd/internal/logging"
)

type UI struct {
	app     *app.App
	version string
	commit  string
	log     zerolog.Logger

	mu       sync.Mutex
	ready    bool
	status   string
	bindings []app.BindingState

	// Menu items
	mStatus   *systray.MenuItem
	mHotkeys  *systray.MenuItem
	mBindings []*systray.MenuItem
	mPause    *systray.MenuItem
}

// Status update methods for the app to call
func (u *UI) SetIdle() {
	u.updateStatus("idle")
}

func (u *UI) SetPaused() {
	u.updateStatus("paused")
}

func (u *UI) SetError() {
	u.updateStatus("error")
}

// SetBindings refreshes the hotkey submenu.
func (u *UI) SetBindings(states []app.BindingState) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.bindings = states
	if u.ready {
		u.renderBindingsLocked()
	}
}

func New(application *app.App, log zerolog.Logger, version, commit string) *UI {
	return &UI{
		app:     application,
		version: version,
		commit:  commit,
		log:     log,
		status:  "idle",
	}
}

// SetApp sets the app reference (for circular dependency resolution)
func (u *UI) SetApp(application *app.App) {
	u.app = application
}

// Run blocks until Quit is chosen from the menu or Quit is called. It must
// run on the main thread.
func (u *UI) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		systray.Quit()
	}()
	systray.Run(u.onReady, u.onExit)
	return nil
}

// Quit closes the tray and makes Run return.
func (u *UI) Quit() {
	systray.Quit()
}

func (u *UI) onReady() {
	systray.SetTooltip("Global hotkey daemon")

	u.mStatus = systray.AddMenuItem(fmt.Sprintf("hotkeyd %s", u.version), "")
	u.mStatus.Disable()
	systray.AddSeparator()

	u.mHotkeys = systray.AddMenuItem("Hotkeys", "Configured bindings")
	u.mPause = systray.AddMenuItemCheckbox("Pause Hotkeys", "Release all hotkeys until resumed", u.app.IsPaused())
	mReload := systray.AddMenuItem("Reload Config", "Read the config file again")

	systray.AddSeparator()
	mLogs := systray.AddMenuItem("Open Logs", "View application logs")
	mQuit := systray.AddMenuItem("Quit", "Exit application")

	u.mu.Lock()
	u.ready = true
	u.renderBindingsLocked()
	u.renderStatusLocked()
	u.mu.Unlock()

	// Event loop
	go u.handleEvents(mReload, mLogs, mQuit)
}

func (u *UI) handleEvents(mReload, mLogs, mQuit *systray.MenuItem) {
	for {
		select {
		case <-u.mPause.ClickedCh:
			u.togglePause()
		case <-mReload.ClickedCh:
			if err := u.app.ReloadFile(); err != nil {
				u.log.Error().Err(err).Msg("Reload from tray failed")
			}
		case <-mLogs.ClickedCh:
			u.openLogs()
		case <-mQuit.ClickedCh:
			systray.Quit()
			return
		}
	}
}

func (u *UI) togglePause() {
	if err := u.app.TogglePause(); err != nil {
		u.log.Error().Err(err).Msg("Failed to toggle pause")
	}
	if u.app.IsPaused() {
		u.mPause.Check()
	} else {
		u.mPause.Uncheck()
	}
}

// renderBindingsLocked reuses submenu items since systray cannot remove
// them; surplus items are hidden.
func (u *UI) renderBindingsLocked() {
	for i, st := range u.bindings {
		title := bindingTitle(st)
		if i < len(u.mBindings) {
			u.mBindings[i].SetTitle(title)
			u.mBindings[i].Show()
			continue
		}
		item := u.mHotkeys.AddSubMenuItem(title, st.Binding.Action)
		item.Disable()
		u.mBindings = append(u.mBindings, item)
	}
	for _, item := range u.mBindings[len(u.bindings):] {
		item.Hide()
	}
	u.mHotkeys.SetTitle(fmt.Sprintf("Hotkeys (%d)", len(u.bindings)))
}

func (u *UI) openLogs() {
	name, args := openCommand(runtime.GOOS, filepath.Dir(logging.Path()))
	if err := exec.Command(name, args...).Start(); err != nil {
		u.log.Error().Err(err).Str("command", name).Msg("Failed to open log directory")
	}
}

func (u *UI) onExit() {
	u.log.Debug().Msg("Tray closed")
}

// updateStatus sets the tray title with keyboard emoji and status indicator
func (u *UI) updateStatus(status string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.status = status
	if u.ready {
		u.renderStatusLocked()
	}
}

func (u *UI) renderStatusLocked() {
	systray.SetTitle(fmt.Sprintf("⌨️ %s", emojiForStatus(u.status)))
}

// emojiForStatus returns the appropriate status emoji
func emojiForStatus(status string) string {
	switch status {
	case "paused":
		return "🟡" // Yellow - hotkeys released
	case "idle":
		return "🟢" // Green - listening
	case "error":
		return "🔴" // Red - a binding failed
	default:
		return "🟢" // Green - default to listening
	}
}

// bindingTitle renders one submenu line, e.g. "ctrl+alt+n  notes (exec)".
func bindingTitle(st app.BindingState) string {
	title := fmt.Sprintf("%s  %s (%s)", st.Hotkey, st.Binding.Label(), st.Binding.Action)
	switch {
	case st.Err != nil:
		return title + " - failed"
	case !st.Active:
		return title + " - inactive"
	default:
		return title
	}
}

// openCommand returns the platform file opener for path.
func openCommand(goos, path string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{path}
	case "windows":
		return "explorer", []string{path}
	default:
		return "xdg-open", []string{path}
	}
}
