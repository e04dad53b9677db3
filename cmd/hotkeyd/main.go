package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/petems/hotkeyd/internal/action"
	"github.com/petems/hotkeyd/internal/app"
	"github.com/petems/hotkeyd/internal/config"
	"github.com/petems/hotkeyd/internal/hotkey"
	"github.com/petems/hotkeyd/internal/logging"
	"github.com/petems/hotkeyd/internal/preflight"
	"github.com/petems/hotkeyd/internal/tray"
)

var (
	// Version is set via ldflags at build time
	Version = "dev"
	// Commit is set via ldflags at build time
	Commit = "unknown"
)

const shutdownTimeout = 5 * time.Second

func run() int {
	configPath := flag.String("config", "", "Config file path (default: OS-specific location)")
	logLevel := flag.String("log-level", "", "Override the configured log level (debug, info, warn, error)")
	backend := flag.String("backend", "native", "Hotkey backend: native or fake")
	noTray := flag.Bool("no-tray", false, "Run without the tray icon")
	check := flag.String("check", "", "Parse a hotkey such as ctrl+alt+p, print it and exit")
	versionFlag := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *versionFlag {
		fmt.Printf("hotkeyd %s (%s)\n", Version, Commit)
		return 0
	}
	if *check != "" {
		return checkHotkey(*check)
	}
	if *backend != "native" && *backend != "fake" {
		fmt.Fprintf(os.Stderr, "unknown backend %q (want native or fake)\n", *backend)
		return 2
	}

	// Load config from XDG/Library/AppData
	cfg, err := config.Load(*configPath)
	if err != nil {
		// Use default logger if config fails to load
		log := logging.New()
		log.Error().Err(err).Msg("Failed to load config")
		return 1
	}

	level := cfg.LogLevel
	if *logLevel != "" {
		level = *logLevel
	}
	log := logging.NewWithLevel(level)

	opts := []hotkey.Option{
		hotkey.WithLogger(log.With().Str("component", "hotkey").Logger()),
		hotkey.WithPollInterval(cfg.PollInterval.Std()),
	}
	if *backend == "fake" {
		opts = append(opts, hotkey.WithBackend(hotkey.NewFakeBackend()))
	} else if err := preflight.Check(log); err != nil {
		log.Error().Err(err).Stringer("display_server", preflight.DetectDisplayServer()).Msg("Global hotkeys are unavailable")
		return 1
	}

	listener, err := hotkey.NewListener(opts...)
	if err != nil {
		log.Error().Err(err).Msg("Failed to initialize hotkeys")
		return 1
	}

	dispatcher := action.NewDispatcher(action.New(log), log, action.DefaultQueueSize)

	useTray := cfg.Tray && !*noTray && trayAvailable
	var (
		trayUI *tray.UI
		status app.StatusUpdater
	)
	if useTray {
		// Create tray UI first (we'll pass it to app)
		trayUI = tray.New(nil, log, Version, Commit)
		status = trayUI
	}

	application := app.New(app.Config{
		Listener:      listener,
		Dispatcher:    dispatcher,
		Config:        cfg,
		Logger:        log,
		StatusUpdater: status,
	})
	if trayUI != nil {
		trayUI.SetApp(application)
	}

	if err := application.Start(); err != nil {
		log.Warn().Err(err).Msg("Some hotkeys could not be registered")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Watch {
		watchConfig(ctx, log, cfg, application)
	}

	log.Info().Str("version", Version).Str("config", cfg.Path()).Bool("tray", useTray).Msg("hotkeyd starting...")

	if useTray {
		// Start tray UI - MUST run on main thread
		if err := trayUI.Run(ctx); err != nil {
			log.Error().Err(err).Msg("Tray error")
		}
	} else {
		<-ctx.Done()
	}

	log.Info().Msg("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := application.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Shutdown error")
		return 1
	}
	return 0
}

func watchConfig(ctx context.Context, log zerolog.Logger, cfg *config.Config, application *app.App) {
	err := config.Watch(ctx, cfg.Path(), func(next *config.Config, err error) {
		if err != nil {
			log.Error().Err(err).Msg("Config reload failed, keeping current bindings")
			return
		}
		if next.PollInterval != cfg.PollInterval || next.LogLevel != cfg.LogLevel {
			log.Warn().Msg("poll_interval and log_level changes apply after restart")
		}
		if err := application.Reload(next); err != nil {
			log.Error().Err(err).Msg("Config reload incomplete")
		}
	})
	if err != nil {
		log.Warn().Err(err).Msg("Config watching disabled")
	}
}

func checkHotkey(spec string) int {
	hk, err := hotkey.Parse(spec)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	fmt.Printf("%s\tmodifiers=0x%x key=0x%x\n", hk, uint32(hk.Modifiers), uint32(hk.Key))
	return 0
}
