package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/1broseidon/traydock/internal/config"
	"github.com/1broseidon/traydock/internal/control"
	"github.com/1broseidon/traydock/internal/logging"
	"github.com/1broseidon/traydock/internal/tray"
	"github.com/1broseidon/traydock/internal/x11"
)

func runDaemon(args []string) int {
	fs := flag.NewFlagSet("daemon", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	path := fs.String("path", "", "Config file path (default: ~/.config/traydock/config.yaml)")
	display := fs.String("display", "", "X display (default: config display, then $DISPLAY)")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: traydock daemon [--display DISPLAY] [--path PATH]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Claim the system tray selection and serve the control endpoint.")
		fmt.Fprintln(os.Stderr, "")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() > 0 {
		fmt.Fprintln(os.Stderr, "daemon takes no arguments")
		return 2
	}

	cfg, err := loadConfig(*path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		return 1
	}
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	logger := logging.New(os.Stderr, level)
	slog.SetDefault(logger)

	if *display != "" {
		cfg.Display = *display
	}

	conn, err := x11.Dial(cfg.Display)
	if err != nil {
		logger.Error("failed to connect to display", "error", err)
		return 1
	}
	defer conn.Close()

	mgr, err := tray.New(conn, trayOptions(cfg, logger))
	if err != nil {
		logger.Error("failed to create tray", "error", err)
		return 1
	}
	logger.Debug("tray ready", "manager", mgr.String())

	server := control.NewServer(mgr, control.ServerOptions{Logger: logger})
	if err := server.Listen(cfg.Control.Endpoint); err != nil {
		logger.Error("control server unavailable, continuing without remote control", "error", err)
	} else {
		go func() {
			if err := server.Serve(); err != nil && !errors.Is(err, control.ErrServerClosed) {
				logger.Error("control server stopped", "error", err)
			}
		}()
	}
	defer server.Close()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		sig, ok := <-sigCh
		if !ok {
			return
		}
		logger.Info("shutting down", "signal", sig.String())
		if err := mgr.Destroy(); err != nil && !errors.Is(err, tray.ErrDestroyed) {
			logger.Error("failed to destroy tray window", "error", err)
		}
	}()

	if err := mgr.Run(); err != nil {
		logger.Error("event loop stopped", "error", err)
		return 1
	}
	logger.Info("tray daemon stopped")
	return 0
}

func trayOptions(cfg *config.Config, logger *slog.Logger) tray.Options {
	return tray.Options{
		Screen: cfg.Screen,
		Title:  cfg.Tray.Title,
		Class:  cfg.Tray.Class,
		Width:  uint16(cfg.Tray.Width),
		Height: uint16(cfg.Tray.Height),
		Layout: tray.Layout{
			IconSize: uint32(cfg.Tray.IconSize),
			LeftPad:  uint32(cfg.Tray.LeftPad),
			ClientY:  uint32(cfg.Tray.ClientY),
		},
		QuitKeys: cfg.Tray.QuitKeys,
		Logger:   logger,
	}
}
