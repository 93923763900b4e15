package config

import (
	"fmt"
	"strings"
	"time"
)

// Config is the daemon configuration. Every field has a built-in default, so
// a missing file is not an error.
type Config struct {
	Display  string        `yaml:"display"`
	Screen   int           `yaml:"screen"`
	LogLevel string        `yaml:"log_level"`
	Control  ControlConfig `yaml:"control"`
	Tray     TrayConfig    `yaml:"tray"`
}

type ControlConfig struct {
	// Endpoint is where the daemon binds its REP socket.
	Endpoint string `yaml:"endpoint"`
	// ClientEndpoint is what the CLI and MCP bridge dial.
	ClientEndpoint string `yaml:"client_endpoint"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

type TrayConfig struct {
	Title    string   `yaml:"title"`
	Class    string   `yaml:"class"`
	Width    int      `yaml:"width"`
	Height   int      `yaml:"height"`
	IconSize int      `yaml:"icon_size"`
	LeftPad  int      `yaml:"left_pad"`
	ClientY  int      `yaml:"client_y"`
	QuitKeys []string `yaml:"quit_keys"`
}

func DefaultConfig() *Config {
	return &Config{
		Screen:   -1,
		LogLevel: "info",
		Control: ControlConfig{
			Endpoint:       "tcp://*:5555",
			ClientEndpoint: "tcp://127.0.0.1:5555",
			TimeoutSeconds: 5,
		},
		Tray: TrayConfig{
			Title:    "Tray on Demand",
			Class:    "TrayOnDemand",
			Width:    300,
			Height:   15,
			IconSize: 32,
			LeftPad:  10,
			ClientY:  10,
			QuitKeys: []string{"Escape", "q"},
		},
	}
}

// Timeout returns the control request timeout.
func (c ControlConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// ValidationError names the offending config key and, when known, where it
// was set.
type ValidationError struct {
	Path   string
	File   string
	Line   int
	Column int
	Err    error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.File != "" && e.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s: %v", e.File, e.Line, e.Column, e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

const maxUint16 = 1<<16 - 1

func (c *Config) Validate() error {
	if c.Screen < -1 {
		return &ValidationError{Path: "screen", Err: fmt.Errorf("screen must be >= 0, or -1 for the default screen")}
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "warning", "error":
	default:
		return &ValidationError{Path: "log_level", Err: fmt.Errorf("log_level must be one of: debug, info, warn, error")}
	}

	if strings.TrimSpace(c.Control.Endpoint) == "" {
		return &ValidationError{Path: "control.endpoint", Err: fmt.Errorf("endpoint is required")}
	}
	if strings.TrimSpace(c.Control.ClientEndpoint) == "" {
		return &ValidationError{Path: "control.client_endpoint", Err: fmt.Errorf("client_endpoint is required")}
	}
	for path, ep := range map[string]string{"control.endpoint": c.Control.Endpoint, "control.client_endpoint": c.Control.ClientEndpoint} {
		if !strings.Contains(ep, "://") {
			return &ValidationError{Path: path, Err: fmt.Errorf("%q must be of the form transport://address", ep)}
		}
	}
	if c.Control.TimeoutSeconds <= 0 {
		return &ValidationError{Path: "control.timeout_seconds", Err: fmt.Errorf("timeout_seconds must be > 0")}
	}

	if c.Tray.Class == "" {
		return &ValidationError{Path: "tray.class", Err: fmt.Errorf("class must not be empty")}
	}
	dims := []struct {
		path string
		v    int
	}{
		{"tray.width", c.Tray.Width},
		{"tray.height", c.Tray.Height},
		{"tray.icon_size", c.Tray.IconSize},
	}
	for _, d := range dims {
		if d.v <= 0 || d.v > maxUint16 {
			return &ValidationError{Path: d.path, Err: fmt.Errorf("must be between 1 and %d", maxUint16)}
		}
	}
	if c.Tray.LeftPad < 0 {
		return &ValidationError{Path: "tray.left_pad", Err: fmt.Errorf("left_pad must be >= 0")}
	}
	if c.Tray.ClientY < 0 {
		return &ValidationError{Path: "tray.client_y", Err: fmt.Errorf("client_y must be >= 0")}
	}
	for i, key := range c.Tray.QuitKeys {
		if strings.TrimSpace(key) == "" {
			return &ValidationError{Path: fmt.Sprintf("tray.quit_keys[%d]", i), Err: fmt.Errorf("key name must not be empty")}
		}
	}
	return nil
}
