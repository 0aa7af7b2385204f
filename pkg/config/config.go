// Package config loads plouto's settings from defaults, a YAML file, the
// environment and command-line flags, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidLayout   = errors.New("invalid ui.layout")
	ErrInvalidIcons    = errors.New("invalid ui.icons")
	ErrInvalidLanguage = errors.New("invalid ui.language")
	ErrInvalidLogLevel = errors.New("invalid log.level")
	ErrInvalidRate     = errors.New("order.success_rate must be within [0, 1]")
	ErrInvalidDelay    = errors.New("delays must not be negative")
)

type Config struct {
	UI       UIConfig       `koanf:"ui"`
	Login    LoginConfig    `koanf:"login"`
	Order    OrderConfig    `koanf:"order"`
	Registry RegistryConfig `koanf:"registry"`
	Log      LogConfig      `koanf:"log"`
	Daemon   DaemonConfig   `koanf:"daemon"`
}

type UIConfig struct {
	// Layout forces "sidebar" or "topbar"; empty follows the user's preference.
	Layout       string `koanf:"layout"`
	Icons        string `koanf:"icons"`
	Theme        string `koanf:"theme"`
	Language     string `koanf:"language"`
	SidebarWidth int    `koanf:"sidebar_width"`
}

type LoginConfig struct {
	Delay time.Duration `koanf:"delay"`
}

type OrderConfig struct {
	StepDelay   time.Duration `koanf:"step_delay"`
	SettleDelay time.Duration `koanf:"settle_delay"`
	SuccessRate float64       `koanf:"success_rate"`
}

type RegistryConfig struct {
	// Path of a YAML menu registry; empty uses the built-in one.
	Path string `koanf:"path"`
}

type LogConfig struct {
	Enabled bool   `koanf:"enabled"`
	Level   string `koanf:"level"`
	// File defaults to plouto.log in the state directory.
	File string `koanf:"file"`
}

type DaemonConfig struct {
	Session string `koanf:"session"`
}

// Defaults are the lowest configuration layer.
func Defaults() map[string]interface{} {
	return map[string]interface{}{
		"ui.layout":          "",
		"ui.icons":           "ascii",
		"ui.theme":           "harbor",
		"ui.language":        "en",
		"ui.sidebar_width":   30,
		"login.delay":        "1200ms",
		"order.step_delay":   "800ms",
		"order.settle_delay": "4500ms",
		"order.success_rate": 0.8,
		"registry.path":      "",
		"log.enabled":        true,
		"log.level":          "info",
		"log.file":           "",
		"daemon.session":     "default",
	}
}

// Validate reports every invalid value at once.
func (c *Config) Validate() error {
	var errs []error
	switch c.UI.Layout {
	case "", "sidebar", "topbar":
	default:
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidLayout, c.UI.Layout))
	}
	switch c.UI.Icons {
	case "nerd", "emoji", "ascii":
	default:
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidIcons, c.UI.Icons))
	}
	switch c.UI.Language {
	case "en", "zh":
	default:
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidLanguage, c.UI.Language))
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.Log.Level))
	}
	if c.Order.SuccessRate < 0 || c.Order.SuccessRate > 1 {
		errs = append(errs, fmt.Errorf("%w: %v", ErrInvalidRate, c.Order.SuccessRate))
	}
	if c.Login.Delay < 0 || c.Order.StepDelay < 0 || c.Order.SettleDelay < 0 {
		errs = append(errs, ErrInvalidDelay)
	}
	return errors.Join(errs...)
}

// toMap is the file form of c, with durations spelled out.
func (c *Config) toMap() map[string]interface{} {
	return map[string]interface{}{
		"ui": map[string]interface{}{
			"layout":        c.UI.Layout,
			"icons":         c.UI.Icons,
			"theme":         c.UI.Theme,
			"language":      c.UI.Language,
			"sidebar_width": c.UI.SidebarWidth,
		},
		"login": map[string]interface{}{
			"delay": c.Login.Delay.String(),
		},
		"order": map[string]interface{}{
			"step_delay":   c.Order.StepDelay.String(),
			"settle_delay": c.Order.SettleDelay.String(),
			"success_rate": c.Order.SuccessRate,
		},
		"registry": map[string]interface{}{
			"path": c.Registry.Path,
		},
		"log": map[string]interface{}{
			"enabled": c.Log.Enabled,
			"level":   c.Log.Level,
			"file":    c.Log.File,
		},
		"daemon": map[string]interface{}{
			"session": c.Daemon.Session,
		},
	}
}
