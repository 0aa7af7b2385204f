// Package paths resolves where plouto keeps its config, registry and logs.
//
// Layout (XDG-style):
//
//	Config:  ~/.config/plouto/config.yaml   (override: PLOUTO_CONFIG_DIR)
//	         ~/.config/plouto/registry.yaml (optional menu registry)
//	State:   ~/.local/state/plouto/         (override: PLOUTO_STATE_DIR)
//	Runtime: $PLOUTO_RUNTIME_DIR or /tmp    (sockets, see pkg/daemon)
package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

var (
	configDirOnce   sync.Once
	configDirCached string

	stateDirOnce   sync.Once
	stateDirCached string
)

// ConfigDir resolves the config directory.
// Priority: PLOUTO_CONFIG_DIR env > ~/.config/plouto/
func ConfigDir() string {
	configDirOnce.Do(func() {
		if env := os.Getenv("PLOUTO_CONFIG_DIR"); env != "" {
			configDirCached = env
		} else {
			home, err := os.UserHomeDir()
			if err != nil {
				configDirCached = "."
			} else {
				configDirCached = filepath.Join(home, ".config", "plouto")
			}
		}
	})
	return configDirCached
}

// StateDir resolves the state directory.
// Priority: PLOUTO_STATE_DIR env > ~/.local/state/plouto/
func StateDir() string {
	stateDirOnce.Do(func() {
		if env := os.Getenv("PLOUTO_STATE_DIR"); env != "" {
			stateDirCached = env
		} else {
			home, err := os.UserHomeDir()
			if err != nil {
				stateDirCached = "."
			} else {
				stateDirCached = filepath.Join(home, ".local", "state", "plouto")
			}
		}
	})
	return stateDirCached
}

// ConfigPath returns the full path to config.yaml.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// RegistryPath is where a custom menu registry is looked for when none is
// configured explicitly.
func RegistryPath() string {
	return filepath.Join(ConfigDir(), "registry.yaml")
}

// LogPath is the default log file.
func LogPath() string {
	return StatePath("plouto.log")
}

// StatePath returns the full path to a state file.
func StatePath(filename string) string {
	return filepath.Join(StateDir(), filename)
}

// EnsureConfigDir creates the config directory if it doesn't exist and returns its path.
func EnsureConfigDir() (string, error) {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create config dir %s: %w", dir, err)
	}
	return dir, nil
}

// EnsureStateDir creates the state directory if it doesn't exist and returns its path.
func EnsureStateDir() (string, error) {
	dir := StateDir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create state dir %s: %w", dir, err)
	}
	return dir, nil
}

// ResetForTest clears cached values so tests can re-run resolution logic.
// Only use in tests.
func ResetForTest() {
	configDirOnce = sync.Once{}
	configDirCached = ""
	stateDirOnce = sync.Once{}
	stateDirCached = ""
}
