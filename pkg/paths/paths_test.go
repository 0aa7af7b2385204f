package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("PLOUTO_CONFIG_DIR", "")
	t.Setenv("PLOUTO_STATE_DIR", "")
	t.Setenv("HOME", home)
	ResetForTest()
	t.Cleanup(ResetForTest)
	return home
}

func TestDefaults(t *testing.T) {
	home := isolate(t)
	assert.Equal(t, filepath.Join(home, ".config", "plouto"), ConfigDir())
	assert.Equal(t, filepath.Join(home, ".config", "plouto", "config.yaml"), ConfigPath())
	assert.Equal(t, filepath.Join(home, ".config", "plouto", "registry.yaml"), RegistryPath())
	assert.Equal(t, filepath.Join(home, ".local", "state", "plouto"), StateDir())
	assert.Equal(t, filepath.Join(home, ".local", "state", "plouto", "plouto.log"), LogPath())
}

func TestEnvOverrides(t *testing.T) {
	home := isolate(t)
	cfg := filepath.Join(home, "cfg")
	state := filepath.Join(home, "state")
	t.Setenv("PLOUTO_CONFIG_DIR", cfg)
	t.Setenv("PLOUTO_STATE_DIR", state)
	ResetForTest()

	assert.Equal(t, cfg, ConfigDir())
	assert.Equal(t, filepath.Join(state, "activity.json"), StatePath("activity.json"))
}

func TestResolutionIsCached(t *testing.T) {
	home := isolate(t)
	first := ConfigDir()
	t.Setenv("PLOUTO_CONFIG_DIR", filepath.Join(home, "later"))
	assert.Equal(t, first, ConfigDir(), "changes apply only after ResetForTest")
}

func TestEnsureDirs(t *testing.T) {
	home := isolate(t)

	dir, err := EnsureConfigDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".config", "plouto"), dir)
	assert.DirExists(t, dir)

	dir, err = EnsureStateDir()
	require.NoError(t, err)
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
