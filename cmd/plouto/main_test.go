package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/b/plouto/pkg/config"
	"github.com/b/plouto/pkg/menu"
	"github.com/b/plouto/pkg/paths"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("PLOUTO_CONFIG_DIR", t.TempDir())
	t.Setenv("PLOUTO_STATE_DIR", t.TempDir())
	paths.ResetForTest()
	t.Cleanup(paths.ResetForTest)

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestMenuPrintFiltersByRole(t *testing.T) {
	out, err := execute(t, "menu", "print", "--role", "FREIGHT_FORWARDER")
	require.NoError(t, err)
	assert.Contains(t, out, "m3 Tracking")
	assert.NotContains(t, out, "m4 Store")
}

func TestMenuPrintRejectsUnknownRole(t *testing.T) {
	_, err := execute(t, "menu", "print", "--role", "PIRATE")
	assert.Error(t, err)
}

func TestMenuExportValidates(t *testing.T) {
	out, err := execute(t, "menu", "export")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "registry.yaml")
	require.NoError(t, os.WriteFile(path, []byte(out), 0o644))
	out, err = execute(t, "menu", "validate", path)
	require.NoError(t, err)
	assert.Contains(t, out, "5 roots, 21 nodes")
}

func TestMenuValidateReportsProblems(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registry.yaml")
	require.NoError(t, os.WriteFile(path, []byte("menus:\n  - id: m0\n    roles: [BUYER]\n  - id: m0\n    roles: [BUYER]\n"), 0o644))
	_, err := execute(t, "menu", "validate", path)
	assert.ErrorIs(t, err, menu.ErrDuplicateID)
}

func TestConfigInitWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	out, err := execute(t, "--config", path, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, path)

	cfg, err := config.Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)

	_, err = execute(t, "--config", path, "config", "init")
	assert.ErrorContains(t, err, "already exists")
}

func TestConfigShowAppliesFlags(t *testing.T) {
	out, err := execute(t, "--layout", "sidebar", "--lang", "zh", "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "layout: sidebar")
	assert.Contains(t, out, "language: zh")
}

func TestInvalidFlagValueFails(t *testing.T) {
	_, err := execute(t, "--layout", "diagonal", "config", "show")
	assert.ErrorIs(t, err, config.ErrInvalidLayout)
}

func TestColorProfileNamesRoundTrip(t *testing.T) {
	for _, name := range []string{"Ascii", "ANSI", "ANSI256", "TrueColor"} {
		assert.Equal(t, name, profileName(colorProfile(name)))
	}
	assert.Equal(t, "ANSI256", profileName(colorProfile("bogus")))
}
