package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskpad/internal/theme"
)

func writeConfig(t *testing.T, dir, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFile), []byte(body), 0600))
}

func TestNew_Defaults(t *testing.T) {
	t.Setenv(EnvDataFile, "")
	t.Setenv(EnvLogLevel, "")
	dir := t.TempDir()

	cfg, err := New(dir)
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.Dir)
	assert.Equal(t, filepath.Join(dir, "state.json"), cfg.DataPath())
	assert.Equal(t, theme.White, cfg.InitialTheme())
	assert.Equal(t, "#A1CEDC", cfg.DefaultColor())
	assert.Equal(t, 0, cfg.ExportIndent())
	assert.Equal(t, "warn", cfg.Logging().Level)
	assert.False(t, cfg.HasDataFile())
}

func TestNew_ReadsTOML(t *testing.T) {
	t.Setenv(EnvDataFile, "")
	t.Setenv(EnvLogLevel, "")
	dir := t.TempDir()
	writeConfig(t, dir, `
data_file = "tasks.json"
theme = "Blue"
color = "#FFB347"
log_level = "info"
log_format = "json"
export_indent = 4
`)

	cfg, err := New(dir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "tasks.json"), cfg.DataPath())
	assert.Equal(t, theme.Blue, cfg.InitialTheme())
	assert.Equal(t, "#FFB347", cfg.DefaultColor())
	assert.Equal(t, 4, cfg.ExportIndent())
	assert.Equal(t, "info", cfg.Logging().Level)
	assert.Equal(t, "json", cfg.Logging().Format)
}

func TestNew_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	abs := filepath.Join(t.TempDir(), "elsewhere.json")
	writeConfig(t, dir, `data_file = "tasks.json"`)
	t.Setenv(EnvDataFile, abs)
	t.Setenv(EnvLogLevel, "error")

	cfg, err := New(dir)
	require.NoError(t, err)
	assert.Equal(t, abs, cfg.DataPath())
	assert.Equal(t, "error", cfg.Logging().Level)

	assert.Equal(t, "tasks.json", cfg.FileSettings.DataFile)
	assert.Empty(t, cfg.FileSettings.LogLevel)
}

func TestNew_InvalidSettings(t *testing.T) {
	t.Setenv(EnvDataFile, "")
	t.Setenv(EnvLogLevel, "")

	for name, body := range map[string]string{
		"theme":       `theme = "pink"`,
		"level":       `log_level = "loud"`,
		"format":      `log_format = "xml"`,
		"indent":      `export_indent = 12`,
		"unknown key": `colour = "#fff"`,
		"syntax":      `theme = `,
	} {
		dir := t.TempDir()
		writeConfig(t, dir, body)
		_, err := New(dir)
		require.Error(t, err, name)
		assert.True(t, errors.Is(err, ErrInvalid), "%s: %v", name, err)
	}
}

func TestLogging_DebugWins(t *testing.T) {
	cfg := &Config{Debug: true, Settings: Settings{LogLevel: "error"}}
	lc := cfg.Logging()
	assert.Equal(t, "debug", lc.Level)
	assert.True(t, lc.AddSource)
}

func TestDefaultConfigDir_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	assert.Equal(t, filepath.Join("/tmp/xdg", AppName), DefaultConfigDir())
}

func TestEnsureDir(t *testing.T) {
	cfg := &Config{Dir: filepath.Join(t.TempDir(), "a", "b")}
	require.NoError(t, cfg.EnsureDir())

	info, err := os.Stat(cfg.Dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestWriteFile_RoundTrip(t *testing.T) {
	t.Setenv(EnvDataFile, "")
	t.Setenv(EnvLogLevel, "")
	dir := filepath.Join(t.TempDir(), "fresh")

	cfg := &Config{Dir: dir, Settings: Settings{
		DataFile:  "state.json",
		Theme:     "dark",
		Color:     "#B5EAD7",
		LogLevel:  "warn",
		LogFormat: "text",
	}}
	require.False(t, cfg.HasConfigFile())
	require.NoError(t, cfg.WriteFile())
	assert.True(t, cfg.HasConfigFile())

	info, err := os.Stat(cfg.ConfigPath())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := New(dir)
	require.NoError(t, err)
	assert.Equal(t, cfg.Settings, loaded.Settings)
}

func TestRemoveDataFile(t *testing.T) {
	t.Setenv(EnvDataFile, "")
	cfg := &Config{Dir: t.TempDir()}
	require.NoError(t, os.WriteFile(cfg.DataPath(), []byte("{}"), 0600))
	require.True(t, cfg.HasDataFile())

	require.NoError(t, cfg.RemoveDataFile())
	assert.False(t, cfg.HasDataFile())
}
