// Package config handles the XDG configuration directory, the optional
// config.toml file and environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"taskpad/internal/category"
	"taskpad/internal/logging"
	"taskpad/internal/theme"
)

const (
	// AppName is the application directory name.
	AppName = "taskpad"

	// ConfigFile is the optional settings filename.
	ConfigFile = "config.toml"

	// DefaultDataFile is the state filename, relative to the config dir.
	DefaultDataFile = "state.json"

	// DefaultLogLevel keeps normal command output free of log lines.
	DefaultLogLevel = "warn"

	// Environment overrides.
	EnvDataFile = "TASKPAD_DATA_FILE"
	EnvLogLevel = "TASKPAD_LOG_LEVEL"
)

// ErrInvalid is wrapped by every settings validation error.
var ErrInvalid = errors.New("invalid config")

// Settings are the values read from config.toml.
type Settings struct {
	DataFile     string `toml:"data_file"`
	Theme        string `toml:"theme"`
	Color        string `toml:"color"`
	LogLevel     string `toml:"log_level"`
	LogFormat    string `toml:"log_format"`
	ExportIndent int    `toml:"export_indent"`
}

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool

	// Settings come from config.toml and the environment.
	Settings Settings

	// FileSettings are the config.toml values alone, without environment
	// overrides. init writes these back.
	FileSettings Settings
}

// New creates a Config for configDir, or the default directory when empty,
// and loads config.toml from it if present. Environment variables override
// the file.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	cfg := &Config{Dir: dir}

	if err := cfg.loadFile(); err != nil {
		return nil, err
	}
	cfg.FileSettings = cfg.Settings
	cfg.loadEnv()

	if err := cfg.Settings.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

func (c *Config) loadFile() error {
	path := c.ConfigPath()
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("stat %s: %w", path, err)
	}

	md, err := toml.DecodeFile(path, &c.Settings)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalid, path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("%w: %s: unknown keys: %s", ErrInvalid, path, strings.Join(keys, ", "))
	}
	return nil
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvDataFile); v != "" {
		c.Settings.DataFile = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Settings.LogLevel = v
	}
}

// Validate checks the settings that have a closed set of values.
func (s Settings) Validate() error {
	if s.Theme != "" {
		if _, err := theme.Parse(s.Theme); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalid, err)
		}
	}
	if s.LogLevel != "" {
		if _, err := logging.ParseLevel(s.LogLevel); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalid, err)
		}
	}
	switch strings.ToLower(s.LogFormat) {
	case "", logging.FormatText, logging.FormatJSON:
	default:
		return fmt.Errorf("%w: unknown log format: %s", ErrInvalid, s.LogFormat)
	}
	if s.ExportIndent < 0 || s.ExportIndent > 8 {
		return fmt.Errorf("%w: export_indent must be between 0 and 8, got %d", ErrInvalid, s.ExportIndent)
	}
	return nil
}

// ConfigPath returns the path to config.toml.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.Dir, ConfigFile)
}

// DataPath returns the path to the state file. Relative data_file values
// are resolved against the config directory.
func (c *Config) DataPath() string {
	name := c.Settings.DataFile
	if name == "" {
		name = DefaultDataFile
	}
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.Dir, name)
}

// HasDataFile checks if the state file exists.
func (c *Config) HasDataFile() bool {
	_, err := os.Stat(c.DataPath())
	return err == nil
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// InitialTheme returns the theme for a fresh state.
func (c *Config) InitialTheme() theme.Theme {
	t, err := theme.Parse(c.Settings.Theme)
	if err != nil {
		return theme.Default
	}
	return t
}

// DefaultColor returns the color used when a command is given none.
func (c *Config) DefaultColor() string {
	if c.Settings.Color != "" {
		return c.Settings.Color
	}
	return category.DefaultColor
}

// ExportIndent returns the indent width for exports (0 means the default).
func (c *Config) ExportIndent() int {
	return c.Settings.ExportIndent
}

// Logging returns the logger configuration. --debug wins over log_level.
func (c *Config) Logging() logging.Config {
	level := c.Settings.LogLevel
	if level == "" {
		level = DefaultLogLevel
	}
	if c.Debug {
		level = "debug"
	}
	return logging.Config{
		Level:     level,
		Format:    c.Settings.LogFormat,
		AddSource: c.Debug,
	}
}

// HasConfigFile checks if config.toml exists.
func (c *Config) HasConfigFile() bool {
	_, err := os.Stat(c.ConfigPath())
	return err == nil
}

// WriteFile writes the current settings to config.toml with mode 0600,
// creating the config directory if needed.
func (c *Config) WriteFile() error {
	if err := c.EnsureDir(); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	f, err := os.OpenFile(c.ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	if err := toml.NewEncoder(f).Encode(c.Settings); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", c.ConfigPath(), err)
	}
	return f.Close()
}

// RemoveDataFile deletes the state file.
func (c *Config) RemoveDataFile() error {
	return os.Remove(c.DataPath())
}
