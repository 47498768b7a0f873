package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"taskpad/internal/category"
	"taskpad/internal/config"
	"taskpad/internal/exitcode"
	"taskpad/internal/logging"
	"taskpad/internal/service"
	"taskpad/internal/theme"
)

func init() {
	Register(&InitCmd{})
	Register(&ResetCmd{})
}

// InitCmd implements the init command: it writes a config.toml holding the
// file settings plus defaults so they can be edited by hand. Environment
// overrides stay out of the file.
type InitCmd struct {
	force bool
}

// SetForce sets the force flag (for testing).
func (c *InitCmd) SetForce(force bool) {
	c.force = force
}

func (c *InitCmd) Name() string      { return "init" }
func (c *InitCmd) Aliases() []string { return nil }
func (c *InitCmd) Synopsis() string  { return "Write a config.toml with the current settings" }
func (c *InitCmd) Usage() string     { return "taskpad init [--force]" }
func (c *InitCmd) NeedsStore() bool  { return false }

func (c *InitCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.force, "force", false, "")
}

func (c *InitCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if cfg.HasConfigFile() && !c.force {
		if !cfg.Quiet {
			fmt.Fprintf(out, "already initialized: %s\n", cfg.ConfigPath())
		}
		return exitcode.Success
	}

	// Spell out the defaults so the file documents every key.
	s := cfg.FileSettings
	if s.DataFile == "" {
		s.DataFile = config.DefaultDataFile
	}
	if s.Theme == "" {
		s.Theme = string(theme.Default)
	}
	if s.Color == "" {
		s.Color = category.DefaultColor
	}
	if s.LogLevel == "" {
		s.LogLevel = config.DefaultLogLevel
	}
	if s.LogFormat == "" {
		s.LogFormat = logging.FormatText
	}
	written := *cfg
	written.Settings = s

	if err := written.WriteFile(); err != nil {
		fmt.Fprintf(errOut, "error: failed to write config: %v\n", err)
		return exitcode.ConfigError
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, cfg.ConfigPath())
	}
	return exitcode.Success
}

// ResetCmd implements the reset command: it deletes the state file, which
// drops every task and category and restores the initial theme.
type ResetCmd struct {
	force bool
}

// SetForce sets the force flag (for testing).
func (c *ResetCmd) SetForce(force bool) {
	c.force = force
}

func (c *ResetCmd) Name() string      { return "reset" }
func (c *ResetCmd) Aliases() []string { return nil }
func (c *ResetCmd) Synopsis() string  { return "Delete the state file" }
func (c *ResetCmd) Usage() string     { return "taskpad reset --force" }
func (c *ResetCmd) NeedsStore() bool  { return false }

func (c *ResetCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.force, "force", false, "")
}

func (c *ResetCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if !cfg.HasDataFile() {
		if !cfg.Quiet {
			fmt.Fprintln(out, "nothing to reset")
		}
		return exitcode.Success
	}
	if !c.force {
		fmt.Fprintf(errOut, "error: this deletes %s (use --force)\n", cfg.DataPath())
		return exitcode.UserError
	}

	if err := cfg.RemoveDataFile(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(errOut, "error: failed to remove state file: %v\n", err)
		return exitcode.StorageError
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
