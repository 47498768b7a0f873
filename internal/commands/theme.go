package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskpad/internal/config"
	"taskpad/internal/exitcode"
	"taskpad/internal/output"
	"taskpad/internal/service"
	"taskpad/internal/theme"
)

func init() {
	Register(&ThemeCmd{})
}

// ThemeCmd implements the theme command. Without an argument it lists the
// themes and marks the current one.
type ThemeCmd struct{}

func (c *ThemeCmd) Name() string      { return "theme" }
func (c *ThemeCmd) Aliases() []string { return nil }
func (c *ThemeCmd) Synopsis() string  { return "Show or set the color theme" }
func (c *ThemeCmd) Usage() string     { return "taskpad theme [dark|white|blue]" }
func (c *ThemeCmd) NeedsStore() bool  { return true }

func (c *ThemeCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ThemeCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 1 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[1])
		return exitcode.UserError
	}

	if len(args) == 0 {
		current, err := svc.Theme(ctx)
		if err != nil {
			return reportError(errOut, err)
		}
		output.New(out, current).Themes(current)
		return exitcode.Success
	}

	t, err := theme.Parse(args[0])
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	if err := svc.SetTheme(ctx, t); err != nil {
		return reportError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
