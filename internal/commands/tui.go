package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"taskpad/internal/config"
	"taskpad/internal/exitcode"
	"taskpad/internal/service"
	"taskpad/internal/ui"
)

func init() {
	Register(&TUICmd{})
}

// TUICmd implements the tui command.
type TUICmd struct{}

func (c *TUICmd) Name() string      { return "tui" }
func (c *TUICmd) Aliases() []string { return []string{"ui"} }
func (c *TUICmd) Synopsis() string  { return "Open the interactive task list" }
func (c *TUICmd) Usage() string     { return "taskpad tui" }
func (c *TUICmd) NeedsStore() bool  { return true }

func (c *TUICmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *TUICmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}
	if err := ui.Run(ctx, svc, os.Stdin, out); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.StorageError
	}
	return exitcode.Success
}
