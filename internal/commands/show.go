package commands

import (
	"context"
	"flag"
	"io"

	"taskpad/internal/config"
	"taskpad/internal/exitcode"
	"taskpad/internal/output"
	"taskpad/internal/service"
)

func init() {
	Register(&ShowCmd{})
}

// ShowCmd implements the show command.
type ShowCmd struct{}

func (c *ShowCmd) Name() string      { return "show" }
func (c *ShowCmd) Aliases() []string { return nil }
func (c *ShowCmd) Synopsis() string  { return "Show every field of a task" }
func (c *ShowCmd) Usage() string     { return "taskpad show <ref>" }
func (c *ShowCmd) NeedsStore() bool  { return true }

func (c *ShowCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ShowCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	task, _, err := resolveTask(ctx, svc, args)
	if err != nil {
		return reportError(errOut, err)
	}
	th, err := svc.Theme(ctx)
	if err != nil {
		return reportError(errOut, err)
	}

	output.New(out, th).Detail(task)
	return exitcode.Success
}
