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
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// Handles both `taskpad` (no args) and `taskpad list --category <name>`.
type ListCmd struct {
	category string
}

// SetCategory sets the category filter (for testing).
func (c *ListCmd) SetCategory(name string) {
	c.category = name
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List tasks" }
func (c *ListCmd) Usage() string     { return "taskpad list [--category <name>]" }
func (c *ListCmd) NeedsStore() bool  { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.category, "category", "", "")
	fs.StringVar(&c.category, "c", "", "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	todos, err := svc.Todos(ctx)
	if err != nil {
		return reportError(errOut, err)
	}
	th, err := svc.Theme(ctx)
	if err != nil {
		return reportError(errOut, err)
	}
	p := output.New(out, th)

	// Numbers are positions in the full list so they stay valid for
	// done/rm/edit while a filter is active.
	printed := 0
	for i, t := range todos {
		if c.category != "" && t.Category != c.category {
			continue
		}
		if printed == 0 && c.category != "" {
			p.Header(c.category)
		}
		p.Task(i+1, t)
		printed++
	}

	if printed == 0 && !cfg.Quiet {
		fmt.Fprintln(out, "no tasks found")
	}
	return exitcode.Success
}
