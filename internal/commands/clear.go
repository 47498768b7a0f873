package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskpad/internal/config"
	"taskpad/internal/exitcode"
	"taskpad/internal/service"
)

func init() {
	Register(&ClearCmd{})
}

// ClearCmd implements the clear command: it deletes every task, or every
// task of one category.
type ClearCmd struct {
	category string
	force    bool
}

// SetCategory sets the category filter (for testing).
func (c *ClearCmd) SetCategory(name string) {
	c.category = name
}

// SetForce sets the force flag (for testing).
func (c *ClearCmd) SetForce(force bool) {
	c.force = force
}

func (c *ClearCmd) Name() string      { return "clear" }
func (c *ClearCmd) Aliases() []string { return nil }
func (c *ClearCmd) Synopsis() string  { return "Delete all tasks, or all tasks of a category" }
func (c *ClearCmd) Usage() string     { return "taskpad clear [--category <name>] [--force]" }
func (c *ClearCmd) NeedsStore() bool  { return true }

func (c *ClearCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.category, "category", "", "")
	fs.StringVar(&c.category, "c", "", "")
	fs.BoolVar(&c.force, "force", false, "")
}

func (c *ClearCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	todos, err := svc.Todos(ctx)
	if err != nil {
		return reportError(errOut, err)
	}
	count := 0
	for _, t := range todos {
		if c.category == "" || t.Category == c.category {
			count++
		}
	}

	if count == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, "no tasks found")
		}
		return exitcode.Success
	}
	if !c.force {
		fmt.Fprintf(errOut, "error: would delete %d tasks (use --force)\n", count)
		return exitcode.UserError
	}

	var removed int
	if c.category != "" {
		removed, err = svc.RemoveTodosByCategory(ctx, c.category)
	} else {
		removed, err = svc.RemoveAllTodos(ctx)
	}
	if err != nil {
		return reportError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "removed %d tasks\n", removed)
	}
	return exitcode.Success
}
