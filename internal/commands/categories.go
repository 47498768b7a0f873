package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"taskpad/internal/config"
	"taskpad/internal/exitcode"
	"taskpad/internal/output"
	"taskpad/internal/service"
)

func init() {
	Register(&CategoriesCmd{})
	Register(&AddCatCmd{})
	Register(&RmCatCmd{})
}

// CategoriesCmd implements the categories command.
type CategoriesCmd struct{}

func (c *CategoriesCmd) Name() string      { return "categories" }
func (c *CategoriesCmd) Aliases() []string { return []string{"cats"} }
func (c *CategoriesCmd) Synopsis() string  { return "List categories" }
func (c *CategoriesCmd) Usage() string     { return "taskpad categories" }
func (c *CategoriesCmd) NeedsStore() bool  { return true }

func (c *CategoriesCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *CategoriesCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	cats, err := svc.Categories(ctx)
	if err != nil {
		return reportError(errOut, err)
	}
	th, err := svc.Theme(ctx)
	if err != nil {
		return reportError(errOut, err)
	}

	if len(cats) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, "no categories found")
		}
		return exitcode.Success
	}

	p := output.New(out, th)
	for i, cat := range cats {
		p.Category(i+1, cat)
	}
	return exitcode.Success
}

// AddCatCmd implements the addcat command.
type AddCatCmd struct {
	color string
}

func (c *AddCatCmd) Name() string      { return "addcat" }
func (c *AddCatCmd) Aliases() []string { return nil }
func (c *AddCatCmd) Synopsis() string  { return "Create a category" }
func (c *AddCatCmd) Usage() string     { return "taskpad addcat [--color <hex>] <name...>" }
func (c *AddCatCmd) NeedsStore() bool  { return true }

func (c *AddCatCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.color, "color", "", "")
}

func (c *AddCatCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	name := strings.TrimSpace(strings.Join(args, " "))
	if name == "" {
		fmt.Fprintln(errOut, "error: category name required")
		return exitcode.UserError
	}

	color := c.color
	if color == "" {
		color = cfg.DefaultColor()
	}

	if _, err := svc.AddCategory(ctx, name, color); err != nil {
		return reportError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}

// RmCatCmd implements the rmcat command. Tasks filed under the category's
// name are deleted with it.
type RmCatCmd struct{}

func (c *RmCatCmd) Name() string      { return "rmcat" }
func (c *RmCatCmd) Aliases() []string { return nil }
func (c *RmCatCmd) Synopsis() string  { return "Delete a category and its tasks" }
func (c *RmCatCmd) Usage() string     { return "taskpad rmcat <number|name>" }
func (c *RmCatCmd) NeedsStore() bool  { return true }

func (c *RmCatCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *RmCatCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	ref := strings.TrimSpace(strings.Join(args, " "))
	if ref == "" {
		fmt.Fprintln(errOut, "error: category required")
		return exitcode.UserError
	}

	cats, err := svc.Categories(ctx)
	if err != nil {
		return reportError(errOut, err)
	}
	cat, err := findCategory(cats, ref)
	if err != nil {
		return reportError(errOut, err)
	}

	removed, err := svc.RemoveCategory(ctx, cat.ID)
	if err != nil {
		return reportError(errOut, err)
	}
	n, err := svc.RemoveTodosByCategory(ctx, removed.Name)
	if err != nil {
		return reportError(errOut, err)
	}

	if !cfg.Quiet {
		if n > 0 {
			fmt.Fprintf(out, "ok (removed %d tasks)\n", n)
		} else {
			fmt.Fprintln(out, "ok")
		}
	}
	return exitcode.Success
}
