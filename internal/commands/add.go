package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"taskpad/internal/category"
	"taskpad/internal/config"
	"taskpad/internal/exitcode"
	"taskpad/internal/service"
	"taskpad/internal/todo"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct {
	title    string
	due      string
	category string
	color    string
}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Create a task" }
func (c *AddCmd) Usage() string {
	return "taskpad add [--title <t>] [--due <date>] [--category <name>] [--color <hex>] <text...>"
}
func (c *AddCmd) NeedsStore() bool { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.title, "title", "", "")
	fs.StringVar(&c.title, "t", "", "")
	fs.StringVar(&c.due, "due", "", "")
	fs.StringVar(&c.category, "category", "", "")
	fs.StringVar(&c.category, "c", "", "")
	fs.StringVar(&c.color, "color", "", "")
}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	text := strings.Join(args, " ")
	if todo.IsBlank(text) {
		fmt.Fprintln(errOut, "error: description required")
		return exitcode.UserError
	}

	in := todo.NewTodo{
		Title: c.title,
		Text:  text,
		Color: c.color,
	}

	if c.due != "" {
		due, err := parseDue(c.due)
		if err != nil {
			return reportError(errOut, err)
		}
		in.DueDate = &due
	}

	if c.category != "" {
		cat, err := categoryByName(ctx, svc, c.category)
		if err != nil {
			return reportError(errOut, err)
		}
		in.Category = cat.Name
		if in.Color == "" {
			in.Color = cat.Color
		}
	}
	if in.Color == "" {
		in.Color = cfg.DefaultColor()
	}

	if _, err := svc.AddTodo(ctx, in); err != nil {
		return reportError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}

// categoryByName returns the first category called name. Todos link to
// categories by name, so any match will do.
func categoryByName(ctx context.Context, svc service.Service, name string) (category.Category, error) {
	cats, err := svc.Categories(ctx)
	if err != nil {
		return category.Category{}, err
	}
	for _, cat := range cats {
		if cat.Name == name {
			return cat, nil
		}
	}
	return category.Category{}, usageErrorf("category not found: %s", name)
}
