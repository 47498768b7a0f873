package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskpad/internal/config"
	"taskpad/internal/exitcode"
	"taskpad/internal/service"
	"taskpad/internal/todo"
)

func init() {
	Register(&EditCmd{})
}

// EditCmd implements the edit command. Only the given flags change the task.
type EditCmd struct {
	title    optString
	text     optString
	due      optString
	category optString
	color    optString
	noDue    bool
	done     bool
	undone   bool
}

func (c *EditCmd) Name() string      { return "edit" }
func (c *EditCmd) Aliases() []string { return nil }
func (c *EditCmd) Synopsis() string  { return "Change fields of a task" }
func (c *EditCmd) Usage() string {
	return "taskpad edit <ref> [--title <t>] [--text <t>] [--due <date> | --no-due] [--category <name>] [--color <hex>] [--done | --undone]"
}
func (c *EditCmd) NeedsStore() bool { return true }

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {
	*c = EditCmd{}
	fs.Var(&c.title, "title", "")
	fs.Var(&c.text, "text", "")
	fs.Var(&c.due, "due", "")
	fs.Var(&c.category, "category", "")
	fs.Var(&c.color, "color", "")
	fs.BoolVar(&c.noDue, "no-due", false, "")
	fs.BoolVar(&c.done, "done", false, "")
	fs.BoolVar(&c.undone, "undone", false, "")
}

func (c *EditCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	task, _, err := resolveTask(ctx, svc, args)
	if err != nil {
		return reportError(errOut, err)
	}

	p, err := c.patch(ctx, svc)
	if err != nil {
		return reportError(errOut, err)
	}
	if p.IsEmpty() {
		fmt.Fprintln(errOut, "error: nothing to change")
		return exitcode.UserError
	}

	if err := svc.EditTodo(ctx, task.ID, p); err != nil {
		return reportError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}

// patch builds the partial update from the flags that were given.
func (c *EditCmd) patch(ctx context.Context, svc service.Service) (todo.Patch, error) {
	if c.due.set && c.noDue {
		return todo.Patch{}, usageErrorf("cannot use both --due and --no-due")
	}
	if c.done && c.undone {
		return todo.Patch{}, usageErrorf("cannot use both --done and --undone")
	}
	if c.text.set && todo.IsBlank(c.text.value) {
		return todo.Patch{}, service.ErrEmptyText
	}

	p := todo.Patch{
		Title:        c.title.ptr(),
		Text:         c.text.ptr(),
		Color:        c.color.ptr(),
		ClearDueDate: c.noDue,
	}

	if c.due.set {
		due, err := parseDue(c.due.value)
		if err != nil {
			return todo.Patch{}, err
		}
		p.DueDate = &due
	}

	// An empty --category moves the task out of its category.
	if c.category.set {
		if c.category.value != "" {
			if _, err := categoryByName(ctx, svc, c.category.value); err != nil {
				return todo.Patch{}, err
			}
		}
		p.Category = c.category.ptr()
	}

	switch {
	case c.done:
		v := true
		p.Completed = &v
	case c.undone:
		v := false
		p.Completed = &v
	}
	return p, nil
}
