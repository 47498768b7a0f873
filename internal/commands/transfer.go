package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"taskpad/internal/config"
	"taskpad/internal/exitcode"
	"taskpad/internal/service"
	"taskpad/internal/transfer"
)

func init() {
	Register(&ExportCmd{})
	Register(&ImportCmd{stdin: os.Stdin})
	Register(&ValidateCmd{stdin: os.Stdin})
}

// ExportCmd implements the export command.
type ExportCmd struct {
	format string
	output string
}

func (c *ExportCmd) Name() string      { return "export" }
func (c *ExportCmd) Aliases() []string { return nil }
func (c *ExportCmd) Synopsis() string  { return "Write all tasks as JSON or YAML" }
func (c *ExportCmd) Usage() string     { return "taskpad export [--format json|yaml] [--output <file>]" }
func (c *ExportCmd) NeedsStore() bool  { return true }

func (c *ExportCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.format, "format", string(transfer.FormatJSON), "")
	fs.StringVar(&c.format, "f", string(transfer.FormatJSON), "")
	fs.StringVar(&c.output, "output", "", "")
	fs.StringVar(&c.output, "o", "", "")
}

func (c *ExportCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	format, err := transfer.ParseFormat(c.format)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	todos, err := svc.Todos(ctx)
	if err != nil {
		return reportError(errOut, err)
	}
	opts := transfer.Options{Format: format, Indent: cfg.ExportIndent()}

	if c.output == "" || c.output == "-" {
		if err := transfer.Export(out, todos, opts); err != nil {
			fmt.Fprintf(errOut, "error: cannot export: %v\n", err)
			return exitcode.StorageError
		}
		return exitcode.Success
	}

	f, err := os.OpenFile(c.output, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		fmt.Fprintf(errOut, "error: cannot write %s: %v\n", c.output, err)
		return exitcode.StorageError
	}
	err = transfer.Export(f, todos, opts)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		fmt.Fprintf(errOut, "error: cannot write %s: %v\n", c.output, err)
		return exitcode.StorageError
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "exported %d tasks to %s\n", len(todos), c.output)
	}
	return exitcode.Success
}

// ImportCmd implements the import command. Records are merged by default;
// --replace drops every existing task first.
type ImportCmd struct {
	replace bool
	stdin   io.Reader
}

// SetStdin sets the reader used for "-" (for testing).
func (c *ImportCmd) SetStdin(r io.Reader) {
	c.stdin = r
}

// SetReplace sets the replace flag (for testing).
func (c *ImportCmd) SetReplace(replace bool) {
	c.replace = replace
}

func (c *ImportCmd) Name() string      { return "import" }
func (c *ImportCmd) Aliases() []string { return nil }
func (c *ImportCmd) Synopsis() string  { return "Load tasks from a JSON export" }
func (c *ImportCmd) Usage() string     { return "taskpad import [--replace] <file|->" }
func (c *ImportCmd) NeedsStore() bool  { return true }

func (c *ImportCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.replace, "replace", false, "")
}

func (c *ImportCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	name, code := singleFileArg(args, errOut)
	if code != exitcode.Success {
		return code
	}

	r, closeFn, err := openInput(name, c.stdin)
	if err != nil {
		fmt.Fprintf(errOut, "error: cannot read %s: %v\n", name, err)
		return exitcode.StorageError
	}
	defer closeFn()

	// Parse everything before touching the store so a bad file changes nothing.
	records, err := transfer.Parse(r)
	if err != nil {
		fmt.Fprintf(errOut, "error: cannot import %s: %v\n", name, err)
		if errors.Is(err, transfer.ErrMalformed) {
			return exitcode.UserError
		}
		return exitcode.StorageError
	}

	strategy := transfer.Merge
	if c.replace {
		strategy = transfer.Replace
	}
	res, err := svc.ImportTodos(ctx, records, strategy)
	if err != nil {
		return reportError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "imported %d tasks", res.Added)
		var notes []string
		if res.Removed > 0 {
			notes = append(notes, fmt.Sprintf("replaced %d", res.Removed))
		}
		if res.Duplicates > 0 {
			notes = append(notes, fmt.Sprintf("%d duplicates skipped", res.Duplicates))
		}
		if res.Rejected > 0 {
			notes = append(notes, fmt.Sprintf("%d without text skipped", res.Rejected))
		}
		if len(notes) > 0 {
			fmt.Fprintf(out, " (%s)", strings.Join(notes, ", "))
		}
		fmt.Fprintln(out)
	}
	return exitcode.Success
}

// ValidateCmd implements the validate command. It checks a file against the
// export schema without loading the state.
type ValidateCmd struct {
	stdin io.Reader
}

// SetStdin sets the reader used for "-" (for testing).
func (c *ValidateCmd) SetStdin(r io.Reader) {
	c.stdin = r
}

func (c *ValidateCmd) Name() string      { return "validate" }
func (c *ValidateCmd) Aliases() []string { return nil }
func (c *ValidateCmd) Synopsis() string  { return "Check a file against the export schema" }
func (c *ValidateCmd) Usage() string     { return "taskpad validate <file|->" }
func (c *ValidateCmd) NeedsStore() bool  { return false }

func (c *ValidateCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ValidateCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	name, code := singleFileArg(args, errOut)
	if code != exitcode.Success {
		return code
	}

	r, closeFn, err := openInput(name, c.stdin)
	if err != nil {
		fmt.Fprintf(errOut, "error: cannot read %s: %v\n", name, err)
		return exitcode.StorageError
	}
	defer closeFn()

	if err := transfer.Validate(r); err != nil {
		fmt.Fprintf(errOut, "error: %s is not a valid export\n", name)
		for _, line := range strings.Split(err.Error(), "\n") {
			fmt.Fprintf(errOut, "  %s\n", line)
		}
		return exitcode.UserError
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}

func singleFileArg(args []string, errOut io.Writer) (string, int) {
	if len(args) == 0 {
		fmt.Fprintln(errOut, "error: file required")
		return "", exitcode.UserError
	}
	if len(args) > 1 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[1])
		return "", exitcode.UserError
	}
	return args[0], exitcode.Success
}

// openInput opens name for reading; "-" means stdin.
func openInput(name string, stdin io.Reader) (io.Reader, func(), error) {
	if name == "-" {
		if stdin == nil {
			stdin = os.Stdin
		}
		return stdin, func() {}, nil
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}
