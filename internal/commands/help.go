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
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "taskpad help" }
func (c *HelpCmd) NeedsStore() bool  { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  taskpad                                      List all tasks
  taskpad list [--category <name>]             List tasks (alias: ls)
  taskpad add [--title <t>] [--due <date>] [--category <name>] [--color <hex>] <text...>
  taskpad show <ref>
  taskpad done <ref>                           Toggle open/done (alias: toggle)
  taskpad rm <ref>
  taskpad edit <ref> [--title <t>] [--text <t>] [--due <date> | --no-due]
               [--category <name>] [--color <hex>] [--done | --undone]
  taskpad clear [--category <name>] [--force]
  taskpad categories                           List categories (alias: cats)
  taskpad addcat [--color <hex>] <name...>
  taskpad rmcat <number|name>                  Delete a category and its tasks
  taskpad theme [dark|white|blue]
  taskpad export [--format json|yaml] [--output <file>]
  taskpad import [--replace] <file|->
  taskpad validate <file|->
  taskpad tui                                  Interactive list (alias: ui)
  taskpad init [--force]                       Write config.toml
  taskpad reset --force                        Delete the state file
  taskpad help
  taskpad version [--verbose]

A <ref> is a task number from "taskpad list" or a task id.
Dates are YYYY-MM-DD or "YYYY-MM-DD HH:MM" in local time.

Common flags:
  --config <dir>   Override config directory
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
`
