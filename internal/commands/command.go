// Package commands holds the taskpad subcommands and the registry the
// dispatcher resolves them from.
package commands

import (
	"context"
	"flag"
	"io"

	"taskpad/internal/config"
	"taskpad/internal/service"
)

// Command is one taskpad subcommand.
//
// The dispatcher parses flags into the command, opens the state file only
// when NeedsStore is true, and exits with the code Run returns (see the
// exitcode package). svc is nil for commands that work without the state
// file, such as help, version and validate.
type Command interface {
	Name() string
	Aliases() []string

	// Synopsis is the one-line summary shown by help.
	Synopsis() string
	Usage() string

	NeedsStore() bool
	RegisterFlags(fs *flag.FlagSet)

	// Run receives the positional arguments left after flag parsing.
	Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int
}
