// Package commands implements the gtasksync subcommands on top of a
// todolist.List.
package commands

import (
	"context"
	"flag"
	"io"

	"gtasksync/internal/config"
	"gtasksync/internal/service"
)

// Command is one gtasksync subcommand.
type Command interface {
	Name() string
	Aliases() []string

	// Synopsis is the one-line description shown by help.
	Synopsis() string
	Usage() string

	// NeedsAuth reports whether Run needs a Service. When false, Run
	// receives a nil svc.
	NeedsAuth() bool

	// RegisterFlags adds the command's own flags next to the common
	// --config, --quiet and --debug flags. It also resets flag state, since
	// commands are registered once and may run more than once.
	RegisterFlags(fs *flag.FlagSet)

	// Run executes the command with the positional arguments left after
	// flag parsing and returns the process exit code.
	Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int
}
