package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"gtasksync/internal/config"
	"gtasksync/internal/exitcode"
	"gtasksync/internal/service"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "gtasksync help" }
func (c *HelpCmd) NeedsAuth() bool   { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  gtasksync                                          List tasks in the default list
  gtasksync list [common flags] [--list <list-name>] List tasks, numbered in list order
  gtasksync lists [common flags]
  gtasksync add [common flags] [--list <list-name>] [--due YYYY-MM-DD] [--notes <text>] <title...>
  gtasksync create ...                               Alias for add
  gtasksync done [common flags] [--list <list-name>] <n>
  gtasksync undo [common flags] [--list <list-name>] <n>
  gtasksync edit [common flags] [--list <list-name>] [--title <text>]
                 [--due YYYY-MM-DD | --no-due] [--notes <text>] <n>
  gtasksync rm [common flags] [--list <list-name>] <n>...
  gtasksync move [common flags] [--list <list-name>] [--after <m>] <n>
  gtasksync summary [common flags] [--list <list-name>] [--publish]
  gtasksync watch [common flags] [--list <list-name>] [--interval <duration>]
  gtasksync login [common flags]
  gtasksync logout [common flags]
  gtasksync help
  gtasksync version

Common flags:
  --config <dir>   Override config directory
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr

Settings are read from config.yaml in the config directory and can be
overridden with GTASKSYNC_* environment variables.
`
