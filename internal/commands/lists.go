package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"gtasksync/internal/config"
	"gtasksync/internal/exitcode"
	"gtasksync/internal/output"
	"gtasksync/internal/service"
)

func init() {
	Register(&ListsCmd{})
}

// ListsCmd implements the lists command.
type ListsCmd struct{}

func (c *ListsCmd) Name() string      { return "lists" }
func (c *ListsCmd) Aliases() []string { return nil }
func (c *ListsCmd) Synopsis() string  { return "Print all lists" }
func (c *ListsCmd) Usage() string     { return "gtasksync lists [common flags]" }
func (c *ListsCmd) NeedsAuth() bool   { return true }

func (c *ListsCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ListsCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	lists, err := svc.ListLists(ctx)
	if err != nil {
		return reportError(errOut, err)
	}
	if len(lists) == 0 && !cfg.Quiet {
		fmt.Fprintln(out, "no lists found")
	}

	for _, list := range lists {
		output.FormatListName(out, list)
	}

	return exitcode.Success
}
