package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"gtasksync/internal/config"
	"gtasksync/internal/exitcode"
	"gtasksync/internal/output"
	"gtasksync/internal/service"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// Handles both `gtasksync` (no args) and `gtasksync list [<list-name>]`.
type ListCmd struct {
	listName string
}

// SetListName sets the list name (for testing).
func (c *ListCmd) SetListName(name string) {
	c.listName = name
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List tasks" }
func (c *ListCmd) Usage() string     { return "gtasksync list [--list <list-name>] [<list-name>]" }
func (c *ListCmd) NeedsAuth() bool   { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.listName, "list", "", "")
	fs.StringVar(&c.listName, "l", "", "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	listName := c.listName
	if len(args) > 0 {
		if listName != "" {
			fmt.Fprintln(errOut, "error: cannot use both --list and a list name argument")
			return exitcode.UserError
		}
		listName = strings.Join(args, " ")
		if strings.TrimSpace(listName) == "" {
			fmt.Fprintln(errOut, "error: list name required")
			return exitcode.UserError
		}
	}

	s, code := openList(ctx, cfg, svc, listName, nil, errOut)
	if code != exitcode.Success {
		return code
	}

	items := s.items()
	output.FormatListHeader(out, s.info.Title, s.info.IsDefault)
	for i, item := range items {
		output.FormatItem(out, i+1, item)
	}
	if len(items) == 0 && !cfg.Quiet {
		fmt.Fprintln(out, "no tasks found")
	}
	return exitcode.Success
}
