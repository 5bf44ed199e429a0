package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"gtasksync/internal/config"
	"gtasksync/internal/exitcode"
	"gtasksync/internal/output"
	"gtasksync/internal/service"
	"gtasksync/internal/todo"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct {
	listName string
	due      string
	notes    string
}

// SetListName sets the list name (for testing).
func (c *AddCmd) SetListName(name string) {
	c.listName = name
}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Create a task" }
func (c *AddCmd) Usage() string {
	return "gtasksync add [--list <list-name>] [--due YYYY-MM-DD] [--notes <text>] <title...>"
}
func (c *AddCmd) NeedsAuth() bool { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.listName, "list", "", "")
	fs.StringVar(&c.listName, "l", "", "")
	fs.StringVar(&c.due, "due", "", "")
	fs.StringVar(&c.notes, "notes", "", "")
}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	title := strings.Join(args, " ")
	if strings.TrimSpace(title) == "" {
		fmt.Fprintln(errOut, "error: title required")
		return exitcode.UserError
	}

	item := todo.Item{Summary: title, Status: todo.NeedsAction, Description: c.notes}
	if c.due != "" {
		due, err := parseDueFlag(c.due)
		if err != nil {
			return refError(errOut, err)
		}
		item.Due = due
	}

	s, code := openList(ctx, cfg, svc, c.listName, nil, errOut)
	if code != exitcode.Success {
		return code
	}
	if err := s.list.Create(ctx, item); err != nil {
		return reportError(errOut, err)
	}
	return printOK(cfg, out)
}

// parseDueFlag parses a YYYY-MM-DD command line date.
func parseDueFlag(s string) (time.Time, error) {
	t, err := time.Parse(output.DueLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid due date: %s (want YYYY-MM-DD)", s)
	}
	return todo.DateOf(t), nil
}
