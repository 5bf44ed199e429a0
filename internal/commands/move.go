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
	Register(&MoveCmd{})
}

// MoveCmd implements the move command.
type MoveCmd struct {
	listName string
	after    int
}

func (c *MoveCmd) Name() string      { return "move" }
func (c *MoveCmd) Aliases() []string { return []string{"mv"} }
func (c *MoveCmd) Synopsis() string  { return "Reorder a task" }
func (c *MoveCmd) Usage() string     { return "gtasksync move [--list <list-name>] [--after <m>] <n>" }
func (c *MoveCmd) NeedsAuth() bool   { return true }

func (c *MoveCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.listName, "list", "", "")
	fs.StringVar(&c.listName, "l", "", "")
	fs.IntVar(&c.after, "after", 0, "")
}

func (c *MoveCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	num, err := ParseTaskRef(args)
	if err != nil {
		return refError(errOut, err)
	}
	if c.after < 0 {
		return refError(errOut, &OutOfRangeError{Num: c.after})
	}
	if c.after == num {
		fmt.Fprintln(errOut, "error: cannot move a task after itself")
		return exitcode.UserError
	}

	s, code := openList(ctx, cfg, svc, c.listName, nil, errOut)
	if code != exitcode.Success {
		return code
	}
	items := s.items()
	item, err := lookupItem(items, num)
	if err != nil {
		return refError(errOut, err)
	}

	// No --after moves the task to the top
	var previous string
	if c.after > 0 {
		prev, err := lookupItem(items, c.after)
		if err != nil {
			return refError(errOut, err)
		}
		previous = prev.UID
	}

	if err := s.list.Move(ctx, item.UID, previous); err != nil {
		return reportError(errOut, err)
	}
	return printOK(cfg, out)
}
