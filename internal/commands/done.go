package commands

import (
	"context"
	"flag"
	"io"

	"gtasksync/internal/config"
	"gtasksync/internal/exitcode"
	"gtasksync/internal/service"
	"gtasksync/internal/todo"
)

func init() {
	Register(&DoneCmd{})
	Register(&UndoCmd{})
}

// DoneCmd implements the done command.
type DoneCmd struct {
	listName string
}

// SetListName sets the list name (for testing).
func (c *DoneCmd) SetListName(name string) {
	c.listName = name
}

func (c *DoneCmd) Name() string      { return "done" }
func (c *DoneCmd) Aliases() []string { return nil }
func (c *DoneCmd) Synopsis() string  { return "Mark a task completed" }
func (c *DoneCmd) Usage() string     { return "gtasksync done [--list <list-name>] <n>" }
func (c *DoneCmd) NeedsAuth() bool   { return true }

func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.listName, "list", "", "")
	fs.StringVar(&c.listName, "l", "", "")
}

func (c *DoneCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	return runSetStatus(ctx, cfg, svc, c.listName, todo.Completed, args, out, errOut)
}

// UndoCmd reopens a completed task.
type UndoCmd struct {
	listName string
}

func (c *UndoCmd) Name() string      { return "undo" }
func (c *UndoCmd) Aliases() []string { return []string{"reopen"} }
func (c *UndoCmd) Synopsis() string  { return "Mark a task as needing action" }
func (c *UndoCmd) Usage() string     { return "gtasksync undo [--list <list-name>] <n>" }
func (c *UndoCmd) NeedsAuth() bool   { return true }

func (c *UndoCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.listName, "list", "", "")
	fs.StringVar(&c.listName, "l", "", "")
}

func (c *UndoCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	return runSetStatus(ctx, cfg, svc, c.listName, todo.NeedsAction, args, out, errOut)
}

// runSetStatus is the shared implementation of done and undo.
func runSetStatus(ctx context.Context, cfg *config.Config, svc service.Service, listName string, status todo.Status, args []string, out, errOut io.Writer) int {
	num, err := ParseTaskRef(args)
	if err != nil {
		return refError(errOut, err)
	}

	s, code := openList(ctx, cfg, svc, listName, nil, errOut)
	if code != exitcode.Success {
		return code
	}
	item, err := lookupItem(s.items(), num)
	if err != nil {
		return refError(errOut, err)
	}

	item.Status = status
	if err := s.list.Update(ctx, item); err != nil {
		return reportError(errOut, err)
	}
	return printOK(cfg, out)
}
