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
	"gtasksync/internal/service"
)

func init() {
	Register(&EditCmd{})
}

// optString is a string flag that remembers whether it was given.
type optString struct {
	value string
	set   bool
}

func (o *optString) String() string { return o.value }

func (o *optString) Set(s string) error {
	o.value, o.set = s, true
	return nil
}

// EditCmd implements the edit command.
type EditCmd struct {
	listName string
	title    optString
	due      optString
	notes    optString
	noDue    bool
}

func (c *EditCmd) Name() string      { return "edit" }
func (c *EditCmd) Aliases() []string { return nil }
func (c *EditCmd) Synopsis() string  { return "Change a task's title, due date or notes" }
func (c *EditCmd) Usage() string {
	return "gtasksync edit [--list <list-name>] [--title <text>] [--due YYYY-MM-DD | --no-due] [--notes <text>] <n>"
}
func (c *EditCmd) NeedsAuth() bool { return true }

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {
	c.title, c.due, c.notes = optString{}, optString{}, optString{}
	fs.StringVar(&c.listName, "list", "", "")
	fs.StringVar(&c.listName, "l", "", "")
	fs.Var(&c.title, "title", "")
	fs.Var(&c.due, "due", "")
	fs.Var(&c.notes, "notes", "")
	fs.BoolVar(&c.noDue, "no-due", false, "")
}

func (c *EditCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	num, err := ParseTaskRef(args)
	if err != nil {
		return refError(errOut, err)
	}
	if c.due.set && c.noDue {
		fmt.Fprintln(errOut, "error: cannot use both --due and --no-due")
		return exitcode.UserError
	}
	if !c.title.set && !c.due.set && !c.notes.set && !c.noDue {
		fmt.Fprintln(errOut, "error: nothing to change")
		return exitcode.UserError
	}
	if c.title.set && strings.TrimSpace(c.title.value) == "" {
		fmt.Fprintln(errOut, "error: title required")
		return exitcode.UserError
	}
	var due time.Time
	if c.due.set {
		if due, err = parseDueFlag(c.due.value); err != nil {
			return refError(errOut, err)
		}
	}

	s, code := openList(ctx, cfg, svc, c.listName, nil, errOut)
	if code != exitcode.Success {
		return code
	}
	item, err := lookupItem(s.items(), num)
	if err != nil {
		return refError(errOut, err)
	}

	if c.title.set {
		item.Summary = c.title.value
	}
	if c.notes.set {
		item.Description = c.notes.value
	}
	switch {
	case c.due.set:
		item.Due = due
	case c.noDue:
		item.Due = time.Time{}
	}

	if err := s.list.Update(ctx, item); err != nil {
		return reportError(errOut, err)
	}
	return printOK(cfg, out)
}
