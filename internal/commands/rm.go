package commands

import (
	"context"
	"flag"
	"io"

	"gtasksync/internal/config"
	"gtasksync/internal/exitcode"
	"gtasksync/internal/service"
)

func init() {
	Register(&RmCmd{})
}

// RmCmd implements the rm command.
type RmCmd struct {
	listName string
}

func (c *RmCmd) Name() string      { return "rm" }
func (c *RmCmd) Aliases() []string { return []string{"delete"} }
func (c *RmCmd) Synopsis() string  { return "Delete tasks" }
func (c *RmCmd) Usage() string     { return "gtasksync rm [--list <list-name>] <n>..." }
func (c *RmCmd) NeedsAuth() bool   { return true }

func (c *RmCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.listName, "list", "", "")
	fs.StringVar(&c.listName, "l", "", "")
}

func (c *RmCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	nums, err := ParseTaskRefs(args)
	if err != nil {
		return refError(errOut, err)
	}

	s, code := openList(ctx, cfg, svc, c.listName, nil, errOut)
	if code != exitcode.Success {
		return code
	}

	// Resolve every number against the same snapshot before deleting any
	items := s.items()
	uids := make([]string, 0, len(nums))
	for _, num := range nums {
		item, err := lookupItem(items, num)
		if err != nil {
			return refError(errOut, err)
		}
		uids = append(uids, item.UID)
	}

	if err := s.list.Delete(ctx, uids); err != nil {
		return reportError(errOut, err)
	}
	return printOK(cfg, out)
}
