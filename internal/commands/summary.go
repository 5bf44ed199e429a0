package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"gtasksync/internal/config"
	"gtasksync/internal/exitcode"
	"gtasksync/internal/logging"
	"gtasksync/internal/output"
	"gtasksync/internal/service"
	"gtasksync/internal/todo"
	"gtasksync/internal/todolist"
)

func init() {
	Register(&SummaryCmd{})
}

// SummaryCmd prints the categorized summaries and optionally publishes them.
type SummaryCmd struct {
	listName string
	publish  bool
}

func (c *SummaryCmd) Name() string      { return "summary" }
func (c *SummaryCmd) Aliases() []string { return nil }
func (c *SummaryCmd) Synopsis() string  { return "Print tasks due today, this week and later" }
func (c *SummaryCmd) Usage() string     { return "gtasksync summary [--list <list-name>] [--publish]" }
func (c *SummaryCmd) NeedsAuth() bool   { return true }

func (c *SummaryCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.listName, "list", "", "")
	fs.StringVar(&c.listName, "l", "", "")
	fs.BoolVar(&c.publish, "publish", false, "")
}

func (c *SummaryCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	s, code := openList(ctx, cfg, svc, c.listName, nil, errOut)
	if code != exitcode.Success {
		return code
	}

	cats, err := s.list.Categorize()
	if err != nil {
		logging.OrDefault(cfg.Logger).Warn("tasks left out of summaries", logging.Err(err))
	}
	for i, name := range todolist.PublishedBuckets {
		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintln(out, output.Summary(name, cats.Bucket(name)))
	}
	if len(cats.Overdue) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, output.Summary(todo.BucketOverdue, cats.Overdue))
	}

	if c.publish {
		if err := s.list.PublishSummaries(ctx); err != nil {
			fmt.Fprintf(errOut, "error: publish failed: %v\n", err)
			return exitcode.BackendError
		}
	}
	return exitcode.Success
}
