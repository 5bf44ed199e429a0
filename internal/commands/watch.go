package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"gtasksync/internal/config"
	"gtasksync/internal/exitcode"
	"gtasksync/internal/logging"
	"gtasksync/internal/metrics"
	"gtasksync/internal/service"
)

func init() {
	Register(&WatchCmd{})
}

// WatchCmd polls a list and republishes the summaries whenever it changes.
type WatchCmd struct {
	listName string
	interval time.Duration
}

func (c *WatchCmd) Name() string      { return "watch" }
func (c *WatchCmd) Aliases() []string { return nil }
func (c *WatchCmd) Synopsis() string  { return "Poll a list and publish summaries on change" }
func (c *WatchCmd) Usage() string {
	return "gtasksync watch [--list <list-name>] [--interval <duration>]"
}
func (c *WatchCmd) NeedsAuth() bool { return true }

func (c *WatchCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.listName, "list", "", "")
	fs.StringVar(&c.listName, "l", "", "")
	fs.DurationVar(&c.interval, "interval", 0, "")
}

func (c *WatchCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}
	if c.interval < 0 {
		fmt.Fprintf(errOut, "error: invalid interval: %s\n", c.interval)
		return exitcode.UserError
	}
	if c.interval > 0 {
		cfg.Settings.PollInterval = c.interval
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m, err := metrics.New(reg)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.BackendError
	}

	s, code := openList(ctx, cfg, svc, c.listName, m, errOut)
	if code != exitcode.Success {
		return code
	}
	logger := logging.WithList(logging.OrDefault(cfg.Logger), s.info.ID)

	publish := func() {
		if err := s.list.PublishSummaries(ctx); err != nil {
			logger.Warn("publishing summaries failed", logging.Err(err))
		}
	}
	publish()
	remove := s.coord.AddListener(func([]service.Task) { publish() })
	defer remove()

	if !cfg.Quiet {
		fmt.Fprintf(out, "watching %s every %s\n", s.list.Name(), s.coord.Interval())
	}

	var srv *metrics.Server
	if addr := cfg.Settings.MetricsAddr; addr != "" {
		if srv, err = metrics.NewServer(addr, reg, logger); err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.coord.Run(gctx)
	})
	if srv != nil {
		g.Go(func() error {
			return srv.Serve(gctx)
		})
	}

	err = g.Wait()
	if lastErr := s.coord.LastError(); lastErr != nil {
		logger.Warn("last refresh failed", logging.Err(lastErr))
	}
	if err != nil && !(errors.Is(err, context.Canceled) && ctx.Err() != nil) {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.BackendError
	}
	return exitcode.Success
}
