// Package coordinator keeps the latest snapshot of one task list, refreshing
// it on a fixed interval or on demand and notifying listeners on change.
package coordinator

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"gtasksync/internal/logging"
	"gtasksync/internal/metrics"
	"gtasksync/internal/service"
)

// DefaultInterval is the polling cadence.
const DefaultInterval = 15 * time.Minute

// Fetcher returns the full task collection of one list.
type Fetcher func(ctx context.Context) ([]service.Task, error)

// Options configures a Coordinator. Zero values select defaults.
type Options struct {
	Interval time.Duration
	Logger   *slog.Logger
	Metrics  *metrics.Metrics
}

// Coordinator is a single-writer, multi-reader cache of a list snapshot.
// A snapshot is replaced wholesale and never modified afterwards.
type Coordinator struct {
	name     string
	fetch    Fetcher
	interval time.Duration
	logger   *slog.Logger
	metrics  *metrics.Metrics

	polls singleflight.Group

	mu      sync.RWMutex
	data    []service.Task
	fetched bool
	seq     uint64 // sequence of the fetch that produced data
	nextSeq uint64
	lastErr error

	listenersMu sync.Mutex
	listeners   map[int]func([]service.Task)
	nextID      int

	// notifyMu serializes listener calls; it is held while they run, so a
	// listener must not call Refresh.
	notifyMu    sync.Mutex
	notifiedSeq uint64
}

// New creates a coordinator for the list called name. No fetch happens until
// Refresh or Run is called.
func New(name string, fetch Fetcher, opts Options) *Coordinator {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	return &Coordinator{
		name:      name,
		fetch:     fetch,
		interval:  opts.Interval,
		logger:    logging.WithList(logging.OrDefault(opts.Logger), name),
		metrics:   opts.Metrics,
		listeners: make(map[int]func([]service.Task)),
	}
}

// Interval returns the polling cadence.
func (c *Coordinator) Interval() time.Duration {
	return c.interval
}

// Data returns a copy of the latest snapshot. ok is false until the first
// successful fetch; an empty list after that is reported with ok true.
func (c *Coordinator) Data() (tasks []service.Task, ok bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.fetched {
		return nil, false
	}
	return slices.Clone(c.data), true
}

// LastError returns the error of the most recent fetch, nil if it succeeded.
func (c *Coordinator) LastError() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastErr
}

// Refresh fetches a new snapshot and waits for it to be stored. Every call
// starts its own fetch, so a caller that mutated the list before calling
// Refresh observes its change afterwards. A fetch that finishes after a
// later one has already stored its snapshot is discarded, whatever its
// outcome, and Refresh returns nil.
func (c *Coordinator) Refresh(ctx context.Context) error {
	c.mu.Lock()
	c.nextSeq++
	seq := c.nextSeq
	c.mu.Unlock()

	start := time.Now()
	tasks, err := c.fetch(ctx)
	elapsed := time.Since(start)
	c.metrics.RecordRefresh(c.name, elapsed, len(tasks), err)

	c.mu.Lock()
	if seq < c.seq {
		c.mu.Unlock()
		c.logger.Debug("discarding superseded fetch", logging.Err(err))
		return nil
	}
	if err != nil {
		c.lastErr = err
		c.mu.Unlock()
		c.logger.Warn("refresh failed", logging.Duration(elapsed), logging.Err(err))
		return err
	}
	changed := !c.fetched || !slices.Equal(c.data, tasks)
	c.data = tasks
	c.fetched = true
	c.seq = seq
	c.lastErr = nil
	c.mu.Unlock()

	c.logger.Debug("refreshed", logging.Count(len(tasks)), logging.Duration(elapsed), slog.Bool("changed", changed))
	if changed {
		c.notify(seq, tasks)
	}
	return nil
}

// Poll refreshes unless a poll is already running, in which case it waits
// for that one. Use Refresh after a mutation instead.
func (c *Coordinator) Poll(ctx context.Context) error {
	_, err, _ := c.polls.Do("poll", func() (any, error) {
		return nil, c.Refresh(ctx)
	})
	return err
}

// Run polls immediately and then on every interval tick until ctx is done.
// Fetch errors are logged and kept in LastError; they do not stop the loop.
func (c *Coordinator) Run(ctx context.Context) error {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		_ = c.Poll(ctx)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// AddListener registers fn to be called with each changed snapshot. Calls
// are serialized and arrive in snapshot order; a snapshot older than one
// already delivered is not delivered. The returned function removes fn.
func (c *Coordinator) AddListener(fn func([]service.Task)) (remove func()) {
	c.listenersMu.Lock()
	defer c.listenersMu.Unlock()
	id := c.nextID
	c.nextID++
	c.listeners[id] = fn
	return func() {
		c.listenersMu.Lock()
		defer c.listenersMu.Unlock()
		delete(c.listeners, id)
	}
}

func (c *Coordinator) notify(seq uint64, tasks []service.Task) {
	c.notifyMu.Lock()
	defer c.notifyMu.Unlock()
	if seq <= c.notifiedSeq {
		return
	}
	c.notifiedSeq = seq

	c.listenersMu.Lock()
	fns := make([]func([]service.Task), 0, len(c.listeners))
	for _, fn := range c.listeners {
		fns = append(fns, fn)
	}
	c.listenersMu.Unlock()

	for _, fn := range fns {
		fn(slices.Clone(tasks))
	}
}
