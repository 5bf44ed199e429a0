// Package todolist binds one remote task list to a local to-do list.
//
// A List performs mutations through the task client, then forces and awaits
// a coordinator refresh, so a caller that sees a mutation return also sees
// its effect in Items. Items is a view over the coordinator's cached
// snapshot: sub-items dropped, ordered by position, translated to todo.Item.
package todolist

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"gtasksync/internal/logging"
	"gtasksync/internal/metrics"
	"gtasksync/internal/output"
	"gtasksync/internal/service"
	"gtasksync/internal/sink"
	"gtasksync/internal/todo"
)

// Feature is a capability a list supports.
type Feature uint

const (
	FeatureCreate Feature = 1 << iota
	FeatureUpdate
	FeatureDelete
	FeatureMove
	FeatureSetDueDate
	FeatureSetDescription
)

// PublishedBuckets are the summaries written after an update, in order.
var PublishedBuckets = []string{todo.BucketToday, todo.BucketThisWeek, todo.BucketUpcoming}

// Client is the part of the task service a List mutates through.
type Client interface {
	InsertTask(ctx context.Context, listID string, task service.Task) error
	PatchTask(ctx context.Context, listID, taskID string, task service.Task) error
	DeleteTasks(ctx context.Context, listID string, taskIDs []string) error
	MoveTask(ctx context.Context, listID, taskID, previousID string) error
}

// Snapshotter is the part of the coordinator a List reads through.
type Snapshotter interface {
	Data() ([]service.Task, bool)
	Refresh(ctx context.Context) error
}

// Config holds the collaborators of a List.
type Config struct {
	ListID  string
	Name    string
	EntryID string

	Client      Client
	Coordinator Snapshotter

	// Sink receives the categorized summaries; nil discards them.
	Sink sink.Sink

	// Location defines the local calendar day; nil means time.Local.
	Location *time.Location

	// Now returns the current time; nil means time.Now.
	Now func() time.Time

	Logger  *slog.Logger
	Metrics *metrics.Metrics
}

// List is a local to-do list backed by one remote task list.
type List struct {
	listID   string
	name     string
	uniqueID string
	client   Client
	coord    Snapshotter
	sink     sink.Sink
	loc      *time.Location
	now      func() time.Time
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

// New creates a List. Client and Coordinator are required.
func New(cfg Config) (*List, error) {
	if cfg.Client == nil || cfg.Coordinator == nil {
		return nil, errors.New("todolist: client and coordinator are required")
	}
	if cfg.Sink == nil {
		cfg.Sink = sink.Nop{}
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &List{
		listID:   cfg.ListID,
		name:     capitalize(cfg.Name),
		uniqueID: cfg.EntryID + "-" + cfg.ListID,
		client:   cfg.Client,
		coord:    cfg.Coordinator,
		sink:     cfg.Sink,
		loc:      cfg.Location,
		now:      cfg.Now,
		logger:   logging.WithList(logging.OrDefault(cfg.Logger), cfg.ListID),
		metrics:  cfg.Metrics,
	}, nil
}

// ID returns the remote list ID.
func (l *List) ID() string { return l.listID }

// Name returns the display name.
func (l *List) Name() string { return l.name }

// UniqueID returns "<entry id>-<list id>".
func (l *List) UniqueID() string { return l.uniqueID }

// Features reports the supported operations.
func (l *List) Features() Feature {
	return FeatureCreate | FeatureUpdate | FeatureDelete | FeatureMove |
		FeatureSetDueDate | FeatureSetDescription
}

// Items returns the current items, or ok false if no snapshot has been
// fetched yet. Tasks with unparsable due dates are logged and left out.
func (l *List) Items() (items []todo.Item, ok bool) {
	tasks, ok := l.coord.Data()
	if !ok {
		return nil, false
	}
	ordered := todo.Order(tasks)
	items = make([]todo.Item, 0, len(ordered))
	for _, t := range ordered {
		item, err := todo.ToLocal(t)
		if err != nil {
			l.logger.Warn("skipping task", logging.Err(err))
			continue
		}
		items = append(items, item)
	}
	return items, true
}

// Create adds an item to the list.
func (l *List) Create(ctx context.Context, item todo.Item) error {
	err := l.client.InsertTask(ctx, l.listID, todo.ToRemote(item, l.loc))
	l.metrics.RecordMutation(l.listID, "create", err)
	if err != nil {
		return fmt.Errorf("create item: %w", err)
	}
	return l.refresh(ctx)
}

// Update overwrites an existing item, identified by its UID, then publishes
// the categorized summaries. Summary failures are logged, not returned.
func (l *List) Update(ctx context.Context, item todo.Item) error {
	if item.UID == "" {
		return todo.ErrMissingIdentifier
	}
	err := l.client.PatchTask(ctx, l.listID, item.UID, todo.ToRemote(item, l.loc))
	l.metrics.RecordMutation(l.listID, "update", err)
	if err != nil {
		return fmt.Errorf("update item %s: %w", item.UID, err)
	}
	if err := l.refresh(ctx); err != nil {
		return err
	}
	if err := l.PublishSummaries(ctx); err != nil {
		l.logger.Warn("publishing summaries failed", logging.Operation("update"), logging.Err(err))
	}
	return nil
}

// Delete removes items by UID.
func (l *List) Delete(ctx context.Context, uids []string) error {
	err := l.client.DeleteTasks(ctx, l.listID, uids)
	l.metrics.RecordMutation(l.listID, "delete", err)
	if err != nil {
		return fmt.Errorf("delete items: %w", err)
	}
	return l.refresh(ctx)
}

// Move places uid after previousUID, or first when previousUID is empty.
func (l *List) Move(ctx context.Context, uid, previousUID string) error {
	err := l.client.MoveTask(ctx, l.listID, uid, previousUID)
	l.metrics.RecordMutation(l.listID, "move", err)
	if err != nil {
		return fmt.Errorf("move item %s: %w", uid, err)
	}
	return l.refresh(ctx)
}

// Categorize buckets the cached snapshot relative to the current local day.
// The error reports tasks skipped for malformed due dates.
func (l *List) Categorize() (todo.Categories, error) {
	tasks, _ := l.coord.Data()
	return todo.Categorize(tasks, l.now().In(l.loc))
}

// PublishSummaries writes the Today, This Week and Upcoming summaries of the
// cached snapshot to the sink, each overwriting its previous value. All three
// are attempted; the returned error joins the failures.
func (l *List) PublishSummaries(ctx context.Context) error {
	cats, err := l.Categorize()
	if err != nil {
		l.logger.Warn("tasks left out of summaries", logging.Err(err))
	}

	var errs []error
	for _, name := range PublishedBuckets {
		err := l.sink.Set(ctx, name, output.Summary(name, cats.Bucket(name)))
		l.metrics.RecordPublish(name, err)
		if err != nil {
			errs = append(errs, fmt.Errorf("sink %s: %w", name, err))
			continue
		}
		l.logger.Debug("summary published", logging.Sink(name), logging.Count(len(cats.Bucket(name))))
	}
	return errors.Join(errs...)
}

func (l *List) refresh(ctx context.Context) error {
	if err := l.coord.Refresh(ctx); err != nil {
		return fmt.Errorf("refresh list %s: %w", l.listID, err)
	}
	return nil
}

// capitalize upper-cases the first letter and lower-cases the rest.
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}
