package todolist_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gtasksync/internal/coordinator"
	"gtasksync/internal/logging"
	"gtasksync/internal/service"
	"gtasksync/internal/testutil"
	"gtasksync/internal/todo"
	"gtasksync/internal/todolist"
)

const listID = "list1"

// Tuesday; the week runs Oct 14 to Oct 20.
var now = time.Date(2024, time.October, 15, 9, 0, 0, 0, time.UTC)

type fixture struct {
	svc   *testutil.FakeService
	sink  *testutil.MemorySink
	coord *coordinator.Coordinator
	list  *todolist.List
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	svc := testutil.NewFakeService()
	svc.AddList(listID, "groceries")

	coord := coordinator.New(listID, func(ctx context.Context) ([]service.Task, error) {
		return svc.ListTasks(ctx, listID)
	}, coordinator.Options{Logger: logging.Discard()})

	memSink := testutil.NewMemorySink()
	list, err := todolist.New(todolist.Config{
		ListID:      listID,
		Name:        "groceries",
		EntryID:     "entry",
		Client:      svc,
		Coordinator: coord,
		Sink:        memSink,
		Location:    time.UTC,
		Now:         func() time.Time { return now },
		Logger:      logging.Discard(),
	})
	require.NoError(t, err)
	return &fixture{svc: svc, sink: memSink, coord: coord, list: list}
}

func summaries(items []todo.Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Summary)
	}
	return out
}

func TestNew_RequiresCollaborators(t *testing.T) {
	_, err := todolist.New(todolist.Config{ListID: listID})
	assert.Error(t, err)
}

func TestIdentity(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, "Groceries", f.list.Name())
	assert.Equal(t, "entry-list1", f.list.UniqueID())
	assert.NotZero(t, f.list.Features()&todolist.FeatureMove)
	assert.NotZero(t, f.list.Features()&todolist.FeatureSetDescription)
}

func TestItems_UnknownBeforeFirstFetch(t *testing.T) {
	f := newFixture(t)
	items, ok := f.list.Items()
	assert.False(t, ok)
	assert.Nil(t, items)

	require.NoError(t, f.coord.Refresh(context.Background()))
	items, ok = f.list.Items()
	assert.True(t, ok)
	assert.Empty(t, items)
}

func TestItems_OrderedTopLevelTranslated(t *testing.T) {
	f := newFixture(t)
	f.svc.PutTask(listID, service.Task{ID: "A", Title: "Apples", Status: "needsAction", Position: "2"})
	f.svc.PutTask(listID, service.Task{ID: "B", Title: "Seeds", Parent: "A", Position: "0"})
	f.svc.PutTask(listID, service.Task{ID: "C", Title: "Cheese", Status: "completed", Position: "1", Due: "2024-10-16T00:00:00.000Z", Notes: "brie"})
	require.NoError(t, f.coord.Refresh(context.Background()))

	items, ok := f.list.Items()
	require.True(t, ok)
	assert.Equal(t, []todo.Item{
		{UID: "C", Summary: "Cheese", Status: todo.Completed, Due: todo.Date(2024, time.October, 16), Description: "brie"},
		{UID: "A", Summary: "Apples", Status: todo.NeedsAction},
	}, items)

	again, _ := f.list.Items()
	assert.Equal(t, items, again)
}

func TestItems_SkipsMalformedDue(t *testing.T) {
	f := newFixture(t)
	f.svc.PutTask(listID, service.Task{ID: "a", Title: "Good", Position: "1"})
	f.svc.PutTask(listID, service.Task{ID: "b", Title: "Bad", Position: "2", Due: "soon"})
	require.NoError(t, f.coord.Refresh(context.Background()))

	items, ok := f.list.Items()
	require.True(t, ok)
	assert.Equal(t, []string{"Good"}, summaries(items))
}

func TestCreate_InsertsAndRefreshes(t *testing.T) {
	f := newFixture(t)
	err := f.list.Create(context.Background(), todo.Item{
		Summary:     "Soda",
		Due:         todo.Date(2024, time.October, 18),
		Description: "6-pack",
	})
	require.NoError(t, err)

	items, ok := f.list.Items()
	require.True(t, ok)
	require.Len(t, items, 1)
	assert.Equal(t, "Soda", items[0].Summary)
	assert.Equal(t, todo.NeedsAction, items[0].Status)
	assert.Equal(t, todo.Date(2024, time.October, 18), items[0].Due)

	stored, _ := f.svc.Task(listID, items[0].UID)
	assert.Equal(t, "2024-10-18T00:00:00Z", stored.Due)

	assert.Equal(t, []string{"InsertTask", "ListTasks"}, f.svc.Calls())
	assert.Zero(t, f.sink.Writes(), "create must not publish summaries")
}

func TestUpdate_MissingUID(t *testing.T) {
	f := newFixture(t)
	err := f.list.Update(context.Background(), todo.Item{Summary: "x"})
	assert.ErrorIs(t, err, todo.ErrMissingIdentifier)
	assert.Empty(t, f.svc.Calls())
	assert.Zero(t, f.sink.Writes())
}

func TestUpdate_PatchesRefreshesAndPublishes(t *testing.T) {
	f := newFixture(t)
	f.svc.PutTask(listID, service.Task{ID: "t1", Title: "Milk", Status: "needsAction", Due: "2024-10-15"})
	f.svc.PutTask(listID, service.Task{ID: "t2", Title: "Bread", Status: "needsAction", Due: "2024-10-19"})
	f.svc.PutTask(listID, service.Task{ID: "t3", Title: "Eggs", Status: "needsAction", Due: "2024-10-30"})
	f.svc.PutTask(listID, service.Task{ID: "t4", Title: "Jam", Status: "needsAction", Due: "2024-10-01"})
	f.svc.PutTask(listID, service.Task{ID: "t5", Title: "Salt", Status: "needsAction"})

	err := f.list.Update(context.Background(), todo.Item{
		UID:     "t5",
		Summary: "Sea salt",
		Status:  todo.Completed,
		Due:     todo.Date(2024, time.October, 15),
	})
	require.NoError(t, err)

	stored, _ := f.svc.Task(listID, "t5")
	assert.Equal(t, "Sea salt", stored.Title)
	assert.Equal(t, "completed", stored.Status)
	assert.Equal(t, []string{"PatchTask", "ListTasks"}, f.svc.Calls())

	assert.Equal(t, map[string]string{
		"today":     "This is the list of tasks due today:\n- Milk\n- Sea salt",
		"this-week": "This is the list of tasks due this week:\n- Bread",
		"upcoming":  "This is the list of upcoming tasks in future weeks:\n- Eggs",
	}, f.sink.Values())
}

func TestUpdate_SinkFailureDoesNotFailUpdate(t *testing.T) {
	f := newFixture(t)
	f.svc.AddTask(listID, "t1", "Milk")
	f.sink.Err = errors.New("sink down")
	f.sink.FailNames = []string{"this-week"}

	err := f.list.Update(context.Background(), todo.Item{UID: "t1", Summary: "Oat milk"})
	require.NoError(t, err)

	stored, _ := f.svc.Task(listID, "t1")
	assert.Equal(t, "Oat milk", stored.Title)

	// The other two sinks are still written
	assert.Equal(t, 3, f.sink.Writes())
	_, ok := f.sink.Value("today")
	assert.True(t, ok)
	_, ok = f.sink.Value("upcoming")
	assert.True(t, ok)
}

func TestUpdate_RemoteErrorPropagates(t *testing.T) {
	f := newFixture(t)
	f.svc.PatchTaskErr = service.ErrAuth

	err := f.list.Update(context.Background(), todo.Item{UID: "t1", Summary: "x"})
	assert.ErrorIs(t, err, service.ErrAuth)
	assert.Equal(t, 0, f.svc.CountCalls("ListTasks"))
	assert.Zero(t, f.sink.Writes())
}

func TestUpdate_RefreshErrorPropagates(t *testing.T) {
	f := newFixture(t)
	f.svc.AddTask(listID, "t1", "Milk")
	f.svc.ListTasksErr = service.ErrTimeout

	err := f.list.Update(context.Background(), todo.Item{UID: "t1", Summary: "x"})
	assert.ErrorIs(t, err, service.ErrTimeout)
	assert.Zero(t, f.sink.Writes())
}

func TestDelete(t *testing.T) {
	f := newFixture(t)
	f.svc.AddTask(listID, "a", "A")
	f.svc.AddTask(listID, "b", "B")
	f.svc.AddTask(listID, "c", "C")

	require.NoError(t, f.list.Delete(context.Background(), []string{"a", "c"}))

	items, _ := f.list.Items()
	assert.Equal(t, []string{"B"}, summaries(items))
	assert.Zero(t, f.sink.Writes())
}

func TestDelete_ErrorPropagates(t *testing.T) {
	f := newFixture(t)
	err := f.list.Delete(context.Background(), []string{"missing"})
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestMove(t *testing.T) {
	f := newFixture(t)
	f.svc.AddTask(listID, "a", "A")
	f.svc.AddTask(listID, "b", "B")
	f.svc.AddTask(listID, "c", "C")

	require.NoError(t, f.list.Move(context.Background(), "c", "a"))
	items, _ := f.list.Items()
	assert.Equal(t, []string{"A", "C", "B"}, summaries(items))

	require.NoError(t, f.list.Move(context.Background(), "b", ""))
	items, _ = f.list.Items()
	assert.Equal(t, []string{"B", "A", "C"}, summaries(items))
	assert.Zero(t, f.sink.Writes())
}

func TestPublishSummaries_EmptyBuckets(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.coord.Refresh(context.Background()))
	require.NoError(t, f.list.PublishSummaries(context.Background()))

	v, _ := f.sink.Value("upcoming")
	assert.Equal(t, "This is the list of upcoming tasks in future weeks:\n", v)
}

func TestPublishSummaries_ReportsSinkErrors(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.coord.Refresh(context.Background()))
	boom := errors.New("boom")
	f.sink.Err = boom

	err := f.list.PublishSummaries(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 3, f.sink.Writes())
}

func TestCategorize_UsesConfiguredDay(t *testing.T) {
	f := newFixture(t)
	f.svc.PutTask(listID, service.Task{ID: "a", Title: "A", Due: "2024-10-13"})
	f.svc.PutTask(listID, service.Task{ID: "b", Title: "B", Due: "2024-10-15"})
	require.NoError(t, f.coord.Refresh(context.Background()))

	cats, err := f.list.Categorize()
	require.NoError(t, err)
	assert.Len(t, cats.Today, 1)
	assert.Len(t, cats.Overdue, 1)
}
