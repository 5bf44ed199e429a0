// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"gtasksync/internal/backend/googletasks"
	"gtasksync/internal/service"
)

// DefaultListID is the ID used for the default list.
const DefaultListID = "@default"

// FakeService is an in-memory implementation of service.Service for testing.
// Task order in each list is the order of its slice; positions are
// renumbered after every change, and inserts go to the head of the list.
type FakeService struct {
	mu    sync.RWMutex
	lists []service.TaskList
	tasks map[string][]service.Task // listID -> tasks
	calls []string

	// Error injection for testing
	DefaultListErr error
	ListListsErr   error
	ResolveListErr error
	ListTasksErr   error
	InsertTaskErr  error
	PatchTaskErr   error
	DeleteTasksErr error
	MoveTaskErr    error

	// ListTasksErrAfter lets that many ListTasks calls succeed before
	// ListTasksErr applies.
	ListTasksErrAfter int
}

// NewFakeService creates a new FakeService with a default list.
func NewFakeService() *FakeService {
	fs := &FakeService{
		tasks: make(map[string][]service.Task),
	}
	fs.lists = []service.TaskList{
		{ID: DefaultListID, Title: "My Tasks", IsDefault: true},
	}
	fs.tasks[DefaultListID] = nil
	return fs
}

// AddList adds a list to the fake service.
func (f *FakeService) AddList(id, title string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists = append(f.lists, service.TaskList{ID: id, Title: title, IsDefault: false})
	if f.tasks[id] == nil {
		f.tasks[id] = nil
	}
}

// AddTask appends an open top-level task to a list.
func (f *FakeService) AddTask(listID, taskID, title string) {
	f.PutTask(listID, service.Task{ID: taskID, Title: title, Status: service.StatusNeedsAction})
}

// PutTask appends a task as given. A preset Position survives until the
// next mutation renumbers the list.
func (f *FakeService) PutTask(listID string, task service.Task) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks[listID] = append(f.tasks[listID], task)
	if task.Position == "" {
		f.renumber(listID)
	}
}

// Task returns a stored task by ID.
func (f *FakeService) Task(listID, taskID string) (service.Task, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	i := slices.IndexFunc(f.tasks[listID], func(t service.Task) bool { return t.ID == taskID })
	if i < 0 {
		return service.Task{}, false
	}
	return f.tasks[listID][i], true
}

// Calls returns the names of the mutating and listing methods called so far.
func (f *FakeService) Calls() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return slices.Clone(f.calls)
}

// CountCalls returns how many times method was called.
func (f *FakeService) CountCalls(method string) int {
	n := 0
	for _, c := range f.Calls() {
		if c == method {
			n++
		}
	}
	return n
}

func (f *FakeService) record(method string) {
	f.mu.Lock()
	f.calls = append(f.calls, method)
	f.mu.Unlock()
}

// DefaultList implements service.Service.
func (f *FakeService) DefaultList(ctx context.Context) (service.TaskList, error) {
	if f.DefaultListErr != nil {
		return service.TaskList{}, f.DefaultListErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, l := range f.lists {
		if l.IsDefault {
			return l, nil
		}
	}
	return service.TaskList{}, errors.New("no default list")
}

// ListLists implements service.Service.
func (f *FakeService) ListLists(ctx context.Context) ([]service.TaskList, error) {
	if f.ListListsErr != nil {
		return nil, f.ListListsErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	return slices.Clone(f.lists), nil
}

// ResolveList implements service.Service.
func (f *FakeService) ResolveList(ctx context.Context, name string) (service.TaskList, error) {
	if f.ResolveListErr != nil {
		return service.TaskList{}, f.ResolveListErr
	}
	lists, _ := f.ListLists(ctx)
	return googletasks.MatchList(lists, name)
}

// ListTasks implements service.Service.
func (f *FakeService) ListTasks(ctx context.Context, listID string) ([]service.Task, error) {
	f.record("ListTasks")
	if f.ListTasksErr != nil && f.CountCalls("ListTasks") > f.ListTasksErrAfter {
		return nil, f.ListTasksErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	tasks, ok := f.tasks[listID]
	if !ok {
		return nil, service.ErrNotFound
	}
	return slices.Clone(tasks), nil
}

// InsertTask implements service.Service.
func (f *FakeService) InsertTask(ctx context.Context, listID string, task service.Task) error {
	f.record("InsertTask")
	if f.InsertTaskErr != nil {
		return f.InsertTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	tasks, ok := f.tasks[listID]
	if !ok {
		return service.ErrNotFound
	}

	// Generate a readable ID from the title
	id := strings.ToLower(strings.ReplaceAll(task.Title, " ", "-"))
	for n := 2; slices.ContainsFunc(tasks, func(t service.Task) bool { return t.ID == id }); n++ {
		id = fmt.Sprintf("%s-%d", strings.ToLower(strings.ReplaceAll(task.Title, " ", "-")), n)
	}

	f.tasks[listID] = append([]service.Task{{
		ID:     id,
		Title:  task.Title,
		Status: task.Status,
		Due:    task.Due,
		Notes:  task.Notes,
	}}, tasks...)
	f.renumber(listID)
	return nil
}

// PatchTask implements service.Service.
func (f *FakeService) PatchTask(ctx context.Context, listID, taskID string, task service.Task) error {
	f.record("PatchTask")
	if f.PatchTaskErr != nil {
		return f.PatchTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	i := slices.IndexFunc(f.tasks[listID], func(t service.Task) bool { return t.ID == taskID })
	if i < 0 {
		return service.ErrNotFound
	}
	t := &f.tasks[listID][i]
	t.Title = task.Title
	t.Status = task.Status
	t.Due = task.Due
	t.Notes = task.Notes
	return nil
}

// DeleteTasks implements service.Service.
func (f *FakeService) DeleteTasks(ctx context.Context, listID string, taskIDs []string) error {
	f.record("DeleteTasks")
	if f.DeleteTasksErr != nil {
		return f.DeleteTasksErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, id := range taskIDs {
		i := slices.IndexFunc(f.tasks[listID], func(t service.Task) bool { return t.ID == id })
		if i < 0 {
			return fmt.Errorf("delete task %s: %w", id, service.ErrNotFound)
		}
		f.tasks[listID] = slices.Delete(f.tasks[listID], i, i+1)
	}
	f.renumber(listID)
	return nil
}

// MoveTask implements service.Service.
func (f *FakeService) MoveTask(ctx context.Context, listID, taskID, previousID string) error {
	f.record("MoveTask")
	if f.MoveTaskErr != nil {
		return f.MoveTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	tasks := slices.Clone(f.tasks[listID])
	i := slices.IndexFunc(tasks, func(t service.Task) bool { return t.ID == taskID })
	if i < 0 {
		return service.ErrNotFound
	}
	moved := tasks[i]
	tasks = slices.Delete(tasks, i, i+1)

	at := 0
	if previousID != "" {
		p := slices.IndexFunc(tasks, func(t service.Task) bool { return t.ID == previousID })
		if p < 0 {
			return service.ErrNotFound
		}
		at = p + 1
	}
	f.tasks[listID] = slices.Insert(tasks, at, moved)
	f.renumber(listID)
	return nil
}

// renumber assigns positions among siblings following slice order.
// Caller holds f.mu.
func (f *FakeService) renumber(listID string) {
	next := make(map[string]int) // parent ID -> next position
	for i := range f.tasks[listID] {
		t := &f.tasks[listID][i]
		t.Position = fmt.Sprintf("%020d", next[t.Parent])
		next[t.Parent]++
	}
}
