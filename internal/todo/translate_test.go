package todo_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gtasksync/internal/service"
	"gtasksync/internal/todo"
)

func TestStatusRoundTrip(t *testing.T) {
	for _, status := range []string{"needsAction", "completed"} {
		t.Run(status, func(t *testing.T) {
			item, err := todo.ToLocal(service.Task{ID: "1", Title: "x", Status: status})
			require.NoError(t, err)
			assert.Equal(t, status, todo.ToRemote(item, time.UTC).Status)
		})
	}
}

func TestToRemote_UnsetStatusIsNeedsAction(t *testing.T) {
	got := todo.ToRemote(todo.Item{Summary: "Soda"}, time.UTC)
	assert.Equal(t, "needsAction", got.Status)

	back, err := todo.ToLocal(got)
	require.NoError(t, err)
	assert.Equal(t, todo.NeedsAction, back.Status)
}

func TestToLocal_UnknownStatusIsNeedsAction(t *testing.T) {
	for _, status := range []string{"", "deleted", "COMPLETED"} {
		item, err := todo.ToLocal(service.Task{ID: "1", Title: "x", Status: status})
		require.NoError(t, err)
		assert.Equal(t, todo.NeedsAction, item.Status, "status %q", status)
	}
}

func TestToRemote_DueIsLocalMidnight(t *testing.T) {
	la, err := time.LoadLocation("America/Los_Angeles")
	require.NoError(t, err)

	item := todo.Item{
		Summary: "Soda",
		Status:  todo.NeedsAction,
		// Clock part must be dropped
		Due:         time.Date(2023, 11, 18, 17, 30, 0, 0, time.UTC),
		Description: "6-pack",
	}
	got := todo.ToRemote(item, la)

	assert.Equal(t, service.Task{
		Title:  "Soda",
		Status: "needsAction",
		Due:    "2023-11-18T00:00:00-08:00",
		Notes:  "6-pack",
	}, got)

	back, err := todo.ToLocal(got)
	require.NoError(t, err)
	assert.Equal(t, todo.Date(2023, time.November, 18), back.Due)
}

func TestToRemote_NoDueNoNotes(t *testing.T) {
	got := todo.ToRemote(todo.Item{Summary: "Milk", Status: todo.Completed}, time.UTC)
	assert.Equal(t, service.Task{Title: "Milk", Status: "completed"}, got)
}

func TestToLocal(t *testing.T) {
	item, err := todo.ToLocal(service.Task{
		ID:       "some-task-id-1",
		Title:    "Water",
		Status:   "completed",
		Due:      "2023-12-31T00:00:00.000Z",
		Notes:    "Any size is ok",
		Position: "00000000000000000001",
	})
	require.NoError(t, err)
	assert.Equal(t, todo.Item{
		UID:         "some-task-id-1",
		Summary:     "Water",
		Status:      todo.Completed,
		Due:         todo.Date(2023, time.December, 31),
		Description: "Any size is ok",
	}, item)
}

func TestToLocal_MalformedDue(t *testing.T) {
	_, err := todo.ToLocal(service.Task{ID: "t1", Title: "x", Due: "next tuesday"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, todo.ErrMalformedDueDate))

	var dueErr *todo.DueDateError
	require.True(t, errors.As(err, &dueErr))
	assert.Equal(t, "t1", dueErr.TaskID)
}

func TestParseDue(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2024-10-15", todo.Date(2024, time.October, 15)},
		{"2024-10-15T00:00:00Z", todo.Date(2024, time.October, 15)},
		{"2024-10-15T00:00:00.000Z", todo.Date(2024, time.October, 15)},
		{"2024-10-15T23:00:00-07:00", todo.Date(2024, time.October, 15)},
		{"2024-10-15T08:00:00", todo.Date(2024, time.October, 15)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := todo.ParseDue(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := todo.ParseDue("15/10/2024")
	assert.Error(t, err)
}
