// Package todo holds the local to-do item model and the pure functions that
// translate, order and categorize remote task records.
package todo

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrMissingIdentifier is returned when an update names no item.
	ErrMissingIdentifier = errors.New("item has no uid")

	// ErrMalformedDueDate is matched by errors for unparsable due dates.
	ErrMalformedDueDate = errors.New("malformed due date")
)

// Status is the completion state of a local item.
// The zero value means the caller left it unset.
type Status string

const (
	NeedsAction Status = "needs_action"
	Completed   Status = "completed"
)

// Item is a to-do item as the local list sees it.
type Item struct {
	UID     string
	Summary string
	Status  Status

	// Due holds a calendar date; the clock part is ignored.
	// The zero time means no due date.
	Due time.Time

	Description string
}

// HasDue reports whether the item carries a due date.
func (i Item) HasDue() bool {
	return !i.Due.IsZero()
}

// Date returns midnight of the calendar date y-m-d in UTC. Dates built with
// it compare with == and Before/After.
func Date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DateOf truncates t to its calendar date in t's own location.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return Date(y, m, d)
}

// DueDateError reports a due string that could not be parsed.
type DueDateError struct {
	TaskID string
	Due    string
	Err    error
}

func (e *DueDateError) Error() string {
	return fmt.Sprintf("task %s: malformed due date %q", e.TaskID, e.Due)
}

// Unwrap lets errors.Is match both ErrMalformedDueDate and the parse error.
func (e *DueDateError) Unwrap() []error {
	return []error{ErrMalformedDueDate, e.Err}
}
