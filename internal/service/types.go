// Package service defines the backend-agnostic interface for task operations.
package service

// Remote task status values.
const (
	StatusNeedsAction = "needsAction"
	StatusCompleted   = "completed"
)

// Task is a remote task record as the task service stores it.
// Empty strings stand for absent (null) fields.
type Task struct {
	ID       string
	Title    string
	Status   string // "needsAction" or "completed"
	Due      string // RFC 3339 timestamp, date resolution only
	Notes    string
	Parent   string // parent task ID for sub-items
	Position string // opaque, sorts lexicographically among siblings

	// Read-only fields, ignored on insert and patch.
	Updated   string
	Completed string
}

// TaskList represents a task list.
type TaskList struct {
	ID        string
	Title     string
	IsDefault bool
}
