// Package service defines the backend-agnostic interface for task operations.
package service

import (
	"context"
	"errors"
)

// Errors shared by backends. Backends wrap them so callers can use errors.Is.
var (
	ErrNotFound  = errors.New("not found")
	ErrAmbiguous = errors.New("ambiguous")
	ErrAuth      = errors.New("token expired or revoked")
	ErrTimeout   = errors.New("request timed out")
)

// Service defines the interface for task backend operations.
// All Google Tasks API calls go through this interface.
// Nothing outside the backend imports the Google SDK directly.
type Service interface {
	// DefaultList returns the user's default task list.
	DefaultList(ctx context.Context) (TaskList, error)

	// ListLists returns all task lists in API order.
	ListLists(ctx context.Context) ([]TaskList, error)

	// ResolveList finds a list by name (case-insensitive, trimmed).
	// Returns an error wrapping ErrNotFound or ErrAmbiguous.
	ResolveList(ctx context.Context, name string) (TaskList, error)

	// ListTasks returns every task of a list, completed and hidden ones
	// included, in API order.
	ListTasks(ctx context.Context, listID string) ([]Task, error)

	// InsertTask creates a task from the writable fields of task.
	InsertTask(ctx context.Context, listID string, task Task) error

	// PatchTask overwrites the writable fields of an existing task.
	// Empty Due and Notes are sent as null.
	PatchTask(ctx context.Context, listID, taskID string, task Task) error

	// DeleteTasks deletes the given tasks, stopping at the first failure.
	DeleteTasks(ctx context.Context, listID string, taskIDs []string) error

	// MoveTask repositions a task after previousID, or at the head of the
	// list when previousID is empty.
	MoveTask(ctx context.Context, listID, taskID, previousID string) error
}
