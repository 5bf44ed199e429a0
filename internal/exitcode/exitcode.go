// Package exitcode defines the process exit codes of gtasksync and maps
// errors onto them.
package exitcode

import (
	"errors"

	"gtasksync/internal/service"
	"gtasksync/internal/todo"
)

const (
	Success = 0

	// UserError covers bad flags, bad task references and unknown or
	// ambiguous list names.
	UserError = 1

	// AuthError covers missing or rejected credentials.
	AuthError = 2

	// BackendError covers API, network and sink failures.
	BackendError = 3
)

// For returns the exit code for a failed operation.
func For(err error) int {
	switch {
	case err == nil:
		return Success
	case errors.Is(err, service.ErrAuth):
		return AuthError
	case errors.Is(err, service.ErrNotFound),
		errors.Is(err, service.ErrAmbiguous),
		errors.Is(err, todo.ErrMissingIdentifier):
		return UserError
	default:
		return BackendError
	}
}
