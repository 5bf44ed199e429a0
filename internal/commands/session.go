package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"gtasksync/internal/config"
	"gtasksync/internal/coordinator"
	"gtasksync/internal/exitcode"
	"gtasksync/internal/logging"
	"gtasksync/internal/metrics"
	"gtasksync/internal/service"
	"gtasksync/internal/todo"
	"gtasksync/internal/todolist"
)

// session is one resolved task list, its coordinator and the List entity
// built on top of them.
type session struct {
	info  service.TaskList
	coord *coordinator.Coordinator
	list  *todolist.List
}

// items returns the ordered items of the session's list.
func (s *session) items() []todo.Item {
	items, _ := s.list.Items()
	return items
}

// resolveList resolves listName, the configured list, or the default list,
// in that order. Errors are written to errOut and mapped to an exit code.
func resolveList(ctx context.Context, cfg *config.Config, svc service.Service, listName string, errOut io.Writer) (service.TaskList, int) {
	listName = strings.TrimSpace(listName)
	if listName == "" {
		listName = cfg.Settings.List
	}

	if listName == "" {
		list, err := svc.DefaultList(ctx)
		if err != nil {
			return service.TaskList{}, reportError(errOut, err)
		}
		return list, exitcode.Success
	}

	list, err := svc.ResolveList(ctx, listName)
	switch {
	case errors.Is(err, service.ErrNotFound):
		fmt.Fprintf(errOut, "error: list not found: %s\n", listName)
		return service.TaskList{}, exitcode.UserError
	case errors.Is(err, service.ErrAmbiguous):
		fmt.Fprintf(errOut, "error: ambiguous list name: %s\n", listName)
		return service.TaskList{}, exitcode.UserError
	case err != nil:
		return service.TaskList{}, reportError(errOut, err)
	}
	return list, exitcode.Success
}

// openList resolves a list, fetches its first snapshot and wraps it in a
// todolist.List publishing to the configured sink. m may be nil.
func openList(ctx context.Context, cfg *config.Config, svc service.Service, listName string, m *metrics.Metrics, errOut io.Writer) (*session, int) {
	info, code := resolveList(ctx, cfg, svc, listName, errOut)
	if code != exitcode.Success {
		return nil, code
	}

	loc, err := cfg.Settings.Location()
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return nil, exitcode.UserError
	}
	out, err := cfg.Settings.Sink()
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return nil, exitcode.UserError
	}

	logger := logging.OrDefault(cfg.Logger)
	coord := coordinator.New(info.ID, func(ctx context.Context) ([]service.Task, error) {
		return svc.ListTasks(ctx, info.ID)
	}, coordinator.Options{
		Interval: cfg.Settings.PollInterval,
		Logger:   logger,
		Metrics:  m,
	})

	list, err := todolist.New(todolist.Config{
		ListID:      info.ID,
		Name:        info.Title,
		EntryID:     cfg.Settings.EntryID,
		Client:      svc,
		Coordinator: coord,
		Sink:        out,
		Location:    loc,
		Logger:      logger,
		Metrics:     m,
	})
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return nil, exitcode.UserError
	}

	if err := coord.Refresh(ctx); err != nil {
		return nil, reportError(errOut, err)
	}
	return &session{info: info, coord: coord, list: list}, exitcode.Success
}

// reportError prints err and returns the matching exit code.
func reportError(errOut io.Writer, err error) int {
	code := exitcode.For(err)
	switch code {
	case exitcode.AuthError:
		fmt.Fprintf(errOut, "error: auth error: %v\n", err)
	case exitcode.UserError:
		fmt.Fprintf(errOut, "error: %v\n", err)
	default:
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
	}
	return code
}

// printOK prints "ok" unless quiet and returns success.
func printOK(cfg *config.Config, out io.Writer) int {
	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
