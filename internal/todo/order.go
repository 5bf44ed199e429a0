package todo

import (
	"slices"
	"strings"

	"gtasksync/internal/service"
)

// Order returns the top-level tasks sorted by position.
//
// The local list has no notion of sub-items, so tasks with a parent are
// dropped rather than flattened.
func Order(tasks []service.Task) []service.Task {
	top := make([]service.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.Parent == "" {
			top = append(top, t)
		}
	}
	slices.SortStableFunc(top, func(a, b service.Task) int {
		return strings.Compare(a.Position, b.Position)
	})
	return top
}
