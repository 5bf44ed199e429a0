// Package output provides formatters for CLI output and text summaries.
package output

import (
	"fmt"
	"io"
	"strings"

	"gtasksync/internal/service"
	"gtasksync/internal/todo"
)

const (
	// ListSeparator is the separator line for list sections.
	ListSeparator = "------------"

	// DueLayout is how due dates are printed and parsed on the command line.
	DueLayout = "2006-01-02"
)

// SummaryHeaders holds the first line of each published summary.
var SummaryHeaders = map[string]string{
	todo.BucketToday:    "This is the list of tasks due today:",
	todo.BucketThisWeek: "This is the list of tasks due this week:",
	todo.BucketUpcoming: "This is the list of upcoming tasks in future weeks:",
	todo.BucketOverdue:  "This is the list of overdue tasks:",
}

// FormatItem formats an item line.
// Format: "{N:>4}  [ ] {TITLE}" plus "  (due YYYY-MM-DD)" when a due date is set.
func FormatItem(w io.Writer, num int, item todo.Item) {
	mark := " "
	if item.Status == todo.Completed {
		mark = "x"
	}
	line := fmt.Sprintf("%4d  [%s] %s", num, mark, normalizeTitle(item.Summary))
	if item.HasDue() {
		line += "  (due " + item.Due.Format(DueLayout) + ")"
	}
	fmt.Fprintln(w, line)
}

// FormatListHeader formats a list section header.
func FormatListHeader(w io.Writer, title string, isDefault bool) {
	displayTitle := normalizeListTitle(title)
	if isDefault {
		displayTitle += " [default]"
	}
	fmt.Fprintln(w, ListSeparator)
	fmt.Fprintln(w, displayTitle)
	fmt.Fprintln(w, ListSeparator)
}

// FormatListName formats a list name for the lists command.
func FormatListName(w io.Writer, list service.TaskList) {
	title := normalizeListTitle(list.Title)
	if list.IsDefault {
		title += " [default]"
	}
	fmt.Fprintln(w, title)
}

// Summary renders the header of bucket followed by one "- <title>" line
// per task. Titles are used as stored, without normalization.
func Summary(bucket string, tasks []service.Task) string {
	lines := make([]string, 0, len(tasks))
	for _, t := range tasks {
		lines = append(lines, "- "+t.Title)
	}
	return SummaryHeaders[bucket] + "\n" + strings.Join(lines, "\n")
}

// normalizeTitle normalizes a task title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")

	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}

// normalizeListTitle normalizes a list title for display.
// Empty or whitespace-only titles become "(untitled)".
func normalizeListTitle(title string) string {
	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
