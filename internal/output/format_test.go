package output

import (
	"bytes"
	"testing"
	"time"

	"gtasksync/internal/service"
	"gtasksync/internal/todo"
)

func TestFormatItem(t *testing.T) {
	tests := []struct {
		name string
		item todo.Item
		want string
	}{
		{"open", todo.Item{Summary: "Milk", Status: todo.NeedsAction}, "   1  [ ] Milk\n"},
		{"done", todo.Item{Summary: "Milk", Status: todo.Completed}, "   1  [x] Milk\n"},
		{"due", todo.Item{Summary: "Milk", Due: todo.Date(2024, time.October, 15)}, "   1  [ ] Milk  (due 2024-10-15)\n"},
		{"untitled", todo.Item{Summary: "  "}, "   1  [ ] (untitled)\n"},
		{"newline", todo.Item{Summary: "a\nb"}, "   1  [ ] a b\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			FormatItem(&buf, 1, tt.item)
			if buf.String() != tt.want {
				t.Errorf("expected %q, got %q", tt.want, buf.String())
			}
		})
	}
}

func TestSummary(t *testing.T) {
	got := Summary(todo.BucketToday, []service.Task{{Title: "Task 1"}, {Title: "Task 2"}})
	want := "This is the list of tasks due today:\n- Task 1\n- Task 2"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestSummary_Empty(t *testing.T) {
	got := Summary(todo.BucketUpcoming, nil)
	want := "This is the list of upcoming tasks in future weeks:\n"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestFormatListHeader(t *testing.T) {
	var buf bytes.Buffer
	FormatListHeader(&buf, "Shopping", true)
	want := "------------\nShopping [default]\n------------\n"
	if buf.String() != want {
		t.Errorf("expected %q, got %q", want, buf.String())
	}
}
