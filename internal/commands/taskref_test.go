package commands

import (
	"errors"
	"slices"
	"testing"

	"gtasksync/internal/todo"
)

func TestParseTaskRef(t *testing.T) {
	tests := []struct {
		args    []string
		want    int
		wantErr string
	}{
		{[]string{"1"}, 1, ""},
		{[]string{"42"}, 42, ""},
		{[]string{"007"}, 7, ""},
		{nil, 0, "task reference required"},
		{[]string{"0"}, 0, "task number out of range: 0"},
		{[]string{"a1"}, 0, "invalid task reference: a1"},
		{[]string{"-1"}, 0, "invalid task reference: -1"},
		{[]string{"１"}, 0, "invalid task reference: １"},
		{[]string{"1", "2"}, 0, "unexpected argument: 2"},
	}
	for _, tt := range tests {
		got, err := ParseTaskRef(tt.args)
		if tt.wantErr != "" {
			if err == nil || err.Error() != tt.wantErr {
				t.Errorf("ParseTaskRef(%q): expected error %q, got %v", tt.args, tt.wantErr, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseTaskRef(%q): unexpected error: %v", tt.args, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseTaskRef(%q): expected %d, got %d", tt.args, tt.want, got)
		}
	}
}

func TestParseTaskRef_RequiredIsSentinel(t *testing.T) {
	if _, err := ParseTaskRef(nil); !errors.Is(err, ErrTaskRefRequired) {
		t.Errorf("expected ErrTaskRefRequired, got %v", err)
	}
}

func TestParseTaskRefs(t *testing.T) {
	tests := []struct {
		args []string
		want []int
	}{
		{[]string{"1"}, []int{1}},
		{[]string{"3", "1"}, []int{3, 1}},
		{[]string{"1,3", "5"}, []int{1, 3, 5}},
		{[]string{"2,2", "2"}, []int{2}},
		{[]string{"1,", ",4"}, []int{1, 4}},
	}
	for _, tt := range tests {
		got, err := ParseTaskRefs(tt.args)
		if err != nil {
			t.Errorf("ParseTaskRefs(%q): unexpected error: %v", tt.args, err)
			continue
		}
		if !slices.Equal(got, tt.want) {
			t.Errorf("ParseTaskRefs(%q): expected %v, got %v", tt.args, tt.want, got)
		}
	}
}

func TestParseTaskRefs_Errors(t *testing.T) {
	tests := []struct {
		args    []string
		wantErr string
	}{
		{nil, "task reference required"},
		{[]string{","}, "task reference required"},
		{[]string{"1", "b"}, "invalid task reference: b"},
		{[]string{"1-3"}, "invalid task reference: 1-3"},
	}
	for _, tt := range tests {
		_, err := ParseTaskRefs(tt.args)
		if err == nil || err.Error() != tt.wantErr {
			t.Errorf("ParseTaskRefs(%q): expected error %q, got %v", tt.args, tt.wantErr, err)
		}
	}
}

func TestLookupItem(t *testing.T) {
	items := []todo.Item{{UID: "a"}, {UID: "b"}}

	item, err := lookupItem(items, 2)
	if err != nil || item.UID != "b" {
		t.Errorf("expected item b, got %+v, %v", item, err)
	}

	var rangeErr *OutOfRangeError
	if _, err := lookupItem(items, 3); !errors.As(err, &rangeErr) || rangeErr.Num != 3 {
		t.Errorf("expected OutOfRangeError for 3, got %v", err)
	}
}
