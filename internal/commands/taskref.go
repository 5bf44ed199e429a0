package commands

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"gtasksync/internal/exitcode"
	"gtasksync/internal/todo"
)

// ErrTaskRefRequired indicates no task reference was provided.
var ErrTaskRefRequired = errors.New("task reference required")

// OutOfRangeError reports an item number past the end of the list.
type OutOfRangeError struct {
	Num int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("task number out of range: %d", e.Num)
}

// ParseTaskRef parses a single 1-based item number as printed by list.
func ParseTaskRef(args []string) (int, error) {
	if len(args) == 0 {
		return 0, ErrTaskRefRequired
	}
	if len(args) > 1 {
		return 0, fmt.Errorf("unexpected argument: %s", args[1])
	}
	return parseNum(args[0])
}

// ParseTaskRefs parses one or more item numbers. Each argument may hold a
// comma separated group, so "1 3" and "1,3" are equivalent. Duplicates are
// dropped; the first occurrence keeps its place.
func ParseTaskRefs(args []string) ([]int, error) {
	var nums []int
	seen := make(map[int]bool)
	for _, arg := range args {
		for _, part := range strings.Split(arg, ",") {
			if part == "" {
				continue
			}
			n, err := parseNum(part)
			if err != nil {
				return nil, err
			}
			if !seen[n] {
				seen[n] = true
				nums = append(nums, n)
			}
		}
	}
	if len(nums) == 0 {
		return nil, ErrTaskRefRequired
	}
	return nums, nil
}

func parseNum(s string) (int, error) {
	if !isAllDigits(s) {
		return 0, fmt.Errorf("invalid task reference: %s", s)
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid task reference: %s", s)
	}
	if n < 1 {
		return 0, &OutOfRangeError{Num: n}
	}
	return n, nil
}

// lookupItem returns the item printed as number num.
func lookupItem(items []todo.Item, num int) (todo.Item, error) {
	if num < 1 || num > len(items) {
		return todo.Item{}, &OutOfRangeError{Num: num}
	}
	return items[num-1], nil
}

// refError prints a task reference error and returns the user error code.
func refError(errOut io.Writer, err error) int {
	fmt.Fprintf(errOut, "error: %v\n", err)
	return exitcode.UserError
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
