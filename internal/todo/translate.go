package todo

import (
	"errors"
	"time"

	"gtasksync/internal/service"
)

var statusMap = map[string]Status{
	service.StatusNeedsAction: NeedsAction,
	service.StatusCompleted:   Completed,
}

var statusMapInv = func() map[Status]string {
	inv := make(map[Status]string, len(statusMap))
	for k, v := range statusMap {
		inv[v] = k
	}
	return inv
}()

// RemoteStatus maps a local status onto the remote value.
// Unset and unknown statuses map to "needsAction".
func RemoteStatus(s Status) string {
	if v, ok := statusMapInv[s]; ok {
		return v
	}
	return service.StatusNeedsAction
}

// LocalStatus maps a remote status onto the local value.
// Missing and unknown values map to NeedsAction.
func LocalStatus(s string) Status {
	if v, ok := statusMap[s]; ok {
		return v
	}
	return NeedsAction
}

// ToRemote converts an item into the writable fields of a remote task.
// The due date is sent as the start of that day in loc (time.Local if nil).
func ToRemote(item Item, loc *time.Location) service.Task {
	if loc == nil {
		loc = time.Local
	}
	task := service.Task{
		Title:  item.Summary,
		Status: RemoteStatus(item.Status),
		Notes:  item.Description,
	}
	if item.HasDue() {
		y, m, d := item.Due.Date()
		task.Due = time.Date(y, m, d, 0, 0, 0, 0, loc).Format(time.RFC3339)
	}
	return task
}

// ToLocal converts a remote task into a local item.
func ToLocal(task service.Task) (Item, error) {
	item := Item{
		UID:         task.ID,
		Summary:     task.Title,
		Status:      LocalStatus(task.Status),
		Description: task.Notes,
	}
	if task.Due != "" {
		due, err := ParseDue(task.Due)
		if err != nil {
			return Item{}, &DueDateError{TaskID: task.ID, Due: task.Due, Err: err}
		}
		item.Due = due
	}
	return item, nil
}

var dueLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	time.DateOnly,
}

// ParseDue returns the calendar date of an ISO 8601 timestamp or date.
// The date is taken in the timestamp's own offset, not converted.
func ParseDue(s string) (time.Time, error) {
	var errs []error
	for _, layout := range dueLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return DateOf(t), nil
		}
		errs = append(errs, err)
	}
	return time.Time{}, errors.Join(errs...)
}
