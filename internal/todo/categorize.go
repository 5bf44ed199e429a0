package todo

import (
	"errors"
	"time"

	"gtasksync/internal/service"
)

// Bucket names, also used as the text sink names.
const (
	BucketToday    = "today"
	BucketThisWeek = "this-week"
	BucketUpcoming = "upcoming"
	BucketOverdue  = "overdue"
)

// Categories groups tasks by due date relative to a given day.
// Each bucket keeps the input order.
type Categories struct {
	Today    []service.Task
	ThisWeek []service.Task
	Upcoming []service.Task

	// Overdue holds tasks due before the start of the current week. They
	// belong to none of the three published buckets.
	Overdue []service.Task
}

// Bucket returns the bucket with the given name, or nil.
func (c Categories) Bucket(name string) []service.Task {
	switch name {
	case BucketToday:
		return c.Today
	case BucketThisWeek:
		return c.ThisWeek
	case BucketUpcoming:
		return c.Upcoming
	case BucketOverdue:
		return c.Overdue
	}
	return nil
}

// WeekBounds returns the Monday and Sunday of the week containing today,
// as calendar dates.
func WeekBounds(today time.Time) (start, end time.Time) {
	today = DateOf(today)
	offset := (int(today.Weekday()) + 6) % 7 // Monday = 0
	start = today.AddDate(0, 0, -offset)
	return start, start.AddDate(0, 0, 6)
}

// Categorize buckets tasks into Today, This Week and Upcoming by due date.
// Only the calendar date of today is used.
//
// Tasks without a due date are skipped. A task due today is never also in
// This Week. Tasks with an unparsable due date are skipped and reported in
// the returned error, one *DueDateError each; the rest are still bucketed.
func Categorize(tasks []service.Task, today time.Time) (Categories, error) {
	today = DateOf(today)
	weekStart, weekEnd := WeekBounds(today)

	var c Categories
	var errs []error
	for _, t := range tasks {
		if t.Due == "" {
			continue
		}
		due, err := ParseDue(t.Due)
		if err != nil {
			errs = append(errs, &DueDateError{TaskID: t.ID, Due: t.Due, Err: err})
			continue
		}
		switch {
		case due.Equal(today):
			c.Today = append(c.Today, t)
		case !due.Before(weekStart) && !due.After(weekEnd):
			c.ThisWeek = append(c.ThisWeek, t)
		case due.After(weekEnd):
			c.Upcoming = append(c.Upcoming, t)
		default:
			c.Overdue = append(c.Overdue, t)
		}
	}
	return c, errors.Join(errs...)
}
