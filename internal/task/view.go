package task

import (
	"slices"
	"strings"
	"time"
)

// Timeline padding around the dated tasks, and the window used when nothing
// can be laid out.
const (
	leadDays          = 2
	trailDays         = 5
	defaultWindowDays = 8
)

// SortByDeadline returns a copy of tasks ordered by ascending deadline.
// Tasks without a deadline come last; ties keep their input order.
func SortByDeadline(tasks []Task) []Task {
	out := CloneAll(tasks)
	slices.SortStableFunc(out, func(a, b Task) int {
		switch {
		case !a.HasDeadline() && !b.HasDeadline():
			return 0
		case !a.HasDeadline():
			return 1
		case !b.HasDeadline():
			return -1
		}
		// YYYY-MM-DD orders lexically.
		return strings.Compare(a.Deadline, b.Deadline)
	})
	return out
}

// Find returns the task with the given ID.
func Find(id string, all []Task) (Task, bool) {
	for _, t := range all {
		if t.ID == id {
			return t, true
		}
	}
	return Task{}, false
}

// Resolve looks a reference up by ID first, then by exact name.
func Resolve(ref string, all []Task) (Task, bool) {
	if t, ok := Find(ref, all); ok {
		return t, true
	}
	for _, t := range all {
		if t.Name == ref {
			return t, true
		}
	}
	return Task{}, false
}

// IsBlocked reports whether any direct prerequisite of t resolves to another
// task in all that is not completed. The check is one hop only.
func IsBlocked(t Task, all []Task) bool {
	for _, ref := range t.PreRequisites {
		dep, ok := Resolve(ref, all)
		if !ok || dep.ID == t.ID {
			continue
		}
		if !dep.Completed {
			return true
		}
	}
	return false
}

// BlockedBy returns the incomplete prerequisites of t, in reference order.
func BlockedBy(t Task, all []Task) []Task {
	var deps []Task
	for _, ref := range t.PreRequisites {
		dep, ok := Resolve(ref, all)
		if !ok || dep.ID == t.ID || dep.Completed {
			continue
		}
		deps = append(deps, dep)
	}
	return deps
}

// Range is the padded date window of the timeline. Start and End are UTC
// midnights; TotalDays counts both ends.
type Range struct {
	Start     time.Time
	End       time.Time
	TotalDays int
}

// Days returns every day of the range in order.
func (r Range) Days() []time.Time {
	days := make([]time.Time, 0, r.TotalDays)
	for i := 0; i < r.TotalDays; i++ {
		days = append(days, r.Start.AddDate(0, 0, i))
	}
	return days
}

// TimelineRange computes the chart window for tasks.
func TimelineRange(tasks []Task, now time.Time) Range {
	today := Today(now)
	if len(tasks) == 0 {
		return Range{Start: today, End: today, TotalDays: 1}
	}

	var minStart, maxDue time.Time
	var haveStart, haveDue, laidOut bool
	for _, t := range tasks {
		start, okStart := t.Start()
		due, okDue := t.Due()
		if okStart && (!haveStart || start.Before(minStart)) {
			minStart, haveStart = start, true
		}
		if okDue && (!haveDue || due.After(maxDue)) {
			maxDue, haveDue = due, true
		}
		if okStart && okDue && !due.Before(start) {
			laidOut = true
		}
	}
	if !laidOut {
		return Range{
			Start:     today,
			End:       today.AddDate(0, 0, defaultWindowDays-1),
			TotalDays: defaultWindowDays,
		}
	}

	start := minStart.AddDate(0, 0, -leadDays)
	end := maxDue.AddDate(0, 0, trailDays)
	return Range{Start: start, End: end, TotalDays: daysBetween(start, end) + 1}
}

// Bar is the chart geometry of one task.
type Bar struct {
	Task         Task
	OffsetDays   int
	DurationDays int
	Blocked      bool
}

// Bars lays out every task that has both a start date and a deadline, in input
// order. Tasks missing either date, or due before they start, are left out.
func Bars(tasks []Task, r Range) []Bar {
	var bars []Bar
	for _, t := range tasks {
		start, okStart := t.Start()
		due, okDue := t.Due()
		if !okStart || !okDue || due.Before(start) {
			continue
		}
		bars = append(bars, Bar{
			Task:         t,
			OffsetDays:   daysBetween(r.Start, start),
			DurationDays: daysBetween(start, due) + 1,
			Blocked:      IsBlocked(t, tasks),
		})
	}
	return bars
}
