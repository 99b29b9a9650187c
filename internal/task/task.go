// Package task holds the task record, the normalizer that builds it from raw
// feed rows and the view-model functions the presentation layer derives from it.
package task

import "time"

// Default field values applied when a feed row has no usable value.
const (
	DefaultName        = "Untitled Task"
	DefaultSubTeam     = "General"
	DefaultPerson      = "Unassigned"
	DefaultTotalDays   = 1
	DefaultSpotsNeeded = 3
)

// Sub-teams with a display color. Any other label is shown uncolored.
const (
	SubTeamDesign      = "Design"
	SubTeamElectrical  = "Electrical"
	SubTeamProgramming = "Programming"
	SubTeamFabrication = "Fabrication"
)

// Task is a normalized unit of work.
type Task struct {
	ID                string   `json:"id" yaml:"id"`
	Name              string   `json:"name" yaml:"name"`
	Overview          string   `json:"overview" yaml:"overview"`
	SubTeam           string   `json:"subTeam" yaml:"subTeam"`
	PreRequisites     []string `json:"preRequisites" yaml:"preRequisites"`
	RequiredFor       []string `json:"requiredFor" yaml:"requiredFor"`
	StartDate         string   `json:"startDate" yaml:"startDate"` // YYYY-MM-DD
	Deadline          string   `json:"deadline" yaml:"deadline"`   // YYYY-MM-DD, empty when TBD
	TotalDays         int      `json:"totalDays" yaml:"totalDays"`
	PersonResponsible string   `json:"personResponsible" yaml:"personResponsible"`
	Completed         bool     `json:"completed" yaml:"completed"`
	SpotsNeeded       int      `json:"spotsNeeded" yaml:"spotsNeeded"`
}

// HasDeadline reports whether the task has a deadline.
func (t Task) HasDeadline() bool {
	return t.Deadline != ""
}

// Start returns the parsed start date.
func (t Task) Start() (time.Time, bool) {
	return parseDay(t.StartDate)
}

// Due returns the parsed deadline.
func (t Task) Due() (time.Time, bool) {
	return parseDay(t.Deadline)
}

// Clone returns a copy that shares no slices with t.
func (t Task) Clone() Task {
	c := t
	c.PreRequisites = append([]string(nil), t.PreRequisites...)
	c.RequiredFor = append([]string(nil), t.RequiredFor...)
	return c
}

// CloneAll copies a task list.
func CloneAll(tasks []Task) []Task {
	if tasks == nil {
		return nil
	}
	out := make([]Task, len(tasks))
	for i, t := range tasks {
		out[i] = t.Clone()
	}
	return out
}

// Today returns now's calendar date as a UTC midnight.
func Today(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FormatDay formats a day as YYYY-MM-DD.
func FormatDay(t time.Time) string {
	return t.Format(time.DateOnly)
}

func parseDay(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

const secondsPerDay = 24 * 60 * 60

// daysBetween returns the whole days from a to b; both must be UTC midnights.
func daysBetween(a, b time.Time) int {
	return int((b.Unix() - a.Unix()) / secondsPerDay)
}
