package output

import (
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"taskboard/internal/task"
)

const (
	maxNameWidth = 24
	barRune      = "█"
	blockedRune  = "░"
)

// FormatGantt writes the timeline chart: a title, the sub-team legend, a
// month row and a day row, then one bar per scheduled task. Tasks missing a
// start date or deadline are listed as unscheduled.
func FormatGantt(w io.Writer, tasks []task.Task, r task.Range, bars []task.Bar) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, "no tasks")
		return
	}
	s := newStyles(w)

	fmt.Fprintf(w, "%s  %s - %s (%d days)\n", s.bold("Project Timeline"),
		r.Start.Format("Jan 2"), r.End.Format("Jan 2, 2006"), r.TotalDays)
	formatLegend(w, s)
	fmt.Fprintln(w)

	width := len("Task")
	for _, b := range bars {
		width = max(width, utf8.RuneCountInString(clip(normalizeTitle(b.Task.Name), maxNameWidth)))
	}

	days := r.Days()
	fmt.Fprintf(w, "%-*s  %s\n", width, "", monthRow(days))
	fmt.Fprintf(w, "%-*s  %s\n", width, "Task", dayRow(days))

	for _, b := range bars {
		name := clip(normalizeTitle(b.Task.Name), maxNameWidth)
		pad := width - utf8.RuneCountInString(name)

		cell := barRune
		if b.Blocked {
			cell = blockedRune
		}
		bar := s.paint(b.Task.SubTeam, b.Blocked, strings.Repeat(cell, max(b.DurationDays, 0)))

		suffix := ""
		switch {
		case b.Task.Completed:
			suffix = " ✓"
		case b.Blocked:
			suffix = " blocked"
		}
		fmt.Fprintf(w, "%s%s  %s%s%s\n", name, strings.Repeat(" ", pad),
			strings.Repeat(" ", max(b.OffsetDays, 0)), bar, suffix)
	}

	var unscheduled []string
	for _, t := range tasks {
		start, okStart := t.Start()
		due, okDue := t.Due()
		if !okStart || !okDue || due.Before(start) {
			unscheduled = append(unscheduled, normalizeTitle(t.Name))
		}
	}
	if len(unscheduled) > 0 {
		fmt.Fprintf(w, "\nUnscheduled: %s\n", strings.Join(unscheduled, ", "))
	}
}

func formatLegend(w io.Writer, s styles) {
	parts := make([]string, 0, len(legendOrder)+2)
	for _, team := range legendOrder {
		parts = append(parts, s.paint(team, false, barRune)+" "+team)
	}
	parts = append(parts, s.paint("", true, blockedRune)+" blocked", "✓ completed")
	fmt.Fprintln(w, strings.Join(parts, "  "))
}

// monthRow labels the first day and every first of the month with the month
// abbreviation, skipping labels that would overlap the previous one.
func monthRow(days []time.Time) string {
	row := []byte(strings.Repeat(" ", len(days)))
	next := 0
	for i, d := range days {
		if i != 0 && d.Day() != 1 {
			continue
		}
		label := d.Format("Jan")
		if i < next || i+len(label) > len(row) {
			continue
		}
		copy(row[i:], label)
		next = i + len(label) + 1
	}
	return strings.TrimRight(string(row), " ")
}

// dayRow prints the last digit of each day of the month.
func dayRow(days []time.Time) string {
	var b strings.Builder
	for _, d := range days {
		b.WriteByte(byte('0' + d.Day()%10))
	}
	return b.String()
}

// clip shortens s to at most n runes, marking the cut with an ellipsis.
func clip(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-1]) + "…"
}
