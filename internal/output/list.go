package output

import (
	"fmt"
	"io"
	"strings"

	"taskboard/internal/task"
)

const indent = "          "

// FormatList writes the list view for sorted. Blocked markers are computed
// against all.
func FormatList(w io.Writer, sorted, all []task.Task) {
	if len(sorted) == 0 {
		fmt.Fprintln(w, "no tasks")
		return
	}
	s := newStyles(w)
	for _, t := range sorted {
		formatTask(w, s, t, task.IsBlocked(t, all))
	}
}

// formatTask writes one entry of the list view:
//
//	   1  [x] Chassis Design [Design] Completed
//	          Design the main robot chassis in CAD
//	          Deadline: Jan 15, 2025  Responsible: Alice
func formatTask(w io.Writer, s styles, t task.Task, blocked bool) {
	mark, status := "[ ]", "Pending"
	switch {
	case t.Completed:
		mark, status = "[x]", "Completed"
	case blocked:
		mark, status = "[!]", s.alert("Blocked")
	}
	fmt.Fprintf(w, "%4s  %s %s %s %s\n", t.ID, mark, s.bold(normalizeTitle(t.Name)), s.badge(t.SubTeam), status)

	if overview := normalizeTitle(t.Overview); t.Overview != "" {
		fmt.Fprintf(w, "%s%s\n", indent, s.faint(overview))
	}

	details := fmt.Sprintf("Deadline: %s  Responsible: %s", DueLong(t), t.PersonResponsible)
	if len(t.PreRequisites) > 0 {
		details += "  Pre-reqs: " + strings.Join(t.PreRequisites, ", ")
	}
	fmt.Fprintf(w, "%s%s\n", indent, details)
}

// FormatToggled writes the confirmation for a completion toggle.
func FormatToggled(w io.Writer, t task.Task) {
	state := "pending"
	if t.Completed {
		state = "completed"
	}
	fmt.Fprintf(w, "%s: %s marked %s\n", t.ID, normalizeTitle(t.Name), state)
}

// DueShort formats the deadline as "Jan 15", or "TBD".
func DueShort(t task.Task) string {
	if d, ok := t.Due(); ok {
		return d.Format("Jan 2")
	}
	return "TBD"
}

// DueLong formats the deadline as "Jan 15, 2025", or "TBD".
func DueLong(t task.Task) string {
	if d, ok := t.Due(); ok {
		return d.Format("Jan 2, 2006")
	}
	return "TBD"
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
