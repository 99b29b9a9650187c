package output

import (
	"fmt"
	"io"

	"taskboard/internal/task"
)

const (
	// SignupTitle heads the printable sign-up sheet.
	SignupTitle = "MASTER TASK SIGN-UP SHEET"

	// SignupInstructions is printed under the title.
	SignupInstructions = "Please sign your name in an available slot for the tasks you wish to claim."

	signupRule = "========================================================================"
	signupLine = "________________________________________"
)

// Spots returns the number of sign-up lines printed for t.
func Spots(t task.Task) int {
	if t.SpotsNeeded < 1 {
		return task.DefaultSpotsNeeded
	}
	return t.SpotsNeeded
}

// SpotsLabel returns the "N Spots Available" caption.
func SpotsLabel(t task.Task) string {
	return fmt.Sprintf("%d Spots Available", Spots(t))
}

// FormatSignupSheet writes the sign-up sheet for tasks in the given order.
func FormatSignupSheet(w io.Writer, tasks []task.Task) {
	s := newStyles(w)

	fmt.Fprintln(w, s.bold(SignupTitle))
	fmt.Fprintln(w, SignupInstructions)
	fmt.Fprintln(w, signupRule)

	if len(tasks) == 0 {
		fmt.Fprintln(w, "\nno tasks")
		return
	}
	for _, t := range tasks {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "%s %s  Due: %s\n", s.bold(normalizeTitle(t.Name)), s.badge(t.SubTeam), DueShort(t))
		if t.Overview != "" {
			fmt.Fprintln(w, normalizeTitle(t.Overview))
		}
		fmt.Fprintln(w, SpotsLabel(t))
		for i := 1; i <= Spots(t); i++ {
			fmt.Fprintf(w, "%3d. %s\n", i, signupLine)
		}
	}
}
