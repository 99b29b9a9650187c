// Package output renders the task list, the timeline chart and the sign-up
// sheet as terminal text.
package output

import (
	"io"

	"github.com/charmbracelet/lipgloss"

	"taskboard/internal/task"
)

// SubTeamColors maps sub-teams to their display color.
var SubTeamColors = map[string]string{
	task.SubTeamDesign:      "#AECBFA",
	task.SubTeamElectrical:  "#FDE68A",
	task.SubTeamProgramming: "#A7F3D0",
	task.SubTeamFabrication: "#FECACA",
}

// legendOrder fixes the order sub-teams appear in legends.
var legendOrder = []string{
	task.SubTeamDesign,
	task.SubTeamElectrical,
	task.SubTeamProgramming,
	task.SubTeamFabrication,
}

const (
	blockedColor = "#6B7280"
	badgeText    = "#1F2937"
	errorColor   = "#FF6B6B"
)

// styles renders for one writer. Writers that are not terminals get plain
// text.
type styles struct {
	r *lipgloss.Renderer
}

func newStyles(w io.Writer) styles {
	return styles{r: lipgloss.NewRenderer(w)}
}

// badge renders a sub-team label on its color.
func (s styles) badge(team string) string {
	st := s.r.NewStyle()
	if c, ok := SubTeamColors[team]; ok {
		st = st.Background(lipgloss.Color(c)).Foreground(lipgloss.Color(badgeText))
	}
	return st.Render("[" + team + "]")
}

// paint renders text in the sub-team color, or gray when blocked.
func (s styles) paint(team string, blocked bool, text string) string {
	st := s.r.NewStyle()
	switch c, ok := SubTeamColors[team]; {
	case blocked:
		st = st.Foreground(lipgloss.Color(blockedColor))
	case ok:
		st = st.Foreground(lipgloss.Color(c))
	}
	return st.Render(text)
}

func (s styles) bold(text string) string {
	return s.r.NewStyle().Bold(true).Render(text)
}

func (s styles) faint(text string) string {
	return s.r.NewStyle().Faint(true).Render(text)
}

func (s styles) alert(text string) string {
	return s.r.NewStyle().Foreground(lipgloss.Color(errorColor)).Bold(true).Render(text)
}
