package output

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"taskboard/internal/task"
)

var (
	chassis = task.Task{
		ID: "1", Name: "Chassis Design", Overview: "Design the main robot chassis in CAD",
		SubTeam: task.SubTeamDesign, StartDate: "2025-01-10", Deadline: "2025-01-12",
		PersonResponsible: "Alice", Completed: true, SpotsNeeded: 2,
	}
	wiring = task.Task{
		ID: "2", Name: "Wire Robot", SubTeam: task.SubTeamElectrical, PreRequisites: []string{"3"},
		StartDate: "2025-01-12", Deadline: "2025-01-13", PersonResponsible: "Ben", SpotsNeeded: 3,
	}
	practice = task.Task{
		ID: "3", Name: "Practice", SubTeam: task.DefaultSubTeam, StartDate: "2025-01-11",
		PersonResponsible: task.DefaultPerson, SpotsNeeded: 0,
	}
	all = []task.Task{chassis, wiring, practice}
)

func TestFormatList(t *testing.T) {
	var buf bytes.Buffer
	FormatList(&buf, []task.Task{chassis, wiring}, all)

	want := "" +
		"   1  [x] Chassis Design [Design] Completed\n" +
		"          Design the main robot chassis in CAD\n" +
		"          Deadline: Jan 12, 2025  Responsible: Alice\n" +
		"   2  [!] Wire Robot [Electrical] Blocked\n" +
		"          Deadline: Jan 13, 2025  Responsible: Ben  Pre-reqs: 3\n"
	assert.Equal(t, want, buf.String())
}

func TestFormatList_Empty(t *testing.T) {
	var buf bytes.Buffer
	FormatList(&buf, nil, nil)
	assert.Equal(t, "no tasks\n", buf.String())
}

func TestFormatList_PendingAndTBD(t *testing.T) {
	var buf bytes.Buffer
	formatTask(&buf, newStyles(&buf), practice, false)

	assert.Equal(t, ""+
		"   3  [ ] Practice [General] Pending\n"+
		"          Deadline: TBD  Responsible: Unassigned\n", buf.String())
}

func TestFormatToggled(t *testing.T) {
	var buf bytes.Buffer
	FormatToggled(&buf, chassis)
	FormatToggled(&buf, wiring)
	assert.Equal(t, "1: Chassis Design marked completed\n2: Wire Robot marked pending\n", buf.String())
}

func TestFormatGantt(t *testing.T) {
	r := task.TimelineRange(all, time.Date(2025, 1, 5, 9, 0, 0, 0, time.UTC))
	var buf bytes.Buffer
	FormatGantt(&buf, all, r, task.Bars(all, r))

	sp := func(n int) string { return strings.Repeat(" ", n) }
	want := "" +
		"Project Timeline  Jan 8 - Jan 18, 2025 (11 days)\n" +
		"█ Design  █ Electrical  █ Programming  █ Fabrication  ░ blocked  ✓ completed\n" +
		"\n" +
		sp(16) + "Jan\n" +
		"Task" + sp(12) + "89012345678\n" +
		"Chassis Design" + sp(4) + "███ ✓\n" +
		"Wire Robot" + sp(10) + "░░ blocked\n" +
		"\n" +
		"Unscheduled: Practice\n"
	assert.Equal(t, want, buf.String())
}

func TestFormatGantt_DeadlineBeforeStart(t *testing.T) {
	backwards := task.Task{ID: "4", Name: "Backwards", SubTeam: task.DefaultSubTeam, StartDate: "2025-01-15", Deadline: "2025-01-10"}
	tasks := []task.Task{chassis, backwards}
	r := task.TimelineRange(tasks, time.Date(2025, 1, 5, 9, 0, 0, 0, time.UTC))

	var buf bytes.Buffer
	assert.NotPanics(t, func() { FormatGantt(&buf, tasks, r, task.Bars(tasks, r)) })
	assert.Contains(t, buf.String(), "Unscheduled: Backwards\n")

	// Bars built by hand are drawn without panicking too.
	buf.Reset()
	bad := []task.Bar{{Task: backwards, OffsetDays: -3, DurationDays: -4}}
	assert.NotPanics(t, func() { FormatGantt(&buf, tasks, r, bad) })
}

func TestFormatGantt_Empty(t *testing.T) {
	var buf bytes.Buffer
	FormatGantt(&buf, nil, task.Range{}, nil)
	assert.Equal(t, "no tasks\n", buf.String())
}

func TestMonthRow(t *testing.T) {
	r := task.Range{TotalDays: 6}
	r.Start, _ = (task.Task{StartDate: "2025-01-30"}).Start()

	// "Jan" at day 0 would collide with "Feb" at day 2, so Feb is skipped.
	assert.Equal(t, "Jan", monthRow(r.Days()))
	assert.Equal(t, "011234", dayRow(r.Days()))
}

func TestClip(t *testing.T) {
	assert.Equal(t, "short", clip("short", 24))
	assert.Equal(t, "abcd…", clip("abcdefgh", 5))
}

func TestFormatSignupSheet(t *testing.T) {
	var buf bytes.Buffer
	FormatSignupSheet(&buf, []task.Task{chassis, practice})
	got := buf.String()

	assert.True(t, strings.HasPrefix(got, SignupTitle+"\n"+SignupInstructions+"\n"))
	assert.Contains(t, got, "Chassis Design [Design]  Due: Jan 12\n")
	assert.Contains(t, got, "Design the main robot chassis in CAD\n2 Spots Available\n")
	assert.Contains(t, got, "Practice [General]  Due: TBD\n")
	// SpotsNeeded below 1 falls back to the default of 3.
	assert.Contains(t, got, "3 Spots Available\n  1. ")
	assert.Equal(t, 5, strings.Count(got, signupLine))
}

func TestSpots(t *testing.T) {
	assert.Equal(t, 2, Spots(chassis))
	assert.Equal(t, task.DefaultSpotsNeeded, Spots(practice))
	assert.Equal(t, "3 Spots Available", SpotsLabel(practice))
}
