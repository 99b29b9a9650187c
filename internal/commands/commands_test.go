package commands_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"taskboard/internal/board"
	"taskboard/internal/commands"
	"taskboard/internal/config"
	"taskboard/internal/exitcode"
	"taskboard/internal/task"
	"taskboard/internal/testutil"
)

var fixedNow = func() time.Time { return time.Date(2025, 1, 5, 9, 0, 0, 0, time.UTC) }

// newBoard returns a loaded board over rows, or over the sample tasks when no
// rows are given.
func newBoard(t *testing.T, rows ...task.Row) *board.Board {
	t.Helper()
	var b *board.Board
	if len(rows) == 0 {
		b = board.New(nil, board.WithClock(fixedNow))
	} else {
		b = board.New(testutil.NewFakeSource(rows...), board.WithClock(fixedNow))
	}
	if err := b.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	return b
}

// runCommand is a helper to run a command against a board.
func runCommand(t *testing.T, cmd commands.Command, b board.Service, args []string, quiet bool) (stdout, stderr string, code int) {
	t.Helper()

	var outBuf, errBuf bytes.Buffer

	cfg := &config.Config{
		Dir:     t.TempDir(),
		Quiet:   quiet,
		Options: config.DefaultOptions(),
	}

	ctx := context.Background()
	code = cmd.Run(ctx, cfg, b, args, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

var twoRows = []task.Row{
	{"Task": "Wire robot", "Sub-Team": "Electrical", "Deadline": "2025-02-01", "Owner": "Ben", "Pre-Requisites": "2"},
	{"Task": "Order parts", "Deadline": "2025-01-20", "Person Responsible": "Alice"},
}

// Tests for version command
func TestVersionCommand(t *testing.T) {
	stdout, stderr, code := runCommand(t, &commands.VersionCmd{}, nil, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "taskboard 0.1.0\n" {
		t.Errorf("expected version output, got %q", stdout)
	}
}

// Tests for help command
func TestHelpCommand(t *testing.T) {
	stdout, stderr, code := runCommand(t, &commands.HelpCmd{}, nil, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	for _, want := range []string{"Usage:", "taskboard gantt", "--feed <url>", "Exit codes:"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("help output should contain %q", want)
		}
	}
}

// Tests for list command
func TestListCommand_SortedByDeadline(t *testing.T) {
	b := newBoard(t, twoRows...)

	stdout, stderr, code := runCommand(t, &commands.ListCmd{}, b, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}

	expected := "" +
		"   2  [ ] Order parts [General] Pending\n" +
		"          Deadline: Jan 20, 2025  Responsible: Alice\n" +
		"   1  [!] Wire robot [Electrical] Blocked\n" +
		"          Deadline: Feb 1, 2025  Responsible: Ben  Pre-reqs: 2\n"
	if stdout != expected {
		t.Errorf("expected %q, got %q", expected, stdout)
	}
}

func TestListCommand_Empty(t *testing.T) {
	b := newBoard(t, task.Row{"Owner": "nobody"})

	stdout, _, code := runCommand(t, &commands.ListCmd{}, b, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "no tasks\n" {
		t.Errorf("expected 'no tasks', got %q", stdout)
	}
}

// Tests for gantt command
func TestGanttCommand_Sample(t *testing.T) {
	stdout, stderr, code := runCommand(t, &commands.GanttCmd{}, newBoard(t), nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	testutil.GoldenString(t, "gantt_sample", stdout)
}

// Tests for done command
func TestDoneCommand_Success(t *testing.T) {
	b := newBoard(t, twoRows...)

	stdout, stderr, code := runCommand(t, &commands.DoneCmd{}, b, []string{"Order", "parts"}, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if !strings.HasPrefix(stdout, "2: Order parts marked completed\n\n") {
		t.Errorf("expected toggle confirmation first, got %q", stdout)
	}
	// The prerequisite is now complete, so task 1 is no longer blocked.
	if !strings.Contains(stdout, "   1  [ ] Wire robot [Electrical] Pending\n") {
		t.Errorf("expected unblocked task in list, got %q", stdout)
	}
	if got, _ := b.Resolve("2"); !got.Completed {
		t.Error("task 2 should be completed")
	}
}

func TestDoneCommand_ToggleBack(t *testing.T) {
	b := newBoard(t, twoRows...)

	runCommand(t, &commands.DoneCmd{}, b, []string{"2"}, true)
	stdout, _, code := runCommand(t, &commands.DoneCmd{}, b, []string{"2"}, true)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "" {
		t.Errorf("expected no stdout in quiet mode, got %q", stdout)
	}
	if got, _ := b.Resolve("2"); got.Completed {
		t.Error("task 2 should be pending again")
	}
}

func TestDoneCommand_Blocked(t *testing.T) {
	b := newBoard(t, twoRows...)

	stdout, stderr, code := runCommand(t, &commands.DoneCmd{}, b, []string{"1"}, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stdout != "" {
		t.Errorf("expected no stdout, got %q", stdout)
	}
	if stderr != "error: task 1 is blocked by: 2 (use --force)\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
	if got, _ := b.Resolve("1"); got.Completed {
		t.Error("blocked task must not be toggled")
	}
}

func TestDoneCommand_BlockedForce(t *testing.T) {
	b := newBoard(t, twoRows...)
	cmd := &commands.DoneCmd{}
	cmd.SetForce(true)

	_, stderr, code := runCommand(t, cmd, b, []string{"1"}, true)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d (%s)", exitcode.Success, code, stderr)
	}
	if got, _ := b.Resolve("1"); !got.Completed {
		t.Error("forced toggle should complete the task")
	}
}

func TestDoneCommand_NoRef(t *testing.T) {
	_, stderr, code := runCommand(t, &commands.DoneCmd{}, newBoard(t), nil, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: task reference required\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestDoneCommand_NotFound(t *testing.T) {
	_, stderr, code := runCommand(t, &commands.DoneCmd{}, newBoard(t), []string{"42"}, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: task not found: 42\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

// Tests for print command
func TestPrintCommand_Selection(t *testing.T) {
	b := newBoard(t)

	// Selection keeps deadline order, not argument order.
	stdout, stderr, code := runCommand(t, &commands.PrintCmd{}, b, []string{"Wire", "Robot,", "1"}, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	chassis := strings.Index(stdout, "Chassis Design [Design]  Due: Jan 15")
	wire := strings.Index(stdout, "Wire Robot [Electrical]  Due: Jan 27")
	if chassis < 0 || wire < 0 || chassis > wire {
		t.Errorf("expected Chassis Design before Wire Robot, got %q", stdout)
	}
	if strings.Contains(stdout, "Drive Code") {
		t.Error("unselected task should not be printed")
	}
}

func TestPrintCommand_All(t *testing.T) {
	stdout, _, code := runCommand(t, &commands.PrintCmd{}, newBoard(t), nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if !strings.Contains(stdout, "Drive Team Practice [General]  Due: TBD\n") {
		t.Errorf("expected TBD task, got %q", stdout)
	}
	if !strings.Contains(stdout, "6 Spots Available\n") {
		t.Errorf("expected spots caption, got %q", stdout)
	}
}

func TestPrintCommand_PDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "signup.pdf")
	cmd := &commands.PrintCmd{}
	cmd.SetPDF(path)

	stdout, stderr, code := runCommand(t, cmd, newBoard(t), nil, false)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (%s)", exitcode.Success, code, stderr)
	}
	if stdout != "wrote "+path+" (6 tasks)\n" {
		t.Errorf("unexpected stdout %q", stdout)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read pdf: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Error("expected a PDF document")
	}
}

func TestPrintCommand_UnknownRef(t *testing.T) {
	_, stderr, code := runCommand(t, &commands.PrintCmd{}, newBoard(t), []string{"Nope"}, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: task not found: Nope\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

// Tests for LoadBoard
func TestLoadBoard_FeedErrorFallsBack(t *testing.T) {
	src := testutil.NewFakeSource()
	src.Err = &task.FetchError{Source: "https://example.com/tasks.csv", Status: 404}
	b := board.New(src, board.WithClock(fixedNow))

	var errBuf bytes.Buffer
	code := commands.LoadBoard(context.Background(), &config.Config{}, b, &errBuf)

	if code != exitcode.FeedError {
		t.Errorf("expected exit code %d, got %d", exitcode.FeedError, code)
	}
	expected := "error: failed to load tasks from feed: fetching https://example.com/tasks.csv: HTTP 404\n" +
		"showing sample tasks\n"
	if errBuf.String() != expected {
		t.Errorf("expected %q, got %q", expected, errBuf.String())
	}
	if !b.UsingSample() || len(b.Tasks()) != len(board.SampleTasks()) {
		t.Error("expected the sample tasks after a failed load")
	}
}

func TestLoadBoard_NoFeedHint(t *testing.T) {
	var errBuf bytes.Buffer
	b := board.New(nil, board.WithClock(fixedNow))

	code := commands.LoadBoard(context.Background(), &config.Config{}, b, &errBuf)
	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if !strings.Contains(errBuf.String(), "no feed configured") {
		t.Errorf("expected hint, got %q", errBuf.String())
	}

	errBuf.Reset()
	commands.LoadBoard(context.Background(), &config.Config{Quiet: true}, b, &errBuf)
	if errBuf.String() != "" {
		t.Errorf("expected no hint in quiet mode, got %q", errBuf.String())
	}
}
