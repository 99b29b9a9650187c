package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"taskboard/internal/board"
	"taskboard/internal/config"
	"taskboard/internal/exitcode"
	"taskboard/internal/output"
	"taskboard/internal/printsheet"
	"taskboard/internal/task"
)

func init() {
	Register(&PrintCmd{})
}

// PrintCmd writes the sign-up sheet for all tasks or a selection.
type PrintCmd struct {
	pdfPath string
	paper   string
}

// SetPDF sets the PDF output path (for testing).
func (c *PrintCmd) SetPDF(path string) {
	c.pdfPath = path
}

func (c *PrintCmd) Name() string      { return "print" }
func (c *PrintCmd) Aliases() []string { return []string{"signup"} }
func (c *PrintCmd) Synopsis() string  { return "Print the task sign-up sheet" }
func (c *PrintCmd) Usage() string {
	return "taskboard print [--pdf <file>] [--paper Letter|A4] [<ref>...]"
}
func (c *PrintCmd) NeedsBoard() bool { return true }

func (c *PrintCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.pdfPath, "pdf", "", "")
	fs.StringVar(&c.paper, "paper", "Letter", "")
}

func (c *PrintCmd) Run(ctx context.Context, cfg *config.Config, b board.Service, args []string, out, errOut io.Writer) int {
	tasks := b.Sorted()
	if len(args) > 0 {
		selected, code := selectTasks(b, tasks, args, errOut)
		if code != exitcode.Success {
			return code
		}
		tasks = selected
	}

	if c.pdfPath == "" {
		output.FormatSignupSheet(out, tasks)
		return exitcode.Success
	}

	if c.paper != "Letter" && c.paper != "A4" {
		fmt.Fprintf(errOut, "error: unsupported paper size: %s\n", c.paper)
		return exitcode.UserError
	}
	opts := []printsheet.Option{printsheet.WithPageSize(c.paper)}

	if c.pdfPath == "-" {
		if err := printsheet.Write(out, tasks, opts...); err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		return exitcode.Success
	}

	f, err := os.Create(c.pdfPath)
	if err != nil {
		fmt.Fprintf(errOut, "error: failed to create %s: %v\n", c.pdfPath, err)
		return exitcode.UserError
	}
	if err := printsheet.Write(f, tasks, opts...); err != nil {
		f.Close()
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	if err := f.Close(); err != nil {
		fmt.Fprintf(errOut, "error: failed to write %s: %v\n", c.pdfPath, err)
		return exitcode.UserError
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "wrote %s (%d tasks)\n", c.pdfPath, len(tasks))
	}
	return exitcode.Success
}

// selectTasks keeps the tasks named by args, in the order of sorted.
func selectTasks(b board.Service, sorted []task.Task, args []string, errOut io.Writer) ([]task.Task, int) {
	refs, err := ParseTaskRefs(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return nil, exitcode.UserError
	}
	picked, err := ResolveTaskRefs(b, refs)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return nil, exitcode.UserError
	}

	want := make(map[string]bool, len(picked))
	for _, t := range picked {
		want[t.ID] = true
	}
	var selected []task.Task
	for _, t := range sorted {
		if want[t.ID] {
			selected = append(selected, t)
		}
	}
	return selected, exitcode.Success
}
