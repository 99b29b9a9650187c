package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"taskboard/internal/board"
	"taskboard/internal/config"
	"taskboard/internal/exitcode"
	"taskboard/internal/output"
	"taskboard/internal/task"
)

func init() {
	Register(&DoneCmd{})
}

// DoneCmd toggles task completion for the current session. Nothing is
// written back to the feed.
type DoneCmd struct {
	force bool
}

// SetForce allows toggling blocked tasks (for testing).
func (c *DoneCmd) SetForce(force bool) {
	c.force = force
}

func (c *DoneCmd) Name() string      { return "done" }
func (c *DoneCmd) Aliases() []string { return []string{"toggle"} }
func (c *DoneCmd) Synopsis() string  { return "Toggle task completion for this session" }
func (c *DoneCmd) Usage() string     { return "taskboard done [--force] <ref>..." }
func (c *DoneCmd) NeedsBoard() bool  { return true }

func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.force, "force", false, "")
	fs.BoolVar(&c.force, "f", false, "")
}

func (c *DoneCmd) Run(ctx context.Context, cfg *config.Config, b board.Service, args []string, out, errOut io.Writer) int {
	refs, err := ParseTaskRefs(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	targets, err := ResolveTaskRefs(b, refs)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	// Check every target before toggling any, so a refusal changes nothing.
	if !c.force {
		all := b.Tasks()
		for _, t := range targets {
			if blockers := task.BlockedBy(t, all); len(blockers) > 0 {
				fmt.Fprintf(errOut, "error: task %s is blocked by: %s (use --force)\n", t.ID, joinIDs(blockers))
				return exitcode.UserError
			}
		}
	}

	seen := make(map[string]bool, len(targets))
	for _, t := range targets {
		if seen[t.ID] {
			continue
		}
		seen[t.ID] = true
		toggled, ok := b.ToggleCompleted(t.ID)
		if !ok {
			fmt.Fprintf(errOut, "error: task not found: %s\n", t.ID)
			return exitcode.UserError
		}
		if !cfg.Quiet {
			output.FormatToggled(out, toggled)
		}
	}

	if !cfg.Quiet {
		fmt.Fprintln(out)
		output.FormatList(out, b.Sorted(), b.Tasks())
	}
	return exitcode.Success
}

func joinIDs(tasks []task.Task) string {
	ids := make([]string, len(tasks))
	for i, t := range tasks {
		ids[i] = t.ID
	}
	return strings.Join(ids, ", ")
}
