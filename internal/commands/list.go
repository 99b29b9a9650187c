package commands

import (
	"context"
	"flag"
	"io"

	"taskboard/internal/board"
	"taskboard/internal/config"
	"taskboard/internal/exitcode"
	"taskboard/internal/output"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command, also run by `taskboard` with no args.
type ListCmd struct{}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List tasks by deadline" }
func (c *ListCmd) Usage() string     { return "taskboard list [common flags]" }
func (c *ListCmd) NeedsBoard() bool  { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, b board.Service, args []string, out, errOut io.Writer) int {
	output.FormatList(out, b.Sorted(), b.Tasks())
	return exitcode.Success
}
