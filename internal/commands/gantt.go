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
	Register(&GanttCmd{})
}

// GanttCmd implements the gantt command.
type GanttCmd struct{}

func (c *GanttCmd) Name() string      { return "gantt" }
func (c *GanttCmd) Aliases() []string { return []string{"timeline"} }
func (c *GanttCmd) Synopsis() string  { return "Show the project timeline" }
func (c *GanttCmd) Usage() string     { return "taskboard gantt [common flags]" }
func (c *GanttCmd) NeedsBoard() bool  { return true }

func (c *GanttCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *GanttCmd) Run(ctx context.Context, cfg *config.Config, b board.Service, args []string, out, errOut io.Writer) int {
	r, bars := b.Timeline()
	output.FormatGantt(out, b.Tasks(), r, bars)
	return exitcode.Success
}
