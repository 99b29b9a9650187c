package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskboard/internal/board"
	"taskboard/internal/config"
	"taskboard/internal/exitcode"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "taskboard help" }
func (c *HelpCmd) NeedsBoard() bool  { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, b board.Service, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  taskboard                                     List tasks by deadline
  taskboard list [common flags]
  taskboard gantt [common flags]                Show the project timeline
  taskboard print [common flags] [--pdf <file>] [--paper Letter|A4] [<ref>...]
  taskboard done [common flags] [--force] <ref>...
  taskboard shell [common flags]                Interactive session
  taskboard feed [common flags] [<url> | --clear]
  taskboard login [common flags]
  taskboard logout [common flags]
  taskboard help
  taskboard version

A <ref> is a task ID or an exact task name. Separate names with commas.

Common flags:
  --config <dir>   Override config directory
  --feed <url>     Use this feed instead of the saved one
  --api            Read Google Sheets through the Sheets API (needs login)
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr

Environment:
  TASKBOARD_FEED_URL, TASKBOARD_TIMEOUT, TASKBOARD_SHEET_RANGE,
  TASKBOARD_LOG_FORMAT (text or json)
  (also read from <config dir>/.env)

Exit codes:
  0 ok, 1 usage error, 2 auth or config error,
  3 feed could not be loaded (sample tasks were shown)
`
