package commands

import (
	"context"
	"fmt"
	"io"

	"taskboard/internal/board"
	"taskboard/internal/config"
	"taskboard/internal/exitcode"
)

// LoadBoard refreshes b and reports a failed load and the sample fallback on
// errOut. It returns exitcode.FeedError when the feed could not be loaded.
func LoadBoard(ctx context.Context, cfg *config.Config, b board.Service, errOut io.Writer) int {
	if err := b.Refresh(ctx); err != nil {
		ReportLoadError(errOut, err)
		return exitcode.FeedError
	}
	if b.UsingSample() && !cfg.Quiet {
		fmt.Fprintln(errOut, "no feed configured, showing sample tasks (run: taskboard feed <url>)")
	}
	return exitcode.Success
}

// ReportLoadError prints a failed load the way every command reports it.
func ReportLoadError(errOut io.Writer, err error) {
	fmt.Fprintf(errOut, "error: %v\n", err)
	fmt.Fprintln(errOut, "showing sample tasks")
}
