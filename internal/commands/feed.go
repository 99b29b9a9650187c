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
	"taskboard/internal/feed"
	"taskboard/internal/logger"
	"taskboard/internal/settings"
)

func init() {
	Register(&FeedCmd{})
}

// FeedCmd shows, saves or clears the feed URL.
type FeedCmd struct {
	clear bool
}

// SetClear sets the --clear flag (for testing).
func (c *FeedCmd) SetClear(clear bool) {
	c.clear = clear
}

func (c *FeedCmd) Name() string      { return "feed" }
func (c *FeedCmd) Aliases() []string { return nil }
func (c *FeedCmd) Synopsis() string  { return "Show, set or clear the feed URL" }
func (c *FeedCmd) Usage() string     { return "taskboard feed [<url> | --clear]" }
func (c *FeedCmd) NeedsBoard() bool  { return false }

func (c *FeedCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.clear, "clear", false, "")
}

func (c *FeedCmd) Run(ctx context.Context, cfg *config.Config, b board.Service, args []string, out, errOut io.Writer) int {
	if c.clear && len(args) > 0 {
		fmt.Fprintln(errOut, "error: cannot use both --clear and a URL")
		return exitcode.UserError
	}
	if len(args) > 1 {
		fmt.Fprintln(errOut, "error: expected a single URL")
		return exitcode.UserError
	}

	if !c.clear && len(args) == 0 {
		return c.show(cfg, out, errOut)
	}

	newURL := ""
	if len(args) == 1 {
		newURL = strings.TrimSpace(args[0])
		if err := ValidateFeedURL(newURL); err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
	}

	if err := settings.Open(cfg.SettingsPath()).SetFeedURL(newURL); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.AuthError
	}
	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	if strings.TrimSpace(cfg.FeedURL) != "" && !cfg.Quiet {
		fmt.Fprintln(errOut, "note: an override (--feed or TASKBOARD_FEED_URL) is still in effect")
	}

	// Inside the shell the shared board switches to the new feed right away.
	if b != nil {
		effective, _, err := ResolveFeedURL(cfg)
		if err != nil {
			b.SetSource(feed.Unavailable(cfg.SettingsPath(), err))
			return LoadBoard(ctx, cfg, b, errOut)
		}
		return switchFeed(ctx, cfg, b, effective, errOut)
	}
	return exitcode.Success
}

func (c *FeedCmd) show(cfg *config.Config, out, errOut io.Writer) int {
	u, origin, err := ResolveFeedURL(cfg)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.AuthError
	}
	if origin == OriginNone {
		if !cfg.Quiet {
			fmt.Fprintln(out, "no feed configured (showing sample tasks)")
		}
		return exitcode.Success
	}
	fmt.Fprintf(out, "%s (%s)\n", u, origin)
	return exitcode.Success
}

// switchFeed points b at rawURL and reloads it. A feed that cannot be opened
// leaves the sample tasks in place.
func switchFeed(ctx context.Context, cfg *config.Config, b board.Service, rawURL string, errOut io.Writer) int {
	src, err := feed.Open(ctx, cfg, rawURL, logger.FromContext(ctx))
	if err != nil {
		src = feed.Unavailable(rawURL, err)
	}
	b.SetSource(src)
	return LoadBoard(ctx, cfg, b, errOut)
}
