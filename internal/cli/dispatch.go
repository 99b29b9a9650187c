package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"taskboard/internal/board"
	"taskboard/internal/commands"
	"taskboard/internal/config"
	"taskboard/internal/exitcode"
	"taskboard/internal/feed"
	"taskboard/internal/logger"
)

// BoardFactory creates the board a command runs against.
// Used to inject the feed during dispatch.
type BoardFactory func(ctx context.Context, cfg *config.Config) (board.Service, error)

// NewBoard is the default BoardFactory. It resolves the feed URL in effect
// and opens it; with no URL the board serves the sample tasks. A feed that
// cannot be opened becomes a board whose loads fail, so the sample still
// renders.
func NewBoard(ctx context.Context, cfg *config.Config) (board.Service, error) {
	log := logger.FromContext(ctx)

	rawURL, _, err := commands.ResolveFeedURL(cfg)
	if err != nil {
		return board.New(feed.Unavailable(cfg.SettingsPath(), err), board.WithLogger(log)), nil
	}
	src, err := feed.Open(ctx, cfg, rawURL, log)
	if err != nil {
		src = feed.Unavailable(rawURL, err)
	}
	return board.New(src, board.WithLogger(log)), nil
}

// Dispatcher handles command-line parsing and dispatch.
type Dispatcher struct {
	registry *commands.Registry
	factory  BoardFactory
}

// NewDispatcher creates a new dispatcher with the given registry and board
// factory. A nil factory uses NewBoard.
func NewDispatcher(registry *commands.Registry, factory BoardFactory) *Dispatcher {
	if factory == nil {
		factory = NewBoard
	}
	return &Dispatcher{
		registry: registry,
		factory:  factory,
	}
}

// Run parses arguments and dispatches to the appropriate command.
// Returns the exit code.
func (d *Dispatcher) Run(ctx context.Context, args []string, out, errOut io.Writer) int {
	// No args -> dispatch to "list" command with no args
	if len(args) == 0 {
		return d.dispatch(ctx, "list", nil, out, errOut)
	}

	cmdName := args[0]

	// If first token starts with -, it's an error (flags require a command)
	if strings.HasPrefix(cmdName, "-") {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}

	cmd, ok := d.registry.Find(cmdName)
	if !ok {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}

	return d.dispatchCommand(ctx, cmd, args[1:], out, errOut)
}

func (d *Dispatcher) dispatch(ctx context.Context, cmdName string, args []string, out, errOut io.Writer) int {
	cmd, ok := d.registry.Find(cmdName)
	if !ok {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}
	return d.dispatchCommand(ctx, cmd, args, out, errOut)
}

func (d *Dispatcher) dispatchCommand(ctx context.Context, cmd commands.Command, args []string, out, errOut io.Writer) int {
	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard) // We handle errors ourselves

	// Common flags
	var (
		configDir string
		feedURL   string
		useAPI    bool
		quiet     bool
		debug     bool
	)
	fs.StringVar(&configDir, "config", "", "")
	fs.StringVar(&feedURL, "feed", "", "")
	fs.BoolVar(&useAPI, "api", false, "")
	fs.BoolVar(&quiet, "quiet", false, "")
	fs.BoolVar(&debug, "debug", false, "")

	cmd.RegisterFlags(fs)

	if err := fs.Parse(args); err != nil {
		return reportFlagError(err, errOut)
	}

	// Check if first positional arg starts with - (should have been parsed as flag)
	positionalArgs := fs.Args()
	if len(positionalArgs) > 0 && strings.HasPrefix(positionalArgs[0], "-") {
		fmt.Fprintf(errOut, "error: unknown flag: %s\n", positionalArgs[0])
		return exitcode.UserError
	}

	cfg, err := config.Load(configDir)
	if err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.UserError
	}
	cfg.Quiet = quiet
	cfg.Debug = debug
	cfg.UseAPI = useAPI
	if feedURL != "" {
		if err := commands.ValidateFeedURL(feedURL); err != nil {
			fmt.Fprintf(errOut, "error: %s\n", err)
			return exitcode.UserError
		}
		cfg.FeedURL = feedURL
	}

	log := logger.Discard()
	if debug {
		log = logger.New(logger.Config{
			Output: errOut,
			Debug:  true,
			JSON:   cfg.LogFormat == config.LogFormatJSON,
		})
	}
	ctx = logger.ContextWithLogger(ctx, log)

	if !cmd.NeedsBoard() {
		return cmd.Run(ctx, cfg, nil, positionalArgs, out, errOut)
	}

	b, err := d.factory(ctx, cfg)
	if err != nil {
		b = board.New(feed.Unavailable("feed", err), board.WithLogger(log))
	}

	// A failed load leaves the sample tasks in place; the command still runs
	// but the process reports the feed failure.
	loadCode := commands.LoadBoard(ctx, cfg, b, errOut)
	code := cmd.Run(ctx, cfg, b, positionalArgs, out, errOut)
	if code == exitcode.Success && loadCode != exitcode.Success {
		return loadCode
	}
	return code
}

func reportFlagError(err error, errOut io.Writer) int {
	errStr := err.Error()

	// Check for missing flag value
	if strings.Contains(errStr, "needs a value") || strings.Contains(errStr, "flag needs an argument") {
		parts := strings.Split(errStr, ":")
		if len(parts) > 0 {
			flagPart := strings.TrimSpace(parts[len(parts)-1])
			fmt.Fprintf(errOut, "error: flag needs an argument: %s\n", flagPart)
			return exitcode.UserError
		}
	}

	// Check for unknown flag
	if strings.HasPrefix(errStr, "flag provided but not defined:") {
		flagName := strings.TrimPrefix(errStr, "flag provided but not defined: ")
		fmt.Fprintf(errOut, "error: unknown flag: %s\n", flagName)
		return exitcode.UserError
	}

	fmt.Fprintf(errOut, "error: %s\n", errStr)
	return exitcode.UserError
}
