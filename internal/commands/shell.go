package commands

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"taskboard/internal/board"
	"taskboard/internal/config"
	"taskboard/internal/exitcode"
)

const shellPrompt = "taskboard> "

func init() {
	Register(&ShellCmd{registry: DefaultRegistry})
}

// ShellCmd runs an interactive session in which every command shares one
// loaded board, so completion toggles last until the session ends.
type ShellCmd struct {
	registry *Registry
	in       io.Reader
}

// NewShellCmd returns a shell reading commands from in and running them from
// registry.
func NewShellCmd(registry *Registry, in io.Reader) *ShellCmd {
	return &ShellCmd{registry: registry, in: in}
}

func (c *ShellCmd) Name() string      { return "shell" }
func (c *ShellCmd) Aliases() []string { return []string{"sh"} }
func (c *ShellCmd) Synopsis() string  { return "Interactive session over one task list" }
func (c *ShellCmd) Usage() string     { return "taskboard shell [common flags]" }
func (c *ShellCmd) NeedsBoard() bool  { return true }

func (c *ShellCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ShellCmd) Run(ctx context.Context, cfg *config.Config, b board.Service, args []string, out, errOut io.Writer) int {
	in := c.in
	if in == nil {
		in = os.Stdin
	}
	scanner := bufio.NewScanner(in)

	for {
		if !cfg.Quiet {
			fmt.Fprint(out, shellPrompt)
		}
		if !scanner.Scan() {
			break
		}
		if ctx.Err() != nil {
			break
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		name, rest := fields[0], fields[1:]

		switch name {
		case "quit", "exit", "q":
			return exitcode.Success
		case "refresh", "reload":
			if LoadBoard(ctx, cfg, b, errOut) == exitcode.Success && !cfg.Quiet {
				fmt.Fprintf(out, "loaded %d tasks\n", len(b.Tasks()))
			}
			continue
		case "help", "?":
			c.help(out)
			continue
		}

		cmd, ok := c.registry.Find(name)
		if !ok || cmd.Name() == c.Name() {
			fmt.Fprintf(errOut, "error: unknown command: %s\n", name)
			continue
		}
		c.runOne(ctx, cfg, b, cmd, rest, out, errOut)
	}

	if err := scanner.Err(); err != nil {
		fmt.Fprintf(errOut, "error: reading input: %v\n", err)
		return exitcode.UserError
	}
	if !cfg.Quiet {
		fmt.Fprintln(out)
	}
	return exitcode.Success
}

// runOne parses flags for cmd and runs it against the shared board. Exit
// codes are reported only through the command's own messages.
func (c *ShellCmd) runOne(ctx context.Context, cfg *config.Config, b board.Service, cmd Command, args []string, out, errOut io.Writer) {
	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	cmd.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return
	}
	cmd.Run(ctx, cfg, b, fs.Args(), out, errOut)
}

func (c *ShellCmd) help(out io.Writer) {
	fmt.Fprintln(out, "Commands:")
	for _, cmd := range c.registry.Except(c.Name()) {
		fmt.Fprintf(out, "  %-10s %s\n", cmd.Name(), cmd.Synopsis())
	}
	fmt.Fprintf(out, "  %-10s %s\n", "refresh", "Reload tasks from the feed")
	fmt.Fprintf(out, "  %-10s %s\n", "quit", "Leave the shell")
}
