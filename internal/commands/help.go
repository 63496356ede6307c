package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/pflag"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/service"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "todo help [command]" }
func (c *HelpCmd) NeedsStore() bool  { return false }

func (c *HelpCmd) RegisterFlags(fs *pflag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		cmd, ok := DefaultRegistry.Find(args[0])
		if !ok {
			fmt.Fprintf(errOut, "error: unknown command: %s\n", args[0])
			return exitcode.UserError
		}
		PrintUsage(out, cmd)
		return exitcode.Success
	}

	fmt.Fprintln(out, "Usage:")
	fmt.Fprintf(out, "  %-36s %s\n", "todo", "List all tasks")
	for _, cmd := range DefaultRegistry.All() {
		fmt.Fprintf(out, "  %-36s %s\n", cmd.Usage(), cmd.Synopsis())
	}
	fmt.Fprint(out, commonFlagsText)
	return exitcode.Success
}

// PrintUsage prints the usage block for a single command.
func PrintUsage(w io.Writer, cmd Command) {
	fmt.Fprintf(w, "Usage:\n  %s\n\n%s\n", cmd.Usage(), cmd.Synopsis())
	if aliases := cmd.Aliases(); len(aliases) > 0 {
		fmt.Fprintf(w, "\nAliases: %s\n", strings.Join(aliases, ", "))
	}
	fmt.Fprint(w, commonFlagsText)
}

const commonFlagsText = `
Common flags:
  --config <dir>   Override config directory
  --file <path>    Override tasks file
  -q, --quiet      Suppress informational output
  --debug          Print debug logs to stderr
`
