package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/menu"
	"todo/internal/service"
)

func init() {
	Register(&MenuCmd{})
}

// MenuCmd implements the interactive menu command.
type MenuCmd struct {
	// In is the terminal input. Defaults to os.Stdin.
	In io.Reader
}

func (c *MenuCmd) Name() string      { return "menu" }
func (c *MenuCmd) Aliases() []string { return []string{"i"} }
func (c *MenuCmd) Synopsis() string  { return "Interactive menu" }
func (c *MenuCmd) Usage() string     { return "todo menu" }
func (c *MenuCmd) NeedsStore() bool  { return true }

func (c *MenuCmd) RegisterFlags(fs *pflag.FlagSet) {}

func (c *MenuCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	in := c.In
	if in == nil {
		in = os.Stdin
	}

	if err := menu.Run(ctx, svc, in, out); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.StoreError
	}
	return exitcode.Success
}
