package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/service"
)

func init() {
	Register(&RmCmd{})
}

// RmCmd implements the rm command.
type RmCmd struct{}

func (c *RmCmd) Name() string      { return "rm" }
func (c *RmCmd) Aliases() []string { return []string{"delete"} }
func (c *RmCmd) Synopsis() string  { return "Delete a task" }
func (c *RmCmd) Usage() string     { return "todo rm <id>" }
func (c *RmCmd) NeedsStore() bool  { return true }

func (c *RmCmd) RegisterFlags(fs *pflag.FlagSet) {}

func (c *RmCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	id, err := ParseTaskID(args)
	if err != nil {
		return reportTaskArgError(errOut, err)
	}

	// Look the task up first so the confirmation can show what was removed
	task, err := svc.GetTask(ctx, id)
	if err != nil {
		return reportStoreError(errOut, id, err)
	}

	if err := svc.DeleteTask(ctx, id); err != nil {
		return reportStoreError(errOut, id, err)
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "deleted %d: %s\n", task.ID, task.Description)
	}
	return exitcode.Success
}
