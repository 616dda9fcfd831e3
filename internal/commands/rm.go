package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskpad/internal/config"
	"taskpad/internal/exitcode"
	"taskpad/internal/output"
	"taskpad/internal/service"
	"taskpad/internal/session"
)

func init() {
	Register(&RmCmd{})
}

// RmCmd implements the rm command.
type RmCmd struct{}

func (c *RmCmd) Name() string       { return "rm" }
func (c *RmCmd) Aliases() []string  { return []string{"delete"} }
func (c *RmCmd) Synopsis() string   { return "Delete a task" }
func (c *RmCmd) Usage() string      { return "taskpad rm <ref>" }
func (c *RmCmd) NeedsSession() bool { return true }

func (c *RmCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *RmCmd) Run(ctx context.Context, cfg *config.Config, sess session.Session, svc service.Service, args []string, out, errOut io.Writer) int {
	ref, err := refFromArgs(args)
	if err != nil {
		output.FormatError(errOut, "%v", err)
		return exitcode.UserError
	}

	task, err := ResolveTask(ctx, svc, sess.UserID, ref)
	if err != nil {
		return fail(errOut, err)
	}

	if err := svc.Delete(ctx, sess.UserID, task.ID); err != nil {
		return fail(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
