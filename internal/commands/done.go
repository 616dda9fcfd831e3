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
	Register(&DoneCmd{})
}

// DoneCmd implements the done command. It inverts the completion flag, so
// running it on a completed task reopens it; the server computes the new
// flag and its response wins.
type DoneCmd struct{}

func (c *DoneCmd) Name() string       { return "done" }
func (c *DoneCmd) Aliases() []string  { return []string{"toggle"} }
func (c *DoneCmd) Synopsis() string   { return "Toggle a task's completion flag" }
func (c *DoneCmd) Usage() string      { return "taskpad done <ref>" }
func (c *DoneCmd) NeedsSession() bool { return true }

func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DoneCmd) Run(ctx context.Context, cfg *config.Config, sess session.Session, svc service.Service, args []string, out, errOut io.Writer) int {
	ref, err := refFromArgs(args)
	if err != nil {
		output.FormatError(errOut, "%v", err)
		return exitcode.UserError
	}

	task, err := ResolveTask(ctx, svc, sess.UserID, ref)
	if err != nil {
		return fail(errOut, err)
	}

	toggled, err := svc.ToggleComplete(ctx, sess.UserID, task.ID)
	if err != nil {
		return fail(errOut, err)
	}

	if !cfg.Quiet {
		status := "pending"
		if toggled.Completed {
			status = "completed"
		}
		fmt.Fprintf(out, "%s %s\n", status, toggled.ID)
	}
	return exitcode.Success
}
