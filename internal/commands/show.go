package commands

import (
	"context"
	"flag"
	"io"

	"taskpad/internal/config"
	"taskpad/internal/exitcode"
	"taskpad/internal/output"
	"taskpad/internal/service"
	"taskpad/internal/session"
)

func init() {
	Register(&ShowCmd{})
}

// ShowCmd implements the show command.
type ShowCmd struct{}

func (c *ShowCmd) Name() string       { return "show" }
func (c *ShowCmd) Aliases() []string  { return nil }
func (c *ShowCmd) Synopsis() string   { return "Show a task's details" }
func (c *ShowCmd) Usage() string      { return "taskpad show <ref>" }
func (c *ShowCmd) NeedsSession() bool { return true }

func (c *ShowCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ShowCmd) Run(ctx context.Context, cfg *config.Config, sess session.Session, svc service.Service, args []string, out, errOut io.Writer) int {
	ref, err := refFromArgs(args)
	if err != nil {
		output.FormatError(errOut, "%v", err)
		return exitcode.UserError
	}

	task, err := ResolveTask(ctx, svc, sess.UserID, ref)
	if err != nil {
		return fail(errOut, err)
	}

	output.FormatTaskDetail(out, task)
	return exitcode.Success
}
