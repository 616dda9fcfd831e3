package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"taskpad/internal/config"
	"taskpad/internal/exitcode"
	"taskpad/internal/output"
	"taskpad/internal/service"
	"taskpad/internal/session"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct {
	description string
}

// SetDescription sets the description (for testing).
func (c *AddCmd) SetDescription(desc string) {
	c.description = desc
}

func (c *AddCmd) Name() string       { return "add" }
func (c *AddCmd) Aliases() []string  { return []string{"create"} }
func (c *AddCmd) Synopsis() string   { return "Create a task" }
func (c *AddCmd) Usage() string      { return "taskpad add [-d <description>] <title...>" }
func (c *AddCmd) NeedsSession() bool { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.description, "description", "", "")
	fs.StringVar(&c.description, "d", "", "")
}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, sess session.Session, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) == 0 {
		output.FormatError(errOut, "title required")
		return exitcode.UserError
	}

	draft := service.TaskDraft{
		Title:       strings.Join(args, " "),
		Description: c.description,
	}

	task, err := svc.Create(ctx, sess.UserID, draft)
	if err != nil {
		return fail(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "created %s\n", task.ID)
	}
	return exitcode.Success
}
