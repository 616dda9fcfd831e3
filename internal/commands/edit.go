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
	Register(&EditCmd{})
}

// EditCmd implements the edit command. Flags that are not given keep the
// task's current value; the full draft is always sent (no partial updates).
type EditCmd struct {
	title       string
	description string
	titleSet    bool
	descSet     bool
}

// SetTitle sets the new title (for testing).
func (c *EditCmd) SetTitle(title string) {
	c.title = title
	c.titleSet = true
}

// SetDescription sets the new description (for testing).
func (c *EditCmd) SetDescription(desc string) {
	c.description = desc
	c.descSet = true
}

func (c *EditCmd) Name() string       { return "edit" }
func (c *EditCmd) Aliases() []string  { return nil }
func (c *EditCmd) Synopsis() string   { return "Edit a task's title or description" }
func (c *EditCmd) Usage() string      { return "taskpad edit [--title <title>] [-d <description>] <ref>" }
func (c *EditCmd) NeedsSession() bool { return true }

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.Func("title", "", func(v string) error {
		c.title = v
		c.titleSet = true
		return nil
	})
	setDesc := func(v string) error {
		c.description = v
		c.descSet = true
		return nil
	}
	fs.Func("description", "", setDesc)
	fs.Func("d", "", setDesc)
}

func (c *EditCmd) Run(ctx context.Context, cfg *config.Config, sess session.Session, svc service.Service, args []string, out, errOut io.Writer) int {
	ref, err := refFromArgs(args)
	if err != nil {
		output.FormatError(errOut, "%v", err)
		return exitcode.UserError
	}

	if !c.titleSet && !c.descSet {
		output.FormatError(errOut, "nothing to change (use --title or -d)")
		return exitcode.UserError
	}

	task, err := ResolveTask(ctx, svc, sess.UserID, ref)
	if err != nil {
		return fail(errOut, err)
	}

	draft := service.TaskDraft{Title: task.Title, Description: task.Description}
	if c.titleSet {
		draft.Title = c.title
	}
	if c.descSet {
		draft.Description = c.description
	}

	updated, err := svc.Update(ctx, sess.UserID, task.ID, draft)
	if err != nil {
		return fail(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "updated %s\n", updated.ID)
	}
	return exitcode.Success
}
