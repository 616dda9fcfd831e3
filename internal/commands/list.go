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
	"taskpad/internal/viewstate"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// Handles both `taskpad` (no args) and `taskpad list`.
type ListCmd struct {
	all       bool
	completed bool
}

// SetAll sets the all flag (for testing).
func (c *ListCmd) SetAll(all bool) {
	c.all = all
}

// SetCompleted sets the completed flag (for testing).
func (c *ListCmd) SetCompleted(completed bool) {
	c.completed = completed
}

func (c *ListCmd) Name() string       { return "list" }
func (c *ListCmd) Aliases() []string  { return []string{"ls"} }
func (c *ListCmd) Synopsis() string   { return "List tasks" }
func (c *ListCmd) Usage() string      { return "taskpad list [--all] [--completed]" }
func (c *ListCmd) NeedsSession() bool { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.all, "all", false, "")
	fs.BoolVar(&c.all, "a", false, "")
	fs.BoolVar(&c.completed, "completed", false, "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, sess session.Session, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		output.FormatError(errOut, "unexpected argument: %s", args[0])
		return exitcode.UserError
	}

	view := viewstate.New()
	tasks, err := svc.List(ctx, sess.UserID)
	if err != nil {
		view.Fail(err)
		return fail(errOut, err)
	}
	view.ApplyList(tasks)

	if view.Len() == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, "no tasks")
		}
		return exitcode.Success
	}

	// Numbers refer to positions in the canonical newest-first collection
	// so they stay valid as task references across sections.
	nums := make(map[string]int, view.Len())
	for i, t := range view.Tasks() {
		nums[t.ID] = i + 1
	}

	pending := view.Pending()
	completed := view.Completed()

	switch {
	case c.completed:
		printSection(out, "Completed", completed, nums)
	case c.all:
		printSection(out, "Pending", pending, nums)
		fmt.Fprintln(out)
		printSection(out, "Completed", completed, nums)
	default:
		printSection(out, "Pending", pending, nums)
	}

	return exitcode.Success
}

func printSection(out io.Writer, title string, tasks []service.Task, nums map[string]int) {
	output.FormatSection(out, title, len(tasks))
	for _, t := range tasks {
		output.FormatTask(out, nums[t.ID], t)
	}
}
