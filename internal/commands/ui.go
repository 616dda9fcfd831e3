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
	"taskpad/internal/tui"
)

func init() {
	Register(&UICmd{})
}

// UICmd launches the interactive dashboard.
type UICmd struct{}

func (c *UICmd) Name() string       { return "ui" }
func (c *UICmd) Aliases() []string  { return []string{"dashboard"} }
func (c *UICmd) Synopsis() string   { return "Open the interactive dashboard" }
func (c *UICmd) Usage() string      { return "taskpad ui [common flags]" }
func (c *UICmd) NeedsSession() bool { return true }

func (c *UICmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *UICmd) Run(ctx context.Context, cfg *config.Config, sess session.Session, svc service.Service, args []string, out, errOut io.Writer) int {
	if err := tui.Run(ctx, sess, svc); err != nil {
		output.FormatError(errOut, "%v", err)
		return exitcode.BackendError
	}
	return exitcode.Success
}
