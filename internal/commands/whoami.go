package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskpad/internal/config"
	"taskpad/internal/exitcode"
	"taskpad/internal/service"
	"taskpad/internal/session"
)

func init() {
	Register(&WhoamiCmd{})
}

// WhoamiCmd prints the current session identity.
type WhoamiCmd struct{}

func (c *WhoamiCmd) Name() string       { return "whoami" }
func (c *WhoamiCmd) Aliases() []string  { return nil }
func (c *WhoamiCmd) Synopsis() string   { return "Print the current user" }
func (c *WhoamiCmd) Usage() string      { return "taskpad whoami" }
func (c *WhoamiCmd) NeedsSession() bool { return true }

func (c *WhoamiCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *WhoamiCmd) Run(ctx context.Context, cfg *config.Config, sess session.Session, svc service.Service, args []string, out, errOut io.Writer) int {
	if sess.Email != "" {
		fmt.Fprintf(out, "%s (%s)\n", sess.Email, sess.UserID)
	} else {
		fmt.Fprintln(out, sess.UserID)
	}
	return exitcode.Success
}
