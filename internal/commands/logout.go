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
	Register(&LogoutCmd{})
}

// LogoutCmd implements the logout command.
type LogoutCmd struct{}

func (c *LogoutCmd) Name() string       { return "logout" }
func (c *LogoutCmd) Aliases() []string  { return nil }
func (c *LogoutCmd) Synopsis() string   { return "Remove the stored session" }
func (c *LogoutCmd) Usage() string      { return "taskpad logout [common flags]" }
func (c *LogoutCmd) NeedsSession() bool { return false }

func (c *LogoutCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *LogoutCmd) Run(ctx context.Context, cfg *config.Config, sess session.Session, svc service.Service, args []string, out, errOut io.Writer) int {
	if !cfg.HasToken() {
		if !cfg.Quiet {
			fmt.Fprintln(out, "not logged in")
		}
		return exitcode.Success
	}

	provider := session.NewFileProvider(cfg.TokenPath(), nil)
	if err := provider.SignOut(ctx); err != nil {
		output.FormatError(errOut, "%v", err)
		return exitcode.AuthError
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
