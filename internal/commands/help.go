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
	Register(&HelpCmd{})
}

// HelpCmd implements the help command. The command list is rendered from
// the registry so it never drifts from what is actually registered.
type HelpCmd struct{}

func (c *HelpCmd) Name() string       { return "help" }
func (c *HelpCmd) Aliases() []string  { return nil }
func (c *HelpCmd) Synopsis() string   { return "Print usage" }
func (c *HelpCmd) Usage() string      { return "taskpad help" }
func (c *HelpCmd) NeedsSession() bool { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, sess session.Session, svc service.Service, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpHeader)
	fmt.Fprint(out, DefaultRegistry.Summary())
	fmt.Fprint(out, helpFooter)
	return exitcode.Success
}

const helpHeader = `Usage:
  taskpad [command] [common flags] [args]

Running taskpad with no command lists pending tasks.

Commands (* needs a session; run 'taskpad login' first):
`

const helpFooter = `
A <ref> is a task id, or a number (as printed by list, optionally prefixed
with '#').

Common flags:
  --config <dir>   Override config directory
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
`
