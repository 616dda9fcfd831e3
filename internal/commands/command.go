// Package commands provides the command interface and implementations.
package commands

import (
	"context"
	"flag"
	"io"

	"taskpad/internal/config"
	"taskpad/internal/service"
	"taskpad/internal/session"
)

// Command defines the interface for CLI commands.
type Command interface {
	// Name returns the primary command name.
	Name() string

	// Aliases returns alternative names for the command.
	Aliases() []string

	// Synopsis returns a short description for help output.
	Synopsis() string

	// Usage returns the usage string for help output.
	Usage() string

	// NeedsSession returns true if the command requires a resolved
	// session. Commands like help, version, login, logout return false.
	NeedsSession() bool

	// RegisterFlags registers command-specific flags.
	RegisterFlags(fs *flag.FlagSet)

	// Run executes the command.
	// cfg is always provided (config dir, base URL, retry settings).
	// sess is the zero Session and svc is nil when NeedsSession() is false.
	// args contains positional arguments after flag parsing.
	// Returns exit code.
	Run(ctx context.Context, cfg *config.Config, sess session.Session, svc service.Service, args []string, out, errOut io.Writer) int
}
