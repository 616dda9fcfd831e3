// Package cli parses arguments and dispatches to commands, resolving the
// session for commands that require one.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"taskpad/internal/commands"
	"taskpad/internal/config"
	"taskpad/internal/exitcode"
	"taskpad/internal/service"
	"taskpad/internal/session"
)

// ServiceFactory creates a Service from config.
// Used to inject the backend during dispatch.
type ServiceFactory func(ctx context.Context, cfg *config.Config) (service.Service, error)

// SessionFactory creates a session Provider from config.
type SessionFactory func(cfg *config.Config) session.Provider

// Dispatcher handles command-line parsing and dispatch.
type Dispatcher struct {
	registry *commands.Registry
	services ServiceFactory
	sessions SessionFactory
}

// NewDispatcher creates a new dispatcher with the given registry and factories.
func NewDispatcher(registry *commands.Registry, services ServiceFactory, sessions SessionFactory) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		services: services,
		sessions: sessions,
	}
}

// Run parses arguments and dispatches to the appropriate command.
// Returns the exit code.
func (d *Dispatcher) Run(ctx context.Context, args []string, out, errOut io.Writer) int {
	// No args -> dispatch to "list" command with no args
	if len(args) == 0 {
		cmd, _ := d.registry.Find("list")
		return d.dispatchCommand(ctx, cmd, nil, out, errOut)
	}

	cmdName := args[0]

	// If first token starts with -, it's an error (flags require a command)
	if strings.HasPrefix(cmdName, "-") {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}

	cmd, ok := d.registry.Find(cmdName)
	if !ok {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}

	return d.dispatchCommand(ctx, cmd, args[1:], out, errOut)
}

func (d *Dispatcher) dispatchCommand(ctx context.Context, cmd commands.Command, args []string, out, errOut io.Writer) int {
	// Create flag set with custom error handling
	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard) // We handle errors ourselves

	// Common flags
	var configDir string
	var quiet bool
	var debug bool

	fs.StringVar(&configDir, "config", "", "")
	fs.BoolVar(&quiet, "quiet", false, "")
	fs.BoolVar(&debug, "debug", false, "")

	// Register command-specific flags
	cmd.RegisterFlags(fs)

	if err := fs.Parse(args); err != nil {
		reportFlagError(errOut, err)
		return exitcode.UserError
	}

	// Check if first positional arg starts with - (should have been parsed as flag)
	positionalArgs := fs.Args()
	if len(positionalArgs) > 0 && strings.HasPrefix(positionalArgs[0], "-") {
		fmt.Fprintf(errOut, "error: unknown flag: %s\n", positionalArgs[0])
		return exitcode.UserError
	}

	cfg, err := config.Load(configDir)
	if err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.UserError
	}
	cfg.Quiet = quiet
	cfg.Debug = debug

	// Resolve the session before touching the task service. A missing
	// session is terminal for the command, never retried.
	var sess session.Session
	var svc service.Service
	if cmd.NeedsSession() {
		provider := d.sessions(cfg)
		sess, err = provider.Current(ctx)
		if err != nil {
			if errors.Is(err, session.ErrNoSession) {
				fmt.Fprintln(errOut, "error: not logged in (run: taskpad login)")
			} else {
				fmt.Fprintf(errOut, "error: %s\n", err)
			}
			return exitcode.AuthError
		}

		svc, err = d.services(ctx, cfg)
		if err != nil {
			fmt.Fprintf(errOut, "error: backend error: %s\n", err)
			return exitcode.BackendError
		}
	}

	return cmd.Run(ctx, cfg, sess, svc, positionalArgs, out, errOut)
}

// reportFlagError converts flag package errors into the CLI's error wording.
func reportFlagError(errOut io.Writer, err error) {
	errStr := err.Error()

	if strings.Contains(errStr, "needs a value") || strings.Contains(errStr, "flag needs an argument") {
		parts := strings.Split(errStr, ":")
		if len(parts) > 0 {
			flagPart := strings.TrimSpace(parts[0])
			flagPart = strings.TrimPrefix(flagPart, "flag ")
			fmt.Fprintf(errOut, "error: flag needs an argument: %s\n", flagPart)
			return
		}
	}

	if strings.HasPrefix(errStr, "flag provided but not defined:") {
		flagName := strings.TrimPrefix(errStr, "flag provided but not defined: ")
		fmt.Fprintf(errOut, "error: unknown flag: %s\n", flagName)
		return
	}

	fmt.Fprintf(errOut, "error: %s\n", errStr)
}
