// Package main is the entry point for the taskpad CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"taskpad/internal/cli"
	"taskpad/internal/commands"
	"taskpad/internal/config"
	"taskpad/internal/logging"
	"taskpad/internal/service"
	"taskpad/internal/session"
	"taskpad/internal/taskstore"
	"taskpad/internal/transport"
)

func main() {
	// Create context that cancels on interrupt
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	services := func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		tr := transport.New(cfg.APIURL,
			transport.WithRetries(cfg.Retries),
			transport.WithRetryDelay(cfg.RetryDelay),
			transport.WithHTTPClient(transport.HTTPClient(cfg.Timeout)),
			transport.WithLogger(logging.New(cfg.Debug)),
		)
		return taskstore.New(tr), nil
	}

	sessions := func(cfg *config.Config) session.Provider {
		return session.NewFileProvider(cfg.TokenPath(), commands.OAuthConfig(cfg))
	}

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, services, sessions)

	// Run and exit with code
	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	os.Exit(code)
}
