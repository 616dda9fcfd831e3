// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, invalid draft, not found).
	UserError = 1

	// AuthError indicates a session/auth error (not logged in, expired).
	AuthError = 2

	// BackendError indicates a task service or network error.
	BackendError = 3
)
