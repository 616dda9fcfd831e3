package commands

import (
	"errors"
	"io"
	"net/http"

	"taskpad/internal/exitcode"
	"taskpad/internal/output"
	"taskpad/internal/service"
	"taskpad/internal/transport"
)

// fail maps a store client error to a user-facing message and exit code.
// Validation errors and 404s are user errors; 401/403 mean the session is no
// longer accepted; everything else is a backend or network failure.
func fail(errOut io.Writer, err error) int {
	var vErr *service.ValidationError
	if errors.As(err, &vErr) {
		output.FormatError(errOut, "%s", vErr.Error())
		return exitcode.UserError
	}

	if errors.Is(err, ErrTaskRefRequired) || errors.Is(err, ErrTaskRefOutOfRange) {
		output.FormatError(errOut, "%v", err)
		return exitcode.UserError
	}

	var apiErr *transport.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Status {
		case http.StatusUnauthorized, http.StatusForbidden:
			output.FormatError(errOut, "session rejected (run: taskpad login)")
			return exitcode.AuthError
		case http.StatusNotFound:
			output.FormatError(errOut, "%s", apiErr.Message)
			return exitcode.UserError
		default:
			output.FormatError(errOut, "%s", apiErr.Message)
			return exitcode.BackendError
		}
	}

	var reqErr *transport.RequestError
	if errors.As(err, &reqErr) {
		output.FormatError(errOut, "task service unreachable: %v", reqErr.Err)
		return exitcode.BackendError
	}

	output.FormatError(errOut, "%v", err)
	return exitcode.BackendError
}
