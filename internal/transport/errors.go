package transport

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// fallbackMessage is used when an error response body cannot be interpreted.
const fallbackMessage = "an unexpected error occurred"

// RequestError reports a request that never completed an HTTP exchange
// (connection refused, timeout, DNS failure). It wraps the failure of the
// final attempt after retries were exhausted.
type RequestError struct {
	Method   string
	Path     string
	Attempts int
	Err      error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("%s %s failed after %d attempts: %v", e.Method, e.Path, e.Attempts, e.Err)
}

func (e *RequestError) Unwrap() error { return e.Err }

// APIError reports a completed exchange that returned a non-success status.
// Message is the server-provided detail when one could be extracted.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}

// IsNotFound reports whether err is an APIError with status 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// decodeError marks a success response whose body could not be read or
// decoded. The exchange produced no usable result, so it is retried like a
// transport failure.
type decodeError struct {
	err error
}

func (e *decodeError) Error() string { return e.err.Error() }

func (e *decodeError) Unwrap() error { return e.err }

// errorBody is the wire shape of a service error response.
// Detail is kept raw so non-string values can be coerced.
type errorBody struct {
	Detail json.RawMessage `json:"detail"`
	Code   string          `json:"code"`
}

// decodeAPIError builds an APIError from a non-success response body.
// A missing, malformed, or non-JSON body falls back to a generic message
// rather than surfacing a parse failure.
func decodeAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{Status: status, Message: fallbackMessage}

	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil {
		return apiErr
	}
	apiErr.Code = eb.Code

	if len(eb.Detail) == 0 {
		return apiErr
	}

	// detail is usually a string; structured validation details are
	// surfaced as their JSON representation.
	var detail string
	if err := json.Unmarshal(eb.Detail, &detail); err == nil {
		if detail != "" {
			apiErr.Message = detail
		}
		return apiErr
	}
	apiErr.Message = string(eb.Detail)
	return apiErr
}
