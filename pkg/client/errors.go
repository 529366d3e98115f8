package client

import (
	"errors"
	"fmt"
)

// HTTPError represents a non-2xx HTTP response from the API. Message holds
// the server's "detail" field when the error payload carries one.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// IsStatus returns true if err (or any wrapped error) is an HTTPError with the given status code.
func IsStatus(err error, code int) bool {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == code
	}
	return false
}

// Detail returns the server-supplied message for a non-2xx response, or the
// plain error text for anything else (transport failures etc). Pages show
// this verbatim.
func Detail(err error) string {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) && httpErr.Message != "" {
		return httpErr.Message
	}
	return err.Error()
}
