package apiclient

import (
	"errors"
	"fmt"
)

var (
	// ErrNoScope is returned when neither explicit flags nor a stored
	// default identify the tenant/realm to act on.
	ErrNoScope = errors.New("no default tenant/realm set")

	// ErrInvalidURL reports a composed endpoint that is not a well-formed
	// absolute URL, usually a malformed stored base URL.
	ErrInvalidURL = errors.New("invalid url")

	// ErrInvalidFilter reports a malformed list filter expression.
	ErrInvalidFilter = errors.New("invalid filter")
)

// APIError is a non-2xx response from the platform. Status and body are
// carried verbatim so nothing about the server's answer is lost on the way
// to the operator.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("request failed with status %d: %s", e.StatusCode, e.Body)
}

// AsAPIError unwraps err into an *APIError if one is in the chain.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
