package harvest

import (
	"errors"
	"fmt"
	"net/http"
)

// ArgumentError reports a required call argument that was missing. It is
// returned before any request is sent.
type ArgumentError struct {
	Arg string
}

// Error implements the error interface.
func (e *ArgumentError) Error() string {
	return e.Arg + " required"
}

// UnknownLinkError reports a relation that the service did not advertise.
type UnknownLinkError struct {
	Rel string
}

// Error implements the error interface.
func (e *UnknownLinkError) Error() string {
	return "unknown link " + e.Rel
}

// CredentialsError reports a malformed credentials value.
type CredentialsError struct {
	Reason string
}

// Error implements the error interface.
func (e *CredentialsError) Error() string {
	return e.Reason
}

// HTTPStatusError represents a response with a status of 400 or above.
type HTTPStatusError struct {
	StatusCode int    `json:"status_code" yaml:"status_code"`
	Status     string `json:"status"      yaml:"status"`
	URL        string `json:"url"         yaml:"url"`
	Body       []byte `json:"-"           yaml:"-"`
}

// Error implements the error interface.
func (e *HTTPStatusError) Error() string {
	status := e.Status
	if status == "" {
		status = fmt.Sprintf("http error: %d", e.StatusCode)
	}

	if e.URL == "" {
		return status
	}

	return fmt.Sprintf("%s (%s)", status, e.URL)
}

// TimeoutError is the service telling a ping that the session expired. The
// transport itself succeeded.
type TimeoutError struct {
	StatusCode int    `json:"status_code" yaml:"status_code"`
	URL        string `json:"url"         yaml:"url"`
}

// Error implements the error interface.
func (e *TimeoutError) Error() string {
	return "timeout"
}

// ConnectionError reports that the server could not be reached.
type ConnectionError struct {
	URL string
	Err error
}

// Error implements the error interface.
func (e *ConnectionError) Error() string {
	if e.Err == nil {
		return "could not connect to server"
	}

	return fmt.Sprintf("could not connect to server: %v", e.Err)
}

// Unwrap returns the transport error.
func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// Static errors for err113 compliance.
var (
	ErrConfigRequired   = errors.New("config is required")
	ErrURLRequired      = errors.New("URL required")
	ErrInvalidURL       = errors.New("must be an absolute URL")
	ErrTokenNotReturned = errors.New("authentication response did not include a token")
)

// IsNotFound checks if the error is a 404 response.
func IsNotFound(err error) bool {
	return hasStatus(err, http.StatusNotFound)
}

// IsUnauthorized checks if the error is a 401 response.
func IsUnauthorized(err error) bool {
	return hasStatus(err, http.StatusUnauthorized)
}

// IsForbidden checks if the error is a 403 response.
func IsForbidden(err error) bool {
	return hasStatus(err, http.StatusForbidden)
}

// IsTimeout checks if the error is a session timeout reported by ping.
func IsTimeout(err error) bool {
	timeoutErr := &TimeoutError{}

	return errors.As(err, &timeoutErr)
}

// IsConnection checks if the error is a failure to reach the server.
func IsConnection(err error) bool {
	connErr := &ConnectionError{}

	return errors.As(err, &connErr)
}

// IsUnknownLink checks if the error is an unadvertised relation.
func IsUnknownLink(err error) bool {
	linkErr := &UnknownLinkError{}

	return errors.As(err, &linkErr)
}

// IsArgument checks if the error is a missing call argument.
func IsArgument(err error) bool {
	argErr := &ArgumentError{}

	return errors.As(err, &argErr)
}

func hasStatus(err error, code int) bool {
	statusErr := &HTTPStatusError{}
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode == code
	}

	return false
}
