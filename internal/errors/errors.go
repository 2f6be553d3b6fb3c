// internal/errors/errors.go
package errors

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a cached repository does not exist.
var ErrNotFound = errors.New("repository not found")

// Kind classifies failures of calls to the GitHub API.
type Kind string

const (
	KindRateLimit    Kind = "rate_limit"
	KindInvalidQuery Kind = "invalid_query"
	KindAPI          Kind = "api_error"
	KindConnectivity Kind = "connectivity"
	KindFetch        Kind = "fetch_failed"
)

// SearchError is a classified GitHub API failure. Its Error method returns the
// message shown to the user.
type SearchError struct {
	Kind Kind
	// Status is the HTTP status line, empty when no response was received.
	Status     string
	StatusCode int
	Err        error
}

func (e *SearchError) Error() string {
	switch e.Kind {
	case KindRateLimit:
		return "API rate limit exceeded. Please try again later."
	case KindInvalidQuery:
		return "Invalid search query. Please try different keywords."
	case KindAPI:
		return fmt.Sprintf("GitHub API error: %s", e.Status)
	case KindFetch:
		if e.Status == "" {
			return "Failed to fetch repository details."
		}
		return fmt.Sprintf("Failed to fetch repository: %s", e.Status)
	default:
		return "Failed to fetch repositories. Please check your connection and try again."
	}
}

func (e *SearchError) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is a SearchError of the given kind.
func IsKind(err error, kind Kind) bool {
	var se *SearchError
	return errors.As(err, &se) && se.Kind == kind
}

// ErrInvalidParameter is returned when a request parameter has an unsupported value.
type ErrInvalidParameter struct {
	Name  string
	Value string
}

func (e *ErrInvalidParameter) Error() string {
	return fmt.Sprintf("invalid value %q for parameter %q", e.Value, e.Name)
}
