package content

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when no document matches a UID query.
	ErrNotFound = errors.New("content: document not found")
	// ErrMalformedResponse marks a response that does not have the expected shape.
	ErrMalformedResponse = errors.New("content: malformed response")
	// ErrInvalidCursor is returned for page cursors that do not point at the
	// configured repository.
	ErrInvalidCursor = errors.New("content: invalid page cursor")
	// ErrInvalidUID is returned for UIDs that are not slugs.
	ErrInvalidUID = errors.New("content: invalid uid")
)

// FetchError is a failed read against the content repository: a transport
// error, an unexpected status or a malformed body. Callers may retry.
type FetchError struct {
	Op         string
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("content %s %s: status %d: %v", e.Op, e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("content %s %s: %v", e.Op, e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }
