package datacite

import (
	"errors"
	"fmt"
)

// Sentinel outcomes of MDS calls. The provider maps these onto local PID
// status transitions; anything else is a generic request failure.
var (
	// ErrNotFound means the DOI is unknown to DataCite.
	ErrNotFound = errors.New("datacite: DOI not found")

	// ErrGone means the DOI is known but has been deactivated.
	ErrGone = errors.New("datacite: DOI inactive")

	// ErrNoContent means the DOI is known to DataCite but not resolvable.
	ErrNoContent = errors.New("datacite: DOI known but not resolvable")
)

// RequestError is a non-2xx MDS response outside the sentinel outcomes.
type RequestError struct {
	StatusCode int
	Body       string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("datacite: request failed with status %d: %s",
		e.StatusCode, e.Body)
}
