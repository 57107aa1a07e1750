package resolver

import (
	"errors"
	"fmt"

	"github.com/inveniosoftware/invenio-pidstore/pkg/models"
)

// ErrObjectNotFound is the sentinel object getters return (possibly
// wrapped) when the internal object has been removed independently of its
// persistent identifier. gorm.ErrRecordNotFound is honored the same way.
var ErrObjectNotFound = errors.New("object not found")

// PIDUnregisteredError is returned when resolving a persistent identifier
// that has not been registered yet and the resolver only accepts registered
// identifiers.
type PIDUnregisteredError struct {
	PID *models.PersistentIdentifier
}

func (e *PIDUnregisteredError) Error() string {
	return fmt.Sprintf("persistent identifier has not been registered: %s", e.PID)
}

// PIDDeletedError is returned when resolving a deleted persistent
// identifier. Object carries whatever previously-assigned object could
// still be retrieved, or nil.
type PIDDeletedError struct {
	PID    *models.PersistentIdentifier
	Object interface{}
}

func (e *PIDDeletedError) Error() string {
	return fmt.Sprintf("persistent identifier has been deleted: %s", e.PID)
}

// PIDRedirectedError is returned when resolving a redirected persistent
// identifier. DestinationPID is the target one hop away; the resolver never
// follows redirects automatically.
type PIDRedirectedError struct {
	PID            *models.PersistentIdentifier
	DestinationPID *models.PersistentIdentifier
}

func (e *PIDRedirectedError) Error() string {
	return fmt.Sprintf("persistent identifier is redirected: %s -> %s",
		e.PID, e.DestinationPID)
}

// PIDMissingObjectError is returned when a resolvable persistent identifier
// has no assigned object of the expected type.
type PIDMissingObjectError struct {
	PID *models.PersistentIdentifier
}

func (e *PIDMissingObjectError) Error() string {
	return fmt.Sprintf("persistent identifier has no assigned object: %s", e.PID)
}
