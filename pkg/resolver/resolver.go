// Package resolver turns an external persistent identifier value into the
// internal object it currently designates, honoring lifecycle policy. It is
// a pure read path: it never mutates PID state.
package resolver

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/inveniosoftware/invenio-pidstore/pkg/models"
)

// ObjectGetter retrieves an internal object by UUID. It is supplied by the
// hosting application, never implemented here. When the object has been
// removed independently of its PID, the getter must fail with
// ErrObjectNotFound (or gorm.ErrRecordNotFound) so the resolver can tell
// "gone" apart from a real storage failure.
type ObjectGetter func(id uuid.UUID) (interface{}, error)

// Resolver resolves persistent identifiers of a single type.
type Resolver struct {
	db             *gorm.DB
	pidType        string
	objectType     string
	getter         ObjectGetter
	registeredOnly bool
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithRegisteredOnly controls whether only REGISTERED identifiers resolve.
// The default is true; pass false to also resolve NEW and RESERVED
// identifiers that already carry an object.
func WithRegisteredOnly(v bool) Option {
	return func(r *Resolver) { r.registeredOnly = v }
}

// New creates a resolver for the given PID type. objectType filters which
// kind of attached object is acceptable; leave it empty to accept any.
func New(db *gorm.DB, pidType, objectType string, getter ObjectGetter, opts ...Option) *Resolver {
	r := &Resolver{
		db:             db,
		pidType:        pidType,
		objectType:     objectType,
		getter:         getter,
		registeredOnly: true,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve looks up a persistent identifier by value and returns it together
// with the internal object it designates.
//
// Failure kinds, in evaluation order:
//   - *models.PIDDoesNotExistError: no such identifier.
//   - *PIDUnregisteredError: status NEW/RESERVED while registeredOnly.
//   - *PIDDeletedError: status DELETED; carries a best-effort recovered
//     object when one is still retrievable.
//   - *PIDRedirectedError: status REDIRECTED; carries the destination PID
//     one hop away.
//   - *PIDMissingObjectError: resolvable status but no matching object.
func (r *Resolver) Resolve(pidValue string) (*models.PersistentIdentifier, interface{}, error) {
	pid, err := models.GetPID(r.db, r.pidType, pidValue, nil)
	if err != nil {
		return nil, nil, err
	}

	if r.registeredOnly && (pid.IsNew() || pid.IsReserved()) {
		return pid, nil, &PIDUnregisteredError{PID: pid}
	}

	if pid.IsDeleted() {
		// Recover whatever object is still reachable so callers can
		// render a tombstone, tolerating an independently removed one.
		var obj interface{}
		if objID, ok := pid.GetAssignedObject(r.objectType); ok {
			obj, err = r.getter(objID)
			if err != nil {
				if !isObjectNotFound(err) {
					return pid, nil, err
				}
				obj = nil
			}
		}
		return pid, nil, &PIDDeletedError{PID: pid, Object: obj}
	}

	if pid.IsRedirected() {
		target, err := pid.GetRedirect(r.db)
		if err != nil {
			return pid, nil, err
		}
		return pid, nil, &PIDRedirectedError{PID: pid, DestinationPID: target}
	}

	objID, ok := pid.GetAssignedObject(r.objectType)
	if !ok {
		return pid, nil, &PIDMissingObjectError{PID: pid}
	}

	obj, err := r.getter(objID)
	if err != nil {
		return pid, nil, err
	}
	return pid, obj, nil
}

func isObjectNotFound(err error) bool {
	return errors.Is(err, ErrObjectNotFound) || errors.Is(err, gorm.ErrRecordNotFound)
}
