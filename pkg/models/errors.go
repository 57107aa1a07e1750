package models

import (
	"fmt"

	"github.com/google/uuid"
)

// PIDAlreadyExistsError is returned when creating a persistent identifier
// whose (pid_type, pid_value) pair is already taken.
type PIDAlreadyExistsError struct {
	PIDType  string
	PIDValue string
}

func (e *PIDAlreadyExistsError) Error() string {
	return fmt.Sprintf("persistent identifier already exists: %s:%s",
		e.PIDType, e.PIDValue)
}

// PIDDoesNotExistError is returned when no persistent identifier matches
// the requested identity.
type PIDDoesNotExistError struct {
	PIDType  string
	PIDValue string
}

func (e *PIDDoesNotExistError) Error() string {
	return fmt.Sprintf("persistent identifier does not exist: %s:%s",
		e.PIDType, e.PIDValue)
}

// PIDInvalidActionError is returned when an operation is not legal from the
// persistent identifier's current status.
type PIDInvalidActionError struct {
	Action string
	Status PIDStatus
	Reason string
}

func (e *PIDInvalidActionError) Error() string {
	return fmt.Sprintf("invalid action %q on persistent identifier in status %s: %s",
		e.Action, e.Status.Title(), e.Reason)
}

// PIDObjectAlreadyAssignedError is returned when assigning an object to a
// persistent identifier that already carries a different object, without
// requesting an overwrite.
type PIDObjectAlreadyAssignedError struct {
	ObjectType string
	ObjectUUID uuid.UUID
}

func (e *PIDObjectAlreadyAssignedError) Error() string {
	return fmt.Sprintf("persistent identifier is already assigned to another object: %s:%s",
		e.ObjectType, e.ObjectUUID)
}
