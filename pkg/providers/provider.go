// Package providers implements persistent identifier providers: strategy
// objects that own PID value generation and delegate lifecycle operations
// to the wrapped persistent identifier, optionally coordinating with an
// external registration authority.
package providers

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/inveniosoftware/invenio-pidstore/pkg/models"
)

// Provider is the minimal contract every provider satisfies: it wraps
// exactly one persistent identifier. Lifecycle methods are defined on the
// concrete types since external-authority providers need extra arguments
// (context, metadata documents) for theirs.
type Provider interface {
	Pid() *models.PersistentIdentifier
}

// Settings binds a provider's identity: the PID type it mints, the
// optional provider tag recorded on its PIDs, and the status newly created
// PIDs start in.
type Settings struct {
	PIDType       string
	PIDProvider   *string
	DefaultStatus models.PIDStatus
}

// CreateOptions carries the per-call parameters of Create.
type CreateOptions struct {
	// PIDType overrides the provider's default type for this call.
	PIDType string

	// PIDValue is the concrete identifier value. Required by the base
	// provider; generating subtypes fill it in themselves.
	PIDValue string

	// Status overrides the provider's default status for this call.
	Status models.PIDStatus

	// Object to assign at creation time, both fields or neither.
	ObjectType *string
	ObjectUUID *uuid.UUID
}

// Base wraps a persistent identifier and forwards lifecycle operations to
// it. Concrete providers embed it.
type Base struct {
	pid      *models.PersistentIdentifier
	settings Settings
}

// Pid returns the wrapped persistent identifier.
func (b *Base) Pid() *models.PersistentIdentifier {
	return b.pid
}

// Create inserts a new persistent identifier for s. opts.PIDValue must be
// set; provider subtypes generate it before delegating here.
func Create(db *gorm.DB, s Settings, opts CreateOptions) (*Base, error) {
	if opts.PIDValue == "" {
		return nil, fmt.Errorf("provider create requires a pid value")
	}
	pidType := opts.PIDType
	if pidType == "" {
		pidType = s.PIDType
	}
	status := opts.Status
	if status == "" {
		status = s.DefaultStatus
	}

	pid, err := models.CreatePID(db, pidType, opts.PIDValue, s.PIDProvider,
		status, opts.ObjectType, opts.ObjectUUID)
	if err != nil {
		return nil, err
	}
	return &Base{pid: pid, settings: s}, nil
}

// Get wraps an existing persistent identifier managed by s, filtered by
// the provider tag so providers sharing a pid type stay disambiguated.
func Get(db *gorm.DB, s Settings, pidValue string) (*Base, error) {
	pid, err := models.GetPID(db, s.PIDType, pidValue, s.PIDProvider)
	if err != nil {
		return nil, err
	}
	return &Base{pid: pid, settings: s}, nil
}

// Reserve reserves the persistent identifier. Whether reserving means
// anything depends on the provider's service.
func (b *Base) Reserve(db *gorm.DB) error {
	return b.pid.Reserve(db)
}

// Register registers the persistent identifier.
func (b *Base) Register(db *gorm.DB) error {
	return b.pid.Register(db)
}

// Update refreshes information about the persistent identifier with its
// authority. The base provider has no external authority, so this is a
// no-op.
func (b *Base) Update(db *gorm.DB) error {
	return nil
}

// Delete deletes the persistent identifier.
func (b *Base) Delete(db *gorm.DB) error {
	return b.pid.Delete(db)
}

// SyncStatus reconciles local status with an external authority. The base
// provider has none, so this is a no-op.
func (b *Base) SyncStatus(db *gorm.DB) error {
	return nil
}
