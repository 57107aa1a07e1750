package models

import (
	"errors"
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
	"gorm.io/gorm"
)

// log is the package logger. It is a null logger by default so the models
// stay quiet in library use; hosting applications wire their own via
// SetLogger during initialization.
var log hclog.Logger = hclog.NewNullLogger()

// SetLogger replaces the package logger. Call once during startup, before
// any PID operation runs.
func SetLogger(l hclog.Logger) {
	if l != nil {
		log = l
	}
}

// PersistentIdentifier stores and registers persistent identifiers.
//
// Assumptions:
//   - A persistent identifier can be represented as a string of max 255 chars.
//   - An object has many persistent identifiers.
//   - A persistent identifier has one and only one object.
type PersistentIdentifier struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Identity: the scheme tag plus the external value, unique together.
	PIDType  string `gorm:"column:pid_type;type:varchar(6);not null;uniqueIndex:uidx_type_pid" json:"pidType"`
	PIDValue string `gorm:"column:pid_value;type:varchar(255);not null;uniqueIndex:uidx_type_pid" json:"pidValue"`

	// PIDProvider disambiguates providers minting PIDs of the same type.
	PIDProvider *string `gorm:"column:pid_provider;type:varchar(8)" json:"pidProvider,omitempty"`

	// Status holds the single-character lifecycle code (see PIDStatus).
	Status PIDStatus `gorm:"type:char(1);not null;index:idx_pidstore_status" json:"status"`

	// Assigned internal object. Both fields are set or both are NULL.
	// While the PID is redirected, ObjectUUID holds the redirect row id
	// instead of a real object reference.
	ObjectType *string    `gorm:"column:object_type;type:varchar(3);index:idx_pidstore_object" json:"objectType,omitempty"`
	ObjectUUID *uuid.UUID `gorm:"column:object_uuid;type:uuid;index:idx_pidstore_object" json:"objectUuid,omitempty"`
}

// TableName specifies the table name.
func (PersistentIdentifier) TableName() string {
	return "pidstore_pid"
}

// CreatePID inserts a new persistent identifier with a specific type and
// value. If an object is given, it is assigned immediately. The insert runs
// in its own nested transaction so a failure does not abort a surrounding
// batch. A duplicate (pid_type, pid_value) pair returns
// *PIDAlreadyExistsError.
func CreatePID(
	db *gorm.DB,
	pidType, pidValue string,
	pidProvider *string,
	status PIDStatus,
	objectType *string,
	objectUUID *uuid.UUID,
) (*PersistentIdentifier, error) {
	if status == "" {
		status = StatusNew
	}

	pid := &PersistentIdentifier{
		PIDType:     pidType,
		PIDValue:    pidValue,
		PIDProvider: pidProvider,
		Status:      status,
	}
	if err := pid.validate(); err != nil {
		return nil, err
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(pid).Error; err != nil {
			return err
		}
		if objectType != nil && objectUUID != nil {
			return pid.Assign(tx, *objectType, *objectUUID, false)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			log.Warn("PID already exists", "pid_type", pidType, "pid_value", pidValue)
			return nil, &PIDAlreadyExistsError{PIDType: pidType, PIDValue: pidValue}
		}
		log.Error("failed to create PID",
			"pid_type", pidType, "pid_value", pidValue, "error", err)
		return nil, err
	}

	log.Info("created PID", "pid_type", pidType, "pid_value", pidValue,
		"status", pid.Status.String())
	return pid, nil
}

// GetPID retrieves a persistent identifier by type and value, optionally
// filtered by provider tag. Returns *PIDDoesNotExistError if absent.
func GetPID(db *gorm.DB, pidType, pidValue string, pidProvider *string) (*PersistentIdentifier, error) {
	var pid PersistentIdentifier
	q := db.Where("pid_type = ? AND pid_value = ?", pidType, pidValue)
	if pidProvider != nil {
		q = q.Where("pid_provider = ?", *pidProvider)
	}
	if err := q.First(&pid).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &PIDDoesNotExistError{PIDType: pidType, PIDValue: pidValue}
		}
		return nil, err
	}
	return &pid, nil
}

// GetPIDByObject retrieves the persistent identifier of a given type
// attached to a given object.
func GetPIDByObject(db *gorm.DB, pidType, objectType string, objectUUID uuid.UUID) (*PersistentIdentifier, error) {
	var pid PersistentIdentifier
	err := db.Where("pid_type = ? AND object_type = ? AND object_uuid = ?",
		pidType, objectType, objectUUID).First(&pid).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &PIDDoesNotExistError{PIDType: pidType}
		}
		return nil, err
	}
	return &pid, nil
}

// PIDExists reports whether a persistent identifier with the given type and
// value exists.
func PIDExists(db *gorm.DB, pidType, pidValue string) (bool, error) {
	var count int64
	err := db.Model(&PersistentIdentifier{}).
		Where("pid_type = ? AND pid_value = ?", pidType, pidValue).
		Count(&count).Error
	return count > 0, err
}

// DereferenceObject returns all persistent identifiers attached to a given
// object, optionally filtered by status.
func DereferenceObject(db *gorm.DB, objectType string, objectUUID uuid.UUID, status *PIDStatus) ([]PersistentIdentifier, error) {
	var pids []PersistentIdentifier
	q := db.Where("object_type = ? AND object_uuid = ?", objectType, objectUUID)
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	err := q.Order("id").Find(&pids).Error
	return pids, err
}

func (p *PersistentIdentifier) validate() error {
	return validation.ValidateStruct(p,
		validation.Field(&p.PIDType, validation.Required, validation.Length(1, 6)),
		validation.Field(&p.PIDValue, validation.Required, validation.Length(1, 255)),
		validation.Field(&p.Status, validation.Required,
			validation.By(func(v interface{}) error {
				if s, ok := v.(PIDStatus); !ok || !s.IsValid() {
					return fmt.Errorf("must be a valid status code")
				}
				return nil
			})),
	)
}

//
// Assigned object methods.
//

// HasObject reports whether this PID has an assigned object.
func (p *PersistentIdentifier) HasObject() bool {
	return p.ObjectType != nil && p.ObjectUUID != nil
}

// GetAssignedObject returns the assigned object's UUID. With a non-empty
// objectType filter, the UUID is only returned when the attached object is
// of that type.
func (p *PersistentIdentifier) GetAssignedObject(objectType string) (uuid.UUID, bool) {
	if !p.HasObject() {
		return uuid.Nil, false
	}
	if objectType != "" && *p.ObjectType != objectType {
		return uuid.Nil, false
	}
	return *p.ObjectUUID, true
}

// Assign attaches this persistent identifier to a given object. Assigning
// the already-attached object is a no-op success. Assigning a different
// object fails with *PIDObjectAlreadyAssignedError unless overwrite is set,
// in which case the old object is detached first.
func (p *PersistentIdentifier) Assign(db *gorm.DB, objectType string, objectUUID uuid.UUID, overwrite bool) error {
	if p.IsDeleted() {
		return &PIDInvalidActionError{
			Action: "assign",
			Status: p.Status,
			Reason: "cannot assign objects to a deleted persistent identifier",
		}
	}
	if err := validation.Validate(objectType, validation.Required, validation.Length(1, 3)); err != nil {
		return fmt.Errorf("invalid object type: %w", err)
	}

	// A redirected PID has ObjectType nil but ObjectUUID pointing at its
	// redirect row, so either field being set means the PID is taken.
	if p.ObjectType != nil || p.ObjectUUID != nil {
		if p.ObjectType != nil && *p.ObjectType == objectType &&
			p.ObjectUUID != nil && *p.ObjectUUID == objectUUID {
			return nil
		}
		if !overwrite {
			return &PIDObjectAlreadyAssignedError{
				ObjectType: objectType,
				ObjectUUID: objectUUID,
			}
		}
		if err := p.Unassign(db); err != nil {
			return err
		}
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		p.ObjectType = &objectType
		p.ObjectUUID = &objectUUID
		return tx.Save(p).Error
	})
	if err != nil {
		log.Error("failed to assign object", "pid", p.String(),
			"object_type", objectType, "object_uuid", objectUUID, "error", err)
		return err
	}
	log.Info("assigned object", "pid", p.String(),
		"object_type", objectType, "object_uuid", objectUUID)
	return nil
}

// Unassign detaches the assigned object. If the PID is redirected, the
// redirect row is removed and the status is reset to REGISTERED, since only
// registered PIDs can be redirected. A PID with no object is a no-op.
func (p *PersistentIdentifier) Unassign(db *gorm.DB) error {
	if p.ObjectType == nil && p.ObjectUUID == nil {
		return nil
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if p.IsRedirected() {
			if err := tx.Delete(&Redirect{}, "id = ?", *p.ObjectUUID).Error; err != nil {
				return err
			}
			p.Status = StatusRegistered
		}
		p.ObjectType = nil
		p.ObjectUUID = nil
		return tx.Save(p).Error
	})
	if err != nil {
		log.Error("failed to unassign object", "pid", p.String(), "error", err)
		return err
	}
	log.Info("unassigned object", "pid", p.String())
	return nil
}

// GetRedirect returns the persistent identifier this PID redirects to.
func (p *PersistentIdentifier) GetRedirect(db *gorm.DB) (*PersistentIdentifier, error) {
	if !p.IsRedirected() || p.ObjectUUID == nil {
		return nil, &PIDInvalidActionError{
			Action: "get_redirect",
			Status: p.Status,
			Reason: "persistent identifier is not redirected",
		}
	}

	var r Redirect
	if err := db.First(&r, "id = ?", *p.ObjectUUID).Error; err != nil {
		return nil, err
	}
	var target PersistentIdentifier
	if err := db.First(&target, r.PIDID).Error; err != nil {
		return nil, err
	}
	return &target, nil
}

//
// Status methods.
//

// RedirectTo redirects this persistent identifier to another one. Only
// registered PIDs can be redirected; re-redirecting an already redirected
// PID updates the existing redirect row in place.
func (p *PersistentIdentifier) RedirectTo(db *gorm.DB, target *PersistentIdentifier) error {
	if !(p.IsRegistered() || p.IsRedirected()) {
		return &PIDInvalidActionError{
			Action: "redirect",
			Status: p.Status,
			Reason: "persistent identifier is not registered",
		}
	}
	if target == nil || target.ID == 0 {
		return &PIDDoesNotExistError{}
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		var r Redirect
		if p.IsRedirected() {
			if err := tx.First(&r, "id = ?", *p.ObjectUUID).Error; err != nil {
				return err
			}
			r.PIDID = target.ID
			if err := tx.Save(&r).Error; err != nil {
				return err
			}
		} else {
			r = Redirect{ID: uuid.New(), PIDID: target.ID}
			if err := tx.Create(&r).Error; err != nil {
				return err
			}
		}

		p.Status = StatusRedirected
		p.ObjectType = nil
		p.ObjectUUID = &r.ID
		return tx.Save(p).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return &PIDDoesNotExistError{PIDType: target.PIDType, PIDValue: target.PIDValue}
		}
		log.Error("failed to redirect PID", "pid", p.String(),
			"target", target.String(), "error", err)
		return err
	}
	log.Info("redirected PID", "pid", p.String(), "target", target.String())
	return nil
}

// Reserve marks the persistent identifier as reserved. Reserving may be
// done multiple times; reserving an already reserved PID is a no-op.
func (p *PersistentIdentifier) Reserve(db *gorm.DB) error {
	if !(p.IsNew() || p.IsReserved()) {
		return &PIDInvalidActionError{
			Action: "reserve",
			Status: p.Status,
			Reason: "persistent identifier is not new or reserved",
		}
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		p.Status = StatusReserved
		return tx.Save(p).Error
	})
	if err != nil {
		log.Error("failed to reserve PID", "pid", p.String(), "error", err)
		return err
	}
	log.Info("reserved PID", "pid", p.String())
	return nil
}

// Register marks the persistent identifier as registered with the provider.
func (p *PersistentIdentifier) Register(db *gorm.DB) error {
	if p.IsRegistered() || p.IsDeleted() || p.IsRedirected() {
		return &PIDInvalidActionError{
			Action: "register",
			Status: p.Status,
			Reason: "persistent identifier has already been registered or is deleted",
		}
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		p.Status = StatusRegistered
		return tx.Save(p).Error
	})
	if err != nil {
		log.Error("failed to register PID", "pid", p.String(), "error", err)
		return err
	}
	log.Info("registered PID", "pid", p.String())
	return nil
}

// Delete removes the persistent identifier. A PID that never left the NEW
// status is physically removed; anything that reached RESERVED or beyond is
// tombstoned as DELETED so the value is never reused.
func (p *PersistentIdentifier) Delete(db *gorm.DB) error {
	removed := false
	err := db.Transaction(func(tx *gorm.DB) error {
		if p.IsNew() {
			removed = true
			return tx.Delete(p).Error
		}
		p.Status = StatusDeleted
		return tx.Save(p).Error
	})
	if err != nil {
		log.Error("failed to delete PID", "pid", p.String(), "error", err)
		return err
	}
	if removed {
		log.Info("deleted PID (removed)", "pid", p.String())
	} else {
		log.Info("deleted PID", "pid", p.String())
	}
	return nil
}

// SyncStatus unconditionally overwrites the status. Used when the provider
// talks to an external service which might have been modified outside of
// this system.
func (p *PersistentIdentifier) SyncStatus(db *gorm.DB, status PIDStatus) error {
	if p.Status == status {
		return nil
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		p.Status = status
		return tx.Save(p).Error
	})
	if err != nil {
		log.Error("failed to sync PID status", "pid", p.String(),
			"status", status.String(), "error", err)
		return err
	}
	log.Info("synced PID status", "pid", p.String(), "status", status.String())
	return nil
}

// IsNew returns true if the PID has not yet been reserved or registered.
func (p *PersistentIdentifier) IsNew() bool { return p.Status == StatusNew }

// IsReserved returns true if the PID is reserved.
func (p *PersistentIdentifier) IsReserved() bool { return p.Status == StatusReserved }

// IsRegistered returns true if the PID has been registered.
func (p *PersistentIdentifier) IsRegistered() bool { return p.Status == StatusRegistered }

// IsRedirected returns true if the PID redirects to another PID.
func (p *PersistentIdentifier) IsRedirected() bool { return p.Status == StatusRedirected }

// IsDeleted returns true if the PID has been deleted.
func (p *PersistentIdentifier) IsDeleted() bool { return p.Status == StatusDeleted }

// String returns a compact representation for logs.
func (p *PersistentIdentifier) String() string {
	s := fmt.Sprintf("%s:%s (%s)", p.PIDType, p.PIDValue, p.Status)
	if p.ObjectType != nil && p.ObjectUUID != nil {
		s += fmt.Sprintf(" / %s:%s", *p.ObjectType, *p.ObjectUUID)
	}
	return s
}
