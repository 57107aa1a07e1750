package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Redirect records the current target of a redirected persistent
// identifier. The redirected PID points at this row through its object_uuid
// while pid_id references the target PID. The RESTRICT constraint keeps a
// PID from being deleted while other identifiers still redirect to it.
//
// At most one redirect row exists per redirected PID: it is created on the
// first redirect, updated in place on re-redirects, and removed when the
// owning PID is unassigned.
type Redirect struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	PIDID uint                  `gorm:"column:pid_id;not null" json:"pidId"`
	PID   *PersistentIdentifier `gorm:"foreignKey:PIDID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
}

// TableName specifies the table name.
func (Redirect) TableName() string {
	return "pidstore_redirect"
}

// BeforeCreate hook to ensure the redirect row has a UUID primary key.
func (r *Redirect) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
