package providers

import (
	"strconv"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/inveniosoftware/invenio-pidstore/pkg/models"
)

// RecordIDType is the pid type minted by the record id providers.
const RecordIDType = "recid"

// RecordIDProvider mints sequential integer record identifiers. No
// provider tag is recorded on its PIDs since the provider offers nothing
// beyond value generation.
//
// Provided for legacy instances keeping an integer identifier scheme; new
// deployments should prefer RecordIDProviderV2.
type RecordIDProvider struct {
	Base
}

func recordIDSettings() Settings {
	return Settings{
		PIDType:       RecordIDType,
		DefaultStatus: models.StatusReserved,
	}
}

// CreateRecordID mints the next integer in the recid sequence as a new
// persistent identifier. PIDs created bare are RESERVED; PIDs created with
// an object attached go straight to REGISTERED.
func CreateRecordID(db *gorm.DB, objectType *string, objectUUID *uuid.UUID) (*RecordIDProvider, error) {
	value, err := models.NextRecordIdentifier(db)
	if err != nil {
		return nil, err
	}

	opts := CreateOptions{
		PIDValue:   strconv.FormatInt(value, 10),
		ObjectType: objectType,
		ObjectUUID: objectUUID,
	}
	if objectType != nil && objectUUID != nil {
		opts.Status = models.StatusRegistered
	}

	base, err := Create(db, recordIDSettings(), opts)
	if err != nil {
		return nil, err
	}
	return &RecordIDProvider{Base: *base}, nil
}

// GetRecordID wraps an existing record identifier.
func GetRecordID(db *gorm.DB, pidValue string) (*RecordIDProvider, error) {
	base, err := Get(db, recordIDSettings(), pidValue)
	if err != nil {
		return nil, err
	}
	return &RecordIDProvider{Base: *base}, nil
}
