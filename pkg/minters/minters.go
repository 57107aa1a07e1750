// Package minters allocates fresh persistent identifiers for objects and
// records the chosen value back into the object's metadata. A minter fails
// when the target metadata field is already populated, so an object can
// never silently receive two identifiers of the same scheme.
package minters

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/inveniosoftware/invenio-pidstore/pkg/fetchers"
	"github.com/inveniosoftware/invenio-pidstore/pkg/models"
	"github.com/inveniosoftware/invenio-pidstore/pkg/providers"
)

// Minter mints a persistent identifier for the object identified by
// objectUUID, writing the generated value into data.
type Minter func(db *gorm.DB, objectUUID uuid.UUID, data map[string]interface{}) (*models.PersistentIdentifier, error)

// RecordObjectType tags record objects attached to record identifiers.
const RecordObjectType = "rec"

// NewRecordIDMinter returns a minter issuing sequential integer record
// identifiers into the given metadata field.
func NewRecordIDMinter(pidField string) Minter {
	if pidField == "" {
		pidField = fetchers.DefaultPIDField
	}
	return func(db *gorm.DB, objectUUID uuid.UUID, data map[string]interface{}) (*models.PersistentIdentifier, error) {
		if err := checkUnminted(data, pidField); err != nil {
			return nil, err
		}
		objectType := RecordObjectType
		provider, err := providers.CreateRecordID(db, &objectType, &objectUUID)
		if err != nil {
			return nil, err
		}
		data[pidField] = provider.Pid().PIDValue
		return provider.Pid(), nil
	}
}

// NewRecordIDMinterV2 returns a minter issuing random base32 record
// identifiers into the given metadata field. opts override the
// process-wide generation defaults.
func NewRecordIDMinterV2(pidField string, opts providers.GeneratorOptions) Minter {
	if pidField == "" {
		pidField = fetchers.DefaultPIDField
	}
	return func(db *gorm.DB, objectUUID uuid.UUID, data map[string]interface{}) (*models.PersistentIdentifier, error) {
		if err := checkUnminted(data, pidField); err != nil {
			return nil, err
		}
		objectType := RecordObjectType
		provider, err := providers.CreateRecordIDV2(db, &objectType, &objectUUID, opts)
		if err != nil {
			return nil, err
		}
		data[pidField] = provider.Pid().PIDValue
		return provider.Pid(), nil
	}
}

func checkUnminted(data map[string]interface{}, pidField string) error {
	if _, ok := data[pidField]; ok {
		return fmt.Errorf("metadata field %q is already set", pidField)
	}
	return nil
}
