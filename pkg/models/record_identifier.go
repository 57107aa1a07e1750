package models

import (
	"errors"

	"gorm.io/gorm"
)

// RecordIdentifier is a sequence generator for integer record identifiers.
//
// Its sole purpose is to issue integer identifiers in sequence using the
// underlying database's auto-increment feature in a transaction-friendly
// manner. Rows are only ever inserted, never updated. The feature exists to
// let legacy instances keep their integer identifier scheme; new deployments
// are encouraged to use UUIDs as record identifiers instead.
type RecordIdentifier struct {
	RecID int64 `gorm:"column:recid;primaryKey;autoIncrement" json:"recid"`
}

// TableName specifies the table name.
func (RecordIdentifier) TableName() string {
	return "pidstore_recid"
}

// NextRecordIdentifier returns the next available record identifier. If the
// underlying auto-increment counter has fallen behind the table's maximum
// (someone inserted rows without using this API), the sequence is repaired
// to max() and the insert retried once.
func NextRecordIdentifier(db *gorm.DB) (int64, error) {
	ri := &RecordIdentifier{}
	err := db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(ri).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// The counter drifted below max(); repair and retry.
		err = db.Transaction(func(tx *gorm.DB) error {
			maxID, err := MaxRecordIdentifier(tx)
			if err != nil {
				return err
			}
			if err := setRecordIdentifierSequence(tx, maxID); err != nil {
				return err
			}
			ri = &RecordIdentifier{}
			return tx.Create(ri).Error
		})
	}
	if err != nil {
		log.Error("failed to issue record identifier", "error", err)
		return 0, err
	}
	return ri.RecID, nil
}

// MaxRecordIdentifier returns the greatest issued record identifier, or 0
// if none has been issued.
func MaxRecordIdentifier(db *gorm.DB) (int64, error) {
	var maxID int64
	err := db.Model(&RecordIdentifier{}).
		Select("COALESCE(MAX(recid), 0)").
		Scan(&maxID).Error
	return maxID, err
}

// InsertRecordIdentifier force-inserts a specific record identifier (used
// when migrating legacy data) and resynchronizes the underlying
// auto-increment counter with the new maximum.
func InsertRecordIdentifier(db *gorm.DB, value int64) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&RecordIdentifier{RecID: value}).Error; err != nil {
			return err
		}
		maxID, err := MaxRecordIdentifier(tx)
		if err != nil {
			return err
		}
		return setRecordIdentifierSequence(tx, maxID)
	})
}

// setRecordIdentifierSequence resets the native sequence to a specific
// value. Only PostgreSQL exposes a sequence to reset; SQLite derives the
// next rowid from the table contents on its own.
func setRecordIdentifierSequence(db *gorm.DB, value int64) error {
	if db.Dialector.Name() != "postgres" {
		return nil
	}
	return db.Exec(
		"SELECT setval(pg_get_serial_sequence('pidstore_recid', 'recid'), ?)",
		value,
	).Error
}
