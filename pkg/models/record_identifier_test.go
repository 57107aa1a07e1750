package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextRecordIdentifier(t *testing.T) {
	db := setupTestDB(t)

	t.Run("issues identifiers in sequence", func(t *testing.T) {
		first, err := NextRecordIdentifier(db)
		require.NoError(t, err)
		second, err := NextRecordIdentifier(db)
		require.NoError(t, err)
		third, err := NextRecordIdentifier(db)
		require.NoError(t, err)

		assert.Equal(t, first+1, second)
		assert.Equal(t, second+1, third)
	})
}

func TestMaxRecordIdentifier(t *testing.T) {
	db := setupTestDB(t)

	t.Run("returns zero before any identifier is issued", func(t *testing.T) {
		maxID, err := MaxRecordIdentifier(db)
		require.NoError(t, err)
		assert.Zero(t, maxID)
	})

	t.Run("tracks the greatest issued identifier", func(t *testing.T) {
		last, err := NextRecordIdentifier(db)
		require.NoError(t, err)
		last, err = NextRecordIdentifier(db)
		require.NoError(t, err)

		maxID, err := MaxRecordIdentifier(db)
		require.NoError(t, err)
		assert.Equal(t, last, maxID)
	})
}

func TestInsertRecordIdentifier(t *testing.T) {
	db := setupTestDB(t)

	t.Run("force-inserts a specific identifier", func(t *testing.T) {
		require.NoError(t, InsertRecordIdentifier(db, 100))

		maxID, err := MaxRecordIdentifier(db)
		require.NoError(t, err)
		assert.Equal(t, int64(100), maxID)
	})

	t.Run("sequence continues past the inserted identifier", func(t *testing.T) {
		next, err := NextRecordIdentifier(db)
		require.NoError(t, err)
		assert.Greater(t, next, int64(100))
	})

	t.Run("rejects a duplicate identifier", func(t *testing.T) {
		err := InsertRecordIdentifier(db, 100)
		assert.Error(t, err)
	})
}
