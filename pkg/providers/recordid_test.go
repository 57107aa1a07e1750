package providers

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inveniosoftware/invenio-pidstore/pkg/models"
)

func TestCreateRecordID(t *testing.T) {
	db := setupTestDB(t)

	t.Run("mints sequential values starting at one", func(t *testing.T) {
		first, err := CreateRecordID(db, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, "1", first.Pid().PIDValue)
		assert.Equal(t, RecordIDType, first.Pid().PIDType)

		second, err := CreateRecordID(db, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, "2", second.Pid().PIDValue)
	})

	t.Run("bare identifiers start reserved", func(t *testing.T) {
		p, err := CreateRecordID(db, nil, nil)
		require.NoError(t, err)
		assert.True(t, p.Pid().IsReserved())
	})

	t.Run("identifiers with an object start registered", func(t *testing.T) {
		objectUUID := uuid.New()
		p, err := CreateRecordID(db, strPtr("rec"), &objectUUID)
		require.NoError(t, err)
		assert.True(t, p.Pid().IsRegistered())
		require.True(t, p.Pid().HasObject())
		assert.Equal(t, objectUUID, *p.Pid().ObjectUUID)
	})
}

func TestGetRecordID(t *testing.T) {
	db := setupTestDB(t)

	created, err := CreateRecordID(db, nil, nil)
	require.NoError(t, err)

	t.Run("wraps an existing record identifier", func(t *testing.T) {
		p, err := GetRecordID(db, created.Pid().PIDValue)
		require.NoError(t, err)
		assert.Equal(t, created.Pid().ID, p.Pid().ID)
	})

	t.Run("unknown value returns a typed error", func(t *testing.T) {
		_, err := GetRecordID(db, "999")
		var missing *models.PIDDoesNotExistError
		require.ErrorAs(t, err, &missing)
	})
}
