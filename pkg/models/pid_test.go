package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestCreatePID(t *testing.T) {
	db := setupTestDB(t)

	t.Run("creates with default status new", func(t *testing.T) {
		pid, err := CreatePID(db, "recid", "1", nil, "", nil, nil)
		require.NoError(t, err)
		assert.NotZero(t, pid.ID)
		assert.Equal(t, StatusNew, pid.Status)
		assert.False(t, pid.HasObject())
	})

	t.Run("creates with explicit status and provider", func(t *testing.T) {
		pid, err := CreatePID(db, "doi", "10.1234/foo", strPtr("datacite"),
			StatusReserved, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, StatusReserved, pid.Status)
		require.NotNil(t, pid.PIDProvider)
		assert.Equal(t, "datacite", *pid.PIDProvider)
	})

	t.Run("assigns object at creation time", func(t *testing.T) {
		objectUUID := uuid.New()
		pid, err := CreatePID(db, "recid", "2", nil, StatusRegistered,
			strPtr("rec"), &objectUUID)
		require.NoError(t, err)
		require.True(t, pid.HasObject())
		assert.Equal(t, "rec", *pid.ObjectType)
		assert.Equal(t, objectUUID, *pid.ObjectUUID)
	})

	t.Run("rejects duplicate type and value pair", func(t *testing.T) {
		_, err := CreatePID(db, "recid", "1", nil, "", nil, nil)
		require.Error(t, err)
		var exists *PIDAlreadyExistsError
		require.ErrorAs(t, err, &exists)
		assert.Equal(t, "recid", exists.PIDType)
		assert.Equal(t, "1", exists.PIDValue)
	})

	t.Run("allows same value under a different type", func(t *testing.T) {
		_, err := CreatePID(db, "doi", "1", nil, "", nil, nil)
		require.NoError(t, err)
	})

	t.Run("rejects a pid type longer than six characters", func(t *testing.T) {
		_, err := CreatePID(db, "toolong", "1", nil, "", nil, nil)
		assert.Error(t, err)
	})

	t.Run("rejects an empty value", func(t *testing.T) {
		_, err := CreatePID(db, "recid", "", nil, "", nil, nil)
		assert.Error(t, err)
	})
}

func TestGetPID(t *testing.T) {
	db := setupTestDB(t)

	_, err := CreatePID(db, "doi", "10.1234/bar", strPtr("datacite"),
		StatusNew, nil, nil)
	require.NoError(t, err)

	t.Run("retrieves by type and value", func(t *testing.T) {
		pid, err := GetPID(db, "doi", "10.1234/bar", nil)
		require.NoError(t, err)
		assert.Equal(t, "doi", pid.PIDType)
		assert.Equal(t, "10.1234/bar", pid.PIDValue)
	})

	t.Run("filters by provider tag", func(t *testing.T) {
		pid, err := GetPID(db, "doi", "10.1234/bar", strPtr("datacite"))
		require.NoError(t, err)
		assert.Equal(t, "10.1234/bar", pid.PIDValue)

		_, err = GetPID(db, "doi", "10.1234/bar", strPtr("other"))
		var missing *PIDDoesNotExistError
		assert.ErrorAs(t, err, &missing)
	})

	t.Run("returns typed error when absent", func(t *testing.T) {
		_, err := GetPID(db, "doi", "10.1234/nope", nil)
		require.Error(t, err)
		var missing *PIDDoesNotExistError
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, "doi", missing.PIDType)
	})
}

func TestPIDExists(t *testing.T) {
	db := setupTestDB(t)

	_, err := CreatePID(db, "recid", "42", nil, "", nil, nil)
	require.NoError(t, err)

	exists, err := PIDExists(db, "recid", "42")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = PIDExists(db, "recid", "43")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestGetPIDByObject(t *testing.T) {
	db := setupTestDB(t)

	objectUUID := uuid.New()
	_, err := CreatePID(db, "recid", "7", nil, StatusRegistered,
		strPtr("rec"), &objectUUID)
	require.NoError(t, err)

	t.Run("retrieves by object", func(t *testing.T) {
		pid, err := GetPIDByObject(db, "recid", "rec", objectUUID)
		require.NoError(t, err)
		assert.Equal(t, "7", pid.PIDValue)
	})

	t.Run("returns typed error for unknown object", func(t *testing.T) {
		_, err := GetPIDByObject(db, "recid", "rec", uuid.New())
		var missing *PIDDoesNotExistError
		require.ErrorAs(t, err, &missing)
	})
}

func TestDereferenceObject(t *testing.T) {
	db := setupTestDB(t)

	objectUUID := uuid.New()
	_, err := CreatePID(db, "recid", "100", nil, StatusRegistered,
		strPtr("rec"), &objectUUID)
	require.NoError(t, err)
	_, err = CreatePID(db, "doi", "10.1234/rec-100", nil, StatusReserved,
		strPtr("rec"), &objectUUID)
	require.NoError(t, err)

	t.Run("lists all identifiers of an object", func(t *testing.T) {
		pids, err := DereferenceObject(db, "rec", objectUUID, nil)
		require.NoError(t, err)
		require.Len(t, pids, 2)
		assert.Equal(t, "recid", pids[0].PIDType)
		assert.Equal(t, "doi", pids[1].PIDType)
	})

	t.Run("filters by status", func(t *testing.T) {
		status := StatusReserved
		pids, err := DereferenceObject(db, "rec", objectUUID, &status)
		require.NoError(t, err)
		require.Len(t, pids, 1)
		assert.Equal(t, "doi", pids[0].PIDType)
	})

	t.Run("returns empty for unknown object", func(t *testing.T) {
		pids, err := DereferenceObject(db, "rec", uuid.New(), nil)
		require.NoError(t, err)
		assert.Empty(t, pids)
	})
}

func TestPersistentIdentifier_Assign(t *testing.T) {
	db := setupTestDB(t)

	t.Run("assigns an object", func(t *testing.T) {
		pid, err := CreatePID(db, "recid", "a1", nil, "", nil, nil)
		require.NoError(t, err)

		objectUUID := uuid.New()
		require.NoError(t, pid.Assign(db, "rec", objectUUID, false))
		assert.True(t, pid.HasObject())

		got, ok := pid.GetAssignedObject("rec")
		require.True(t, ok)
		assert.Equal(t, objectUUID, got)

		_, ok = pid.GetAssignedObject("doc")
		assert.False(t, ok)
	})

	t.Run("re-assigning the same object is a no-op", func(t *testing.T) {
		pid, err := CreatePID(db, "recid", "a2", nil, "", nil, nil)
		require.NoError(t, err)

		objectUUID := uuid.New()
		require.NoError(t, pid.Assign(db, "rec", objectUUID, false))
		require.NoError(t, pid.Assign(db, "rec", objectUUID, false))
	})

	t.Run("assigning a different object requires overwrite", func(t *testing.T) {
		pid, err := CreatePID(db, "recid", "a3", nil, "", nil, nil)
		require.NoError(t, err)

		first, second := uuid.New(), uuid.New()
		require.NoError(t, pid.Assign(db, "rec", first, false))

		err = pid.Assign(db, "rec", second, false)
		var conflict *PIDObjectAlreadyAssignedError
		require.ErrorAs(t, err, &conflict)

		require.NoError(t, pid.Assign(db, "rec", second, true))
		got, ok := pid.GetAssignedObject("rec")
		require.True(t, ok)
		assert.Equal(t, second, got)
	})

	t.Run("redirected identifiers conflict until overwritten", func(t *testing.T) {
		target, err := CreatePID(db, "recid", "a6-target", nil,
			StatusRegistered, nil, nil)
		require.NoError(t, err)
		pid, err := CreatePID(db, "recid", "a6", nil, StatusRegistered, nil, nil)
		require.NoError(t, err)
		require.NoError(t, pid.RedirectTo(db, target))
		redirectID := *pid.ObjectUUID

		err = pid.Assign(db, "rec", uuid.New(), false)
		var conflict *PIDObjectAlreadyAssignedError
		require.ErrorAs(t, err, &conflict)

		reloaded, err := GetPID(db, "recid", "a6", nil)
		require.NoError(t, err)
		assert.True(t, reloaded.IsRedirected())
		assert.Nil(t, reloaded.ObjectType)

		// Overwriting drops the redirect and attaches the object.
		objectUUID := uuid.New()
		require.NoError(t, pid.Assign(db, "rec", objectUUID, true))
		assert.True(t, pid.IsRegistered())
		got, ok := pid.GetAssignedObject("rec")
		require.True(t, ok)
		assert.Equal(t, objectUUID, got)

		var count int64
		require.NoError(t, db.Model(&Redirect{}).
			Where("id = ?", redirectID).Count(&count).Error)
		assert.Zero(t, count)
	})

	t.Run("deleted identifiers reject assignment", func(t *testing.T) {
		pid, err := CreatePID(db, "recid", "a4", nil, StatusReserved, nil, nil)
		require.NoError(t, err)
		require.NoError(t, pid.Delete(db))
		require.True(t, pid.IsDeleted())

		err = pid.Assign(db, "rec", uuid.New(), false)
		var invalid *PIDInvalidActionError
		require.ErrorAs(t, err, &invalid)
	})

	t.Run("rejects an object type longer than three characters", func(t *testing.T) {
		pid, err := CreatePID(db, "recid", "a5", nil, "", nil, nil)
		require.NoError(t, err)
		assert.Error(t, pid.Assign(db, "record", uuid.New(), false))
	})
}

func TestPersistentIdentifier_Unassign(t *testing.T) {
	db := setupTestDB(t)

	t.Run("detaches the object", func(t *testing.T) {
		objectUUID := uuid.New()
		pid, err := CreatePID(db, "recid", "u1", nil, StatusRegistered,
			strPtr("rec"), &objectUUID)
		require.NoError(t, err)

		require.NoError(t, pid.Unassign(db))
		assert.False(t, pid.HasObject())

		reloaded, err := GetPID(db, "recid", "u1", nil)
		require.NoError(t, err)
		assert.False(t, reloaded.HasObject())
	})

	t.Run("unassigned identifier is a no-op", func(t *testing.T) {
		pid, err := CreatePID(db, "recid", "u2", nil, "", nil, nil)
		require.NoError(t, err)
		require.NoError(t, pid.Unassign(db))
	})

	t.Run("removes the redirect and restores registered status", func(t *testing.T) {
		target, err := CreatePID(db, "recid", "u3-target", nil,
			StatusRegistered, nil, nil)
		require.NoError(t, err)
		pid, err := CreatePID(db, "recid", "u3", nil, StatusRegistered, nil, nil)
		require.NoError(t, err)

		require.NoError(t, pid.RedirectTo(db, target))
		require.True(t, pid.IsRedirected())
		redirectID := *pid.ObjectUUID

		require.NoError(t, pid.Unassign(db))
		assert.True(t, pid.IsRegistered())
		assert.False(t, pid.HasObject())

		var count int64
		require.NoError(t, db.Model(&Redirect{}).
			Where("id = ?", redirectID).Count(&count).Error)
		assert.Zero(t, count)
	})
}

func TestPersistentIdentifier_Lifecycle(t *testing.T) {
	db := setupTestDB(t)

	t.Run("new can be reserved, reserved again, then registered", func(t *testing.T) {
		pid, err := CreatePID(db, "recid", "l1", nil, "", nil, nil)
		require.NoError(t, err)

		require.NoError(t, pid.Reserve(db))
		assert.True(t, pid.IsReserved())
		require.NoError(t, pid.Reserve(db))
		require.NoError(t, pid.Register(db))
		assert.True(t, pid.IsRegistered())
	})

	t.Run("new can be registered directly", func(t *testing.T) {
		pid, err := CreatePID(db, "recid", "l2", nil, "", nil, nil)
		require.NoError(t, err)
		require.NoError(t, pid.Register(db))
		assert.True(t, pid.IsRegistered())
	})

	t.Run("registered cannot be reserved or re-registered", func(t *testing.T) {
		pid, err := CreatePID(db, "recid", "l3", nil, StatusRegistered, nil, nil)
		require.NoError(t, err)

		var invalid *PIDInvalidActionError
		require.ErrorAs(t, pid.Reserve(db), &invalid)
		require.ErrorAs(t, pid.Register(db), &invalid)
	})

	t.Run("deleting a new identifier removes the row", func(t *testing.T) {
		pid, err := CreatePID(db, "recid", "l4", nil, "", nil, nil)
		require.NoError(t, err)
		require.NoError(t, pid.Delete(db))

		_, err = GetPID(db, "recid", "l4", nil)
		var missing *PIDDoesNotExistError
		require.ErrorAs(t, err, &missing)
	})

	t.Run("deleting a reserved identifier keeps a tombstone", func(t *testing.T) {
		pid, err := CreatePID(db, "recid", "l5", nil, StatusReserved, nil, nil)
		require.NoError(t, err)
		require.NoError(t, pid.Delete(db))

		reloaded, err := GetPID(db, "recid", "l5", nil)
		require.NoError(t, err)
		assert.True(t, reloaded.IsDeleted())
	})

	t.Run("deleted identifiers reject further transitions", func(t *testing.T) {
		pid, err := CreatePID(db, "recid", "l6", nil, StatusRegistered, nil, nil)
		require.NoError(t, err)
		require.NoError(t, pid.Delete(db))

		var invalid *PIDInvalidActionError
		require.ErrorAs(t, pid.Reserve(db), &invalid)
		require.ErrorAs(t, pid.Register(db), &invalid)
		require.ErrorAs(t, pid.RedirectTo(db, pid), &invalid)
	})

	t.Run("redirected identifiers reject reserve and register", func(t *testing.T) {
		target, err := CreatePID(db, "recid", "l8-target", nil,
			StatusRegistered, nil, nil)
		require.NoError(t, err)
		pid, err := CreatePID(db, "recid", "l8", nil, StatusRegistered, nil, nil)
		require.NoError(t, err)
		require.NoError(t, pid.RedirectTo(db, target))

		var invalid *PIDInvalidActionError
		require.ErrorAs(t, pid.Reserve(db), &invalid)
		require.ErrorAs(t, pid.Register(db), &invalid)
	})

	t.Run("deleting a redirected identifier keeps a tombstone", func(t *testing.T) {
		target, err := CreatePID(db, "recid", "l9-target", nil,
			StatusRegistered, nil, nil)
		require.NoError(t, err)
		pid, err := CreatePID(db, "recid", "l9", nil, StatusRegistered, nil, nil)
		require.NoError(t, err)
		require.NoError(t, pid.RedirectTo(db, target))

		require.NoError(t, pid.Delete(db))
		assert.True(t, pid.IsDeleted())

		reloaded, err := GetPID(db, "recid", "l9", nil)
		require.NoError(t, err)
		assert.True(t, reloaded.IsDeleted())
	})

	t.Run("sync status overwrites unconditionally", func(t *testing.T) {
		pid, err := CreatePID(db, "recid", "l7", nil, StatusDeleted, nil, nil)
		require.NoError(t, err)

		require.NoError(t, pid.SyncStatus(db, StatusRegistered))
		assert.True(t, pid.IsRegistered())

		reloaded, err := GetPID(db, "recid", "l7", nil)
		require.NoError(t, err)
		assert.True(t, reloaded.IsRegistered())

		// Same status is a no-op.
		require.NoError(t, pid.SyncStatus(db, StatusRegistered))
	})
}

func TestPersistentIdentifier_RedirectTo(t *testing.T) {
	db := setupTestDB(t)

	t.Run("redirects a registered identifier", func(t *testing.T) {
		target, err := CreatePID(db, "recid", "r1-target", nil,
			StatusRegistered, nil, nil)
		require.NoError(t, err)
		pid, err := CreatePID(db, "recid", "r1", nil, StatusRegistered, nil, nil)
		require.NoError(t, err)

		require.NoError(t, pid.RedirectTo(db, target))
		assert.True(t, pid.IsRedirected())
		assert.Nil(t, pid.ObjectType)
		require.NotNil(t, pid.ObjectUUID)

		got, err := pid.GetRedirect(db)
		require.NoError(t, err)
		assert.Equal(t, target.ID, got.ID)
	})

	t.Run("re-redirecting updates the redirect in place", func(t *testing.T) {
		first, err := CreatePID(db, "recid", "r2-first", nil,
			StatusRegistered, nil, nil)
		require.NoError(t, err)
		second, err := CreatePID(db, "recid", "r2-second", nil,
			StatusRegistered, nil, nil)
		require.NoError(t, err)
		pid, err := CreatePID(db, "recid", "r2", nil, StatusRegistered, nil, nil)
		require.NoError(t, err)

		require.NoError(t, pid.RedirectTo(db, first))
		redirectID := *pid.ObjectUUID

		require.NoError(t, pid.RedirectTo(db, second))
		assert.Equal(t, redirectID, *pid.ObjectUUID)

		got, err := pid.GetRedirect(db)
		require.NoError(t, err)
		assert.Equal(t, second.ID, got.ID)
	})

	t.Run("only registered identifiers can redirect", func(t *testing.T) {
		target, err := CreatePID(db, "recid", "r3-target", nil,
			StatusRegistered, nil, nil)
		require.NoError(t, err)
		pid, err := CreatePID(db, "recid", "r3", nil, StatusNew, nil, nil)
		require.NoError(t, err)

		var invalid *PIDInvalidActionError
		require.ErrorAs(t, pid.RedirectTo(db, target), &invalid)
	})

	t.Run("redirecting to an unsaved target fails", func(t *testing.T) {
		pid, err := CreatePID(db, "recid", "r4", nil, StatusRegistered, nil, nil)
		require.NoError(t, err)

		var missing *PIDDoesNotExistError
		require.ErrorAs(t, pid.RedirectTo(db, nil), &missing)
		require.ErrorAs(t, pid.RedirectTo(db, &PersistentIdentifier{}), &missing)
	})

	t.Run("get redirect on a non-redirected identifier fails", func(t *testing.T) {
		pid, err := CreatePID(db, "recid", "r5", nil, StatusRegistered, nil, nil)
		require.NoError(t, err)

		_, err = pid.GetRedirect(db)
		var invalid *PIDInvalidActionError
		require.ErrorAs(t, err, &invalid)
	})

	t.Run("redirect target cannot be deleted while referenced", func(t *testing.T) {
		target, err := CreatePID(db, "recid", "r6-target", nil,
			StatusRegistered, nil, nil)
		require.NoError(t, err)
		pid, err := CreatePID(db, "recid", "r6", nil, StatusRegistered, nil, nil)
		require.NoError(t, err)
		require.NoError(t, pid.RedirectTo(db, target))

		// The redirect row restricts deletion of its target pid row.
		err = db.Delete(&PersistentIdentifier{}, target.ID).Error
		assert.Error(t, err)
	})
}
