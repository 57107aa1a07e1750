package migrate

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/inveniosoftware/invenio-pidstore/pkg/models"
)

func TestRunMigrations_SQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pidstore.db")

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)

	require.NoError(t, RunMigrations(sqlDB, "sqlite"))

	t.Run("is idempotent", func(t *testing.T) {
		require.NoError(t, RunMigrations(sqlDB, "sqlite"))
	})

	t.Run("reports the schema version", func(t *testing.T) {
		version, dirty, err := GetMigrationVersion(sqlDB, "sqlite")
		require.NoError(t, err)
		assert.False(t, dirty)
		assert.Equal(t, uint(3), version)
	})

	t.Run("migrated schema accepts pid operations", func(t *testing.T) {
		pid, err := models.CreatePID(db, "recid", "1", nil, "", nil, nil)
		require.NoError(t, err)
		assert.NotZero(t, pid.ID)

		next, err := models.NextRecordIdentifier(db)
		require.NoError(t, err)
		assert.Equal(t, int64(1), next)
	})
}

func TestRunMigrations_UnsupportedDriver(t *testing.T) {
	err := RunMigrations(nil, "oracle")
	assert.Error(t, err)
}
