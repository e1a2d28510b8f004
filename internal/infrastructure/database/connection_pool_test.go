package database

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"mineral-catalog-service/internal/domain/models"
	"mineral-catalog-service/internal/infrastructure/config"
)

func sqliteConfig(t *testing.T) *config.Config {
	return &config.Config{
		DBDriver:   config.DBDriverSQLite,
		DBPath:     filepath.Join(t.TempDir(), "nested", "catalog.db"),
		DBLogLevel: "silent",
	}
}

func TestNewConnectionPoolSQLite(t *testing.T) {
	pool, err := NewConnectionPool(sqliteConfig(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = pool.Close() })

	assert.NoError(t, pool.HealthCheck())
	stats, err := pool.Stats()
	require.NoError(t, err)
	assert.Equal(t, "sqlite", stats["driver"])
	assert.Equal(t, 1, stats["max_open_connections"])
}

func TestNewConnectionPoolSQLiteIgnoresPoolOverrides(t *testing.T) {
	cfg := sqliteConfig(t)
	cfg.DBMaxOpenConns = 50
	cfg.DBMaxIdleConns = 10
	pool, err := NewConnectionPool(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pool.Close() })

	assert.Equal(t, 1, pool.MaxOpenConns)
	assert.Equal(t, 1, pool.MaxIdleConns)
}

func TestUpdatePoolConfig(t *testing.T) {
	pool, err := NewConnectionPool(sqliteConfig(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = pool.Close() })

	require.NoError(t, pool.UpdatePoolConfig(2, 4, time.Minute, time.Minute))
	stats, err := pool.Stats()
	require.NoError(t, err)
	assert.Equal(t, 4, stats["max_open_connections"])
	assert.Equal(t, 2, pool.MaxIdleConns)
}

func TestDuplicateKeyIsTranslated(t *testing.T) {
	pool, err := NewConnectionPool(sqliteConfig(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = pool.Close() })
	db := pool.GetDB()
	require.NoError(t, AutoMigrate(db))

	require.NoError(t, db.Create(&models.User{Username: "twin", Password: "x", Role: models.RoleUser}).Error)
	err = db.Create(&models.User{Username: "twin", Password: "y", Role: models.RoleUser}).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestNewConnectionPoolUnknownDriver(t *testing.T) {
	_, err := NewConnectionPool(&config.Config{DBDriver: "oracle"})
	assert.Error(t, err)
}

func TestMigrateModes(t *testing.T) {
	pool, err := NewConnectionPool(sqliteConfig(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = pool.Close() })
	db := pool.GetDB()

	require.NoError(t, Migrate(db, "auto"))
	require.NoError(t, db.Create(&models.Mineral{Title: "Pyrite", ModelPath: "/storage/models/p.glb"}).Error)

	require.NoError(t, Migrate(db, "drop"))
	var count int64
	require.NoError(t, db.Model(&models.Mineral{}).Count(&count).Error)
	assert.Zero(t, count)

	assert.Error(t, Migrate(db, "alter"))
}

func TestWithTransactionRollsBack(t *testing.T) {
	pool, err := NewConnectionPool(sqliteConfig(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = pool.Close() })
	require.NoError(t, AutoMigrate(pool.GetDB()))

	err = pool.WithTransaction(func(tx *gorm.DB) error {
		if err := tx.Create(&models.User{Username: "temp", Password: "x", Role: models.RoleUser}).Error; err != nil {
			return err
		}
		return gorm.ErrInvalidData
	})
	require.ErrorIs(t, err, gorm.ErrInvalidData)

	var count int64
	pool.GetDB().Model(&models.User{}).Count(&count)
	assert.Zero(t, count)
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, logger.Silent, ParseLogLevel("silent"))
	assert.Equal(t, logger.Info, ParseLogLevel("info"))
	assert.Equal(t, logger.Warn, ParseLogLevel("whatever"))
}
