package database

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"mineral-catalog-service/internal/domain/models"
	Logger "mineral-catalog-service/pkg/logger"
)

// Migrate runs the schema migration for the given mode: "auto" only adds
// tables and columns, "drop" recreates every table.
func Migrate(db *gorm.DB, mode string) error {
	switch mode {
	case "drop":
		Logger.Warning("running in drop mode: all tables will be dropped and recreated")
		return DropAndRecreate(db)
	case "", "auto":
		return AutoMigrate(db)
	default:
		return fmt.Errorf("unknown migration mode %q", mode)
	}
}

// AutoMigrate creates missing tables and columns
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	Logger.Info("database migration completed")
	return nil
}

// DropAndRecreate drops every catalog table and migrates again
func DropAndRecreate(db *gorm.DB) error {
	all := models.AllModels()
	for i := len(all) - 1; i >= 0; i-- {
		if err := db.Migrator().DropTable(all[i]); err != nil {
			return fmt.Errorf("drop table: %w", err)
		}
	}
	return AutoMigrate(db)
}

// OpenSQLite opens a sqlite database at path and migrates it. Used by local
// tooling and tests.
func OpenSQLite(path string) (*gorm.DB, error) {
	dialector, err := openDialector("sqlite", path)
	if err != nil {
		return nil, err
	}
	db, err := gorm.Open(dialector, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent), TranslateError: true})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	if err := AutoMigrate(db); err != nil {
		return nil, err
	}
	return db, nil
}
