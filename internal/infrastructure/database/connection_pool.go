package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"mineral-catalog-service/internal/infrastructure/config"
	Logger "mineral-catalog-service/pkg/logger"
)

// ConnectionPool wraps the gorm handle and its sql.DB pool settings
type ConnectionPool struct {
	DB              *gorm.DB
	Driver          string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// NewConnectionPool opens the configured database and verifies it with a ping
func NewConnectionPool(cfg *config.Config) (*ConnectionPool, error) {
	dialector, err := openDialector(cfg.DBDriver, cfg.GetDSN())
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(ParseLogLevel(cfg.DBLogLevel)),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", cfg.DBDriver, err)
	}

	pool := &ConnectionPool{DB: db, Driver: cfg.DBDriver}
	maxIdle, maxOpen := 10, 100
	lifetime, idleTime := 1*time.Hour, 30*time.Minute
	if cfg.DBMaxOpenConns > 0 {
		maxOpen = cfg.DBMaxOpenConns
	}
	if cfg.DBMaxIdleConns > 0 {
		maxIdle = cfg.DBMaxIdleConns
	}
	// sqlite serializes writers; one connection avoids "database is locked"
	if cfg.DBDriver == config.DBDriverSQLite {
		maxIdle, maxOpen = 1, 1
		lifetime, idleTime = 0, 0
	}

	if err := pool.UpdatePoolConfig(min(maxIdle, maxOpen), maxOpen, lifetime, idleTime); err != nil {
		return nil, err
	}
	return pool, nil
}

func openDialector(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case config.DBDriverMySQL:
		return mysql.Open(dsn), nil
	case config.DBDriverSQLite:
		if dir := filepath.Dir(dsn); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("create sqlite directory: %w", err)
			}
		}
		return sqlite.Open(dsn + "?_busy_timeout=5000&_journal_mode=WAL"), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// ParseLogLevel maps DB_LOG_LEVEL onto gorm's levels
func ParseLogLevel(level string) logger.LogLevel {
	switch level {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}

// ConfigurePool applies the pool limits and pings the database
func (p *ConnectionPool) ConfigurePool() error {
	sqlDB, err := p.DB.DB()
	if err != nil {
		return err
	}

	sqlDB.SetMaxIdleConns(p.MaxIdleConns)
	sqlDB.SetMaxOpenConns(p.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(p.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(p.ConnMaxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}

	Logger.Info("database pool configured: driver=%s max_idle=%d max_open=%d", p.Driver, p.MaxIdleConns, p.MaxOpenConns)
	return nil
}

// UpdatePoolConfig sets the pool limits and re-applies them
func (p *ConnectionPool) UpdatePoolConfig(maxIdle, maxOpen int, maxLifetime, maxIdleTime time.Duration) error {
	p.MaxIdleConns = maxIdle
	p.MaxOpenConns = maxOpen
	p.ConnMaxLifetime = maxLifetime
	p.ConnMaxIdleTime = maxIdleTime

	return p.ConfigurePool()
}

// Stats returns sql.DB pool statistics
func (p *ConnectionPool) Stats() (map[string]interface{}, error) {
	sqlDB, err := p.DB.DB()
	if err != nil {
		return nil, err
	}

	stats := sqlDB.Stats()
	return map[string]interface{}{
		"driver":               p.Driver,
		"max_open_connections": stats.MaxOpenConnections,
		"open_connections":     stats.OpenConnections,
		"in_use":               stats.InUse,
		"idle":                 stats.Idle,
		"wait_count":           stats.WaitCount,
		"wait_duration":        stats.WaitDuration.String(),
		"max_idle_closed":      stats.MaxIdleClosed,
		"max_lifetime_closed":  stats.MaxLifetimeClosed,
	}, nil
}

// Close closes the pool
func (p *ConnectionPool) Close() error {
	sqlDB, err := p.DB.DB()
	if err != nil {
		return err
	}

	return sqlDB.Close()
}

// WithTransaction runs fn inside a transaction
func (p *ConnectionPool) WithTransaction(fn func(tx *gorm.DB) error) error {
	return WithTransaction(p.DB, fn)
}

// WithTransaction runs fn inside a transaction on db, rolling back when fn
// fails or panics
func WithTransaction(db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if err := db.Transaction(fn); err != nil {
		return fmt.Errorf("transaction: %w", err)
	}
	return nil
}

// HealthCheck pings the database with a short timeout
func (p *ConnectionPool) HealthCheck() error {
	return Ping(p.DB)
}

// GetDB returns the gorm handle
func (p *ConnectionPool) GetDB() *gorm.DB {
	return p.DB
}

// Ping checks a gorm handle with a 2s timeout
func Ping(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return sqlDB.PingContext(ctx)
}
