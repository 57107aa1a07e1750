// Package database opens the shared GORM connection used by every
// pidstore binary, with query logging routed through hclog.
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/go-hclog"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Config holds configuration for the database connection.
type Config struct {
	// Driver is "postgres" or "sqlite".
	Driver string

	// PostgreSQL settings.
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string

	// SQLite settings.
	Path string

	// Connection pool settings.
	MaxIdleConns    int           // default 10
	MaxOpenConns    int           // default 25
	ConnMaxLifetime time.Duration // default 5 minutes
}

// Connect opens a database connection. Error translation is enabled so
// unique and foreign-key violations surface as gorm.ErrDuplicatedKey and
// gorm.ErrForeignKeyViolated, which the PID models turn into typed
// failures.
func Connect(cfg Config, log hclog.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "", "postgres":
		sslMode := cfg.SSLMode
		if sslMode == "" {
			sslMode = "disable"
		}
		dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, sslMode)
		dialector = postgres.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(cfg.Path)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}

	gormConfig := &gorm.Config{TranslateError: true}
	if log != nil {
		gormConfig.Logger = NewGormLogger(log.Named("gorm"))
	} else {
		gormConfig.Logger = logger.Default.LogMode(logger.Silent)
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying SQL DB: %w", err)
	}

	maxIdle := cfg.MaxIdleConns
	if maxIdle == 0 {
		maxIdle = 10
	}
	maxOpen := cfg.MaxOpenConns
	if maxOpen == 0 {
		maxOpen = 25
	}
	maxLifetime := cfg.ConnMaxLifetime
	if maxLifetime == 0 {
		maxLifetime = 5 * time.Minute
	}
	sqlDB.SetMaxIdleConns(maxIdle)
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetConnMaxLifetime(maxLifetime)

	if log != nil {
		log.Info("connected to database",
			"driver", dialector.Name(),
			"max_idle_conns", maxIdle,
			"max_open_conns", maxOpen,
		)
	}

	return db, nil
}

// gormHclogAdapter adapts hclog.Logger to gorm's logger.Interface.
type gormHclogAdapter struct {
	logger hclog.Logger
	level  logger.LogLevel
}

// NewGormLogger creates a GORM logger that writes through hclog.
func NewGormLogger(log hclog.Logger) logger.Interface {
	return &gormHclogAdapter{logger: log, level: logger.Warn}
}

func (g *gormHclogAdapter) LogMode(level logger.LogLevel) logger.Interface {
	return &gormHclogAdapter{logger: g.logger, level: level}
}

func (g *gormHclogAdapter) Info(ctx context.Context, msg string, data ...interface{}) {
	if g.level >= logger.Info {
		g.logger.Info(fmt.Sprintf(msg, data...))
	}
}

func (g *gormHclogAdapter) Warn(ctx context.Context, msg string, data ...interface{}) {
	if g.level >= logger.Warn {
		g.logger.Warn(fmt.Sprintf(msg, data...))
	}
}

func (g *gormHclogAdapter) Error(ctx context.Context, msg string, data ...interface{}) {
	if g.level >= logger.Error {
		g.logger.Error(fmt.Sprintf(msg, data...))
	}
}

func (g *gormHclogAdapter) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if g.level <= logger.Silent {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()

	switch {
	case err != nil && g.level >= logger.Error:
		g.logger.Error("database query failed",
			"error", err, "elapsed", elapsed, "rows", rows, "sql", sql)
	case elapsed > 200*time.Millisecond && g.level >= logger.Warn:
		g.logger.Warn("slow database query",
			"elapsed", elapsed, "rows", rows, "sql", sql)
	case g.level >= logger.Info:
		g.logger.Debug("database query",
			"elapsed", elapsed, "rows", rows, "sql", sql)
	}
}
