package db

import (
	"fmt"
	"io/fs"

	"foodgram-go/internal/config"
	"foodgram-go/pkg/logger"
	"gorm.io/gorm"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

func Open(cfg config.DBConfig, log logger.Logger) (*gorm.DB, error) {
	switch cfg.Driver {
	case "", DriverPostgres:
		return NewPostgres(cfg, log)
	case DriverSQLite:
		log.Info("db: opening sqlite", "path", cfg.SQLitePath)
		return NewSQLite(cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("unsupported db driver %q", cfg.Driver)
	}
}

// Prepare brings the schema up to date for the configured driver and returns
// the names of the applied migration files.
func Prepare(gormDB *gorm.DB, driver string, migrations fs.FS) ([]string, error) {
	if driver == DriverSQLite {
		if err := AutoMigrate(gormDB); err != nil {
			return nil, fmt.Errorf("auto migrate: %w", err)
		}
		return []string{"automigrate"}, nil
	}
	return Migrate(gormDB, migrations)
}
