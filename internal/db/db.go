package db

import (
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"hangar/internal/config"
	"hangar/internal/fleet"
	"hangar/internal/parts"
	"hangar/internal/user"
)

// Open connects to the configured database and migrates the schema. The
// returned handle is the only one; callers pass it down to the services.
func Open(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Database.Driver {
	case "postgres":
		dialector = postgres.Open(cfg.Database.DSN)
	case "sqlite":
		dialector = sqlite.Open(cfg.Database.Path)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}

	conn, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := conn.AutoMigrate(
		&user.User{},
		&parts.Part{},
		&fleet.Aircraft{},
		&fleet.AircraftPart{},
	); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}

	log.Printf("Database connected and migrated (%s)", cfg.Database.Driver)
	return conn, nil
}
