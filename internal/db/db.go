package db

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"retreat-booking-backend/config"
	"retreat-booking-backend/internal/model"
)

// Init initializes the database connection and runs migrations.
func Init(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "postgres":
		dialector = postgres.Open(cfg.DSN)
	case "sqlite", "":
		dialector = sqlite.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetimeMinutes > 0 {
		sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetimeMinutes) * time.Minute)
	}

	log.Println("Running database migrations...")
	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("automigrate failed: %w", err)
	}

	if cfg.SeedUnits {
		if err := SeedUnits(db); err != nil {
			return nil, fmt.Errorf("seeding lodging units failed: %w", err)
		}
	}

	log.Println("Database initialization complete.")
	return db, nil
}

// Migrate runs schema migrations for all tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.LodgingUnit{},
		&model.Reservation{},
		&model.AvailabilityBlock{},
		&model.PropertyNote{},
		&model.MaintenanceTask{},
		&model.PropertyTodo{},
		&model.PropertyFile{},
		&model.PropertyInspection{},
		&model.MaintenanceSchedule{},
		&model.PushSubscription{},
	)
}
