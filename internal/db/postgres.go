package db

import (
	"fmt"
	"strings"

	"github.com/terraincognita07/movewell/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func OpenPostgres(dsn string) (*gorm.DB, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, fmt.Errorf("open postgres: empty DATABASE_URL")
	}

	database, err := gorm.Open(postgres.Open(dsn), newGormConfig())
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	if err := migratePostgres(database); err != nil {
		return nil, err
	}
	return database, nil
}

func migratePostgres(database *gorm.DB) error {
	if err := database.AutoMigrate(
		&models.User{},
		&models.ProgressEntry{},
		&models.Completion{},
		&models.StreakRecord{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	const normalizedEmailIndex = `CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email_normalized ON users (lower(trim(email)))`
	if err := database.Exec(normalizedEmailIndex).Error; err != nil {
		return fmt.Errorf("create normalized email index: %w", err)
	}
	return nil
}
