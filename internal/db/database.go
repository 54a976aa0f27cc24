package db

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Options struct {
	Driver      string
	SQLitePath  string
	PostgresDSN string
}

// Open connects to the configured store and brings its schema up to date.
func Open(options Options) (*gorm.DB, error) {
	switch strings.ToLower(strings.TrimSpace(options.Driver)) {
	case "", DriverSQLite:
		return OpenSQLite(options.SQLitePath)
	case DriverPostgres:
		return OpenPostgres(options.PostgresDSN)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", options.Driver)
	}
}

func Close(database *gorm.DB) error {
	sqlDB, err := database.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
