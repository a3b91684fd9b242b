package db

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Open opens (creating if needed) the sqlite database at path.
func Open(path string) (*gorm.DB, error) {
	d, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	return d, nil
}

// AutoMigrate brings the schema up to date for the given models.
func AutoMigrate(d *gorm.DB, models ...any) error {
	if err := d.AutoMigrate(models...); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}
