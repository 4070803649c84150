// internal/infrastructure/database/gormdb/migration.go
package gormdb

import (
	"fmt"

	"gorm.io/gorm"
)

// Migration handles database migrations
type Migration struct {
	db *gorm.DB
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB) *Migration {
	return &Migration{db: db}
}

// RunAutoMigrations creates or updates the key-value table
func (m *Migration) RunAutoMigrations() error {
	if err := m.db.AutoMigrate(&Entry{}); err != nil {
		return fmt.Errorf("failed to migrate %s: %w", Entry{}.TableName(), err)
	}
	return nil
}
