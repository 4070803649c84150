// internal/infrastructure/database/gormdb/kv.go
package gormdb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Entry is one persisted key-value pair
type Entry struct {
	Key       string    `gorm:"column:kv_key;primaryKey;size:255"`
	Value     string    `gorm:"type:text;not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName overrides the table name
func (Entry) TableName() string {
	return "kv_entries"
}

// KV stores session slices in a single SQL table
type KV struct {
	db     *gorm.DB
	prefix string
}

// NewKV creates a gorm-backed key-value store
func NewKV(db *gorm.DB, prefix string) *KV {
	return &KV{db: db, prefix: prefix}
}

func (k *KV) Get(ctx context.Context, key string) (string, bool, error) {
	var entry Entry
	err := k.db.WithContext(ctx).Where("kv_key = ?", k.prefix+key).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return entry.Value, true, nil
}

func (k *KV) Set(ctx context.Context, key, value string) error {
	entry := Entry{Key: k.prefix + key, Value: value, UpdatedAt: time.Now().UTC()}
	err := k.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "kv_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

func (k *KV) Delete(ctx context.Context, key string) error {
	if err := k.db.WithContext(ctx).Where("kv_key = ?", k.prefix+key).Delete(&Entry{}).Error; err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}
