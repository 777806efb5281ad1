package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type kvEntry struct {
	Key       string         `gorm:"primaryKey;size:191"`
	Value     datatypes.JSON `gorm:"not null"`
	UpdatedAt time.Time
}

func (kvEntry) TableName() string { return "kv_entries" }

// GormBackend stores every record as one row of the kv_entries table. It
// works with any gorm dialect; main wires sqlite for on-device use and
// postgres for a shared deployment.
type GormBackend struct {
	db *gorm.DB
}

func NewGormBackend(db *gorm.DB) (*GormBackend, error) {
	if err := db.AutoMigrate(&kvEntry{}); err != nil {
		return nil, fmt.Errorf("migrate kv_entries: %w", err)
	}
	return &GormBackend{db: db}, nil
}

func (g *GormBackend) Get(ctx context.Context, key string) ([]byte, error) {
	var e kvEntry
	if err := g.db.WithContext(ctx).Where(&kvEntry{Key: key}).First(&e).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get %q: %w", key, err)
	}
	return []byte(e.Value), nil
}

func (g *GormBackend) Set(ctx context.Context, key string, value []byte) error {
	e := kvEntry{Key: key, Value: datatypes.JSON(value), UpdatedAt: time.Now()}
	err := g.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&e).Error
	if err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}

func (g *GormBackend) Delete(ctx context.Context, key string) error {
	if err := g.db.WithContext(ctx).Where(&kvEntry{Key: key}).Delete(&kvEntry{}).Error; err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	return nil
}

func (g *GormBackend) Close() error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
