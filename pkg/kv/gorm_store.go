package kv

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore implements Store using GORM + Postgres. Values are stored as
// jsonb, so only JSON text is accepted.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore opens the DB and runs auto-migrations.
func NewGormStore(dsn string) (*GormStore, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, errors.New("database URL is required")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{SkipDefaultTransaction: true})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := db.AutoMigrate(&KVEntryModel{}); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}
	return &GormStore{db: db}, nil
}

// NewGormStoreFromDB wraps an already migrated connection.
func NewGormStoreFromDB(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Get(ctx context.Context, key string) (string, bool, error) {
	var model KVEntryModel
	if err := s.db.WithContext(ctx).Where("key = ?", key).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("db get %s: %w", key, err)
	}
	return string(model.Value), true, nil
}

func (s *GormStore) Set(ctx context.Context, key, value string) error {
	model := KVEntryModel{
		Key:       key,
		Value:     datatypes.JSON(value),
		UpdatedAt: time.Now().UTC(),
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&model).Error
	if err != nil {
		return fmt.Errorf("db set %s: %w", key, err)
	}
	return nil
}

func (s *GormStore) Remove(ctx context.Context, key string) error {
	if err := s.db.WithContext(ctx).Where("key = ?", key).Delete(&KVEntryModel{}).Error; err != nil {
		return fmt.Errorf("db remove %s: %w", key, err)
	}
	return nil
}

func (s *GormStore) ClearAll(ctx context.Context) error {
	err := s.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&KVEntryModel{}).Error
	if err != nil {
		return fmt.Errorf("db clear: %w", err)
	}
	return nil
}

func (s *GormStore) Keys(ctx context.Context) ([]string, error) {
	var keys []string
	if err := s.db.WithContext(ctx).Model(&KVEntryModel{}).Order("key ASC").Pluck("key", &keys).Error; err != nil {
		return nil, fmt.Errorf("db keys: %w", err)
	}
	return keys, nil
}
