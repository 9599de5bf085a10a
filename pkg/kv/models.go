package kv

import (
	"time"

	"gorm.io/datatypes"
)

// KVEntryModel is the GORM model behind GormStore.
type KVEntryModel struct {
	Key       string         `gorm:"primaryKey"`
	Value     datatypes.JSON `gorm:"type:jsonb;not null"`
	UpdatedAt time.Time      `gorm:"not null"`
}

func (KVEntryModel) TableName() string { return "kv_entries" }
