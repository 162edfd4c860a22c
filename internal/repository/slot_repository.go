package repository

import (
	"context"
	"errors"

	"github.com/Tomlord1122/taskflow/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SlotRepository defines raw access to the named slots of the local store.
type SlotRepository interface {
	// Load returns the stored value for key. found is false when the key
	// was never saved.
	Load(ctx context.Context, key string) (value []byte, found bool, err error)
	// Save replaces the value stored under key.
	Save(ctx context.Context, key string, value []byte) error
}

// gormSlotRepository implements SlotRepository using GORM
type gormSlotRepository struct {
	db *gorm.DB
}

// NewGormSlotRepository creates a new GORM slot repository
func NewGormSlotRepository(db *gorm.DB) SlotRepository {
	return &gormSlotRepository{db: db}
}

// Load reads a slot by its key
func (r *gormSlotRepository) Load(ctx context.Context, key string) ([]byte, bool, error) {
	var slot domain.Slot
	result := r.db.WithContext(ctx).First(&slot, "key = ?", key)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, result.Error
	}
	return []byte(slot.Value), true, nil
}

// Save upserts the slot, overwriting any previous value
func (r *gormSlotRepository) Save(ctx context.Context, key string, value []byte) error {
	slot := domain.Slot{Key: key, Value: string(value)}
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&slot)
	return result.Error
}
