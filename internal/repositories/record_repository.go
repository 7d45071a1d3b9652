package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"chatshell/internal/models"
)

// ErrRecordNotFound is returned by Get when no record has the given key.
var ErrRecordNotFound = errors.New("record not found")

type RecordRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
}

type recordRepository struct {
	db *gorm.DB
}

func NewRecordRepository(db *gorm.DB) RecordRepository {
	return &recordRepository{db: db}
}

func (r *recordRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var rec models.Record
	if err := r.db.WithContext(ctx).Where(&models.Record{Key: key}).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return rec.Value, nil
}

func (r *recordRepository) Put(ctx context.Context, key string, value []byte) error {
	rec := models.Record{Key: key, Value: value}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&rec).Error
}
