package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/healthara/backend/internal/models"
)

// SQLStore keeps the record as one row of profile_records
type SQLStore struct {
	db  *gorm.DB
	key string
}

func NewSQLStore(db *gorm.DB, key string) *SQLStore {
	return &SQLStore{db: db, key: key}
}

func (s *SQLStore) Read(ctx context.Context) ([]byte, error) {
	var rec models.ProfileRecord
	err := s.db.WithContext(ctx).Where("record_key = ?", s.key).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read profile record: %w", err)
	}
	return rec.Document, nil
}

func (s *SQLStore) Write(ctx context.Context, data []byte) error {
	rec := models.ProfileRecord{
		RecordKey: s.key,
		Document:  data,
		UpdatedAt: time.Now(),
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "record_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"document", "updated_at"}),
	}).Create(&rec).Error
	if err != nil {
		return fmt.Errorf("failed to save profile record: %w", err)
	}
	return nil
}
