package database

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/healthara/backend/internal/models"
)

// RunMigrations creates or updates the profile_records table
func RunMigrations(db *gorm.DB) error {
	log.Info().Str("dialect", db.Dialector.Name()).Msg("Running auto-migration")
	if err := db.AutoMigrate(&models.ProfileRecord{}); err != nil {
		return fmt.Errorf("failed to migrate profile_records: %w", err)
	}
	return nil
}

// SeedDefaultProfile inserts a default record under key unless one already exists.
// It reports whether a row was inserted.
func SeedDefaultProfile(ctx context.Context, db *gorm.DB, key string) (bool, error) {
	doc, err := json.MarshalIndent(models.DefaultHealthProfile(), "", "  ")
	if err != nil {
		return false, fmt.Errorf("failed to marshal default profile: %w", err)
	}

	result := db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.ProfileRecord{RecordKey: key, Document: doc, UpdatedAt: time.Now().UTC()})
	if result.Error != nil {
		return false, fmt.Errorf("failed to seed profile %s: %w", key, result.Error)
	}
	return result.RowsAffected > 0, nil
}
