package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/pageza/healthara/backend/config"
)

// ErrNotFound is returned when no record has been written yet
var ErrNotFound = errors.New("profile record not found")

// RecordStore reads and writes the single serialized profile document.
// Writes replace the whole document.
type RecordStore interface {
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, data []byte) error
}

// Backends carries the optional connections a store may need
type Backends struct {
	Redis *redis.Client
	DB    *gorm.DB
}

// New returns the record store selected by cfg.ProfileStore
func New(cfg *config.Config, b Backends) (RecordStore, error) {
	switch cfg.ProfileStore {
	case config.StoreFile:
		return NewFileStore(cfg.ProfilePath), nil
	case config.StoreRedis:
		if b.Redis == nil {
			return nil, fmt.Errorf("redis store selected but no redis client is available")
		}
		return NewRedisStore(b.Redis, cfg.ProfileKey), nil
	case config.StorePostgres, config.StoreSQLite:
		if b.DB == nil {
			return nil, fmt.Errorf("%s store selected but no database is available", cfg.ProfileStore)
		}
		return NewSQLStore(b.DB, cfg.ProfileKey), nil
	default:
		return nil, fmt.Errorf("unknown profile store: %s", cfg.ProfileStore)
	}
}
