package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pageza/healthara/backend/config"
)

// DB represents the postgres connection
type DB struct {
	*sql.DB
}

// New opens and pings the postgres connection described by cfg
func New(cfg *config.Config) (*DB, error) {
	if cfg.DatabaseURL == "" {
		log.Info().Str("host", cfg.DBHost).Str("port", cfg.DBPort).Str("user", cfg.DBUser).Msg("Connecting to database")
	} else {
		log.Info().Msg("Connecting to database from DATABASE_URL")
	}

	db, err := sql.Open("postgres", cfg.PostgresDSN())
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("error connecting to the database: %w", err)
	}

	log.Info().Msg("Successfully connected to database")
	return &DB{db}, nil
}

// HealthCheck checks if the database is accessible
func (db *DB) HealthCheck(ctx context.Context) error {
	return db.PingContext(ctx)
}

// Gorm wraps the existing connection in a gorm handle
func (db *DB) Gorm() (*gorm.DB, error) {
	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db.DB}), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize gorm: %w", err)
	}
	return gdb, nil
}

// OpenSQLite opens the sqlite file at path
func OpenSQLite(path string) (*gorm.DB, error) {
	gdb, err := gorm.Open(sqlite.Open(path), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database %s: %w", path, err)
	}
	return gdb, nil
}

// Open returns the gorm handle for the SQL-backed profile stores, or nil
// when the configured store does not use SQL.
func Open(cfg *config.Config) (*gorm.DB, error) {
	switch cfg.ProfileStore {
	case config.StorePostgres:
		db, err := New(cfg)
		if err != nil {
			return nil, err
		}
		return db.Gorm()
	case config.StoreSQLite:
		return OpenSQLite(cfg.SQLitePath)
	default:
		return nil, nil
	}
}

func gormConfig() *gorm.Config {
	return &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)}
}
