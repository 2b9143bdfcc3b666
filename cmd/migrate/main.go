package main

import (
	"context"
	"flag"

	"github.com/rs/zerolog/log"

	"github.com/pageza/healthara/backend/config"
	"github.com/pageza/healthara/backend/internal/database"
)

func main() {
	seed := flag.Bool("seed", false, "Insert a default profile record when none exists")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}
	if db == nil {
		log.Fatal().Str("profile_store", cfg.ProfileStore).Msg("Migrations need PROFILE_STORE=postgres or sqlite")
	}

	if err := database.RunMigrations(db); err != nil {
		log.Fatal().Err(err).Msg("Migration failed")
	}
	log.Info().Msg("All migrations applied successfully")

	if *seed {
		inserted, err := database.SeedDefaultProfile(context.Background(), db, cfg.ProfileKey)
		if err != nil {
			log.Fatal().Err(err).Msg("Seeding failed")
		}
		log.Info().Str("key", cfg.ProfileKey).Bool("inserted", inserted).Msg("Default profile seeded")
	}
}
