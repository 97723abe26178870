// Command seed loads the demo venues, artists and shows into an empty
// database.
package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/iliyamo/fyyur/internal/config"
	"github.com/iliyamo/fyyur/internal/database"
	"github.com/iliyamo/fyyur/internal/repository"
	"github.com/iliyamo/fyyur/internal/seed"
)

func main() {
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	db, err := database.Open(database.Options{
		Driver: cfg.DBDriver,
		User:   cfg.DBUser,
		Pass:   cfg.DBPass,
		Host:   cfg.DBHost,
		Port:   cfg.DBPort,
		Name:   cfg.DBName,
		Path:   cfg.DBPath,
	})
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	if err := database.Migrate(ctx, db, cfg.DBDriver); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	res, err := seed.Load(ctx, seed.Repos{
		Venues:  repository.NewVenueRepo(db),
		Artists: repository.NewArtistRepo(db),
		Shows:   repository.NewShowRepo(db),
	})
	if err != nil {
		log.Fatalf("seed: %v", err)
	}
	if res == (seed.Result{}) {
		log.Printf("seed: database already has data, nothing inserted")
		return
	}
	log.Printf("seed: inserted %d venues, %d artists, %d shows", res.Venues, res.Artists, res.Shows)
}
