package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"squadbuilder/database"
	"squadbuilder/internal/config"
	"squadbuilder/internal/microservices/http-api/models"
	"squadbuilder/internal/microservices/http-api/repository"
	"squadbuilder/internal/pricing"
)

// seedPlayer is one record of the seed file. Cost is derived from the rating
// when absent; an explicit cost wins over the rating.
type seedPlayer struct {
	Name        string `json:"name"`
	Position    string `json:"position"`
	Club        string `json:"club"`
	LeagueID    int64  `json:"league_id"`
	Nationality string `json:"nationality"`
	ImageURL    string `json:"image_url"`
	Rating      string `json:"rating,omitempty"`
	Cost        *int   `json:"cost,omitempty"`
}

func main() {
	filePath := flag.String("file", "players.json", "path to the seed file (JSON array of players)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		log.Fatalf("could not connect to database: %v", err)
	}

	records, err := loadSeedFile(*filePath)
	if err != nil {
		log.Fatalf("could not read seed file: %v", err)
	}
	logger.Info("seed file loaded", "file", *filePath, "records", len(records))

	players := buildCatalog(records, logger)

	playerRepo := repository.NewPlayerRepository(db)
	inserted, err := playerRepo.Import(context.Background(), players)
	if err != nil {
		log.Fatalf("import failed: %v", err)
	}

	logger.Info("catalog seeded",
		"total", len(players),
		"inserted", inserted,
		"skipped_existing", int64(len(players))-inserted,
	)
}

// buildCatalog converts seed records into catalog rows, pricing unpriced ones
// via the cost model. Malformed records are skipped with a warning rather
// than sinking the whole batch: the catalog's check constraint would reject
// any out-of-range cost and fail the Import of every row with it.
func buildCatalog(records []seedPlayer, logger *slog.Logger) []models.Player {
	players := make([]models.Player, 0, len(records))
	for _, rec := range records {
		if rec.Name == "" || rec.Position == "" {
			logger.Warn("skipping record without name or position", "name", rec.Name)
			continue
		}

		cost := pricing.PlayerCost(rec.Position, rec.Rating)
		if rec.Cost != nil {
			if *rec.Cost < pricing.MinCost || *rec.Cost > pricing.MaxCost {
				logger.Warn("skipping record with out-of-range cost",
					"name", rec.Name, "cost", *rec.Cost)
				continue
			}
			cost = *rec.Cost
		}

		players = append(players, models.Player{
			Name:        rec.Name,
			Position:    rec.Position,
			Club:        rec.Club,
			LeagueID:    rec.LeagueID,
			Nationality: rec.Nationality,
			ImageURL:    rec.ImageURL,
			Cost:        cost,
		})
	}
	return players
}

func loadSeedFile(path string) ([]seedPlayer, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var records []seedPlayer
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return records, nil
}
