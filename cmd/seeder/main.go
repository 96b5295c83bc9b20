package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mauv0809/keybet/internal/catalog"
	"github.com/mauv0809/keybet/internal/config"
	"github.com/mauv0809/keybet/internal/database"
)

// seed replaces the stored team catalog with the teams of csvPath and
// returns the number of teams written.
func seed(csvPath string, cfg config.DBConfig) (int, error) {
	c, err := catalog.Load(csvPath)
	if err != nil {
		return 0, err
	}
	log.Info("Loaded team catalog", "path", csvPath, "countries", len(c.Countries()), "teams", c.Len())

	db, teardown, err := database.InitDB(cfg.Path, cfg.TursoURL, cfg.TursoToken)
	if err != nil {
		return 0, fmt.Errorf("failed to initialize database: %w", err)
	}
	defer teardown()

	if err := catalog.NewStore(db).ReplaceEntries(c.Entries()); err != nil {
		return 0, fmt.Errorf("failed to store teams: %w", err)
	}
	return c.Len(), nil
}

func main() {
	log.Info("Starting catalog seeder...")
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: seeder <teams.csv>")
		os.Exit(2)
	}

	cfg, err := config.Load(config.NewViper(), os.Getenv("KEYBET_CONFIG"))
	if err != nil {
		log.Fatalf("Failed to load configuration: %s", err)
	}
	cfg.Log.ApplyLogging()

	startTime := time.Now()
	n, err := seed(os.Args[1], cfg.DB)
	if err != nil {
		log.Fatalf("Seeding failed: %s", err)
	}
	log.Info("Successfully seeded team catalog.", "teams", n, "duration", time.Since(startTime))
}
