package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"

	"faq-chat-be/internal/bootstrap"
	"faq-chat-be/internal/config"
	"faq-chat-be/pkg/database"

	"github.com/fatih/color"
)

// Loads a question->answer JSON file into the vector index. Re-running over
// the same file is safe: already-indexed questions are skipped.
func main() {
	filePath := flag.String("file", "", "path to a JSON file mapping questions to answers")
	reset := flag.Bool("reset", false, "wipe the index before ingesting")
	flag.Parse()

	if *filePath == "" {
		log.Fatal("usage: ingest -file <faq.json> [-reset]")
	}

	raw, err := os.ReadFile(*filePath)
	if err != nil {
		log.Fatalf("Unable to read %s: %v", *filePath, err)
	}

	var entries map[string]string
	if err := json.Unmarshal(raw, &entries); err != nil {
		log.Fatalf("Invalid JSON in %s: %v", *filePath, err)
	}

	cfg := config.Load()
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	container := bootstrap.NewContainer(gormDB, cfg)
	defer container.Logger.Sync()

	ctx := context.Background()

	if *reset {
		color.Yellow("Resetting index before ingestion...")
		if err := container.IngestionService.Reset(ctx); err != nil {
			log.Fatalf("Reset failed: %v", err)
		}
	}

	color.Cyan("Ingesting %d entries from %s...", len(entries), *filePath)
	report, err := container.IngestionService.Run(ctx, entries)
	if err != nil {
		log.Fatalf("Ingestion failed: %v", err)
	}

	color.Green("Inserted: %d", report.Inserted)
	color.Yellow("Skipped:  %d", report.Skipped)
	if report.Failed > 0 {
		color.Red("Failed:   %d", report.Failed)
		os.Exit(1)
	}
}
