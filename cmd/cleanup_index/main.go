package main

import (
	"bufio"
	"context"
	"flag"
	"log"
	"os"
	"strings"

	"faq-chat-be/internal/config"
	"faq-chat-be/internal/repository/implementation"
	"faq-chat-be/pkg/database"

	"github.com/fatih/color"
)

// Wipes every FAQ entry from the vector index. Asks for confirmation unless
// -yes is passed.
func main() {
	yes := flag.Bool("yes", false, "skip the confirmation prompt")
	flag.Parse()

	cfg := config.Load()
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	ctx := context.Background()

	faqRepo := implementation.NewFaqRepository(gormDB)
	if err := faqRepo.EnsureSchema(ctx); err != nil {
		log.Fatalf("Vector index is unreachable: %v", err)
	}

	count, err := faqRepo.Count(ctx)
	if err != nil {
		log.Fatalf("Unable to count entries: %v", err)
	}
	if count == 0 {
		color.Green("Index is already empty.")
		return
	}

	if !*yes {
		color.Yellow("This will delete %d indexed entries. Continue? [y/N] ", count)
		reader := bufio.NewReader(os.Stdin)
		answer, _ := reader.ReadString('\n')
		if strings.ToLower(strings.TrimSpace(answer)) != "y" {
			color.Red("Aborted.")
			return
		}
	}

	if err := faqRepo.DeleteAll(ctx); err != nil {
		log.Fatalf("Cleanup failed: %v", err)
	}

	color.Green("Deleted %d entries. Index is empty.", count)
}
