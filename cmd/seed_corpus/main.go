package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path/filepath"
	"strings"

	"ai-receptionist-be/internal/bootstrap"
	"ai-receptionist-be/internal/config"
	"ai-receptionist-be/internal/dto"
	"ai-receptionist-be/internal/model"
	"ai-receptionist-be/pkg/database"

	"github.com/fatih/color"
)

// Seeds the knowledge corpus from a directory of .txt/.md files. Each file
// becomes one document; indexing runs synchronously so the command exits
// with the corpus query-ready.
func main() {
	dir := flag.String("dir", "corpus", "directory of .txt/.md source documents")
	flag.Parse()

	cfg := config.Load()

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatalf("Error: Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db, &model.Document{}, &model.EvidenceEmbedding{}); err != nil {
		log.Fatalf("Error: Failed to migrate database: %v", err)
	}

	container := bootstrap.NewContainer(db, cfg)
	ctx := context.Background()

	entries, err := os.ReadDir(*dir)
	if err != nil {
		log.Fatalf("Error: Failed to read corpus directory %s: %v", *dir, err)
	}

	seeded := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".txt" && ext != ".md" {
			continue
		}

		content, err := os.ReadFile(filepath.Join(*dir, entry.Name()))
		if err != nil {
			color.Red("FAIL  %s: %v", entry.Name(), err)
			continue
		}

		title := strings.TrimSuffix(entry.Name(), ext)
		res, err := container.DocumentService.CreateDocument(ctx, &dto.CreateDocumentRequest{
			Title:   title,
			Source:  entry.Name(),
			Content: string(content),
		})
		if err != nil {
			color.Red("FAIL  %s: %v", entry.Name(), err)
			continue
		}

		// Index inline instead of waiting for the consumer.
		if err := container.IndexerService.IndexDocument(ctx, res.Id); err != nil {
			color.Red("FAIL  %s: indexing: %v", entry.Name(), err)
			continue
		}

		color.Green("OK    %s (%s)", entry.Name(), res.Id)
		seeded++
	}

	color.Cyan("Corpus seeding completed: %d document(s)", seeded)
}
