package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"panelscan/internal/model"
	"panelscan/internal/repository/sqlite"
)

// Re-registers upload files that have no database record, e.g. after a
// database was lost or moved. Original uploads are named
// "<analysis id>_original.<ext>" by the storage service.
func main() {
	uploadsDir := flag.String("uploads", "uploads", "Directory containing uploaded images")
	dbPath := flag.String("db", filepath.Join("data", "panelscan.db"), "Database path")
	flag.Parse()

	fmt.Printf("Migrating uploads from %s to database %s\n", *uploadsDir, *dbPath)

	if err := os.MkdirAll(filepath.Dir(*dbPath), 0755); err != nil {
		log.Fatalf("Failed to create database directory: %v", err)
	}

	db, err := sqlite.New(*dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	repo := sqlite.NewAnalysisRepository(db)

	files, err := os.ReadDir(*uploadsDir)
	if err != nil {
		log.Fatalf("Failed to read uploads directory: %v", err)
	}

	migrated := 0
	skipped := 0
	for _, file := range files {
		if file.IsDir() {
			continue
		}

		name := file.Name()
		marker := strings.Index(name, "_original")
		if marker <= 0 {
			continue
		}
		id := name[:marker]

		existing, err := repo.GetByID(id)
		if err != nil {
			log.Fatalf("Failed to look up analysis %s: %v", id, err)
		}
		if existing != nil {
			skipped++
			continue
		}

		info, err := file.Info()
		if err != nil {
			log.Printf("Skipping %s: %v", name, err)
			skipped++
			continue
		}

		analysis := &model.Analysis{
			ID:        id,
			Filename:  name,
			FilePath:  filepath.Join(*uploadsDir, name),
			FileSize:  info.Size(),
			Status:    model.StatusQueued,
			CreatedAt: info.ModTime().UTC(),
		}
		if err := repo.Insert(analysis); err != nil {
			log.Fatalf("Failed to insert analysis %s: %v", id, err)
		}
		migrated++
	}

	fmt.Printf("Migrated %d upload(s), skipped %d\n", migrated, skipped)
}
