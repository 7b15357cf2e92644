package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"studio-proof/config"
	"studio-proof/internal/domain/session"
	"studio-proof/internal/repository"
	"studio-proof/internal/storage"
	"studio-proof/pkg/logger"
)

const usage = `
Studio Proof - Data CLI Tool

Usage:
  studioctl [flags] [command]

Commands:
  status      Show session, photo and portfolio counts
  prune       Delete files in the upload directory that nothing references
  reset       Replace the data file with an empty document (DANGEROUS)

Flags:
  -data string      Path to the data file (default from DATA_FILE)
  -uploads string   Path to the upload directory (default from UPLOAD_DIR)
  -dry-run          With prune, only list what would be deleted

Examples:
  go run ./cmd/studioctl status
  go run ./cmd/studioctl -dry-run prune
  go run ./cmd/studioctl reset
`

func main() {
	cfg := config.LoadConfig()

	dataFile := flag.String("data", cfg.DataFile, "Path to the data file")
	uploadDir := flag.String("uploads", cfg.UploadDir, "Path to the upload directory")
	dryRun := flag.Bool("dry-run", false, "Only list files prune would delete")

	flag.Usage = func() {
		fmt.Print(usage)
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	l := logger.New(cfg.LogMode)
	defer l.Sync()

	store := repository.NewStore(*dataFile, l)
	if err := store.Load(); err != nil {
		log.Fatalf("Failed to load %s: %v", *dataFile, err)
	}

	switch command := flag.Arg(0); command {
	case "status":
		showStatus(store)
	case "prune":
		runPrune(store, *uploadDir, *dryRun)
	case "reset":
		runReset(store)
	default:
		fmt.Printf("Unknown command: %s\n", command)
		flag.Usage()
		os.Exit(1)
	}
}

func showStatus(store *repository.Store) {
	doc := store.Snapshot()

	counts := map[session.Status]int{}
	photos := 0
	for _, s := range doc.Sessions {
		counts[s.Status]++
		photos += len(s.Photos)
	}

	log.Printf("Data file: %s", store.Path())
	log.Printf("Sessions:  %d (draft %d, ready %d, submitted %d)",
		len(doc.Sessions), counts[session.StatusDraft], counts[session.StatusReady], counts[session.StatusSubmitted])
	log.Printf("Photos:    %d", photos)
	log.Printf("Portfolio: %d", len(doc.PortfolioItems))

	if err := store.HealthCheck(); err != nil {
		log.Printf("Health check warning: %v", err)
	} else {
		log.Println("Health check: PASSED")
	}
}

func runPrune(store *repository.Store, uploadDir string, dryRun bool) {
	local, err := storage.NewLocalStore(uploadDir, "")
	if err != nil {
		log.Fatalf("Failed to open upload directory: %v", err)
	}

	result, err := pruneOrphans(context.Background(), store, local, dryRun)
	if err != nil {
		log.Fatalf("Prune refused: %v", err)
	}
	if len(result.Orphans) == 0 {
		log.Println("Nothing to prune")
		return
	}

	if dryRun {
		for _, key := range result.Orphans {
			log.Printf("would delete %s", key)
		}
		log.Printf("%d unreferenced files", len(result.Orphans))
		return
	}
	for key, err := range result.Failed {
		log.Printf("Failed to delete %s: %v", key, err)
	}
	log.Printf("Pruned %d of %d unreferenced files", result.Removed, len(result.Orphans))
}

type pruneResult struct {
	Orphans []string
	Removed int
	Failed  map[string]error
}

// pruneOrphans deletes stored files the document does not reference. It only
// runs against a document that was actually read from disk; an initialized or
// recovered-empty store would make every file look unreferenced.
func pruneOrphans(ctx context.Context, store *repository.Store, local *storage.LocalStore, dryRun bool) (pruneResult, error) {
	result := pruneResult{Failed: map[string]error{}}
	if state := store.State(); state != repository.LoadedFromDisk {
		return result, fmt.Errorf("data file %s was not read from disk (%s)", store.Path(), state)
	}

	stored, err := local.List()
	if err != nil {
		return result, err
	}
	result.Orphans = store.Snapshot().Orphans(stored)
	if dryRun {
		return result, nil
	}
	for _, key := range result.Orphans {
		if err := local.Delete(ctx, key); err != nil {
			result.Failed[key] = err
			continue
		}
		result.Removed++
	}
	return result, nil
}

func runReset(store *repository.Store) {
	log.Println("Resetting data file...")

	store.Reset()
	if err := store.Save(); err != nil {
		log.Fatalf("Reset failed: %v", err)
	}

	log.Printf("Reset %s to an empty document", store.Path())
}
