// Command ingest bulk-loads a line-delimited GeoJSON file of reference
// addresses into the Postgres store.
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/andina-geo/geocoder/ingest"
	"github.com/andina-geo/geocoder/store"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("ingest", flag.ContinueOnError)
	batchSize := fs.Int("batch-size", ingest.DefaultBatchSize, "number of features upserted per transaction")
	skip := fs.Int("skip", 0, "number of lines to skip before ingesting (for resuming a prior run)")
	noCount := fs.Bool("no-count", false, "skip the up-front line count used for progress/ETA reporting")
	checkpointPath := fs.String("checkpoint", ingest.DefaultCheckpointPath, "path to the resumability checkpoint file")

	if err := fs.Parse(args); err != nil {
		return 1
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: ingest <path> [--batch-size N] [--skip M] [--no-count]")
		return 1
	}
	path := fs.Arg(0)

	if existing, err := ingest.ReadCheckpoint(*checkpointPath); err == nil && existing > 0 {
		log.Printf("ingest: found existing checkpoint at %d lines (pass --skip=%d to resume)", existing, existing)
	}

	db, err := openStore()
	if err != nil {
		log.Printf("ingest: %v", err)
		return 1
	}
	defer db.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	ing := ingest.New(
		store.NewPostgresStore(db),
		ingest.WithBatchSize(*batchSize),
		ingest.WithSkip(*skip),
		ingest.WithNoCount(*noCount),
		ingest.WithCheckpointPath(*checkpointPath),
	)

	stats, err := ing.Run(ctx, path)
	log.Printf("ingest: run %s: processed=%d inserted=%d errors=%d elapsed=%s",
		ing.RunID, stats.Processed, stats.Inserted, stats.Errors, stats.Elapsed())

	if err != nil {
		log.Printf("ingest: aborted: %v", err)
		return 1
	}

	if rmErr := ingest.RemoveCheckpoint(*checkpointPath); rmErr != nil {
		log.Printf("ingest: warning: %v", rmErr)
	}
	return 0
}

func openStore() (*sql.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%s dbname=%s user=%s password=%s sslmode=disable",
		envOr("DB_HOST", "localhost"),
		envOr("DB_PORT", "5432"),
		envOr("DB_NAME", "geocoder"),
		envOr("DB_USER", "postgres"),
		os.Getenv("DB_PASSWORD"),
	)
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
