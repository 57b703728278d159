// Command seed backfills a record store database with generated samples so a
// fresh deployment has chart history and enough data to forecast from.
//
// Usage:
//
//	go run ./cmd/seed -db coastal_data.db -count 500 -interval 3s
//
// Timestamps are spaced -interval apart, ending at the current time, matching
// what the ingest loop would have produced had it been running.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/couchcryptid/coastal-monitor/internal/domain"
	"github.com/couchcryptid/coastal-monitor/internal/generator"
	"github.com/couchcryptid/coastal-monitor/internal/store"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	dbPath := flag.String("db", "coastal_data.db", "path to the record store database")
	count := flag.Int("count", 500, "number of samples to generate")
	interval := flag.Duration("interval", 3*time.Second, "spacing between sample timestamps")
	flag.Parse()

	if *count <= 0 {
		return fmt.Errorf("-count must be positive, got %d", *count)
	}

	db, err := store.NewSQLite(*dbPath)
	if err != nil {
		return err
	}
	defer db.Close() //nolint:errcheck // exiting anyway

	gen := generator.New()
	ctx := context.Background()
	start := time.Now().Add(-time.Duration(*count-1) * *interval)

	for i := 0; i < *count; i++ {
		seaLevel, windSpeed := gen.Generate()
		ts := domain.FormatTimestamp(start.Add(time.Duration(i) * *interval))
		if _, err := db.Append(ctx, seaLevel, windSpeed, ts); err != nil {
			return fmt.Errorf("seeding sample %d: %w", i+1, err)
		}
	}

	log.Printf("seeded %d samples into %s", *count, *dbPath)
	return nil
}
