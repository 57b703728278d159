package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // registers the pure-Go "sqlite" driver

	"github.com/couchcryptid/coastal-monitor/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS sensor_data (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	sea_level   REAL    NOT NULL,
	wind_speed  REAL    NOT NULL,
	timestamp   TEXT    NOT NULL
)`

// SQLite is a Store backed by a single-table SQLite database.
type SQLite struct {
	db *sqlx.DB
}

// NewSQLite opens (creating if needed) the database at path and ensures the
// sensor_data table exists. Use ":memory:" for an ephemeral store.
func NewSQLite(path string) (*SQLite, error) {
	db, err := sqlx.Connect("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite store: %w", err)
	}

	// The modernc driver serializes writes per connection; a single connection
	// avoids SQLITE_BUSY on concurrent appends from the ingest loop and handlers.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close() //nolint:errcheck // already failing
		return nil, fmt.Errorf("migrate sqlite store: %w", err)
	}

	return &SQLite{db: db}, nil
}

// Append stores one sample and returns the AUTOINCREMENT id SQLite assigned.
func (s *SQLite) Append(ctx context.Context, seaLevel, windSpeed float64, timestamp string) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO sensor_data (sea_level, wind_speed, timestamp) VALUES (?, ?, ?)`,
		seaLevel, windSpeed, timestamp,
	)
	if err != nil {
		return 0, fmt.Errorf("append sample: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("append sample id: %w", err)
	}
	return id, nil
}

// Recent returns up to n samples, newest first.
func (s *SQLite) Recent(ctx context.Context, n int) ([]domain.Sample, error) {
	var samples []domain.Sample
	err := s.db.SelectContext(ctx, &samples,
		`SELECT id, sea_level, wind_speed, timestamp FROM sensor_data ORDER BY id DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("query recent samples: %w", err)
	}
	return samples, nil
}

// AllAscending returns every sample, oldest first.
func (s *SQLite) AllAscending(ctx context.Context) ([]domain.Sample, error) {
	var samples []domain.Sample
	err := s.db.SelectContext(ctx, &samples,
		`SELECT id, sea_level, wind_speed, timestamp FROM sensor_data ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("query all samples: %w", err)
	}
	return samples, nil
}

// CheckReadiness reports whether the database answers queries.
func (s *SQLite) CheckReadiness(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the underlying database.
func (s *SQLite) Close() error {
	return s.db.Close()
}
