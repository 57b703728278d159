// Package store persists sensor samples in an append-only ordered record store.
package store

import (
	"context"

	"github.com/couchcryptid/coastal-monitor/internal/domain"
)

// Store is the record store contract: an ordered append-only log of samples
// with query-by-recency. Append is atomic; once it returns, the sample is
// visible to subsequent reads. IDs are assigned by the store and strictly
// increase in insertion order. No update or delete path exists.
type Store interface {
	// Append stores one sample and returns its assigned id.
	Append(ctx context.Context, seaLevel, windSpeed float64, timestamp string) (int64, error)

	// Recent returns up to n samples, newest first.
	Recent(ctx context.Context, n int) ([]domain.Sample, error)

	// AllAscending returns every sample, oldest first.
	AllAscending(ctx context.Context) ([]domain.Sample, error)
}
