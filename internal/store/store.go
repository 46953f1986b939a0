// Package store provides PostgreSQL persistence for jobs: the upsert-keyed
// ingestion write path and the filtered query path behind the HTTP API.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrDuplicate reports an insert that hit the (source, source_id) unique
// key. The orchestrator counts these instead of treating them as failures.
var ErrDuplicate = errors.New("job already exists")

// ErrNotFound reports a lookup that matched no row.
var ErrNotFound = errors.New("job not found")

// Store wraps a PostgreSQL connection pool.
type Store struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool and verifies it with a ping.
func Connect(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{pool: pool}, nil
}

// Close closes the connection pool.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}
