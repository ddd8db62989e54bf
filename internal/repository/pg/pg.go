// Package pg owns the Postgres connection pool and schema for the recipe
// store. All repositories share one pool; pgvector types are registered on
// every connection.
package pg

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	pgxvec "github.com/pgvector/pgvector-go/pgx"
)

// Store wraps a pgx connection pool.
type Store struct {
	pool *pgxpool.Pool
}

// Config holds Postgres connection settings.
type Config struct {
	DSN      string
	MaxConns int
}

// NewStore creates a connection pool and verifies the pgvector extension is
// installed. Fails fast: a store without the vector extension cannot serve
// semantic search at all.
func NewStore(ctx context.Context, cfg Config) (*Store, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = int32(cfg.MaxConns)
	}
	poolCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		return pgxvec.RegisterTypes(ctx, conn)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	var extExists bool
	err = pool.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM pg_extension WHERE extname = 'vector')",
	).Scan(&extExists)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("check pgvector extension: %w", err)
	}
	if !extExists {
		pool.Close()
		return nil, fmt.Errorf("pgvector extension not installed - run: CREATE EXTENSION vector")
	}

	return &Store{pool: pool}, nil
}

// Pool exposes the underlying pool to repositories.
func (s *Store) Pool() *pgxpool.Pool { return s.pool }

// WaitForReady pings the database until it responds or the timeout elapses.
func (s *Store) WaitForReady(ctx context.Context, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for {
		pingCtx, cancel := context.WithTimeout(ctx, time.Second)
		err := s.pool.Ping(pingCtx)
		cancel()
		if err == nil {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("database not ready after %s: %w", timeout, err)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(500 * time.Millisecond):
		}
	}
}

// EnsureSchema creates the recipe tables and indexes if they do not exist.
// dimensions fixes the vector column width; changing the embedding model's
// dimensionality requires a migration, not a restart.
func (s *Store) EnsureSchema(ctx context.Context, dimensions int) error {
	if dimensions <= 0 {
		return fmt.Errorf("vector dimensions must be positive, got %d", dimensions)
	}

	statements := []string{
		`CREATE TABLE IF NOT EXISTS recipes (
			id              TEXT PRIMARY KEY,
			user_id         TEXT NOT NULL,
			title           TEXT NOT NULL,
			description     TEXT NOT NULL DEFAULT '',
			ingredients     JSONB NOT NULL DEFAULT '[]',
			instructions    JSONB NOT NULL DEFAULT '[]',
			prep_time_min   INT NOT NULL DEFAULT 0,
			cook_time_min   INT NOT NULL DEFAULT 0,
			servings        INT NOT NULL DEFAULT 0,
			difficulty      TEXT NOT NULL DEFAULT '',
			cuisine         TEXT NOT NULL DEFAULT '',
			dietary_tags    TEXT[] NOT NULL DEFAULT '{}',
			rating          DOUBLE PRECISION,
			searchable_text TEXT NOT NULL,
			search_tsv      tsvector GENERATED ALWAYS AS (to_tsvector('english', searchable_text)) STORED,
			created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at      TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS recipes_user_id_idx ON recipes (user_id)`,
		`CREATE INDEX IF NOT EXISTS recipes_search_tsv_idx ON recipes USING gin (search_tsv)`,
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS recipe_embeddings (
			id          BIGSERIAL PRIMARY KEY,
			recipe_id   TEXT NOT NULL REFERENCES recipes(id) ON DELETE CASCADE,
			kind        TEXT NOT NULL DEFAULT 'full_recipe',
			embedding   vector(%d) NOT NULL,
			source_text TEXT NOT NULL,
			created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
		)`, dimensions),
		`CREATE INDEX IF NOT EXISTS recipe_embeddings_recipe_id_idx ON recipe_embeddings (recipe_id)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// HealthCheck verifies connectivity and the pgvector extension.
func (s *Store) HealthCheck(ctx context.Context) error {
	var one int
	if err := s.pool.QueryRow(ctx, "SELECT 1").Scan(&one); err != nil {
		return fmt.Errorf("database ping: %w", err)
	}
	var extExists bool
	err := s.pool.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM pg_extension WHERE extname = 'vector')",
	).Scan(&extExists)
	if err != nil {
		return fmt.Errorf("extension check: %w", err)
	}
	if !extExists {
		return fmt.Errorf("pgvector extension missing")
	}
	return nil
}

// Close releases the connection pool.
func (s *Store) Close() {
	s.pool.Close()
}
