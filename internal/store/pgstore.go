package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"techfab-billing/internal/core"
)

// PGStore persists the aggregate as a single jsonb row in Postgres. The
// snapshot-replacement contract is identical to FileStore; the database
// simply gives the blob a durable, queryable home when the app runs next
// to other services.
type PGStore struct {
	pool *pgxpool.Pool
}

// NewPGStore connects to connStr, ensures the snapshot table exists and
// returns a ready persister.
func NewPGStore(ctx context.Context, connStr string) (*PGStore, error) {
	config, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		return nil, fmt.Errorf("unable to parse DATABASE_URL: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	ddl := `
		CREATE TABLE IF NOT EXISTS app_state (
			id         int PRIMARY KEY,
			snapshot   jsonb NOT NULL,
			updated_at timestamptz NOT NULL DEFAULT now()
		)
	`
	if _, err := pool.Exec(ctx, ddl); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ensure app_state table: %w", err)
	}

	return &PGStore{pool: pool}, nil
}

// Close releases the connection pool.
func (p *PGStore) Close() {
	p.pool.Close()
}

// Load reads the snapshot row. No row means no snapshot exists yet.
func (p *PGStore) Load(ctx context.Context) (*core.AppState, error) {
	var data []byte
	err := p.pool.QueryRow(ctx, `SELECT snapshot FROM app_state WHERE id = 1`).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot row: %w", err)
	}

	var state core.AppState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot row: %w", err)
	}
	return &state, nil
}

// Save upserts the snapshot row, replacing the whole aggregate.
func (p *PGStore) Save(ctx context.Context, state core.AppState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	query := `
		INSERT INTO app_state (id, snapshot, updated_at)
		VALUES (1, $1, now())
		ON CONFLICT (id)
		DO UPDATE SET snapshot = EXCLUDED.snapshot, updated_at = now()
	`
	if _, err := p.pool.Exec(ctx, query, data); err != nil {
		return fmt.Errorf("failed to upsert snapshot row: %w", err)
	}
	return nil
}
