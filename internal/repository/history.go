package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yourusername/resumeiq-api/internal/model"
)

// HistoryStore is the namespaced key-value store behind /kv and the
// score-history chart.
type HistoryStore interface {
	Set(ctx context.Context, key string, value json.RawMessage) (*model.KeyValue, error)
	Get(ctx context.Context, key string) (*model.KeyValue, error)
	// List returns entries under prefix, newest first.
	List(ctx context.Context, prefix string, limit int) ([]model.KeyValue, error)
}

type HistoryRepo struct {
	pool *pgxpool.Pool
}

func NewHistoryRepo(pool *pgxpool.Pool) *HistoryRepo {
	return &HistoryRepo{pool: pool}
}

// EnsureSchema creates the kv_store table when it is missing.
func (r *HistoryRepo) EnsureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS kv_store (
			key        TEXT PRIMARY KEY,
			value      JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS kv_store_created_at_idx ON kv_store (created_at DESC);
	`)
	if err != nil {
		return fmt.Errorf("creating kv_store: %w", err)
	}
	return nil
}

// Set inserts or replaces the value stored under key. Overwriting moves
// the entry to the end of the history.
func (r *HistoryRepo) Set(ctx context.Context, key string, value json.RawMessage) (*model.KeyValue, error) {
	var kv model.KeyValue
	err := r.pool.QueryRow(ctx, `
		INSERT INTO kv_store (key, value)
		VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, created_at = NOW()
		RETURNING key, value, created_at
	`, key, []byte(value)).Scan(&kv.Key, &kv.Value, &kv.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("setting %s: %w", key, err)
	}
	return &kv, nil
}

// Get returns nil, nil when the key does not exist
func (r *HistoryRepo) Get(ctx context.Context, key string) (*model.KeyValue, error) {
	var kv model.KeyValue
	err := r.pool.QueryRow(ctx, `
		SELECT key, value, created_at
		FROM kv_store
		WHERE key = $1
	`, key).Scan(&kv.Key, &kv.Value, &kv.CreatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting %s: %w", key, err)
	}
	return &kv, nil
}

func (r *HistoryRepo) List(ctx context.Context, prefix string, limit int) ([]model.KeyValue, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	rows, err := r.pool.Query(ctx, `
		SELECT key, value, created_at
		FROM kv_store
		WHERE left(key, length($1)) = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, prefix, limit)
	if err != nil {
		return nil, fmt.Errorf("listing %q: %w", prefix, err)
	}
	defer rows.Close()

	out := []model.KeyValue{}
	for rows.Next() {
		var kv model.KeyValue
		if err := rows.Scan(&kv.Key, &kv.Value, &kv.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning kv row: %w", err)
		}
		out = append(out, kv)
	}
	return out, rows.Err()
}
