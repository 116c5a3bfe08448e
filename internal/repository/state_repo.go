package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// StateRepository stores persisted client state, one row per key. It
// satisfies session.Persister.
type StateRepository struct {
	pool *pgxpool.Pool
}

func NewStateRepository(pool *pgxpool.Pool) *StateRepository {
	return &StateRepository{pool: pool}
}

func (r *StateRepository) Load(ctx context.Context, key string) ([]byte, bool, error) {
	var data []byte
	err := r.pool.QueryRow(ctx, `SELECT data FROM client_state WHERE key = $1`, key).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load client state: %w", err)
	}
	return data, true, nil
}

func (r *StateRepository) Save(ctx context.Context, key string, data []byte) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO client_state (key, data, updated_at)
		 VALUES ($1, $2, now())
		 ON CONFLICT (key) DO UPDATE SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at`,
		key, data)
	if err != nil {
		return fmt.Errorf("save client state: %w", err)
	}
	return nil
}

func (r *StateRepository) Delete(ctx context.Context, key string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM client_state WHERE key = $1`, key)
	if err != nil {
		return fmt.Errorf("delete client state: %w", err)
	}
	return nil
}
