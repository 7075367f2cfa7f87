package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/talentflow/ui-api/internal/core"
)

// MetaKeySeeded marks the store as seeded. Its presence is what makes
// seeding idempotent across restarts.
const MetaKeySeeded = "seeded"

// MetaRepo provides database operations for store-level metadata flags.
type MetaRepo struct {
	DB *sql.DB
}

// NewMetaRepo creates a new MetaRepo.
func NewMetaRepo(db *sql.DB) *MetaRepo {
	return &MetaRepo{DB: db}
}

var _ core.MetaRepository = (*MetaRepo)(nil)

// Get returns the value for key; found=false when the key is absent.
func (r *MetaRepo) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := r.DB.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get meta %q: %w", key, err)
	}
	return value, true, nil
}

// Set stores or replaces the value for key.
func (r *MetaRepo) Set(ctx context.Context, key, value string) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO meta (key, value) VALUES (?, ?)
		 ON CONFLICT (key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("failed to set meta %q: %w", key, err)
	}
	return nil
}

// Delete removes a key; deleting an absent key is not an error.
func (r *MetaRepo) Delete(ctx context.Context, key string) error {
	if _, err := r.DB.ExecContext(ctx, `DELETE FROM meta WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete meta %q: %w", key, err)
	}
	return nil
}
