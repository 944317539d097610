package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
)

// SettingsRepo provides key/value persistence for tunable parameters.
type SettingsRepo interface {
	// Get returns the stored value and whether the key exists.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set inserts or replaces the value.
	Set(ctx context.Context, key, value string) error
	// SetIfAbsent inserts the value unless the key already exists.
	SetIfAbsent(ctx context.Context, key, value string) error
}

type PGSettingsRepo struct {
	db DBTX
}

func NewPGSettingsRepo(db DBTX) *PGSettingsRepo {
	return &PGSettingsRepo{db: db}
}

func (r *PGSettingsRepo) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := r.db.QueryRow(ctx, `SELECT value FROM settings WHERE key = $1`, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (r *PGSettingsRepo) Set(ctx context.Context, key, value string) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO settings (key, value) VALUES ($1, $2) ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`,
		key, value,
	)
	return err
}

func (r *PGSettingsRepo) SetIfAbsent(ctx context.Context, key, value string) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO settings (key, value) VALUES ($1, $2) ON CONFLICT (key) DO NOTHING`,
		key, value,
	)
	return err
}
