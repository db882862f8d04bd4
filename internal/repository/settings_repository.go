package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"maps"
	"slices"
	"time"

	"mentor-ai/backend/internal/model"
)

type sqliteSettingsRepository struct {
	db *sql.DB
}

// NewSQLiteSettingsRepository returns a repository backed by the settings
// table.
func NewSQLiteSettingsRepository(db *sql.DB) SettingsRepository {
	return &sqliteSettingsRepository{db: db}
}

func (r *sqliteSettingsRepository) GetSettings(ctx context.Context) (map[string]string, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT key, value FROM settings")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	values := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		values[key] = value
	}
	return values, rows.Err()
}

// SaveSettings upserts every entry in one transaction, in key order.
func (r *sqliteSettingsRepository) SaveSettings(ctx context.Context, values map[string]string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, "INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value")
	if err != nil {
		return fmt.Errorf("could not prepare settings statement: %w", err)
	}
	defer stmt.Close()

	for _, key := range slices.Sorted(maps.Keys(values)) {
		if _, err := stmt.ExecContext(ctx, key, values[key]); err != nil {
			return fmt.Errorf("could not save setting %q: %w", key, err)
		}
	}
	return tx.Commit()
}

type sqliteKeyRepository struct {
	db *sql.DB
}

// NewSQLiteKeyRepository returns a repository backed by the api_keys table.
// Values are stored as given; obfuscation happens in the service layer.
func NewSQLiteKeyRepository(db *sql.DB) KeyRepository {
	return &sqliteKeyRepository{db: db}
}

func (r *sqliteKeyRepository) GetKey(ctx context.Context, provider model.Provider) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx, "SELECT value FROM api_keys WHERE provider = ?", provider).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}
	return value, nil
}

func (r *sqliteKeyRepository) SetKey(ctx context.Context, provider model.Provider, value string) error {
	query := `
		INSERT INTO api_keys (provider, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(provider) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`
	_, err := r.db.ExecContext(ctx, query, provider, value, time.Now().UTC())
	return err
}

func (r *sqliteKeyRepository) DeleteKey(ctx context.Context, provider model.Provider) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM api_keys WHERE provider = ?", provider)
	return err
}

func (r *sqliteKeyRepository) ListKeyProviders(ctx context.Context) ([]model.Provider, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT provider FROM api_keys ORDER BY provider")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var providers []model.Provider
	for rows.Next() {
		var p model.Provider
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		providers = append(providers, p)
	}
	return providers, rows.Err()
}
