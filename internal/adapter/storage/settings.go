package storage

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/niksmo/fashion-store/internal/core/domain"
	"github.com/niksmo/fashion-store/internal/core/port"
)

var _ port.SettingsStorage = (*SettingsRepository)(nil)

type SettingsRepository struct {
	db *sqlx.DB
}

func NewSettingsRepository(db SQLDB) SettingsRepository {
	return SettingsRepository{db.DB}
}

// GetSettings returns the stored values, absent keys are not in the map.
func (r SettingsRepository) GetSettings(
	ctx context.Context, keys []domain.SettingKey,
) (map[domain.SettingKey]string, error) {
	const op = "SettingsRepository.GetSettings"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	m := make(map[domain.SettingKey]string, len(keys))
	if len(keys) == 0 {
		return m, nil
	}

	strKeys := make([]string, len(keys))
	for i, k := range keys {
		strKeys[i] = string(k)
	}

	query, args, err := sqlx.In(`SELECT key, value FROM settings WHERE key IN (?);`, strKeys)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var rows []struct {
		Key   string `db:"key"`
		Value string `db:"value"`
	}
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, storageErr(op, err)
	}

	for _, row := range rows {
		m[domain.SettingKey(row.Key)] = row.Value
	}
	return m, nil
}

// SetSettings upserts every key in one transaction.
func (r SettingsRepository) SetSettings(
	ctx context.Context, settings map[domain.SettingKey]string,
) error {
	const op = "SettingsRepository.SetSettings"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return storageErr(op, err)
	}
	defer rollback(op, tx)

	query := `
		INSERT INTO settings (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value;`

	for k, v := range settings {
		if _, err := tx.ExecContext(ctx, query, string(k), v); err != nil {
			return storageErr(op, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return storageErr(op, err)
	}
	return nil
}
