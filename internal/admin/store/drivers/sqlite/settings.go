package sqlite

import "context"

type settingsRepo struct {
	q querier
}

func (r *settingsRepo) GetValue(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := r.q.QueryRowContext(ctx,
		`SELECT value FROM settings WHERE key = ?`, key,
	).Scan(&value)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return value, nil
}

func (r *settingsRepo) SetValue(ctx context.Context, key string, value []byte) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)`,
		key, value,
	)
	return err
}
