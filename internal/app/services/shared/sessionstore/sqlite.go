package sessionstore

import (
	"carerouter-service/internal/app/contracts"
	"carerouter-service/internal/pkg/exceptions"
	"context"
	"database/sql"
	"errors"
	"time"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS client_state (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at INTEGER NOT NULL,
	expires_at INTEGER
);
CREATE INDEX IF NOT EXISTS idx_client_state_expires_at ON client_state(expires_at);
`

type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

func NewSQLiteStore(ctx context.Context, db *sql.DB) (*SQLiteStore, error) {
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		return nil, exceptions.ErrStoreSet(err, "client_state")
	}
	return &SQLiteStore{db: db, now: time.Now}, nil
}

var (
	_ contracts.SessionStore = (*SQLiteStore)(nil)
	_ contracts.Sweeper      = (*SQLiteStore)(nil)
	_ contracts.Taker        = (*SQLiteStore)(nil)
)

func (s *SQLiteStore) Get(ctx context.Context, key string) (string, error) {
	var (
		value     string
		expiresAt sql.NullInt64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT value, expires_at FROM client_state WHERE key = ?`, key,
	).Scan(&value, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	} else if err != nil {
		return "", exceptions.ErrStoreGet(err, key)
	}
	if expiresAt.Valid && s.now().UnixMilli() >= expiresAt.Int64 {
		return "", nil
	}
	return value, nil
}

func (s *SQLiteStore) Set(ctx context.Context, key string, value string, exp time.Duration) error {
	now := s.now()
	var expiresAt sql.NullInt64
	if exp > 0 {
		expiresAt = sql.NullInt64{Int64: now.Add(exp).UnixMilli(), Valid: true}
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO client_state (key, value, updated_at, expires_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at, expires_at = excluded.expires_at`,
		key, value, now.UnixMilli(), expiresAt,
	)
	if err != nil {
		return exceptions.ErrStoreSet(err, key)
	}
	return nil
}

func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM client_state WHERE key = ?`, key)
	if err != nil {
		return exceptions.ErrStoreDelete(err, key)
	}
	return nil
}

func (s *SQLiteStore) Take(ctx context.Context, key string) (string, error) {
	var (
		value     string
		expiresAt sql.NullInt64
	)
	err := s.db.QueryRowContext(ctx,
		`DELETE FROM client_state WHERE key = ? RETURNING value, expires_at`, key,
	).Scan(&value, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	} else if err != nil {
		return "", exceptions.ErrStoreDelete(err, key)
	}
	if expiresAt.Valid && s.now().UnixMilli() >= expiresAt.Int64 {
		return "", nil
	}
	return value, nil
}

func (s *SQLiteStore) Sweep(ctx context.Context) (int, error) {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM client_state WHERE expires_at IS NOT NULL AND expires_at <= ?`, s.now().UnixMilli(),
	)
	if err != nil {
		return 0, exceptions.ErrStoreDelete(err, "client_state")
	}
	removed, _ := result.RowsAffected()
	return int(removed), nil
}
