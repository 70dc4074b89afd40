package storage

import (
	"context"
	"errors"
	"fmt"

	"backend-mapty/internal/db"

	"github.com/jackc/pgx/v5"
)

// PostgresSlot stores the value as one row of the storage_slots table.
type PostgresSlot struct {
	db  db.Querier
	key string
}

func NewPostgresSlot(db db.Querier, key string) *PostgresSlot {
	return &PostgresSlot{db: db, key: key}
}

func (s *PostgresSlot) EnsureSchema(ctx context.Context) error {
	_, err := s.db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS storage_slots (
			key        TEXT PRIMARY KEY,
			value      TEXT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`)
	if err != nil {
		return fmt.Errorf("create storage_slots: %w", err)
	}
	return nil
}

func (s *PostgresSlot) Get(ctx context.Context) (string, error) {
	var value string
	err := s.db.QueryRow(ctx, `SELECT value FROM storage_slots WHERE key=$1`, s.key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrEmptySlot
	}
	if err != nil {
		return "", fmt.Errorf("select slot %s: %w", s.key, err)
	}
	return value, nil
}

func (s *PostgresSlot) Set(ctx context.Context, value string) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO storage_slots (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE
		SET value=EXCLUDED.value, updated_at=EXCLUDED.updated_at
	`, s.key, value)
	if err != nil {
		return fmt.Errorf("upsert slot %s: %w", s.key, err)
	}
	return nil
}

func (s *PostgresSlot) Delete(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, `DELETE FROM storage_slots WHERE key=$1`, s.key); err != nil {
		return fmt.Errorf("delete slot %s: %w", s.key, err)
	}
	return nil
}
