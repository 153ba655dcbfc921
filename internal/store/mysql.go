package store

import (
	"context"
	"database/sql"
	"fmt"
)

// MySQLStore implements Storage on top of a MySQL connection pool.
// Multi-step operations run inside explicit transactions with row
// locks so concurrent requests against the same basket or order
// serialize instead of interleaving.
type MySQLStore struct {
	db *sql.DB
}

// NewMySQLStore wraps an open connection pool.
func NewMySQLStore(db *sql.DB) *MySQLStore {
	return &MySQLStore{db: db}
}

// withTx runs fn inside a transaction, rolling back on error.
func (s *MySQLStore) withTx(ctx context.Context, opts *sql.TxOptions, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("could not start transaction: %w", err)
	}
	defer tx.Rollback() // safety net

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("could not commit transaction: %w", err)
	}
	return nil
}
