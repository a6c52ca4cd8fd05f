// Package store exports corrected picks to a SQLite database.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/cwbudde/algo-picks/correct"

	// Registers the "sqlite" driver.
	_ "modernc.org/sqlite"
)

// ErrClosed is returned by operations on a closed Store.
var ErrClosed = errors.New("store: closed")

const schema = `
CREATE TABLE IF NOT EXISTS corrected_picks (
	source        INTEGER NOT NULL,
	receiver      INTEGER NOT NULL,
	boundary_case TEXT    NOT NULL,
	itp           INTEGER NOT NULL,
	its           INTEGER NOT NULL,
	PRIMARY KEY (source, receiver)
)`

// Store wraps a single-connection SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path and ensures the schema.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}

	// SQLite serialises writers; keep one connection for the whole process.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: connect %s: %w", path, err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s.db == nil {
		return ErrClosed
	}

	err := s.db.Close()
	s.db = nil

	return err
}

// Save replaces the stored table with rows in one transaction.
func (s *Store) Save(ctx context.Context, rows []correct.Row) (err error) {
	if s.db == nil {
		return ErrClosed
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store: begin: %w", err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM corrected_picks`); err != nil {
		return fmt.Errorf("store: clear: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO corrected_picks (source, receiver, boundary_case, itp, its) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("store: prepare: %w", err)
	}
	defer stmt.Close()

	for _, r := range rows {
		if _, err = stmt.ExecContext(ctx, r.Source, r.Receiver, r.Case.String(), r.P, r.S); err != nil {
			return fmt.Errorf("store: insert source %d receiver %d: %w", r.Source, r.Receiver, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("store: commit: %w", err)
	}

	return nil
}

// Load returns the stored rows in source-major, receiver-minor order.
func (s *Store) Load(ctx context.Context) ([]correct.Row, error) {
	if s.db == nil {
		return nil, ErrClosed
	}

	q, err := s.db.QueryContext(ctx,
		`SELECT source, receiver, boundary_case, itp, its FROM corrected_picks ORDER BY source, receiver`)
	if err != nil {
		return nil, fmt.Errorf("store: query: %w", err)
	}
	defer q.Close()

	var rows []correct.Row

	for q.Next() {
		var (
			r    correct.Row
			name string
		)

		if err := q.Scan(&r.Source, &r.Receiver, &name, &r.P, &r.S); err != nil {
			return nil, fmt.Errorf("store: scan: %w", err)
		}

		r.Case, err = correct.ParseCase(name)
		if err != nil {
			return nil, fmt.Errorf("store: source %d receiver %d: %w", r.Source, r.Receiver, err)
		}

		rows = append(rows, r)
	}

	return rows, q.Err()
}
