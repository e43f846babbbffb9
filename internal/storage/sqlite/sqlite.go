// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/fintrack/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
// Ledger records live in ledger_records, one row per user entity list,
// holding the JSON value and a version stamp.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	// Create parent directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	if err := runMigrations(dbPath); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// SQLite allows one writer; a single connection keeps writes ordered
	// and avoids SQLITE_BUSY between pooled connections.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Get retrieves the record stored under key.
func (s *SQLiteStore) Get(ctx context.Context, key storage.Key) (storage.Record, error) {
	var rec storage.Record
	var value string
	err := s.db.QueryRowContext(ctx,
		"SELECT value, version FROM ledger_records WHERE key = ?",
		key.String(),
	).Scan(&value, &rec.Version)
	if errors.Is(err, sql.ErrNoRows) {
		return storage.Record{}, storage.ErrNotFound
	}
	if err != nil {
		return storage.Record{}, fmt.Errorf("failed to get record %s: %w", key, err)
	}
	rec.Value = []byte(value)
	return rec, nil
}

// Set writes all records in one SQL transaction, checking each version.
func (s *SQLiteStore) Set(ctx context.Context, writes ...storage.Write) error {
	if len(writes) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().Unix()
	for _, w := range writes {
		var res sql.Result
		if w.Version == 0 {
			res, err = tx.ExecContext(ctx,
				`INSERT INTO ledger_records (key, value, version, updated_at) VALUES (?, ?, 1, ?)
				 ON CONFLICT(key) DO NOTHING`,
				w.Key.String(), string(w.Value), now,
			)
		} else {
			res, err = tx.ExecContext(ctx,
				`UPDATE ledger_records SET value = ?, version = version + 1, updated_at = ?
				 WHERE key = ? AND version = ?`,
				string(w.Value), now, w.Key.String(), w.Version,
			)
		}
		if err != nil {
			return fmt.Errorf("failed to write record %s: %w", w.Key, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to check write of %s: %w", w.Key, err)
		}
		if n == 0 {
			return fmt.Errorf("%w: %s at version %d", storage.ErrVersionConflict, w.Key, w.Version)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
