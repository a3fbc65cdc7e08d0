package mirror

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS mirror (
    key TEXT PRIMARY KEY,
    value BLOB NOT NULL,
    updated_at TEXT NOT NULL
)`

// SQLiteMirror keeps every key as a row of an embedded SQLite database
type SQLiteMirror struct {
	conn *sql.DB
	path string
}

// OpenSQLite opens or creates the database at path in WAL mode
func OpenSQLite(path string) (*SQLiteMirror, error) {
	if path == "" {
		return nil, fmt.Errorf("mirror database path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	conn, err := sql.Open("sqlite3", fmt.Sprintf("file:%s", path))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	m := &SQLiteMirror{conn: conn, path: path}
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := conn.Exec(p); err != nil {
			_ = m.Close()
			return nil, fmt.Errorf("failed to apply %q: %w", p, err)
		}
	}
	if _, err := conn.Exec(sqliteSchema); err != nil {
		_ = m.Close()
		return nil, fmt.Errorf("failed to create mirror table: %w", err)
	}
	return m, nil
}

// Read selects the payload for key
func (m *SQLiteMirror) Read(ctx context.Context, key string) ([]byte, bool, error) {
	if err := checkKey(key); err != nil {
		return nil, false, err
	}
	var value []byte
	err := m.conn.QueryRowContext(ctx, `SELECT value FROM mirror WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read mirror key %s: %w", key, err)
	}
	return value, true, nil
}

// Write upserts the payload for key
func (m *SQLiteMirror) Write(ctx context.Context, key string, value []byte) error {
	if err := checkKey(key); err != nil {
		return err
	}
	_, err := m.conn.ExecContext(ctx, `
		INSERT INTO mirror (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("failed to write mirror key %s: %w", key, err)
	}
	return nil
}

// Clear deletes the row for key
func (m *SQLiteMirror) Clear(ctx context.Context, key string) error {
	if err := checkKey(key); err != nil {
		return err
	}
	if _, err := m.conn.ExecContext(ctx, `DELETE FROM mirror WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to clear mirror key %s: %w", key, err)
	}
	return nil
}

// Close checkpoints the WAL and closes the database
func (m *SQLiteMirror) Close() error {
	if m.conn == nil {
		return nil
	}
	if _, err := m.conn.Exec("PRAGMA wal_checkpoint(TRUNCATE)"); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to checkpoint WAL: %v\n", err)
	}
	if err := m.conn.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	m.conn = nil
	return nil
}
