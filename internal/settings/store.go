// Package settings persists the handful of user-editable gateway
// switches (system prompt inclusion, history inclusion, debug logging)
// in a small SQLite key/value table, following the sqlite-backed store
// pattern used elsewhere in the ecosystem for local, single-writer state.
package settings

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS settings (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`

// Keys for the settings recognised by the gateway. Unknown keys are
// stored and returned verbatim but have no built-in default.
const (
	KeyIncludeSystemPrompt = "includeSystemPrompt"
	KeySystemPrompt        = "systemPrompt"
	KeyIncludeHistory      = "includeHistory"
	KeyDebugLogging        = "debugLogging"
	KeyDebugFullRequestLog = "debugFullRequestLog"
)

func defaults() map[string]string {
	return map[string]string{
		KeyIncludeSystemPrompt: "false",
		KeySystemPrompt:        "",
		KeyIncludeHistory:      "true",
		KeyDebugLogging:        "false",
		KeyDebugFullRequestLog: "false",
	}
}

// Store is a small SQLite-backed key/value table for gateway settings.
type Store struct {
	db *sql.DB
}

// Open creates (if needed) and opens the settings database at path,
// seeding it with default values for keys that don't already exist.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create settings directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("open settings database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create settings schema: %w", err)
	}

	store := &Store{db: db}
	if err := store.seedDefaults(); err != nil {
		db.Close()
		return nil, err
	}

	return store, nil
}

func (s *Store) seedDefaults() error {
	for key, value := range defaults() {
		_, err := s.db.Exec(
			`INSERT OR IGNORE INTO settings (key, value) VALUES (?, ?)`,
			key, value)
		if err != nil {
			return fmt.Errorf("seed default %q: %w", key, err)
		}
	}
	return nil
}

// Get returns the stored value for key, or ok=false if unset.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read setting %q: %w", key, err)
	}
	return value, true, nil
}

// GetBool reads key as a boolean, returning def if unset or unparseable.
func (s *Store) GetBool(ctx context.Context, key string, def bool) bool {
	value, ok, err := s.Get(ctx, key)
	if err != nil || !ok {
		return def
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return def
	}
	return parsed
}

// Set upserts a key/value pair.
func (s *Store) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value)
	if err != nil {
		return fmt.Errorf("write setting %q: %w", key, err)
	}
	return nil
}

// All returns every stored key/value pair.
func (s *Store) All(ctx context.Context) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key, value FROM settings`)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("scan setting: %w", err)
		}
		out[k] = v
	}
	return out, rows.Err()
}

// Close closes the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
