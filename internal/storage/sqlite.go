package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	// Import SQLite driver
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/hammamikhairi/recipebox/internal/domain"
	"github.com/hammamikhairi/recipebox/internal/logger"
)

// Compile-time interface check.
var _ domain.SnapshotStore = (*SQLiteStore)(nil)

// snapshotKey is the row that holds the recipe collection.
const snapshotKey = "recipes"

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS snapshots (
	key        TEXT PRIMARY KEY,
	data       BLOB NOT NULL,
	updated_at TEXT NOT NULL
)`

// SQLiteStore keeps the snapshot as one row of a key/value table. Each
// Save is a single UPSERT, so a reader sees either the old or the new blob.
type SQLiteStore struct {
	db   *sql.DB
	path string
	log  *logger.Logger
}

// NewSQLiteStore opens (creating if needed) the database at path.
// ":memory:" gives a private in-memory database.
func NewSQLiteStore(ctx context.Context, path string, log *logger.Logger) (*SQLiteStore, error) {
	var connStr string
	switch {
	case path == ":memory:":
		connStr = "file::memory:?_pragma=busy_timeout(5000)"
	case strings.HasPrefix(path, "file:"):
		connStr = path
	default:
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
		connStr = "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	}

	db, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One writer is all a single-user tool needs; it also keeps an
	// in-memory database on a single connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	log.Debug("opened sqlite snapshot store at %s", path)
	return &SQLiteStore{db: db, path: path, log: log}, nil
}

// Load returns the stored snapshot or domain.ErrNoSnapshot.
func (s *SQLiteStore) Load(ctx context.Context) ([]byte, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, `SELECT data FROM snapshots WHERE key = ?`, snapshotKey).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("query snapshot: %w", err)
	}
	return data, nil
}

// Save overwrites the stored snapshot.
func (s *SQLiteStore) Save(ctx context.Context, data []byte) error {
	if data == nil {
		data = []byte{}
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO snapshots (key, data, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		snapshotKey, data, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("upsert snapshot: %w", err)
	}
	s.log.Debug("saved snapshot to sqlite (%d bytes)", len(data))
	return nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
