package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"
	_ "modernc.org/sqlite"

	apperrors "github.com/cnharrison/zirest/internal/errors"
)

// SQLiteStore keeps history rows in a SQLite database, one msgpack blob per item.
type SQLiteStore struct {
	db   *sql.DB
	mu   sync.Mutex
	path string
}

// NewSQLiteStore opens (creating if needed) the database at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, apperrors.NewHistoryError("cannot create db directory", err)
	}

	db, err := sql.Open("sqlite", path+"?_txlock=immediate")
	if err != nil {
		return nil, apperrors.NewHistoryError("cannot open database", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, apperrors.NewHistoryError(fmt.Sprintf("cannot set %s", pragma), err)
		}
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS history (
			position INTEGER NOT NULL,
			key TEXT NOT NULL PRIMARY KEY,
			value BLOB NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_history_position ON history(position);
	`)
	if err != nil {
		_ = db.Close()
		return nil, apperrors.NewHistoryError("cannot initialize tables", err)
	}

	return &SQLiteStore{db: db, path: path}, nil
}

func (s *SQLiteStore) Path() string { return s.path }

// Load returns the rows in position order. Undecodable rows are skipped.
func (s *SQLiteStore) Load() ([]Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query("SELECT value FROM history ORDER BY position")
	if err != nil {
		return []Item{}, apperrors.NewHistoryError("cannot query history", err)
	}
	defer func() { _ = rows.Close() }()

	items := []Item{}
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return []Item{}, apperrors.NewHistoryError("cannot scan history row", err)
		}
		var item Item
		if err := msgpack.Unmarshal(data, &item); err != nil || item.URL == "" {
			continue
		}
		item.Method = normalizeMethod(item.Method)
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return []Item{}, apperrors.NewHistoryError("cannot read history", err)
	}
	return items, nil
}

// Save replaces every row with items in a single transaction.
func (s *SQLiteStore) Save(items []Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return apperrors.NewHistoryError("cannot begin transaction", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DELETE FROM history"); err != nil {
		return apperrors.NewHistoryError("cannot clear history", err)
	}

	stmt, err := tx.Prepare("INSERT OR REPLACE INTO history (position, key, value) VALUES (?, ?, ?)")
	if err != nil {
		return apperrors.NewHistoryError("cannot prepare insert", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, item := range items {
		data, err := msgpack.Marshal(item)
		if err != nil {
			return apperrors.NewHistoryError("cannot encode item", err)
		}
		if _, err := stmt.Exec(i, item.Key(), data); err != nil {
			return apperrors.NewHistoryError("cannot save item", err)
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
