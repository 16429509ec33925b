package history

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	apperrors "github.com/cnharrison/zirest/internal/errors"
)

// Backends understood by OpenStore.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Store persists the ordered history list.
type Store interface {
	Load() ([]Item, error)
	Save(items []Item) error
	Path() string
	Close() error
}

// DefaultDataDir returns $XDG_DATA_HOME, or ~/.local/share when unset.
func DefaultDataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".local", "share")
}

// DefaultPath is where the given backend keeps its data.
func DefaultPath(backend string) string {
	name := "request_history.json"
	if backend == BackendSQLite {
		name = "request_history.db"
	}
	return filepath.Join(DefaultDataDir(), "zirest", name)
}

// OpenStore opens the backend at path, or at DefaultPath when path is empty.
func OpenStore(backend, path string) (Store, error) {
	if backend == "" {
		backend = BackendJSON
	}
	if path == "" {
		path = DefaultPath(backend)
	}

	switch backend {
	case BackendJSON:
		return NewFileStore(path), nil
	case BackendSQLite:
		return NewSQLiteStore(path)
	default:
		return nil, apperrors.NewConfigError(fmt.Sprintf("history backend %q", backend), apperrors.ErrUnknownBackend)
	}
}

// FileStore keeps history as an indented JSON array in a single file.
type FileStore struct {
	path string
	now  func() time.Time
}

// NewFileStore creates a store for path. The file is created on first Save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path, now: time.Now}
}

func (s *FileStore) Path() string { return s.path }

func (s *FileStore) Close() error { return nil }

// Load reads the file. A missing file is an empty history. Entries that are
// not objects or have no URL are skipped; a missing method means GET and a
// missing timestamp means now.
func (s *FileStore) Load() ([]Item, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return []Item{}, nil
	}
	if err != nil {
		return []Item{}, apperrors.NewHistoryError("cannot read "+s.path, err)
	}
	return decodeItems(data, s.now())
}

func decodeItems(data []byte, now time.Time) ([]Item, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return []Item{}, apperrors.NewHistoryError("cannot decode history", apperrors.ErrHistoryCorrupt)
	}

	items := make([]Item, 0, len(raw))
	for _, entry := range raw {
		var fields map[string]any
		if err := json.Unmarshal(entry, &fields); err != nil || fields == nil {
			continue
		}
		item := Item{
			Method: normalizeMethod(stringField(fields, "method", "GET")),
			URL:    stringField(fields, "url", ""),
			At:     stringField(fields, "at", FormatTime(now)),
		}
		if item.URL == "" {
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

func stringField(fields map[string]any, name, fallback string) string {
	v, ok := fields[name]
	if !ok || v == nil {
		return fallback
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Save writes items as a two-space indented array, replacing the file atomically.
func (s *FileStore) Save(items []Item) error {
	if items == nil {
		items = []Item{}
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return apperrors.NewHistoryError("cannot create "+dir, err)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(items); err != nil {
		return apperrors.NewHistoryError("cannot encode history", err)
	}

	tmp, err := os.CreateTemp(dir, ".request_history-*.json")
	if err != nil {
		return apperrors.NewHistoryError("cannot write history", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(bytes.TrimRight(buf.Bytes(), "\n")); err != nil {
		_ = tmp.Close()
		return apperrors.NewHistoryError("cannot write history", err)
	}
	if err := tmp.Close(); err != nil {
		return apperrors.NewHistoryError("cannot write history", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return apperrors.NewHistoryError("cannot replace "+s.path, err)
	}
	return nil
}
