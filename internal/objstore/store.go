// Package objstore persists recording objects in a single SQLite
// container file, keyed by hierarchical path-like keys.
//
// The layout mirrors a hierarchical scientific container file: every
// saved object sits under a slash-separated path derived from where it
// was read from, and reading the store back returns the objects with
// their paths. Cross-process access is coordinated with a sidecar
// flock lock file.
package objstore

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	_ "github.com/mattn/go-sqlite3"

	"github.com/meredith/spikekit/internal/neuro"
	"github.com/meredith/spikekit/internal/recio"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS objects (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	path TEXT NOT NULL,
	type TEXT NOT NULL,
	name TEXT,
	payload TEXT NOT NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_objects_path ON objects(path);
`

// Store is a SQLite-backed container file for recording objects.
// Store implements recio.Writer.
type Store struct {
	db     *sql.DB
	dbPath string
	lock   *flock.Flock
}

var _ recio.Writer = (*Store)(nil)

// Open opens or creates a container file. The parent directory is
// created if missing and an exclusive flock is taken on a sidecar lock
// file so concurrent processes cannot interleave writes.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("create store directory: %w", err)
		}
	}

	var lock *flock.Flock
	if path != ":memory:" {
		lock = flock.New(path + ".lock")
		if err := lock.Lock(); err != nil {
			return nil, fmt.Errorf("lock store %s: %w", path, err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		unlock(lock)
		return nil, fmt.Errorf("open store: %w", err)
	}

	// busy_timeout first so the remaining pragmas wait on locks.
	pragmas := []string{
		"PRAGMA busy_timeout=5000",
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
	}
	for _, pragma := range pragmas {
		if err := execWithRetry(db, pragma, 5, 10*time.Millisecond); err != nil {
			db.Close()
			unlock(lock)
			return nil, fmt.Errorf("set %s: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		unlock(lock)
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Store{db: db, dbPath: path, lock: lock}, nil
}

// execWithRetry executes a SQL statement with exponential backoff on
// lock errors.
func execWithRetry(db *sql.DB, stmt string, maxRetries int, baseDelay time.Duration) error {
	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		_, err := db.Exec(stmt)
		if err == nil {
			return nil
		}
		if !strings.Contains(err.Error(), "database is locked") {
			return err
		}
		lastErr = err
		time.Sleep(baseDelay * time.Duration(1<<attempt))
	}
	return lastErr
}

func unlock(lock *flock.Flock) {
	if lock != nil {
		_ = lock.Unlock()
	}
}

// Save writes one object under the given path-like key and records the
// key on the object.
func (s *Store) Save(obj neuro.DomainObject, path string) error {
	doc, err := recio.EncodeObject(obj)
	if err != nil {
		return err
	}
	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal object: %w", err)
	}

	name := ""
	if v, ok := obj.GetAttr("name"); ok {
		name, _ = v.(string)
	}
	_, err = s.db.Exec(
		"INSERT INTO objects (path, type, name, payload) VALUES (?, ?, ?, ?)",
		path, obj.TypeName(), name, string(payload),
	)
	if err != nil {
		return fmt.Errorf("save object at %s: %w", path, err)
	}

	obj.SetStorePath(path)
	return nil
}

// Entry is one stored object with its path key.
type Entry struct {
	Path   string
	Object neuro.DomainObject
}

// ReadAll returns every stored object in insertion order.
func (s *Store) ReadAll() ([]Entry, error) {
	rows, err := s.db.Query("SELECT path, payload FROM objects ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("read store: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var path, payload string
		if err := rows.Scan(&path, &payload); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		var doc recio.ObjectDoc
		if err := json.Unmarshal([]byte(payload), &doc); err != nil {
			return nil, fmt.Errorf("unmarshal object at %s: %w", path, err)
		}
		obj, err := recio.DecodeObject(&doc)
		if err != nil {
			return nil, fmt.Errorf("decode object at %s: %w", path, err)
		}
		obj.SetStorePath(path)
		entries = append(entries, Entry{Path: path, Object: obj})
	}
	return entries, rows.Err()
}

// Paths returns the distinct path keys in the store, sorted.
func (s *Store) Paths() ([]string, error) {
	rows, err := s.db.Query("SELECT DISTINCT path FROM objects ORDER BY path")
	if err != nil {
		return nil, fmt.Errorf("read store paths: %w", err)
	}
	defer rows.Close()

	var paths []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		paths = append(paths, p)
	}
	return paths, rows.Err()
}

// Close closes the database and releases the lock.
func (s *Store) Close() error {
	var err error
	if s.db != nil {
		err = s.db.Close()
		s.db = nil
	}
	unlock(s.lock)
	return err
}
