package catalog

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/apiscout/apiscout/internal/embed"
)

// FullTextIndex is the contract the store uses to keep a full-text index
// in sync with the record table. It is satisfied by search.Indexer.
// A nil index is valid: search then degrades to substring matching.
type FullTextIndex interface {
	// Index adds or replaces the entry for a record.
	Index(rec APIRecord) error
	// Delete removes the entry for a record id, if present.
	Delete(id int64) error
	// Count returns the number of indexed records.
	Count() (uint64, error)
}

// Store is the SQLite-backed catalog store. All operations are
// synchronous; a mutex serializes access to the connection.
type Store struct {
	db       *sql.DB
	path     string
	embedder *embed.Embedder
	fts      FullTextIndex
	mu       sync.Mutex
}

// Open opens (creating if necessary) the catalog database at path and
// runs schema migrations. Migrations are idempotent and safe to run on
// every startup. dim selects the embedding dimension; non-positive
// values use embed.DefaultDim.
func Open(path string, dim int) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, storageErr("open", fmt.Errorf("create db directory: %w", err))
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, storageErr("open", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, storageErr("open", err)
	}

	s := &Store{
		db:       db,
		path:     path,
		embedder: embed.New(dim),
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		log.Printf("Warning: failed to enable WAL: %v", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, storageErr("open", fmt.Errorf("enable foreign keys: %w", err))
	}

	if err := s.runMigrations(); err != nil {
		db.Close()
		return nil, storageErr("migrate", err)
	}

	return s, nil
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Embedder returns the embedder used for stored record vectors.
func (s *Store) Embedder() *embed.Embedder {
	return s.embedder
}

// AttachIndex wires a full-text index into the store. Every subsequent
// ingest updates the index in the same logical transaction as the
// record write. If the index is empty while the catalog is not, it is
// rebuilt from the record table so a reader never observes a record
// without its index entry.
func (s *Store) AttachIndex(idx FullTextIndex) error {
	s.mu.Lock()
	s.fts = idx
	s.mu.Unlock()

	if idx == nil {
		return nil
	}

	count, err := idx.Count()
	if err != nil {
		return storageErr("attach index", err)
	}
	if count > 0 {
		return nil
	}

	recs, err := s.ListAPIs()
	if err != nil {
		return err
	}
	for _, rec := range recs {
		if err := idx.Index(rec); err != nil {
			return storageErr("reindex", err)
		}
	}
	return nil
}

// TextIndex returns the attached full-text index, or nil.
func (s *Store) TextIndex() FullTextIndex {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fts
}

// Close closes the database connection.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	if err != nil {
		return storageErr("close", err)
	}
	return nil
}

// runMigrations executes schema migrations in order.
func (s *Store) runMigrations() error {
	if err := s.createMigrationsTable(); err != nil {
		return err
	}

	version, err := s.currentMigrationVersion()
	if err != nil {
		return err
	}

	migrations := []migration{
		{version: 1, name: "initial_schema", up: s.migration001InitialSchema},
	}

	for _, m := range migrations {
		if version < m.version {
			log.Printf("Running migration %d: %s", m.version, m.name)
			if err := m.up(); err != nil {
				return fmt.Errorf("migration %d failed: %w", m.version, err)
			}
			if err := s.setMigrationVersion(m.version, m.name); err != nil {
				return err
			}
		}
	}

	return nil
}

// migration represents a single database migration.
type migration struct {
	version int
	name    string
	up      func() error
}

func (s *Store) createMigrationsTable() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at TEXT NOT NULL DEFAULT (datetime('now'))
		)
	`)
	return err
}

func (s *Store) currentMigrationVersion() (int, error) {
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")

	var version int
	if err := row.Scan(&version); err != nil {
		return 0, err
	}
	return version, nil
}

func (s *Store) setMigrationVersion(version int, name string) error {
	_, err := s.db.Exec(
		"INSERT INTO schema_migrations (version, name) VALUES (?, ?)",
		version, name,
	)
	return err
}

// migration001InitialSchema creates the catalog tables.
func (s *Store) migration001InitialSchema() error {
	stmts := []struct {
		what string
		sql  string
	}{
		{"apis table", `
			CREATE TABLE IF NOT EXISTS apis (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				name TEXT NOT NULL,
				host TEXT NOT NULL,
				base_url TEXT NOT NULL DEFAULT '',
				description TEXT NOT NULL DEFAULT '',
				category TEXT NOT NULL DEFAULT '',
				docs_url TEXT NOT NULL DEFAULT '',
				openapi_url TEXT NOT NULL DEFAULT '',
				auth TEXT NOT NULL DEFAULT 'none',
				rate_limit TEXT NOT NULL DEFAULT '',
				status TEXT NOT NULL DEFAULT 'unknown',
				source TEXT NOT NULL DEFAULT '',
				created_at TEXT NOT NULL,
				updated_at TEXT NOT NULL,
				UNIQUE(name, host)
			)
		`},
		{"endpoints table", `
			CREATE TABLE IF NOT EXISTS endpoints (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				api_id INTEGER NOT NULL,
				method TEXT NOT NULL,
				path TEXT NOT NULL,
				description TEXT NOT NULL DEFAULT '',
				UNIQUE(api_id, method, path),
				FOREIGN KEY(api_id) REFERENCES apis(id) ON DELETE CASCADE
			)
		`},
		{"embeddings table", `
			CREATE TABLE IF NOT EXISTS embeddings (
				api_id INTEGER PRIMARY KEY,
				dim INTEGER NOT NULL,
				vector TEXT NOT NULL,
				FOREIGN KEY(api_id) REFERENCES apis(id) ON DELETE CASCADE
			)
		`},
		{"search_log table", `
			CREATE TABLE IF NOT EXISTS search_log (
				id TEXT PRIMARY KEY,
				ts TEXT NOT NULL,
				query TEXT NOT NULL
			)
		`},
		{"search_log ts index", `
			CREATE INDEX IF NOT EXISTS idx_search_log_ts
			ON search_log(ts DESC)
		`},
		{"apis category index", `
			CREATE INDEX IF NOT EXISTS idx_apis_category
			ON apis(category)
		`},
	}

	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt.sql); err != nil {
			return fmt.Errorf("failed to create %s: %w", stmt.what, err)
		}
	}
	return nil
}

// vectorToJSON serializes an embedding vector for storage.
func vectorToJSON(vector []float64) string {
	data, err := json.Marshal(vector)
	if err != nil {
		log.Printf("Warning: failed to marshal vector: %v", err)
		return "[]"
	}
	return string(data)
}

// jsonToVector parses a stored vector back into a float slice.
func jsonToVector(jsonStr string) ([]float64, error) {
	var vector []float64
	if err := json.Unmarshal([]byte(jsonStr), &vector); err != nil {
		return nil, err
	}
	return vector, nil
}
