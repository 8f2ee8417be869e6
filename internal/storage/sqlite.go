package storage

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/nikbrunner/bmpage/internal/model"
)

const currentSchemaVersion = 2

// SQLiteStorage implements Storage using a SQLite database.
type SQLiteStorage struct {
	db   *sql.DB
	path string
}

// NewSQLiteStorage creates a new SQLiteStorage with the given database path.
func NewSQLiteStorage(path string) (*SQLiteStorage, error) {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Pragmas are per connection; keep a single one.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, err
		}
	}

	s := &SQLiteStorage{db: db, path: path}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// Path returns the database file path.
func (s *SQLiteStorage) Path() string {
	return s.path
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// SchemaVersion reports the migrated schema version.
func (s *SQLiteStorage) SchemaVersion() (int, error) {
	var version int
	err := s.db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&version)
	return version, err
}

// migrate runs database migrations.
func (s *SQLiteStorage) migrate() error {
	version, err := s.SchemaVersion()
	if err != nil {
		// Table doesn't exist or is empty, start fresh
		version = 0
	}

	if version < 1 {
		if err := s.migrateV1(); err != nil {
			return err
		}
	}

	if version < currentSchemaVersion {
		if err := s.migrateV2(); err != nil {
			return err
		}
	}

	return nil
}

// migrateV1 creates the entries table.
func (s *SQLiteStorage) migrateV1() error {
	schema := `
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS entries (
			id TEXT PRIMARY KEY NOT NULL,
			title TEXT NOT NULL,
			url TEXT NOT NULL DEFAULT '',
			parent_id TEXT,
			type TEXT NOT NULL CHECK (type IN ('bookmark', 'folder')),
			created_at TEXT NOT NULL,
			FOREIGN KEY (parent_id) REFERENCES entries(id) ON DELETE CASCADE DEFERRABLE INITIALLY DEFERRED
		);

		CREATE INDEX IF NOT EXISTS idx_entries_parent_id ON entries(parent_id);
		CREATE INDEX IF NOT EXISTS idx_entries_url ON entries(url);

		INSERT OR REPLACE INTO schema_version (version) VALUES (1);
	`
	_, err := s.db.Exec(schema)
	return err
}

// migrateV2 adds the explicit sibling position column.
func (s *SQLiteStorage) migrateV2() error {
	migration := `
		ALTER TABLE entries ADD COLUMN position INTEGER NOT NULL DEFAULT 0;
		CREATE INDEX IF NOT EXISTS idx_entries_parent_position ON entries(parent_id, position);
		UPDATE schema_version SET version = 2;
	`
	_, err := s.db.Exec(migration)
	return err
}

// Load reads the collection from the SQLite database.
func (s *SQLiteStorage) Load() (*model.Collection, error) {
	coll := model.NewCollection()

	rows, err := s.db.Query(`
		SELECT id, title, url, parent_id, type, position, created_at
		FROM entries
		ORDER BY rowid
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var e model.Entry
		var parentID sql.NullString
		var entryType string
		var createdAtStr string

		if err := rows.Scan(&e.ID, &e.Title, &e.URL, &parentID, &entryType, &e.Position, &createdAtStr); err != nil {
			return nil, err
		}

		if parentID.Valid {
			e.Parent = &parentID.String
		}
		e.Type = model.EntryType(entryType)
		e.CreatedAt, _ = time.Parse(time.RFC3339, createdAtStr)

		coll.Entries = append(coll.Entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return coll, nil
}

// Save writes the collection to the SQLite database.
// Uses a transaction for atomicity - all or nothing.
func (s *SQLiteStorage) Save(coll *model.Collection) error {
	// Entries may reference parents stored later in the slice;
	// the parent key is checked at commit.
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM entries"); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO entries (id, title, url, parent_id, type, position, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, e := range coll.Entries {
		entryType := e.Type
		if entryType == "" {
			entryType = model.TypeBookmark
		}
		if _, err := stmt.Exec(
			e.ID, e.Title, e.URL, e.Parent,
			string(entryType), e.Position, e.CreatedAt.Format(time.RFC3339),
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}
