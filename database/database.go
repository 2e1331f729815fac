package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// DB caches extracted document text so a search does not re-read every
// file from disk.
type DB struct {
	*sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS documents(
	name TEXT NOT NULL PRIMARY KEY,
	size INTEGER NOT NULL,
	mod_time INTEGER NOT NULL,
	text TEXT NOT NULL,
	extracted_at INTEGER NOT NULL
)`

// Connect opens (creating if needed) the sqlite database at path.
func Connect(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}
	return open(path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
}

// ConnectMemory opens a private in-memory database.
func ConnectMemory() (*DB, error) {
	return open(":memory:")
}

func open(dsn string) (*DB, error) {
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}

	// A single connection keeps :memory: databases shared and serializes
	// writers on file databases.
	sqlDB.SetMaxOpenConns(1)

	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	if _, err := sqlDB.Exec(schema); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("creating tables: %w", err)
	}
	return &DB{DB: sqlDB}, nil
}

// GetText returns the cached text for name if it was extracted from a file
// with the same size and modification time.
func (db *DB) GetText(ctx context.Context, name string, size int64, modTime time.Time) (string, bool, error) {
	query := `SELECT text FROM documents WHERE name=$1 AND size=$2 AND mod_time=$3 LIMIT 1`

	var text string
	err := db.QueryRowContext(ctx, query, name, size, modTime.UnixNano()).Scan(&text)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return text, true, nil
}

// PutText stores or replaces the cached text of a document.
func (db *DB) PutText(ctx context.Context, doc Document) error {
	query := `INSERT INTO documents (name, size, mod_time, text, extracted_at) VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT(name) DO UPDATE SET size=excluded.size, mod_time=excluded.mod_time,
		text=excluded.text, extracted_at=excluded.extracted_at`

	_, err := db.ExecContext(ctx, query, doc.Name, doc.Size, doc.ModTime.UnixNano(), doc.Text, time.Now().UnixNano())
	if err != nil {
		return fmt.Errorf("caching text of %s: %w", doc.Name, err)
	}
	return nil
}

// Delete removes the cached text of name.
func (db *DB) Delete(ctx context.Context, name string) error {
	_, err := db.ExecContext(ctx, `DELETE FROM documents WHERE name=$1`, name)
	return err
}

// Prune removes cached entries whose names are not in keep.
func (db *DB) Prune(ctx context.Context, keep []string) (int, error) {
	cached, err := db.Names(ctx)
	if err != nil {
		return 0, err
	}

	wanted := make(map[string]struct{}, len(keep))
	for _, name := range keep {
		wanted[name] = struct{}{}
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	removed := 0
	for _, name := range cached {
		if _, ok := wanted[name]; ok {
			continue
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM documents WHERE name=$1`, name); err != nil {
			return 0, err
		}
		removed++
	}
	return removed, tx.Commit()
}

// Names returns the names of all cached documents ordered by name.
func (db *DB) Names(ctx context.Context) ([]string, error) {
	rows, err := db.QueryContext(ctx, `SELECT name FROM documents ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}

	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return names, nil
}
