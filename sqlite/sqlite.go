// Package sqlite provides a persisted casebot.VectorStore backed by SQLite
// and the sqlite-vec similarity module.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/viant/sqlite-vec/engine"
	"github.com/viant/sqlite-vec/vec"
)

// DB represents a SQLite database connection.
type DB struct {
	db   *sql.DB
	path string
}

// IndexFile is the database file name inside an index directory.
const IndexFile = "index.db"

// Table names. The vec module reads documents from the shadow table named
// after its virtual table.
const (
	vecTable    = "cases"
	shadowTable = "_vec_" + vecTable
)

// NewDB creates a new DB instance with the given path.
func NewDB(path string) *DB {
	return &DB{path: path}
}

// OpenIndex opens the index database inside dir, creating dir if needed.
func OpenIndex(dir string) (*DB, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create index directory: %w", err)
	}
	db := NewDB(filepath.Join(dir, IndexFile))
	if err := db.Open(); err != nil {
		return nil, err
	}
	return db, nil
}

// IndexExists reports whether dir holds an index database.
func IndexExists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, IndexFile))
	return err == nil
}

// Path returns the database path.
func (db *DB) Path() string {
	return db.path
}

// Open opens the database connection, registers the vec module and creates
// the schema if needed.
func (db *DB) Open() error {
	conn, err := engine.Open(db.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	conn.SetMaxOpenConns(4)
	conn.SetMaxIdleConns(4)

	// Only connections opened after registration see the module.
	if err := vec.Register(conn); err != nil {
		conn.Close()
		return fmt.Errorf("failed to register vec module: %w", err)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if _, err := conn.Exec("PRAGMA journal_mode = WAL"); err != nil {
		conn.Close()
		return fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	db.db = conn

	if err := db.createSchema(context.Background()); err != nil {
		conn.Close()
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	if db.db != nil {
		return db.db.Close()
	}
	return nil
}

// BeginTx starts a transaction.
func (db *DB) BeginTx(ctx context.Context) (*sql.Tx, error) {
	return db.db.BeginTx(ctx, nil)
}

// QueryRowContext executes a query that returns a single row.
func (db *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return db.db.QueryRowContext(ctx, query, args...)
}

// QueryContext executes a query that returns rows.
func (db *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.db.QueryContext(ctx, query, args...)
}

// ExecContext executes a statement that doesn't return rows.
func (db *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.db.ExecContext(ctx, query, args...)
}

// createSchema creates the tables if they don't exist. The shadow table
// keeps the column layout the vec module expects, plus the insertion
// position used to break score ties.
func (db *DB) createSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS vector_storage (
			shadow_table_name TEXT NOT NULL,
			dataset_id TEXT NOT NULL DEFAULT '',
			"index" BLOB,
			PRIMARY KEY (shadow_table_name, dataset_id)
		)`,
		`CREATE TABLE IF NOT EXISTS ` + shadowTable + ` (
			dataset_id TEXT NOT NULL,
			id TEXT NOT NULL,
			asset_id TEXT NOT NULL,
			content TEXT,
			meta TEXT,
			embedding BLOB,
			embedding_model TEXT,
			scn INTEGER NOT NULL,
			archived INTEGER NOT NULL DEFAULT 0,
			position INTEGER NOT NULL,
			PRIMARY KEY (dataset_id, id)
		)`,
		`CREATE VIRTUAL TABLE IF NOT EXISTS ` + vecTable + ` USING vec(doc_id)`,
		`CREATE INDEX IF NOT EXISTS idx_` + vecTable + `_position ON ` + shadowTable + `(dataset_id, position)`,
		`CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,
	}
	for _, stmt := range stmts {
		if _, err := db.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
