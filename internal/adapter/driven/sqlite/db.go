// Package sqlite implements the RunStore port on an embedded SQLite database.
// The journal is optional; nothing in the collection pipeline depends on it.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// dsnPragmas are applied to every connection. WAL lets the reader pool work
// while the writer holds a transaction; the busy timeout covers checkpoint
// locks.
const dsnPragmas = "_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)&_pragma=foreign_keys(ON)"

const readerPoolSize = 2

// DB provides dual connections to the journal: a writer capped at a single
// connection to keep "database is locked" errors away, and a small reader
// pool for the listing commands.
type DB struct {
	Writer *sql.DB
	Reader *sql.DB
}

// NewDB opens the journal database at dbPath, creating parent directories as
// needed.
func NewDB(dbPath string) (*DB, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create journal directory %s: %w", dir, err)
		}
	}

	dsn := "file:" + dbPath + "?" + dsnPragmas

	writer, err := open(dsn, 1)
	if err != nil {
		return nil, fmt.Errorf("open journal writer: %w", err)
	}

	reader, err := open(dsn, readerPoolSize)
	if err != nil {
		_ = writer.Close()
		return nil, fmt.Errorf("open journal reader: %w", err)
	}

	return &DB{Writer: writer, Reader: reader}, nil
}

// open opens one connection pool against dsn and verifies it with a ping.
func open(dsn string, maxConns int) (*sql.DB, error) {
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	conn.SetMaxOpenConns(maxConns)

	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return conn, nil
}

// Close closes both connection pools.
func (db *DB) Close() error {
	return errors.Join(db.Reader.Close(), db.Writer.Close())
}
