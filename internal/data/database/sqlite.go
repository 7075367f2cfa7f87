package database

import (
	"database/sql"
	"fmt"

	// Register the pure-Go SQLite driver under the "sqlite" name.
	_ "modernc.org/sqlite"
)

// DSN builds a connection string carrying the pragmas every connection needs:
// WAL journaling, a busy timeout, and foreign key enforcement.
func DSN(path string, busyTimeoutMS int) string {
	return fmt.Sprintf(
		"file:%s?_pragma=busy_timeout(%d)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)",
		path, busyTimeoutMS,
	)
}

// Open opens a SQLite database at path and serializes access through a single
// connection. SQLite allows one writer at a time; funneling every statement
// through one *sql.Conn turns the pool into the store's writer critical
// section instead of surfacing SQLITE_BUSY to callers.
func Open(path string, busyTimeoutMS int) (*sql.DB, error) {
	db, err := sql.Open("sqlite", DSN(path, busyTimeoutMS))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	return db, nil
}
