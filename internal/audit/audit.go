// Package audit is the append-only operation log. Events go into a
// SQLite database; writing is fire-and-forget and never raises a failure
// back into the core.
package audit

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS events (
	id      INTEGER PRIMARY KEY AUTOINCREMENT,
	at      DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	level   TEXT NOT NULL,
	message TEXT NOT NULL
);
`

// Event is one recorded audit entry.
type Event struct {
	At      time.Time
	Level   string
	Message string
}

// DB is a SQLite-backed audit sink.
type DB struct {
	conn   *sql.DB
	logger *slog.Logger
}

// Open opens (or creates) the audit database and applies the schema.
func Open(dsn string, logger *slog.Logger) (*DB, error) {
	conn, err := sql.Open("sqlite3", dsn+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("audit: open db: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("audit: ping: %w", err)
	}
	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("audit: apply schema: %w", err)
	}
	return &DB{conn: conn, logger: logger}, nil
}

// Log appends one event. Failures are logged and swallowed: the audit
// trail must never break a core operation.
func (d *DB) Log(level, message string) {
	if _, err := d.conn.Exec(
		`INSERT INTO events (at, level, message) VALUES (?, ?, ?)`,
		time.Now(), level, message,
	); err != nil {
		d.logger.Debug("audit write failed", slog.String("error", err.Error()))
	}
}

// Recent returns the newest n events, newest first.
func (d *DB) Recent(n int) ([]Event, error) {
	if n <= 0 {
		n = 20
	}
	rows, err := d.conn.Query(
		`SELECT at, level, message FROM events ORDER BY id DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("audit: query recent: %w", err)
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.At, &e.Level, &e.Message); err != nil {
			return nil, fmt.Errorf("audit: scan: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Close closes the underlying database connection.
func (d *DB) Close() error {
	return d.conn.Close()
}
