// Package db opens the SQL backend for the persistent store drivers.
// Queries elsewhere are written with ? placeholders and rebound for
// Postgres through Rebind.
package db

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite3"
)

type DB struct {
	*sql.DB
	Driver string
}

// Open connects, pings, and makes sure the schema exists.
func Open(driver, dsn string) (*DB, error) {
	if driver != DriverPostgres && driver != DriverSQLite {
		return nil, fmt.Errorf("unsupported driver %q", driver)
	}

	conn, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, err
	}

	d := &DB{DB: conn, Driver: driver}
	if err := d.migrate(); err != nil {
		conn.Close()
		return nil, err
	}
	return d, nil
}

// Rebind rewrites ? placeholders to $1..$n for Postgres.
func (d *DB) Rebind(query string) string {
	if d.Driver != DriverPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (d *DB) migrate() error {
	idCol := "INTEGER PRIMARY KEY AUTOINCREMENT"
	tsCol := "TIMESTAMP"
	if d.Driver == DriverPostgres {
		idCol = "BIGSERIAL PRIMARY KEY"
		tsCol = "TIMESTAMPTZ"
	}

	stmts := []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS tasks (
			id %s,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			category TEXT NOT NULL,
			priority TEXT NOT NULL,
			status TEXT NOT NULL,
			deadline %s,
			ai_score INTEGER NOT NULL DEFAULT 0,
			ai_suggestions TEXT NOT NULL DEFAULT '[]',
			tags TEXT NOT NULL DEFAULT '[]',
			created_at %s NOT NULL,
			updated_at %s NOT NULL
		)`, idCol, tsCol, tsCol, tsCol),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS context_entries (
			id %s,
			content TEXT NOT NULL,
			source TEXT NOT NULL,
			entry_type TEXT NOT NULL,
			created_at %s NOT NULL,
			processed_insights TEXT NOT NULL DEFAULT '[]',
			extracted_tasks TEXT NOT NULL DEFAULT '[]'
		)`, idCol, tsCol),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS analytics_events (
			event_id TEXT PRIMARY KEY,
			event_name TEXT NOT NULL,
			event_time %s NOT NULL,
			session_id TEXT,
			platform TEXT,
			app_version TEXT,
			device_locale TEXT,
			source_event_key TEXT UNIQUE,
			properties TEXT NOT NULL DEFAULT '{}'
		)`, tsCol),
	}

	for _, stmt := range stmts {
		if _, err := d.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
