package store

import (
	"context"
	"database/sql"
	"strings"

	"github.com/pkg/errors"

	_ "github.com/jackc/pgx/v5/stdlib" // driver: pgx
	_ "modernc.org/sqlite"             // driver: sqlite
)

type Driver string

const (
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
)

// Open opens a DB and ensures the schema exists.
func Open(ctx context.Context, driver Driver, dsn string) (*sql.DB, error) {
	var drvName string
	switch driver {
	case DriverSQLite:
		drvName = "sqlite" // modernc driver
		if dsn == "" {
			dsn = "file:eduquiz.db?cache=shared&mode=rwc&_pragma=busy_timeout(5000)"
		}
	case DriverPostgres:
		drvName = "pgx" // pgx stdlib driver
		if dsn == "" {
			dsn = "postgres://localhost:5432/eduquiz?sslmode=disable"
		}
	default:
		return nil, errors.Errorf("unsupported driver: %q", driver)
	}

	db, err := sql.Open(drvName, dsn)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", driver)
	}
	if driver == DriverSQLite && strings.Contains(dsn, ":memory:") {
		// every pooled connection would get its own empty database
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, errors.Wrapf(err, "ping %s", driver)
	}

	if err := ensureSchema(ctx, db, driver); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "ensure schema")
	}
	return db, nil
}

func ensureSchema(ctx context.Context, db *sql.DB, driver Driver) error {
	var schema string
	switch driver {
	case DriverSQLite:
		schema = schemaSQLite
	case DriverPostgres:
		schema = schemaPostgres
	}
	_, err := db.ExecContext(ctx, schema)
	return err
}

const schemaSQLite = `
PRAGMA foreign_keys=ON;

CREATE TABLE IF NOT EXISTS lessons (
    id TEXT PRIMARY KEY,
    position INTEGER NOT NULL,
    title TEXT NOT NULL,
    content TEXT NOT NULL,
    quiz_title TEXT -- NULL when the lesson has no quiz
);

CREATE TABLE IF NOT EXISTS questions (
    lesson_id TEXT NOT NULL REFERENCES lessons(id) ON DELETE CASCADE,
    id TEXT NOT NULL,
    position INTEGER NOT NULL,
    type TEXT NOT NULL,
    text TEXT NOT NULL,
    PRIMARY KEY (lesson_id, id)
);

CREATE TABLE IF NOT EXISTS options (
    lesson_id TEXT NOT NULL,
    question_id TEXT NOT NULL,
    id TEXT NOT NULL,
    position INTEGER NOT NULL,
    text TEXT NOT NULL,
    correct INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY (lesson_id, question_id, id),
    FOREIGN KEY (lesson_id, question_id) REFERENCES questions(lesson_id, id) ON DELETE CASCADE
);
`

const schemaPostgres = `
CREATE TABLE IF NOT EXISTS lessons (
    id TEXT PRIMARY KEY,
    position INTEGER NOT NULL,
    title TEXT NOT NULL,
    content TEXT NOT NULL,
    quiz_title TEXT
);

CREATE TABLE IF NOT EXISTS questions (
    lesson_id TEXT NOT NULL REFERENCES lessons(id) ON DELETE CASCADE,
    id TEXT NOT NULL,
    position INTEGER NOT NULL,
    type TEXT NOT NULL,
    text TEXT NOT NULL,
    PRIMARY KEY (lesson_id, id)
);

CREATE TABLE IF NOT EXISTS options (
    lesson_id TEXT NOT NULL,
    question_id TEXT NOT NULL,
    id TEXT NOT NULL,
    position INTEGER NOT NULL,
    text TEXT NOT NULL,
    correct BOOLEAN NOT NULL DEFAULT FALSE,
    PRIMARY KEY (lesson_id, question_id, id),
    FOREIGN KEY (lesson_id, question_id) REFERENCES questions(lesson_id, id) ON DELETE CASCADE
);
`
