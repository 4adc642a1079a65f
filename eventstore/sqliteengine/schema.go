package sqliteengine

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/AntonStoeckl/library-circulation/eventstore"
)

const schemaVersion = 1

// CreateSchema applies the schema migrations that are still missing.
// The applied version is tracked per events table in the meta table.
func (es EventStore) CreateSchema(ctx context.Context) error {
	if _, err := es.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS meta (key TEXT PRIMARY KEY, value TEXT);`); err != nil {
		return errors.Join(eventstore.ErrCreatingSchemaFailed, err)
	}

	versionKey := "schema_version:" + es.eventTableName

	var current int
	err := es.db.QueryRowContext(ctx, `SELECT value FROM meta WHERE key=?;`, versionKey).Scan(&current)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return errors.Join(eventstore.ErrCreatingSchemaFailed, err)
	}

	if current >= schemaVersion {
		return nil
	}

	tx, err := es.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Join(eventstore.ErrCreatingSchemaFailed, err)
	}
	defer func() { _ = tx.Rollback() }()

	stmts := []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			sequence_number INTEGER PRIMARY KEY AUTOINCREMENT,
			occurred_at TEXT NOT NULL,
			event_type TEXT NOT NULL,
			payload TEXT NOT NULL,
			metadata TEXT NOT NULL DEFAULT '{}'
		);`, es.eventTableName),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %[1]s_event_type_idx ON %[1]s (event_type);`, es.eventTableName),
	}

	for _, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return errors.Join(eventstore.ErrCreatingSchemaFailed, err)
		}
	}

	if _, err := tx.ExecContext(
		ctx,
		`INSERT INTO meta (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value=excluded.value;`,
		versionKey,
		strconv.Itoa(schemaVersion),
	); err != nil {
		return errors.Join(eventstore.ErrCreatingSchemaFailed, err)
	}

	if err := tx.Commit(); err != nil {
		return errors.Join(eventstore.ErrCreatingSchemaFailed, err)
	}

	return nil
}
