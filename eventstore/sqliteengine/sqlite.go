package sqliteengine

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3" // dialect registration
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // driver registration

	"github.com/AntonStoeckl/library-circulation/eventstore"
	"github.com/AntonStoeckl/library-circulation/eventstore/internal/adapters"
	"github.com/AntonStoeckl/library-circulation/eventstore/internal/sqlbuild"
	"github.com/AntonStoeckl/library-circulation/eventstore/internal/sqlengine"
)

const (
	defaultEventTableName = "events"
	dialectSQLite         = "sqlite3"
	driverName            = "sqlite3"
)

// EventStore is the SQLite engine.
type EventStore struct {
	db             *sql.DB
	eventTableName string
	observers      sqlengine.Observers
	engine         sqlengine.Engine
}

// Open opens (or creates) the SQLite database file at path with a busy timeout and WAL journaling.
func Open(path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_foreign_keys=1", path)
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable WAL: %w", err)
	}

	return db, nil
}

// NewEventStoreFromSQLDB creates a new EventStore using a sql.DB opened with the sqlite3 driver.
func NewEventStoreFromSQLDB(db *sql.DB, options ...Option) (EventStore, error) {
	if db == nil {
		return EventStore{}, eventstore.ErrNilDatabaseConnection
	}

	return newEventStore(db, adapters.NewSQLAdapter(db), options...)
}

// NewEventStoreFromSQLX creates a new EventStore using a sqlx.DB opened with the sqlite3 driver.
func NewEventStoreFromSQLX(db *sqlx.DB, options ...Option) (EventStore, error) {
	if db == nil {
		return EventStore{}, eventstore.ErrNilDatabaseConnection
	}

	return newEventStore(db.DB, adapters.NewSQLXAdapter(db), options...)
}

func newEventStore(db *sql.DB, adapter adapters.DBAdapter, options ...Option) (EventStore, error) {
	es := EventStore{
		db:             db,
		eventTableName: defaultEventTableName,
	}

	for _, option := range options {
		if err := option(&es); err != nil {
			return EventStore{}, err
		}
	}

	es.engine = sqlengine.New(
		adapter,
		sqlbuild.New(Dialect(), es.eventTableName),
		parseOccurredAt,
		es.observers,
	)

	return es, nil
}

// Query retrieves the events matching the filter in sequence order
// as well as the MaxSequenceNumberUint of this "dynamic event stream" at the time of the query.
func (es EventStore) Query(ctx context.Context, filter eventstore.Filter) (
	eventstore.StorableEvents,
	eventstore.MaxSequenceNumberUint,
	error,
) {

	return es.engine.Query(ctx, filter)
}

// Append appends one or multiple events atomically, but only if no event matching the filter
// was appended after expectedMaxSequenceNumber. Otherwise, it returns eventstore.ErrConcurrencyConflict.
func (es EventStore) Append(
	ctx context.Context,
	filter eventstore.Filter,
	expectedMaxSequenceNumber eventstore.MaxSequenceNumberUint,
	event eventstore.StorableEvent,
	additionalEvents ...eventstore.StorableEvent,
) error {

	return es.engine.Append(ctx, filter, expectedMaxSequenceNumber, event, additionalEvents...)
}

// Dialect describes how SQLite statements are rendered.
func Dialect() sqlbuild.Dialect {
	return sqlbuild.Dialect{
		Name:          dialectSQLite,
		Predicate:     jsonExtractPredicate,
		OccurredAt:    func(t time.Time) any { return t.UTC().Format(time.RFC3339Nano) },
		CastText:      "?",
		CastTimestamp: "?",
		CastJSON:      "?",
	}
}

// jsonExtractPredicate renders json_extract(payload, '$.key') = 'val'.
func jsonExtractPredicate(predicate eventstore.FilterPredicate) exp.Expression {
	return goqu.L("json_extract(?, ?) = ?", goqu.C(sqlbuild.ColPayload), "$."+predicate.Key(), predicate.Val())
}

func parseOccurredAt(raw any) (time.Time, error) {
	switch v := raw.(type) {
	case string:
		return time.Parse(time.RFC3339Nano, v)
	case []byte:
		return time.Parse(time.RFC3339Nano, string(v))
	case time.Time:
		return v, nil
	default:
		return time.Time{}, fmt.Errorf("unexpected occurred_at type %T", raw)
	}
}
