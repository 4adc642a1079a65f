package postgresengine

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/library-circulation/eventstore"
	"github.com/AntonStoeckl/library-circulation/eventstore/internal/adapters"
	"github.com/AntonStoeckl/library-circulation/eventstore/internal/sqlbuild"
	"github.com/AntonStoeckl/library-circulation/eventstore/internal/sqlengine"
)

const (
	defaultEventTableName = "events"
	dialectPostgres       = "postgres"
)

// EventStore is the PostgreSQL engine. Create it with one of the NewEventStoreFrom... constructors.
type EventStore struct {
	db             adapters.DBAdapter
	eventTableName string
	observers      sqlengine.Observers
	engine         sqlengine.Engine
}

// NewEventStoreFromPGXPool creates a new EventStore using a pgx Pool with optional configuration.
func NewEventStoreFromPGXPool(db *pgxpool.Pool, options ...Option) (EventStore, error) {
	if db == nil {
		return EventStore{}, eventstore.ErrNilDatabaseConnection
	}

	return newEventStore(adapters.NewPGXAdapter(db), options...)
}

// NewEventStoreFromSQLDB creates a new EventStore using a sql.DB with optional configuration.
func NewEventStoreFromSQLDB(db *sql.DB, options ...Option) (EventStore, error) {
	if db == nil {
		return EventStore{}, eventstore.ErrNilDatabaseConnection
	}

	return newEventStore(adapters.NewSQLAdapter(db), options...)
}

// NewEventStoreFromSQLX creates a new EventStore using a sqlx.DB with optional configuration.
func NewEventStoreFromSQLX(db *sqlx.DB, options ...Option) (EventStore, error) {
	if db == nil {
		return EventStore{}, eventstore.ErrNilDatabaseConnection
	}

	return newEventStore(adapters.NewSQLXAdapter(db), options...)
}

func newEventStore(db adapters.DBAdapter, options ...Option) (EventStore, error) {
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
		db,
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
//
// The filter should be the same one used for the Query before making the business decision.
func (es EventStore) Append(
	ctx context.Context,
	filter eventstore.Filter,
	expectedMaxSequenceNumber eventstore.MaxSequenceNumberUint,
	event eventstore.StorableEvent,
	additionalEvents ...eventstore.StorableEvent,
) error {

	return es.engine.Append(ctx, filter, expectedMaxSequenceNumber, event, additionalEvents...)
}

// Dialect describes how PostgreSQL statements are rendered.
func Dialect() sqlbuild.Dialect {
	return sqlbuild.Dialect{
		Name:          dialectPostgres,
		Predicate:     containsPredicate,
		OccurredAt:    func(t time.Time) any { return t.UTC() },
		CastText:      "?::text",
		CastTimestamp: "?::timestamp with time zone",
		CastJSON:      "?::jsonb",
		AppendLock:    appendLock,
	}
}

// appendLock takes a table lock that conflicts with itself but not with readers.
// It is held until the append transaction ends.
func appendLock(table string) string {
	return fmt.Sprintf("LOCK TABLE %s IN SHARE ROW EXCLUSIVE MODE", table)
}

// containsPredicate renders payload @> '{"key": "val"}'.
func containsPredicate(predicate eventstore.FilterPredicate) exp.Expression {
	document, _ := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalToString(
		map[string]string{predicate.Key(): predicate.Val()},
	)

	return goqu.L("? @> ?::jsonb", goqu.C(sqlbuild.ColPayload), document)
}

func parseOccurredAt(raw any) (time.Time, error) {
	switch v := raw.(type) {
	case time.Time:
		return v, nil
	default:
		return time.Time{}, fmt.Errorf("unexpected occurred_at type %T", raw)
	}
}
