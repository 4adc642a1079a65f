package postgresengine_test

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation/eventstore"
	"github.com/AntonStoeckl/library-circulation/eventstore/postgresengine"
)

const envTestDSN = "LIBRARY_TEST_POSTGRES_DSN"

type factory func(t *testing.T, dsn string, options ...postgresengine.Option) postgresengine.EventStore

func adapterFactories() map[string]factory {
	return map[string]factory{
		"pgx.pool": func(t *testing.T, dsn string, options ...postgresengine.Option) postgresengine.EventStore {
			pool, err := pgxpool.New(context.Background(), dsn)
			require.NoError(t, err)
			t.Cleanup(pool.Close)

			es, err := postgresengine.NewEventStoreFromPGXPool(pool, options...)
			require.NoError(t, err)

			return es
		},
		"sql.DB": func(t *testing.T, dsn string, options ...postgresengine.Option) postgresengine.EventStore {
			db, err := sql.Open("postgres", dsn)
			require.NoError(t, err)
			t.Cleanup(func() { _ = db.Close() })

			es, err := postgresengine.NewEventStoreFromSQLDB(db, options...)
			require.NoError(t, err)

			return es
		},
		"sqlx.DB": func(t *testing.T, dsn string, options ...postgresengine.Option) postgresengine.EventStore {
			db, err := sqlx.Open("postgres", dsn)
			require.NoError(t, err)
			t.Cleanup(func() { _ = db.Close() })

			es, err := postgresengine.NewEventStoreFromSQLX(db, options...)
			require.NoError(t, err)

			return es
		},
	}
}

func Test_Postgres_Append_Query_And_Conflict(t *testing.T) {
	dsn := os.Getenv(envTestDSN)
	if dsn == "" {
		t.Skipf("%s not set", envTestDSN)
	}

	for name, newEventStore := range adapterFactories() {
		t.Run(name, func(t *testing.T) {
			// arrange
			ctx := context.Background()
			es := newEventStore(t, dsn, postgresengine.WithTableName(givenUniqueTableName()))
			require.NoError(t, es.CreateSchema(ctx))

			filter := bookFilter("b-1")

			// act
			require.NoError(t, es.Append(ctx, filter, 0, givenStorableEvent(t, "BookIssued", "b-1")))
			require.NoError(t, es.Append(ctx, bookFilter("b-2"), 0, givenStorableEvent(t, "BookIssued", "b-2")))
			conflictErr := es.Append(ctx, filter, 0, givenStorableEvent(t, "BookIssued", "b-1"))
			multiErr := es.Append(
				ctx,
				filter,
				1,
				givenStorableEvent(t, "BookIssued", "b-1"),
				givenStorableEvent(t, "ReservationFulfilled", "b-1"),
			)
			events, maxSeq, queryErr := es.Query(ctx, filter)

			// assert
			assert.ErrorIs(t, conflictErr, eventstore.ErrConcurrencyConflict)
			assert.NoError(t, multiErr)
			require.NoError(t, queryErr)
			assert.Len(t, events, 3)
			assert.Equal(t, eventstore.MaxSequenceNumberUint(4), maxSeq)
		})
	}
}

func Test_Postgres_ConcurrentAppends_OnlyOneWins(t *testing.T) {
	dsn := os.Getenv(envTestDSN)
	if dsn == "" {
		t.Skipf("%s not set", envTestDSN)
	}

	const writers = 8

	for name, newEventStore := range adapterFactories() {
		t.Run(name, func(t *testing.T) {
			// arrange
			ctx := context.Background()
			es := newEventStore(t, dsn, postgresengine.WithTableName(givenUniqueTableName()))
			require.NoError(t, es.CreateSchema(ctx))

			filter := bookFilter("b-1")
			results := make(chan error, writers)
			start := make(chan struct{})

			var wg sync.WaitGroup
			for range writers {
				wg.Add(1)
				go func() {
					defer wg.Done()
					<-start
					results <- es.Append(ctx, filter, 0, givenStorableEvent(t, "BookIssued", "b-1"))
				}()
			}

			// act
			close(start)
			wg.Wait()
			close(results)

			// assert
			succeeded := 0
			for err := range results {
				if err == nil {
					succeeded++
					continue
				}
				assert.ErrorIs(t, err, eventstore.ErrConcurrencyConflict)
			}

			events, maxSeq, queryErr := es.Query(ctx, filter)
			require.NoError(t, queryErr)
			assert.Equal(t, 1, succeeded)
			assert.Len(t, events, 1)
			assert.Equal(t, eventstore.MaxSequenceNumberUint(1), maxSeq)
		})
	}
}

func Test_Dialect_LocksTheTableBeforeAppending(t *testing.T) {
	lock := postgresengine.Dialect().AppendLock("events")

	assert.Equal(t, "LOCK TABLE events IN SHARE ROW EXCLUSIVE MODE", lock)
}

func Test_FactoryFunctions_ShouldFail_WithNilDatabaseConnection(t *testing.T) {
	_, err := postgresengine.NewEventStoreFromPGXPool(nil)
	assert.ErrorIs(t, err, eventstore.ErrNilDatabaseConnection)

	_, err = postgresengine.NewEventStoreFromSQLDB(nil)
	assert.ErrorIs(t, err, eventstore.ErrNilDatabaseConnection)

	_, err = postgresengine.NewEventStoreFromSQLX(nil)
	assert.ErrorIs(t, err, eventstore.ErrNilDatabaseConnection)
}

func Test_FactoryFunctions_ShouldFail_WithEmptyTableName(t *testing.T) {
	db, err := sql.Open("postgres", "postgres://localhost/unused?sslmode=disable")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = postgresengine.NewEventStoreFromSQLDB(db, postgresengine.WithTableName(""))

	assert.ErrorIs(t, err, eventstore.ErrEmptyEventsTableName)
}

func givenUniqueTableName() string {
	return "events_" + uuid.NewString()[:8]
}

func bookFilter(bookID string) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf("BookIssued", "ReservationFulfilled").
		AndAnyPredicateOf(eventstore.P("BookID", bookID)).
		Finalize()
}

func givenStorableEvent(t *testing.T, eventType string, bookID string) eventstore.StorableEvent {
	t.Helper()

	event, err := eventstore.BuildStorableEventWithEmptyMetadata(
		eventType,
		time.Now().UTC(),
		[]byte(fmt.Sprintf(`{"BookID":%q}`, bookID)),
	)
	if err != nil {
		t.Errorf("building storable event: %v", err)
	}

	return event
}
