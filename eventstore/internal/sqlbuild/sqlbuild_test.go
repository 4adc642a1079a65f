package sqlbuild_test

import (
	"testing"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation/eventstore"
	"github.com/AntonStoeckl/library-circulation/eventstore/internal/sqlbuild"
)

func testDialect() sqlbuild.Dialect {
	return sqlbuild.Dialect{
		Name: "postgres",
		Predicate: func(p eventstore.FilterPredicate) exp.Expression {
			return goqu.L("payload_has(?, ?)", p.Key(), p.Val())
		},
		OccurredAt:    func(t time.Time) any { return t.UTC().Format(time.RFC3339) },
		CastText:      "?::text",
		CastTimestamp: "?::timestamptz",
		CastJSON:      "?::jsonb",
	}
}

func Test_SelectQuery_WithoutFilterItems_HasNoWhereClause(t *testing.T) {
	builder := sqlbuild.New(testDialect(), "events")

	query, err := builder.SelectQuery(eventstore.BuildEventFilter().MatchingAnyEvent())

	require.NoError(t, err)
	assert.NotContains(t, query, "WHERE")
	assert.Contains(t, query, `ORDER BY "sequence_number" ASC`)
}

func Test_SelectQuery_RendersEventTypesAndPredicates(t *testing.T) {
	builder := sqlbuild.New(testDialect(), "events")
	filter := eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf("BookIssued", "BookReturned").
		AndAllPredicatesOf(eventstore.P("BookID", "b-1"), eventstore.P("UserID", "u-1")).
		Finalize()

	query, err := builder.SelectQuery(filter)

	require.NoError(t, err)
	assert.Contains(t, query, `"event_type" = 'BookIssued'`)
	assert.Contains(t, query, `"event_type" = 'BookReturned'`)
	assert.Contains(t, query, `payload_has('BookID', 'b-1') AND payload_has('UserID', 'u-1')`)
}

func Test_AppendQuery_SingleEvent_UsesConditionalInsert(t *testing.T) {
	builder := sqlbuild.New(testDialect(), "events")
	event, err := eventstore.BuildStorableEventWithEmptyMetadata("BookIssued", time.Now(), []byte(`{"BookID":"b-1"}`))
	require.NoError(t, err)

	query, err := builder.AppendQuery(eventstore.StorableEvents{event}, eventstore.BuildEventFilter().MatchingAnyEvent(), 7)

	require.NoError(t, err)
	assert.Contains(t, query, `WITH context AS (SELECT MAX("sequence_number") AS "max_seq" FROM "events")`)
	assert.Contains(t, query, `INSERT INTO "events"`)
	assert.Contains(t, query, `COALESCE("max_seq", 0) = 7`)
}

func Test_AppendQuery_MultipleEvents_UsesValuesCTE(t *testing.T) {
	builder := sqlbuild.New(testDialect(), "events")
	first, err := eventstore.BuildStorableEventWithEmptyMetadata("BookIssued", time.Now(), []byte(`{"BookID":"b-1"}`))
	require.NoError(t, err)
	second, err := eventstore.BuildStorableEventWithEmptyMetadata("ReservationFulfilled", time.Now(), []byte(`{"BookID":"b-1"}`))
	require.NoError(t, err)

	query, err := builder.AppendQuery(eventstore.StorableEvents{first, second}, eventstore.BuildEventFilter().MatchingAnyEvent(), 0)

	require.NoError(t, err)
	assert.Contains(t, query, "vals AS (")
	assert.Contains(t, query, "UNION ALL")
	assert.Contains(t, query, `'ReservationFulfilled'::text`)
}

func Test_AppendQuery_WithoutEvents_Fails(t *testing.T) {
	builder := sqlbuild.New(testDialect(), "events")

	_, err := builder.AppendQuery(nil, eventstore.BuildEventFilter().MatchingAnyEvent(), 0)

	assert.ErrorIs(t, err, eventstore.ErrBuildingQueryFailed)
}

func Test_AppendLockStatement(t *testing.T) {
	withoutLock := sqlbuild.New(testDialect(), "events")

	dialect := testDialect()
	dialect.AppendLock = func(table string) string { return "LOCK " + table }
	withLock := sqlbuild.New(dialect, "events")

	assert.Empty(t, withoutLock.AppendLockStatement())
	assert.Equal(t, "LOCK events", withLock.AppendLockStatement())
}
