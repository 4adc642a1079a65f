package sqlengine

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/AntonStoeckl/library-circulation/eventstore"
	"github.com/AntonStoeckl/library-circulation/eventstore/internal/adapters"
	"github.com/AntonStoeckl/library-circulation/eventstore/internal/sqlbuild"
)

const (
	logMsgBuildSelectQueryFailed   = "failed to build select query"
	logMsgDBQueryFailed            = "database query execution failed"
	logMsgCloseRowsFailed          = "failed to close database rows"
	logMsgScanRowFailed            = "failed to scan database row"
	logMsgBuildStorableEventFailed = "failed to build storable event from database row"
	logMsgBuildInsertQueryFailed   = "failed to build insert query"
	logMsgDBExecFailed             = "database execution failed during event append"
	logMsgRowsAffectedFailed       = "failed to get rows affected count"
	logMsgQueryCompleted           = "query completed"
	logMsgEventsAppended           = "events appended"
	logMsgConcurrencyConflict      = "concurrency conflict detected"
	logMsgSQLExecuted              = "executed sql for: "
	logMsgOperation                = "eventstore operation: "
	logAttrError                   = "error"
	logAttrQuery                   = "query"
	logAttrEventType               = "event_type"
	logAttrEventCount              = "event_count"
	logAttrDurationMS              = "duration_ms"
	logAttrExpectedEvents          = "expected_events"
	logAttrRowsAffected            = "rows_affected"
	logAttrExpectedSequence        = "expected_sequence"
	logActionQuery                 = "query"
	logActionAppend                = "append"
)

// OccurredAtParser turns the raw occurred_at column value into a time.Time.
type OccurredAtParser func(raw any) (time.Time, error)

// Observers bundles the optional observability collaborators. Nil members are skipped.
type Observers struct {
	Logger           eventstore.Logger
	ContextualLogger eventstore.ContextualLogger
	Metrics          eventstore.MetricsCollector
	Tracing          eventstore.TracingCollector
}

// Engine runs the conditional-append protocol against one SQL events table.
type Engine struct {
	db            adapters.DBAdapter
	builder       sqlbuild.Builder
	parseOccurred OccurredAtParser
	observers     Observers
}

// New creates an Engine.
func New(
	db adapters.DBAdapter,
	builder sqlbuild.Builder,
	parseOccurred OccurredAtParser,
	observers Observers,
) Engine {

	return Engine{
		db:            db,
		builder:       builder,
		parseOccurred: parseOccurred,
		observers:     observers,
	}
}

type queryResultRow struct {
	eventType         string
	occurredAt        any
	payload           []byte
	metadata          []byte
	maxSequenceNumber eventstore.MaxSequenceNumberUint
}

// Query returns the events matching the filter and the max sequence number of exactly those events.
func (e Engine) Query(ctx context.Context, filter eventstore.Filter) (
	eventstore.StorableEvents,
	eventstore.MaxSequenceNumberUint,
	error,
) {

	ctx, span := e.startSpan(ctx, spanNameQuery, map[string]string{spanAttrOperation: operationQuery})
	start := time.Now()

	var empty eventstore.StorableEvents

	sqlQuery, buildQueryErr := e.builder.SelectQuery(filter)
	if buildQueryErr != nil {
		e.logError(ctx, logMsgBuildSelectQueryFailed, buildQueryErr)
		e.recordFailure(ctx, span, operationQuery, errorTypeBuildQuery, time.Since(start))

		return empty, 0, buildQueryErr
	}

	rows, queryErr := e.db.Query(ctx, sqlQuery)
	e.logSQL(ctx, sqlQuery, logActionQuery, time.Since(start))
	if queryErr != nil {
		e.logError(ctx, logMsgDBQueryFailed, queryErr, logAttrQuery, sqlQuery)
		e.recordFailure(ctx, span, operationQuery, errorTypeDatabaseQuery, time.Since(start))

		return empty, 0, errors.Join(eventstore.ErrQueryingEventsFailed, queryErr)
	}
	defer e.closeRows(ctx, rows)

	eventStream, maxSequenceNumber, errorType, scanErr := e.processQueryResults(ctx, rows)
	if scanErr != nil {
		e.recordFailure(ctx, span, operationQuery, errorType, time.Since(start))

		return empty, 0, scanErr
	}

	duration := time.Since(start)

	e.logOperation(ctx, logMsgQueryCompleted,
		logAttrEventCount, len(eventStream),
		logAttrDurationMS, toMilliseconds(duration),
	)
	e.recordQuerySuccess(ctx, span, len(eventStream), maxSequenceNumber, duration)

	return eventStream, maxSequenceNumber, nil
}

func (e Engine) processQueryResults(ctx context.Context, rows adapters.DBRows) (
	eventstore.StorableEvents,
	eventstore.MaxSequenceNumberUint,
	string,
	error,
) {

	eventStream := make(eventstore.StorableEvents, 0)
	maxSequenceNumber := eventstore.MaxSequenceNumberUint(0)

	for rows.Next() {
		result := queryResultRow{}

		rowScanErr := rows.Scan(&result.eventType, &result.occurredAt, &result.payload, &result.metadata, &result.maxSequenceNumber)
		if rowScanErr != nil {
			e.logError(ctx, logMsgScanRowFailed, rowScanErr)
			return nil, 0, errorTypeRowScan, errors.Join(eventstore.ErrScanningDBRowFailed, rowScanErr)
		}

		occurredAt, parseErr := e.parseOccurred(result.occurredAt)
		if parseErr != nil {
			e.logError(ctx, logMsgScanRowFailed, parseErr, logAttrEventType, result.eventType)
			return nil, 0, errorTypeRowScan, errors.Join(eventstore.ErrScanningDBRowFailed, parseErr)
		}

		event, buildStorableErr := eventstore.BuildStorableEvent(result.eventType, occurredAt, result.payload, result.metadata)
		if buildStorableErr != nil {
			e.logError(ctx, logMsgBuildStorableEventFailed, buildStorableErr, logAttrEventType, result.eventType)
			return nil, 0, errorTypeBuildStorableEvent, errors.Join(eventstore.ErrBuildingStorableEventFailed, buildStorableErr)
		}

		eventStream = append(eventStream, event)
		maxSequenceNumber = result.maxSequenceNumber
	}

	return eventStream, maxSequenceNumber, "", nil
}

func (e Engine) closeRows(ctx context.Context, rows adapters.DBRows) {
	if closeErr := rows.Close(); closeErr != nil {
		e.logWarn(ctx, logMsgCloseRowsFailed, logAttrError, closeErr.Error())
	}
}

// Append inserts all events in one statement, or none when the filter's stream moved past expectedMaxSequenceNumber.
func (e Engine) Append(
	ctx context.Context,
	filter eventstore.Filter,
	expectedMaxSequenceNumber eventstore.MaxSequenceNumberUint,
	event eventstore.StorableEvent,
	additionalEvents ...eventstore.StorableEvent,
) error {

	allEvents := eventstore.StorableEvents{event}
	allEvents = append(allEvents, additionalEvents...)

	ctx, span := e.startSpan(ctx, spanNameAppend, appendSpanAttributes(allEvents, expectedMaxSequenceNumber))
	start := time.Now()

	sqlQuery, buildQueryErr := e.builder.AppendQuery(allEvents, filter, expectedMaxSequenceNumber)
	if buildQueryErr != nil {
		e.logError(ctx, logMsgBuildInsertQueryFailed, buildQueryErr, logAttrEventCount, len(allEvents))
		e.recordFailure(ctx, span, operationAppend, errorTypeBuildQuery, time.Since(start))

		return buildQueryErr
	}

	result, execErr := e.execAppend(ctx, sqlQuery)
	e.logSQL(ctx, sqlQuery, logActionAppend, time.Since(start))
	if execErr != nil {
		e.logError(ctx, logMsgDBExecFailed, execErr, logAttrQuery, sqlQuery)
		e.recordFailure(ctx, span, operationAppend, errorTypeDatabaseExec, time.Since(start))

		return errors.Join(eventstore.ErrAppendingEventFailed, execErr)
	}

	rowsAffected, rowsAffectedErr := result.RowsAffected()
	if rowsAffectedErr != nil {
		e.logError(ctx, logMsgRowsAffectedFailed, rowsAffectedErr)
		e.recordFailure(ctx, span, operationAppend, errorTypeRowsAffected, time.Since(start))

		return errors.Join(eventstore.ErrGettingRowsAffectedFailed, rowsAffectedErr)
	}

	if rowsAffected < int64(len(allEvents)) {
		e.logOperation(ctx, logMsgConcurrencyConflict,
			logAttrExpectedEvents, len(allEvents),
			logAttrRowsAffected, rowsAffected,
			logAttrExpectedSequence, expectedMaxSequenceNumber,
		)
		e.recordConflict(ctx, span, time.Since(start))

		return eventstore.ErrConcurrencyConflict
	}

	duration := time.Since(start)

	e.logOperation(ctx, logMsgEventsAppended,
		logAttrEventCount, len(allEvents),
		logAttrDurationMS, toMilliseconds(duration),
	)
	e.recordAppendSuccess(ctx, span, len(allEvents), rowsAffected, duration)

	return nil
}

// execAppend runs the conditional insert, behind the dialect's append lock when it has one.
func (e Engine) execAppend(ctx context.Context, sqlQuery string) (adapters.DBResult, error) {
	lockStatement := e.builder.AppendLockStatement()
	if lockStatement == "" {
		return e.db.Exec(ctx, sqlQuery)
	}

	return e.db.ExecInTx(ctx, lockStatement, sqlQuery)
}

// Exec runs a raw statement, used for schema creation.
func (e Engine) Exec(ctx context.Context, statement string) error {
	if _, err := e.db.Exec(ctx, statement); err != nil {
		return errors.Join(eventstore.ErrCreatingSchemaFailed, err)
	}

	return nil
}

// toMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func toMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}
