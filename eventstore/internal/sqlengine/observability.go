package sqlengine

import (
	"context"
	"fmt"
	"time"

	"github.com/AntonStoeckl/library-circulation/eventstore"
)

const (
	metricQueryDuration        = "eventstore_query_duration_seconds"
	metricAppendDuration       = "eventstore_append_duration_seconds"
	metricEventsQueried        = "eventstore_events_queried_total"
	metricEventsAppended       = "eventstore_events_appended_total"
	metricConcurrencyConflicts = "eventstore_concurrency_conflicts_total"
	metricDatabaseErrors       = "eventstore_database_errors_total"

	spanNameQuery  = "eventstore.query"
	spanNameAppend = "eventstore.append"

	spanAttrOperation    = "operation"
	spanAttrEventCount   = "event_count"
	spanAttrEventType    = "event_type"
	spanAttrExpectedSeq  = "expected_sequence"
	spanAttrMaxSequence  = "max_sequence"
	spanAttrRowsAffected = "rows_affected"
	spanAttrDurationMS   = "duration_ms"
	spanAttrErrorType    = "error_type"

	labelStatus       = "status"
	labelConflictType = "conflict_type"

	operationQuery  = "query"
	operationAppend = "append"

	statusSuccess  = "success"
	statusError    = "error"
	statusConflict = "concurrency_conflict"

	errorTypeBuildQuery         = "build_query"
	errorTypeDatabaseQuery      = "database_query"
	errorTypeDatabaseExec       = "database_exec"
	errorTypeRowScan            = "row_scan"
	errorTypeBuildStorableEvent = "build_storable_event"
	errorTypeRowsAffected       = "rows_affected"
)

func appendSpanAttributes(
	allEvents eventstore.StorableEvents,
	expectedMaxSequenceNumber eventstore.MaxSequenceNumberUint,
) map[string]string {

	attrs := map[string]string{
		spanAttrOperation:   operationAppend,
		spanAttrEventCount:  fmt.Sprintf("%d", len(allEvents)),
		spanAttrExpectedSeq: fmt.Sprintf("%d", expectedMaxSequenceNumber),
	}

	if len(allEvents) > 0 {
		attrs[spanAttrEventType] = allEvents[0].EventType
	}

	return attrs
}

// === Logging ===

func (e Engine) logSQL(ctx context.Context, sqlQuery string, action string, duration time.Duration) {
	args := []any{logAttrDurationMS, toMilliseconds(duration), logAttrQuery, sqlQuery}

	if e.observers.Logger != nil {
		e.observers.Logger.Debug(logMsgSQLExecuted+action, args...)
	}

	if e.observers.ContextualLogger != nil {
		e.observers.ContextualLogger.DebugContext(ctx, logMsgSQLExecuted+action, args...)
	}
}

func (e Engine) logOperation(ctx context.Context, action string, args ...any) {
	if e.observers.Logger != nil {
		e.observers.Logger.Info(logMsgOperation+action, args...)
	}

	if e.observers.ContextualLogger != nil {
		e.observers.ContextualLogger.InfoContext(ctx, logMsgOperation+action, args...)
	}
}

func (e Engine) logWarn(ctx context.Context, msg string, args ...any) {
	if e.observers.Logger != nil {
		e.observers.Logger.Warn(msg, args...)
	}

	if e.observers.ContextualLogger != nil {
		e.observers.ContextualLogger.WarnContext(ctx, msg, args...)
	}
}

func (e Engine) logError(ctx context.Context, msg string, err error, args ...any) {
	allArgs := []any{logAttrError, err.Error()}
	allArgs = append(allArgs, args...)

	if e.observers.Logger != nil {
		e.observers.Logger.Error(msg, allArgs...)
	}

	if e.observers.ContextualLogger != nil {
		e.observers.ContextualLogger.ErrorContext(ctx, msg, allArgs...)
	}
}

// === Metrics ===

func (e Engine) recordDuration(ctx context.Context, metric string, duration time.Duration, labels map[string]string) {
	if e.observers.Metrics == nil {
		return
	}

	if contextual, ok := e.observers.Metrics.(eventstore.ContextualMetricsCollector); ok {
		contextual.RecordDurationContext(ctx, metric, duration, labels)
		return
	}

	e.observers.Metrics.RecordDuration(metric, duration, labels)
}

func (e Engine) recordValue(ctx context.Context, metric string, value float64, labels map[string]string) {
	if e.observers.Metrics == nil {
		return
	}

	if contextual, ok := e.observers.Metrics.(eventstore.ContextualMetricsCollector); ok {
		contextual.RecordValueContext(ctx, metric, value, labels)
		return
	}

	e.observers.Metrics.RecordValue(metric, value, labels)
}

func (e Engine) incrementCounter(ctx context.Context, metric string, labels map[string]string) {
	if e.observers.Metrics == nil {
		return
	}

	if contextual, ok := e.observers.Metrics.(eventstore.ContextualMetricsCollector); ok {
		contextual.IncrementCounterContext(ctx, metric, labels)
		return
	}

	e.observers.Metrics.IncrementCounter(metric, labels)
}

// === Tracing ===

func (e Engine) startSpan(ctx context.Context, name string, attrs map[string]string) (context.Context, eventstore.SpanContext) {
	if e.observers.Tracing == nil {
		return ctx, nil
	}

	return e.observers.Tracing.StartSpan(ctx, name, attrs)
}

func (e Engine) finishSpan(span eventstore.SpanContext, status string, attrs map[string]string) {
	if e.observers.Tracing == nil || span == nil {
		return
	}

	e.observers.Tracing.FinishSpan(span, status, attrs)
}

// === Outcomes ===

func (e Engine) recordQuerySuccess(
	ctx context.Context,
	span eventstore.SpanContext,
	eventCount int,
	maxSequenceNumber eventstore.MaxSequenceNumberUint,
	duration time.Duration,
) {

	labels := map[string]string{spanAttrOperation: operationQuery, labelStatus: statusSuccess}
	e.recordDuration(ctx, metricQueryDuration, duration, labels)
	e.recordValue(ctx, metricEventsQueried, float64(eventCount), labels)

	e.finishSpan(span, statusSuccess, map[string]string{
		spanAttrEventCount:  fmt.Sprintf("%d", eventCount),
		spanAttrMaxSequence: fmt.Sprintf("%d", maxSequenceNumber),
		spanAttrDurationMS:  fmt.Sprintf("%.2f", toMilliseconds(duration)),
	})
}

func (e Engine) recordAppendSuccess(
	ctx context.Context,
	span eventstore.SpanContext,
	eventCount int,
	rowsAffected int64,
	duration time.Duration,
) {

	labels := map[string]string{spanAttrOperation: operationAppend, labelStatus: statusSuccess}
	e.recordDuration(ctx, metricAppendDuration, duration, labels)
	e.recordValue(ctx, metricEventsAppended, float64(eventCount), labels)

	e.finishSpan(span, statusSuccess, map[string]string{
		spanAttrRowsAffected: fmt.Sprintf("%d", rowsAffected),
		spanAttrDurationMS:   fmt.Sprintf("%.2f", toMilliseconds(duration)),
	})
}

func (e Engine) recordConflict(ctx context.Context, span eventstore.SpanContext, duration time.Duration) {
	e.recordDuration(ctx, metricAppendDuration, duration, map[string]string{
		spanAttrOperation: operationAppend,
		labelStatus:       statusConflict,
	})
	e.incrementCounter(ctx, metricConcurrencyConflicts, map[string]string{
		spanAttrOperation: operationAppend,
		labelConflictType: "concurrency",
	})

	e.finishSpan(span, statusConflict, map[string]string{spanAttrErrorType: statusConflict})
}

func (e Engine) recordFailure(
	ctx context.Context,
	span eventstore.SpanContext,
	operation string,
	errorType string,
	duration time.Duration,
) {

	metric := metricQueryDuration
	if operation == operationAppend {
		metric = metricAppendDuration
	}

	e.recordDuration(ctx, metric, duration, map[string]string{spanAttrOperation: operation, labelStatus: statusError})
	e.incrementCounter(ctx, metricDatabaseErrors, map[string]string{
		spanAttrOperation: operation,
		labelStatus:       statusError,
		spanAttrErrorType: errorType,
	})

	e.finishSpan(span, statusError, map[string]string{spanAttrErrorType: errorType})
}
