package postgresengine

import (
	"github.com/AntonStoeckl/library-circulation/eventstore"
)

// Option defines a functional option for configuring EventStore.
type Option func(*EventStore) error

// WithTableName sets the table name for the EventStore.
func WithTableName(tableName string) Option {
	return func(es *EventStore) error {
		if tableName == "" {
			return eventstore.ErrEmptyEventsTableName
		}

		es.eventTableName = tableName

		return nil
	}
}

// WithLogger sets the logger for the EventStore.
//
// Debug level: SQL queries with execution timing
// Info level: event counts, durations, concurrency conflicts
// Error level: failures that abort the operation.
func WithLogger(logger eventstore.Logger) Option {
	return func(es *EventStore) error {
		es.observers.Logger = logger
		return nil
	}
}

// WithContextualLogger sets a context-aware logger, which correlates log records with the active trace.
func WithContextualLogger(logger eventstore.ContextualLogger) Option {
	return func(es *EventStore) error {
		es.observers.ContextualLogger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector for query/append durations, event counts, conflicts and errors.
func WithMetrics(collector eventstore.MetricsCollector) Option {
	return func(es *EventStore) error {
		es.observers.Metrics = collector
		return nil
	}
}

// WithTracing sets the tracing collector, which gets one span per query and append.
func WithTracing(collector eventstore.TracingCollector) Option {
	return func(es *EventStore) error {
		es.observers.Tracing = collector
		return nil
	}
}
