package shell

import (
	"context"

	"github.com/AntonStoeckl/library-circulation/eventstore"
)

// QueriesEvents is the read side of the event store as needed by query handlers.
type QueriesEvents interface {
	Query(ctx context.Context, filter eventstore.Filter) (
		eventstore.StorableEvents,
		eventstore.MaxSequenceNumberUint,
		error,
	)
}

// EventStore is the event store as needed by command handlers.
type EventStore interface {
	QueriesEvents
	Append(
		ctx context.Context,
		filter eventstore.Filter,
		expectedMaxSequenceNumber eventstore.MaxSequenceNumberUint,
		storableEvent eventstore.StorableEvent,
		additionalEvents ...eventstore.StorableEvent,
	) error
}

// Command is implemented by all commands.
// CommandType is used for observability labels and log attributes.
type Command interface {
	CommandType() string
}

// CoreCommandHandler processes one command type with business logic only.
// Observability is added by wrapping it, see the observable package.
type CoreCommandHandler[C Command] interface {
	Handle(ctx context.Context, command C) (HandlerResult, error)
}

// Query is implemented by all queries.
type Query interface {
	QueryType() string
}

// QueryResult is implemented by all projections.
// GetSequenceNumber returns the highest sequence number the projection was built from.
type QueryResult interface {
	GetSequenceNumber() uint
}

// CoreQueryHandler processes one query type and returns its projection.
type CoreQueryHandler[Q Query, R QueryResult] interface {
	Handle(ctx context.Context, query Q) (R, error)
}

// Interface aliases for convenience, they match the observability interfaces of the eventstore.

// MetricsCollector collects handler performance metrics.
type MetricsCollector = eventstore.MetricsCollector

// ContextualMetricsCollector extends MetricsCollector with context-aware methods.
type ContextualMetricsCollector = eventstore.ContextualMetricsCollector

// TracingCollector is used for distributed tracing in handlers.
type TracingCollector = eventstore.TracingCollector

// SpanContext represents an active tracing span.
type SpanContext = eventstore.SpanContext

// ContextualLogger is used for context-aware logging in handlers.
type ContextualLogger = eventstore.ContextualLogger

// Logger is used for basic logging in handlers.
type Logger = eventstore.Logger
