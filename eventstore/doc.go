// Package eventstore provides the core abstractions of the circulation event log:
// filters describing dynamic consistency boundaries, storable events, and the
// observability hooks shared by all engines.
//
// An engine answers two calls:
//
//	events, maxSeq, err := store.Query(ctx, filter)
//	err = store.Append(ctx, filter, maxSeq, event, moreEvents...)
//
// Append only succeeds when no event matching the same filter was appended after the query,
// otherwise it fails with ErrConcurrencyConflict and the caller re-runs its decision.
//
// Filters are built with the fluent FilterBuilder:
//
//	filter := BuildEventFilter().
//		Matching().
//		AnyEventTypeOf(core.BookIssuedEventType, core.BookReturnedEventType).
//		AndAnyPredicateOf(P("BookID", bookID.String())).
//		Finalize()
//
// Engines live in sub packages: memengine (in-process), sqliteengine and postgresengine.
package eventstore
