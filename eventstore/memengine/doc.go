// Package memengine is an in-process implementation of the event store.
//
// It keeps the event log in memory behind a mutex and evaluates filters with eventstore.Filter.Matches,
// giving the same optimistic concurrency guarantees as the SQL engines: Append fails with
// eventstore.ErrConcurrencyConflict when the dynamic event stream described by the filter has
// moved past the expected max sequence number.
//
// It is meant for tests and for running the service without a database. Nothing is persisted.
package memengine
