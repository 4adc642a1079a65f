// Package shell contains the imperative glue between the pure domain core and
// the event store: mapping domain events to storable events and back, event
// metadata, the optimistic-concurrency retry loop, and the observability
// helpers shared by all command and query handlers.
//
// In Hexagonal Architecture terminology, this would be called the 'adapters' layer.
package shell
