// Package oteladapters implements the eventstore observability interfaces on top of OpenTelemetry.
//
// The circulation service wires these into both the event store engines and the command handlers,
// so a single trace covers the HTTP request, the decision and the SQL statements.
package oteladapters
