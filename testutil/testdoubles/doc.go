// Package testdoubles provides spies for the observability interfaces of the
// eventstore and the circulation handlers:
//   - MetricsCollectorSpy captures durations, counters, and values
//   - TracingCollectorSpy captures started and finished spans
//   - LoggerSpy captures plain and contextual log calls
//
// All spies are safe for concurrent use.
package testdoubles
