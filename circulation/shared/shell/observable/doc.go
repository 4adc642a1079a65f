// Package observable decorates core command and query handlers with metrics,
// tracing, and logging, so that the handlers themselves only carry business flow.
package observable
