package config

import (
	"log/slog"

	"github.com/AntonStoeckl/library-circulation/eventstore"
)

// Observers are the optional observability dependencies handed to the engines and handlers.
// Nil fields are skipped.
type Observers struct {
	Logger           *slog.Logger
	ContextualLogger eventstore.ContextualLogger
	Metrics          eventstore.MetricsCollector
	Tracing          eventstore.TracingCollector
}
