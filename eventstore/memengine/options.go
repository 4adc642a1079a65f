package memengine

import (
	"github.com/AntonStoeckl/library-circulation/eventstore"
)

// Option defines a functional option for configuring EventStore.
type Option func(*EventStore) error

// WithLogger sets the logger, which receives operations and concurrency conflicts at info level.
func WithLogger(logger eventstore.Logger) Option {
	return func(es *EventStore) error {
		es.logger = logger
		return nil
	}
}
