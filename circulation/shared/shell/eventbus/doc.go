// Package eventbus publishes appended domain events to a RabbitMQ topic exchange.
//
// PublishingEventStore decorates an event store: after a successful append every event is
// published with its event type as routing key. The event log stays the source of truth,
// so a failed publication is logged and never turns a committed append into an error.
package eventbus
