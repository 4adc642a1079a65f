package eventbus

import (
	"context"

	"github.com/AntonStoeckl/library-circulation/circulation/shared/shell"
	"github.com/AntonStoeckl/library-circulation/eventstore"
)

const (
	logMsgPublishFailed = "eventbus: publishing appended event failed"
	logAttrEventType    = "event_type"
	logAttrError        = "error"
)

// Publisher sends one message to the broker.
type Publisher interface {
	Publish(ctx context.Context, msg Message) error
}

// PublishingEventStore is a shell.EventStore that publishes every successfully appended event.
type PublishingEventStore struct {
	shell.EventStore

	publisher Publisher
	logger    shell.ContextualLogger
}

// NewPublishingEventStore decorates es. A nil logger drops publication failures silently.
func NewPublishingEventStore(es shell.EventStore, publisher Publisher, logger shell.ContextualLogger) PublishingEventStore {
	return PublishingEventStore{EventStore: es, publisher: publisher, logger: logger}
}

// Append appends the events and publishes them in order once the append has committed.
func (es PublishingEventStore) Append(
	ctx context.Context,
	filter eventstore.Filter,
	expectedMaxSequenceNumber eventstore.MaxSequenceNumberUint,
	storableEvent eventstore.StorableEvent,
	additionalEvents ...eventstore.StorableEvent,
) error {

	if err := es.EventStore.Append(ctx, filter, expectedMaxSequenceNumber, storableEvent, additionalEvents...); err != nil {
		return err
	}

	for _, event := range append(eventstore.StorableEvents{storableEvent}, additionalEvents...) {
		if err := es.publisher.Publish(ctx, MessageFrom(event)); err != nil && es.logger != nil {
			es.logger.WarnContext(ctx, logMsgPublishFailed, logAttrEventType, event.EventType, logAttrError, err.Error())
		}
	}

	return nil
}

// MessageFrom maps a StorableEvent to a Message routed by its event type.
// Message and correlation ids are taken from the event metadata when it has them.
func MessageFrom(event eventstore.StorableEvent) Message {
	msg := Message{
		RoutingKey: event.EventType,
		Type:       event.EventType,
		Timestamp:  event.OccurredAt,
		Body:       event.PayloadJSON,
	}

	if metadata, err := shell.EventMetadataFrom(event); err == nil {
		msg.MessageID = metadata.MessageID
		msg.CorrelationID = metadata.CorrelationID
	}

	return msg
}
