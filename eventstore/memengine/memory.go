package memengine

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/AntonStoeckl/library-circulation/eventstore"
)

const (
	logMsgQueryCompleted      = "eventstore operation: query completed"
	logMsgEventsAppended      = "eventstore operation: events appended"
	logMsgConcurrencyConflict = "eventstore operation: concurrency conflict detected"
	logAttrEventCount         = "event_count"
	logAttrExpectedSequence   = "expected_sequence"
	logAttrActualSequence     = "actual_sequence"
	logAttrDurationMS         = "duration_ms"
)

type storedEvent struct {
	sequenceNumber eventstore.MaxSequenceNumberUint
	event          eventstore.StorableEvent
	fields         eventstore.PayloadFields
}

// EventStore is the in-memory engine. Use New to create one; the zero value is not usable.
type EventStore struct {
	mu     *sync.RWMutex
	events *[]storedEvent
	logger eventstore.Logger
}

// New creates an empty in-memory EventStore.
func New(options ...Option) (EventStore, error) {
	es := EventStore{
		mu:     &sync.RWMutex{},
		events: &[]storedEvent{},
	}

	for _, option := range options {
		if err := option(&es); err != nil {
			return EventStore{}, err
		}
	}

	return es, nil
}

// Query returns all events matching the filter in append order,
// plus the max sequence number of exactly those events.
func (es EventStore) Query(ctx context.Context, filter eventstore.Filter) (
	eventstore.StorableEvents,
	eventstore.MaxSequenceNumberUint,
	error,
) {

	if err := ctx.Err(); err != nil {
		return nil, 0, errors.Join(eventstore.ErrQueryingEventsFailed, err)
	}

	start := time.Now()

	es.mu.RLock()
	defer es.mu.RUnlock()

	eventStream := make(eventstore.StorableEvents, 0)
	maxSequenceNumber := eventstore.MaxSequenceNumberUint(0)

	for _, stored := range *es.events {
		if filter.Matches(stored.event.EventType, stored.fields) {
			eventStream = append(eventStream, stored.event)
			maxSequenceNumber = stored.sequenceNumber
		}
	}

	es.logInfo(logMsgQueryCompleted, logAttrEventCount, len(eventStream), logAttrDurationMS, time.Since(start).Milliseconds())

	return eventStream, maxSequenceNumber, nil
}

// Append appends all events atomically, or none of them when the filter's stream has moved on.
func (es EventStore) Append(
	ctx context.Context,
	filter eventstore.Filter,
	expectedMaxSequenceNumber eventstore.MaxSequenceNumberUint,
	event eventstore.StorableEvent,
	additionalEvents ...eventstore.StorableEvent,
) error {

	if err := ctx.Err(); err != nil {
		return errors.Join(eventstore.ErrAppendingEventFailed, err)
	}

	allEvents := append(eventstore.StorableEvents{event}, additionalEvents...)

	toStore := make([]storedEvent, 0, len(allEvents))
	for _, e := range allEvents {
		fields, err := eventstore.ExtractPayloadFields(e.PayloadJSON)
		if err != nil {
			return errors.Join(eventstore.ErrAppendingEventFailed, err)
		}

		toStore = append(toStore, storedEvent{event: e, fields: fields})
	}

	es.mu.Lock()
	defer es.mu.Unlock()

	actualMaxSequenceNumber := eventstore.MaxSequenceNumberUint(0)
	for _, stored := range *es.events {
		if filter.Matches(stored.event.EventType, stored.fields) {
			actualMaxSequenceNumber = stored.sequenceNumber
		}
	}

	if actualMaxSequenceNumber != expectedMaxSequenceNumber {
		es.logInfo(
			logMsgConcurrencyConflict,
			logAttrExpectedSequence, expectedMaxSequenceNumber,
			logAttrActualSequence, actualMaxSequenceNumber,
		)

		return eventstore.ErrConcurrencyConflict
	}

	next := eventstore.MaxSequenceNumberUint(len(*es.events))
	for i := range toStore {
		next++
		toStore[i].sequenceNumber = next
	}

	*es.events = append(*es.events, toStore...)

	es.logInfo(logMsgEventsAppended, logAttrEventCount, len(toStore))

	return nil
}

// Len returns the number of events in the log.
func (es EventStore) Len() int {
	es.mu.RLock()
	defer es.mu.RUnlock()

	return len(*es.events)
}

func (es EventStore) logInfo(msg string, args ...any) {
	if es.logger != nil {
		es.logger.Info(msg, args...)
	}
}
