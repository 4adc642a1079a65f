package eventbus_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation/circulation/shared/shell/eventbus"
	"github.com/AntonStoeckl/library-circulation/eventstore"
	"github.com/AntonStoeckl/library-circulation/eventstore/memengine"
	"github.com/AntonStoeckl/library-circulation/testutil/testdoubles"
)

type publisherSpy struct {
	messages []eventbus.Message
	err      error
}

func (p *publisherSpy) Publish(_ context.Context, msg eventbus.Message) error {
	p.messages = append(p.messages, msg)

	return p.err
}

func Test_PublishingEventStore_PublishesAppendedEventsInOrder(t *testing.T) {
	// arrange
	ctx := context.Background()
	es, err := memengine.New()
	require.NoError(t, err)
	publisher := &publisherSpy{}
	sut := eventbus.NewPublishingEventStore(es, publisher, nil)

	first := storableEvent(t, "BookIssued", `{"BookID":"b-1"}`)
	second := storableEvent(t, "ReservationFulfilled", `{"BookID":"b-1"}`)
	filter := eventstore.BuildEventFilter().Matching().AnyEventTypeOf("BookIssued").Finalize()

	// act
	err = sut.Append(ctx, filter, 0, first, second)

	// assert
	require.NoError(t, err)
	require.Len(t, publisher.messages, 2)
	assert.Equal(t, "BookIssued", publisher.messages[0].RoutingKey)
	assert.Equal(t, "ReservationFulfilled", publisher.messages[1].RoutingKey)
	assert.JSONEq(t, `{"BookID":"b-1"}`, string(publisher.messages[0].Body))
	assert.Equal(t, "m-1", publisher.messages[0].MessageID)
	assert.Equal(t, "c-1", publisher.messages[0].CorrelationID)
	assert.Equal(t, 2, es.Len())
}

func Test_PublishingEventStore_DoesNotPublishOnConcurrencyConflict(t *testing.T) {
	// arrange
	ctx := context.Background()
	es, err := memengine.New()
	require.NoError(t, err)
	publisher := &publisherSpy{}
	sut := eventbus.NewPublishingEventStore(es, publisher, nil)

	event := storableEvent(t, "BookIssued", `{"BookID":"b-1"}`)
	filter := eventstore.BuildEventFilter().Matching().AnyEventTypeOf("BookIssued").Finalize()
	require.NoError(t, es.Append(ctx, filter, 0, event))

	// act
	err = sut.Append(ctx, filter, 0, event)

	// assert
	assert.ErrorIs(t, err, eventstore.ErrConcurrencyConflict)
	assert.Empty(t, publisher.messages)
}

func Test_PublishingEventStore_PublishFailureIsLoggedNotReturned(t *testing.T) {
	// arrange
	ctx := context.Background()
	es, err := memengine.New()
	require.NoError(t, err)
	publisher := &publisherSpy{err: errors.New("broker down")}
	logger := testdoubles.NewLoggerSpy()
	sut := eventbus.NewPublishingEventStore(es, publisher, logger)

	event := storableEvent(t, "FinePaid", `{"UserID":"u-1"}`)
	filter := eventstore.BuildEventFilter().Matching().AnyEventTypeOf("FinePaid").Finalize()

	// act
	err = sut.Append(ctx, filter, 0, event)

	// assert
	require.NoError(t, err)
	assert.Equal(t, 1, es.Len())
	assert.True(t, logger.HasMessage("warn", "eventbus: publishing appended event failed"))
}

func storableEvent(t *testing.T, eventType, payload string) eventstore.StorableEvent {
	t.Helper()

	event, err := eventstore.BuildStorableEvent(
		eventType,
		time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC),
		[]byte(payload),
		[]byte(`{"MessageID":"m-1","CausationID":"m-1","CorrelationID":"c-1"}`),
	)
	require.NoError(t, err)

	return event
}
