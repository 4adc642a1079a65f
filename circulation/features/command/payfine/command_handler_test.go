package payfine_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation/circulation/features/command/payfine"
	"github.com/AntonStoeckl/library-circulation/circulation/shared/core"
	"github.com/AntonStoeckl/library-circulation/circulation/shared/shell"
	"github.com/AntonStoeckl/library-circulation/eventstore"
	"github.com/AntonStoeckl/library-circulation/eventstore/memengine"
	. "github.com/AntonStoeckl/library-circulation/testutil/fixtures" //nolint:revive
)

func Test_CommandHandler_Handle_ReducesTheBalanceUntilNothingIsLeft(t *testing.T) {
	// arrange
	ctx := context.Background()
	es, err := memengine.New()
	require.NoError(t, err)

	userID := uuid.New()
	Seed(t, es, Returned(uuid.New(), userID, uuid.New(), 2000, FixedNow))

	handler := payfine.NewCommandHandler(es)

	// act
	_, firstErr := handler.Handle(ctx, payfine.BuildCommand(uuid.New(), userID, 1500, "", FixedNow))
	_, secondErr := handler.Handle(ctx, payfine.BuildCommand(uuid.New(), userID, 1000, "", FixedNow))
	_, thirdErr := handler.Handle(ctx, payfine.BuildCommand(uuid.New(), userID, 500, "", FixedNow))
	_, fourthErr := handler.Handle(ctx, payfine.BuildCommand(uuid.New(), userID, 1, "", FixedNow))

	// assert
	require.NoError(t, firstErr)
	assert.ErrorIs(t, secondErr, core.ErrInvalidRequest)
	require.NoError(t, thirdErr)
	assert.ErrorIs(t, fourthErr, core.ErrInvalidRequest)
	assert.Equal(t, 3, es.Len())
}

// interleavingEventStore lets another writer append to the ledger between
// the handler's first Query and its first Append.
type interleavingEventStore struct {
	shell.EventStore
	once       sync.Once
	interleave func()
}

func (es *interleavingEventStore) Append(
	ctx context.Context,
	filter eventstore.Filter,
	expectedMaxSequenceNumber eventstore.MaxSequenceNumberUint,
	event eventstore.StorableEvent,
	additionalEvents ...eventstore.StorableEvent,
) error {

	es.once.Do(es.interleave)

	return es.EventStore.Append(ctx, filter, expectedMaxSequenceNumber, event, additionalEvents...)
}

func Test_CommandHandler_Handle_RedecidesAgainstTheLedgerChangedMeanwhile(t *testing.T) {
	testCases := []struct {
		description     string
		initialFine     core.CentsInt
		amount          core.CentsInt
		meanwhile       func(userID uuid.UUID) core.DomainEvent
		expectedErr     error
		expectedBalance core.CentsInt
	}{
		{
			description: "fine incurred by a return",
			initialFine: 1000,
			amount:      1000,
			meanwhile: func(userID uuid.UUID) core.DomainEvent {
				return Returned(uuid.New(), userID, uuid.New(), 2000, FixedNow)
			},
			expectedBalance: 2000,
		},
		{
			description: "payment made at the desk",
			initialFine: 2000,
			amount:      2000,
			meanwhile: func(userID uuid.UUID) core.DomainEvent {
				return Paid(userID, 1500, FixedNow)
			},
			expectedErr:     core.ErrInvalidRequest,
			expectedBalance: 500,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			// arrange
			ctx := context.Background()
			inner, err := memengine.New()
			require.NoError(t, err)

			userID := uuid.New()
			Seed(t, inner, Returned(uuid.New(), userID, uuid.New(), tc.initialFine, FixedNow))

			es := &interleavingEventStore{
				EventStore: inner,
				interleave: func() { Seed(t, inner, tc.meanwhile(userID)) },
			}
			handler := payfine.NewCommandHandler(es, payfine.WithRetryOptions(shell.WithBaseDelay(time.Millisecond)))

			// act
			result, err := handler.Handle(ctx, payfine.BuildCommand(uuid.New(), userID, tc.amount, "", FixedNow))

			// assert
			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, 2, result.RetryAttempts)
			assert.Equal(t, tc.expectedBalance, givenOutstandingBalance(t, inner, userID))
		})
	}
}

func Test_CommandHandler_Handle_ConcurrentFullPaymentsSettleTheBalanceOnce(t *testing.T) {
	// arrange
	ctx := context.Background()
	es, err := memengine.New()
	require.NoError(t, err)

	const payers = 6

	userID := uuid.New()
	Seed(t, es, Returned(uuid.New(), userID, uuid.New(), 2000, FixedNow))

	handler := payfine.NewCommandHandler(es, payfine.WithRetryOptions(
		shell.WithMaxAttempts(10),
		shell.WithBaseDelay(time.Millisecond),
	))

	var wg sync.WaitGroup
	errs := make([]error, payers)

	// act
	for i := range payers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = handler.Handle(ctx, payfine.BuildCommand(uuid.New(), userID, 2000, "", FixedNow))
		}()
	}
	wg.Wait()

	// assert
	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}

		assert.ErrorIs(t, err, core.ErrInvalidRequest)
	}

	payments, _, err := es.Query(ctx, eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(core.FinePaidEventType).
		Finalize())
	require.NoError(t, err)

	assert.Equal(t, 1, succeeded)
	assert.Len(t, payments, 1)
	assert.Equal(t, 0, givenOutstandingBalance(t, es, userID))
}

func givenOutstandingBalance(t *testing.T, es shell.EventStore, userID uuid.UUID) core.CentsInt {
	t.Helper()

	storableEvents, _, err := es.Query(context.Background(), payfine.BuildEventFilter(userID.String()))
	require.NoError(t, err)

	history, err := shell.DomainEventsFrom(storableEvents)
	require.NoError(t, err)

	var balance core.CentsInt
	for _, event := range history {
		switch e := event.(type) {
		case core.BookReturned:
			balance += e.FineCents
		case core.FinePaid:
			balance -= e.AmountCents
		}
	}

	return balance
}
