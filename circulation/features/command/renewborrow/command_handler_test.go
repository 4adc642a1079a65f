package renewborrow_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation/circulation/features/command/renewborrow"
	"github.com/AntonStoeckl/library-circulation/circulation/features/command/returnbook"
	"github.com/AntonStoeckl/library-circulation/circulation/shared/core"
	"github.com/AntonStoeckl/library-circulation/circulation/shared/shell"
	"github.com/AntonStoeckl/library-circulation/eventstore"
	"github.com/AntonStoeckl/library-circulation/eventstore/memengine"
	. "github.com/AntonStoeckl/library-circulation/testutil/fixtures" //nolint:revive
)

func Test_CommandHandler_Handle_RenewsOnceAndFinesAgainstTheRenewedDueDate(t *testing.T) {
	// arrange
	ctx := context.Background()
	es, err := memengine.New()
	require.NoError(t, err)

	borrowID, userID, bookID := uuid.New(), uuid.New(), uuid.New()
	dueAt := FixedNow
	Seed(t, es, BookInCatalog(bookID, 1, FixedNow), Issued(borrowID, userID, bookID, dueAt, FixedNow.Add(-14*24*time.Hour)))

	renew := renewborrow.NewCommandHandler(es)
	command := renewborrow.BuildCommand(borrowID, userID, FixedNow)

	// act
	_, firstErr := renew.Handle(ctx, command)
	_, secondErr := renew.Handle(ctx, command)
	_, returnErr := returnbook.NewCommandHandler(es).Handle(
		ctx,
		returnbook.BuildCommand(borrowID, userID, dueAt.Add(9*24*time.Hour)),
	)

	// assert
	require.NoError(t, firstErr)
	assert.ErrorIs(t, secondErr, core.ErrInvalidRenewal)
	assert.ErrorContains(t, secondErr, core.RenewalReasonLimitReached)
	require.NoError(t, returnErr)

	storableEvents, _, err := es.Query(ctx, returnbook.BuildBorrowFilter(borrowID.String()))
	require.NoError(t, err)
	history, err := shell.DomainEventsFrom(storableEvents)
	require.NoError(t, err)
	require.Len(t, history, 3)

	renewed := history[1].(core.BorrowRenewed)
	assert.Equal(t, core.RenewedDueAt(dueAt), renewed.DueAt)
	assert.Equal(t, core.CentsInt(2000), history[2].(core.BookReturned).FineCents)
}

// fineIncurringEventStore appends a late return of another borrow right before
// the first Append of the handler under test.
type fineIncurringEventStore struct {
	shell.EventStore
	once sync.Once
	fine func()
}

func (es *fineIncurringEventStore) Append(
	ctx context.Context,
	filter eventstore.Filter,
	expectedMaxSequenceNumber eventstore.MaxSequenceNumberUint,
	event eventstore.StorableEvent,
	additionalEvents ...eventstore.StorableEvent,
) error {

	es.once.Do(es.fine)

	return es.EventStore.Append(ctx, filter, expectedMaxSequenceNumber, event, additionalEvents...)
}

func Test_CommandHandler_Handle_RejectsWhenAFineIsIncurredMeanwhile(t *testing.T) {
	// arrange
	ctx := context.Background()
	inner, err := memengine.New()
	require.NoError(t, err)

	borrowID, userID, bookID := uuid.New(), uuid.New(), uuid.New()
	Seed(t, inner, BookInCatalog(bookID, 2, FixedNow), Issued(borrowID, userID, bookID, FixedNow.Add(24*time.Hour), FixedNow))

	es := &fineIncurringEventStore{
		EventStore: inner,
		fine:       func() { Seed(t, inner, Returned(uuid.New(), userID, bookID, 3000, FixedNow)) },
	}
	handler := renewborrow.NewCommandHandler(es, renewborrow.WithRetryOptions(shell.WithBaseDelay(time.Millisecond)))

	// act
	result, err := handler.Handle(ctx, renewborrow.BuildCommand(borrowID, userID, FixedNow))

	// assert
	assert.ErrorIs(t, err, core.ErrInvalidRenewal)
	assert.ErrorContains(t, err, core.RenewalReasonOutstandingFine)
	assert.Equal(t, 2, result.RetryAttempts)

	storableEvents, _, err := inner.Query(ctx, returnbook.BuildBorrowFilter(borrowID.String()))
	require.NoError(t, err)
	assert.Len(t, storableEvents, 1, "the borrow was not renewed")
}
