package returnbook_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation/circulation/features/command/returnbook"
	"github.com/AntonStoeckl/library-circulation/circulation/shared/core"
	"github.com/AntonStoeckl/library-circulation/circulation/shared/shell"
	"github.com/AntonStoeckl/library-circulation/eventstore/memengine"
	. "github.com/AntonStoeckl/library-circulation/testutil/fixtures" //nolint:revive
)

func Test_CommandHandler_Handle_AppendsTheReturnWithItsFine(t *testing.T) {
	// arrange
	ctx := context.Background()
	es, err := memengine.New()
	require.NoError(t, err)

	borrowID, userID, bookID := uuid.New(), uuid.New(), uuid.New()
	Seed(t, es,
		BookInCatalog(bookID, 1, FixedNow),
		Issued(borrowID, userID, bookID, FixedNow.Add(-72*time.Hour), FixedNow.Add(-30*24*time.Hour)),
	)

	handler := returnbook.NewCommandHandler(es)

	// act
	_, err = handler.Handle(ctx, returnbook.BuildCommand(borrowID, userID, FixedNow))

	// assert
	require.NoError(t, err)

	storableEvents, _, err := es.Query(ctx, returnbook.BuildBorrowFilter(borrowID.String()))
	require.NoError(t, err)
	history, err := shell.DomainEventsFrom(storableEvents)
	require.NoError(t, err)
	require.Len(t, history, 2)

	returned, ok := history[1].(core.BookReturned)
	require.True(t, ok)
	assert.Equal(t, core.CentsInt(3000), returned.FineCents)
	assert.Equal(t, bookID.String(), returned.BookID)
}

func Test_CommandHandler_Handle_SecondReturnIsAConflict(t *testing.T) {
	ctx := context.Background()
	es, err := memengine.New()
	require.NoError(t, err)

	borrowID, userID, bookID := uuid.New(), uuid.New(), uuid.New()
	Seed(t, es, BookInCatalog(bookID, 1, FixedNow), Issued(borrowID, userID, bookID, FixedNow, FixedNow))

	handler := returnbook.NewCommandHandler(es)
	command := returnbook.BuildCommand(borrowID, userID, FixedNow)

	_, err = handler.Handle(ctx, command)
	require.NoError(t, err)

	_, err = handler.Handle(ctx, command)

	assert.ErrorIs(t, err, core.ErrConflict)
	assert.Equal(t, 3, es.Len())
}

func Test_CommandHandler_Handle_UnknownBorrowIsNotFound(t *testing.T) {
	ctx := context.Background()
	es, err := memengine.New()
	require.NoError(t, err)

	handler := returnbook.NewCommandHandler(es, returnbook.WithMode(returnbook.ModeStrict))

	_, err = handler.Handle(ctx, returnbook.BuildCommand(uuid.New(), uuid.New(), FixedNow))

	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.Equal(t, 0, es.Len())
}
