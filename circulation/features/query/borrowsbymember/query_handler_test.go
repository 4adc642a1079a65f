package borrowsbymember_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation/circulation/features/query/borrowsbymember"
	"github.com/AntonStoeckl/library-circulation/circulation/shared/core"
	"github.com/AntonStoeckl/library-circulation/eventstore/memengine"
	. "github.com/AntonStoeckl/library-circulation/testutil/fixtures" //nolint:revive
)

func Test_QueryHandler_Handle_ListsBorrowsNewestFirstWithBookDetails(t *testing.T) {
	// arrange
	ctx := context.Background()
	es, err := memengine.New()
	require.NoError(t, err)

	userID, otherUserID := uuid.New(), uuid.New()
	dune, emma := uuid.New(), uuid.New()
	olderBorrow, newerBorrow := uuid.New(), uuid.New()

	Seed(t, es,
		BookInCatalog(dune, 2, FixedNow),
		core.BuildBookAddedToCatalog(emma.String(), "Emma", "Jane Austen", "", 1, FixedNow),
		Issued(olderBorrow, userID, dune, FixedNow.Add(14*24*time.Hour), FixedNow),
		Issued(uuid.New(), otherUserID, dune, FixedNow.Add(14*24*time.Hour), FixedNow),
		Issued(newerBorrow, userID, emma, FixedNow.Add(15*24*time.Hour), FixedNow.Add(24*time.Hour)),
		Renewed(newerBorrow, userID, emma, FixedNow.Add(22*24*time.Hour), FixedNow.Add(48*time.Hour)),
		Returned(olderBorrow, userID, dune, 2000, FixedNow.Add(16*24*time.Hour)),
	)

	// act
	result, err := borrowsbymember.NewQueryHandler(es).Handle(ctx, borrowsbymember.BuildQuery(userID))

	// assert
	require.NoError(t, err)
	require.Equal(t, 2, result.Count)

	newest := result.Borrows[0]
	assert.Equal(t, newerBorrow.String(), newest.BorrowID)
	assert.Equal(t, "Emma", newest.Title)
	assert.Equal(t, 1, newest.RenewedCount)
	assert.True(t, newest.IsOutstanding())
	assert.Equal(t, FixedNow.Add(22*24*time.Hour), newest.DueAt)

	oldest := result.Borrows[1]
	assert.Equal(t, "Dune", oldest.Title)
	assert.False(t, oldest.IsOutstanding())
	assert.Equal(t, core.CentsInt(2000), oldest.FineCents)
	assert.Equal(t, uint(7), result.GetSequenceNumber())
}

func Test_QueryHandler_Handle_NoBorrows(t *testing.T) {
	ctx := context.Background()
	es, err := memengine.New()
	require.NoError(t, err)

	result, err := borrowsbymember.NewQueryHandler(es).Handle(ctx, borrowsbymember.BuildQuery(uuid.New()))

	require.NoError(t, err)
	assert.Empty(t, result.Borrows)
	assert.Equal(t, 0, result.Count)
}
