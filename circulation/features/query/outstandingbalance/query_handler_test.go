package outstandingbalance_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation/circulation/features/query/outstandingbalance"
	"github.com/AntonStoeckl/library-circulation/circulation/shared/core"
	"github.com/AntonStoeckl/library-circulation/eventstore/memengine"
	. "github.com/AntonStoeckl/library-circulation/testutil/fixtures" //nolint:revive
)

func Test_ProjectOutstandingBalance(t *testing.T) {
	userID, otherUserID, bookID := uuid.New(), uuid.New(), uuid.New()

	testCases := []struct {
		description     string
		history         core.DomainEvents
		expectedBalance core.CentsInt
	}{
		{"no history", nil, 0},
		{"one fine", History(Returned(uuid.New(), userID, bookID, 3000, FixedNow)), 3000},
		{
			"fines minus payments",
			History(
				Returned(uuid.New(), userID, bookID, 3000, FixedNow),
				Returned(uuid.New(), userID, bookID, 1000, FixedNow),
				Paid(userID, 2500, FixedNow),
			),
			1500,
		},
		{"other members are ignored", History(Returned(uuid.New(), otherUserID, bookID, 3000, FixedNow)), 0},
		{"never negative", History(Paid(userID, 500, FixedNow)), 0},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			// act
			result := outstandingbalance.ProjectOutstandingBalance(tc.history, outstandingbalance.BuildQuery(userID), 0)

			// assert
			assert.Equal(t, tc.expectedBalance, result.BalanceCents)
		})
	}
}

func Test_QueryHandler_Handle(t *testing.T) {
	// arrange
	ctx := context.Background()
	es, err := memengine.New()
	require.NoError(t, err)

	userID := uuid.New()
	Seed(t, es,
		BookInCatalog(uuid.New(), 1, FixedNow),
		Returned(uuid.New(), userID, uuid.New(), 2000, FixedNow),
		Paid(userID, 500, FixedNow),
	)

	// act
	result, err := outstandingbalance.NewQueryHandler(es).Handle(ctx, outstandingbalance.BuildQuery(userID))

	// assert
	require.NoError(t, err)
	assert.Equal(t, core.CentsInt(2000), result.FinesCents)
	assert.Equal(t, core.CentsInt(500), result.PaidCents)
	assert.Equal(t, core.CentsInt(1500), result.BalanceCents)
	assert.Equal(t, uint(3), result.GetSequenceNumber())
}
