package reservebook_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation/circulation/features/command/reservebook"
	"github.com/AntonStoeckl/library-circulation/circulation/shared/core"
	. "github.com/AntonStoeckl/library-circulation/testutil/fixtures" //nolint:revive
)

func Test_Decide_Success_EvenWhenNoCopyIsAvailable(t *testing.T) {
	// arrange
	reservationID, userID, otherUserID, bookID := uuid.New(), uuid.New(), uuid.New(), uuid.New()
	now := FixedNow

	history := History(
		BookInCatalog(bookID, 1, now.Add(-time.Hour)),
		Issued(uuid.New(), otherUserID, bookID, now.Add(time.Hour), now.Add(-time.Hour)),
	)

	// act
	result := reservebook.Decide(history, reservebook.BuildCommand(reservationID, userID, bookID, now))

	// assert
	require.True(t, result.HasEventsToAppend())
	reserved, ok := result.Events[0].(core.BookReserved)
	require.True(t, ok)
	assert.Equal(t, reservationID.String(), reserved.ReservationID)
	assert.Equal(t, userID.String(), reserved.UserID)
	assert.Equal(t, bookID.String(), reserved.BookID)
}

func Test_Decide_Success_AfterPreviousReservationWasFulfilled(t *testing.T) {
	// arrange
	first, userID, bookID := uuid.New(), uuid.New(), uuid.New()
	now := FixedNow

	history := History(
		BookInCatalog(bookID, 1, now.Add(-3*time.Hour)),
		Reserved(first, userID, bookID, now.Add(-2*time.Hour)),
		core.BuildReservationFulfilled(first.String(), userID.String(), bookID.String(), uuid.NewString(), now.Add(-time.Hour)),
	)

	// act
	result := reservebook.Decide(history, reservebook.BuildCommand(uuid.New(), userID, bookID, now))

	// assert
	assert.NoError(t, result.HasError())
	assert.True(t, result.HasEventsToAppend())
}

func Test_Decide_BusinessErrors(t *testing.T) {
	userID, bookID := uuid.New(), uuid.New()
	now := FixedNow

	testCases := []struct {
		name        string
		history     core.DomainEvents
		expectedErr error
	}{
		{
			name:        "book never added",
			history:     History(),
			expectedErr: core.ErrNotFound,
		},
		{
			name:        "book removed",
			history:     History(BookInCatalog(bookID, 1, now), BookRemoved(bookID, now)),
			expectedErr: core.ErrNotFound,
		},
		{
			name:        "pending reservation exists",
			history:     History(BookInCatalog(bookID, 1, now), Reserved(uuid.New(), userID, bookID, now)),
			expectedErr: core.ErrConflict,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := reservebook.Decide(tc.history, reservebook.BuildCommand(uuid.New(), userID, bookID, now))

			assert.ErrorIs(t, result.HasError(), tc.expectedErr)
		})
	}
}
