package issuebook_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation/circulation/features/command/issuebook"
	"github.com/AntonStoeckl/library-circulation/circulation/shared/core"
	. "github.com/AntonStoeckl/library-circulation/testutil/fixtures" //nolint:revive
)

func Test_Decide_Success_IssuesWithDefaultLoanPeriod(t *testing.T) {
	// arrange
	borrowID, userID, bookID := uuid.New(), uuid.New(), uuid.New()
	now := FixedNow

	history := History(
		MemberWithCard(userID, now.Add(-time.Hour)),
		BookInCatalog(bookID, 2, now.Add(-time.Hour)),
	)

	command := issuebook.BuildCommand(borrowID, userID, bookID, core.DefaultLoanDays, now)

	// act
	result := issuebook.Decide(history, command)

	// assert
	require.NoError(t, result.HasError())
	require.True(t, result.HasEventsToAppend())
	require.Len(t, result.Events, 1)

	issued, ok := result.Events[0].(core.BookIssued)
	require.True(t, ok)
	assert.Equal(t, borrowID.String(), issued.BorrowID)
	assert.Equal(t, userID.String(), issued.UserID)
	assert.Equal(t, bookID.String(), issued.BookID)
	assert.Equal(t, now.Add(14*24*time.Hour), issued.DueAt)
}

func Test_Decide_Success_FulfillsPendingReservation(t *testing.T) {
	// arrange
	borrowID, userID, bookID, reservationID := uuid.New(), uuid.New(), uuid.New(), uuid.New()
	now := FixedNow

	history := History(
		MemberWithCard(userID, now.Add(-2*time.Hour)),
		BookInCatalog(bookID, 1, now.Add(-2*time.Hour)),
		Reserved(reservationID, userID, bookID, now.Add(-time.Hour)),
	)

	command := issuebook.BuildCommand(borrowID, userID, bookID, 7, now)

	// act
	result := issuebook.Decide(history, command)

	// assert
	require.True(t, result.HasEventsToAppend())
	require.Len(t, result.Events, 2)

	fulfilled, ok := result.Events[0].(core.ReservationFulfilled)
	require.True(t, ok)
	assert.Equal(t, reservationID.String(), fulfilled.ReservationID)
	assert.Equal(t, borrowID.String(), fulfilled.BorrowID)

	issued, ok := result.Events[1].(core.BookIssued)
	require.True(t, ok)
	assert.Equal(t, now.Add(7*24*time.Hour), issued.DueAt)
}

func Test_Decide_Success_CancelledReservationIsNotFulfilled(t *testing.T) {
	// arrange
	userID, bookID, reservationID := uuid.New(), uuid.New(), uuid.New()
	now := FixedNow

	history := History(
		MemberWithCard(userID, now.Add(-2*time.Hour)),
		BookInCatalog(bookID, 1, now.Add(-2*time.Hour)),
		Reserved(reservationID, userID, bookID, now.Add(-time.Hour)),
		core.BuildReservationCancelled(reservationID.String(), userID.String(), bookID.String(), now.Add(-30*time.Minute)),
	)

	// act
	result := issuebook.Decide(history, issuebook.BuildCommand(uuid.New(), userID, bookID, core.DefaultLoanDays, now))

	// assert
	require.Len(t, result.Events, 1)
	assert.Equal(t, core.BookIssuedEventType, result.Events[0].IsEventType())
}

func Test_Decide_Success_ReturnedCopyIsAvailableAgain(t *testing.T) {
	// arrange
	userID, otherUserID, bookID, firstBorrowID := uuid.New(), uuid.New(), uuid.New(), uuid.New()
	now := FixedNow

	history := History(
		MemberWithCard(userID, now.Add(-48*time.Hour)),
		BookInCatalog(bookID, 1, now.Add(-48*time.Hour)),
		Issued(firstBorrowID, otherUserID, bookID, now.Add(24*time.Hour), now.Add(-24*time.Hour)),
		Returned(firstBorrowID, otherUserID, bookID, 0, now.Add(-time.Hour)),
	)

	// act
	result := issuebook.Decide(history, issuebook.BuildCommand(uuid.New(), userID, bookID, core.DefaultLoanDays, now))

	// assert
	assert.NoError(t, result.HasError())
	assert.True(t, result.HasEventsToAppend())
}

func Test_Decide_BusinessErrors(t *testing.T) {
	userID, otherUserID, bookID := uuid.New(), uuid.New(), uuid.New()
	now := FixedNow

	testCases := []struct {
		name        string
		history     core.DomainEvents
		loanDays    int
		expectedErr error
	}{
		{
			name:        "loan days too long",
			history:     History(MemberWithCard(userID, now), BookInCatalog(bookID, 1, now)),
			loanDays:    61,
			expectedErr: core.ErrInvalidRequest,
		},
		{
			name:        "zero loan days",
			history:     History(MemberWithCard(userID, now), BookInCatalog(bookID, 1, now)),
			loanDays:    0,
			expectedErr: core.ErrInvalidRequest,
		},
		{
			name:        "negative loan days",
			history:     History(MemberWithCard(userID, now), BookInCatalog(bookID, 1, now)),
			loanDays:    -3,
			expectedErr: core.ErrInvalidRequest,
		},
		{
			name:        "unknown member",
			history:     History(BookInCatalog(bookID, 1, now)),
			loanDays:    core.DefaultLoanDays,
			expectedErr: core.ErrPermissionDenied,
		},
		{
			name:        "member without library card",
			history:     History(Member(userID, now), BookInCatalog(bookID, 1, now)),
			loanDays:    core.DefaultLoanDays,
			expectedErr: core.ErrPermissionDenied,
		},
		{
			name: "deactivated member",
			history: History(
				MemberWithCard(userID, now),
				core.BuildMemberDetailsUpdated(userID.String(), "Ada", false, now),
				BookInCatalog(bookID, 1, now),
			),
			loanDays:    core.DefaultLoanDays,
			expectedErr: core.ErrPermissionDenied,
		},
		{
			name:        "book never added",
			history:     History(MemberWithCard(userID, now)),
			loanDays:    core.DefaultLoanDays,
			expectedErr: core.ErrNotFound,
		},
		{
			name:        "book removed from catalog",
			history:     History(MemberWithCard(userID, now), BookInCatalog(bookID, 1, now), BookRemoved(bookID, now)),
			loanDays:    core.DefaultLoanDays,
			expectedErr: core.ErrNotFound,
		},
		{
			name: "last copy already issued",
			history: History(
				MemberWithCard(userID, now),
				BookInCatalog(bookID, 1, now),
				Issued(uuid.New(), otherUserID, bookID, now.Add(time.Hour), now),
			),
			loanDays:    core.DefaultLoanDays,
			expectedErr: core.ErrOutOfStock,
		},
		{
			name: "stock adjusted to zero available",
			history: History(
				MemberWithCard(userID, now),
				BookInCatalog(bookID, 3, now),
				core.BuildBookStockAdjusted(bookID.String(), 3, 0, now),
			),
			loanDays:    core.DefaultLoanDays,
			expectedErr: core.ErrOutOfStock,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// arrange
			command := issuebook.BuildCommand(uuid.New(), userID, bookID, tc.loanDays, now)

			// act
			result := issuebook.Decide(tc.history, command)

			// assert
			assert.ErrorIs(t, result.HasError(), tc.expectedErr)
			assert.False(t, result.HasEventsToAppend())
		})
	}
}
