package renewborrow_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation/circulation/features/command/renewborrow"
	"github.com/AntonStoeckl/library-circulation/circulation/shared/core"
	. "github.com/AntonStoeckl/library-circulation/testutil/fixtures" //nolint:revive
)

func Test_Decide_Success_ExtendsDueDateBySevenDays(t *testing.T) {
	// arrange
	borrowID, userID, bookID := uuid.New(), uuid.New(), uuid.New()
	dueAt := FixedNow.Add(3 * 24 * time.Hour)

	history := History(Issued(borrowID, userID, bookID, dueAt, FixedNow.Add(-24*time.Hour)))

	// act
	result := renewborrow.Decide(history, renewborrow.BuildCommand(borrowID, userID, FixedNow))

	// assert
	require.True(t, result.HasEventsToAppend())
	renewed, ok := result.Events[0].(core.BorrowRenewed)
	require.True(t, ok)
	assert.Equal(t, dueAt.Add(7*24*time.Hour), renewed.DueAt)
	assert.Equal(t, 1, renewed.RenewalCount)
	assert.Equal(t, bookID.String(), renewed.BookID)
}

func Test_Decide_Success_WhenFinesArePaidInFull(t *testing.T) {
	// arrange
	borrowID, oldBorrowID, userID, bookID := uuid.New(), uuid.New(), uuid.New(), uuid.New()

	history := History(
		Issued(oldBorrowID, userID, bookID, FixedNow.Add(-10*24*time.Hour), FixedNow.Add(-20*24*time.Hour)),
		Returned(oldBorrowID, userID, bookID, 2000, FixedNow.Add(-8*24*time.Hour)),
		Paid(userID, 2000, FixedNow.Add(-7*24*time.Hour)),
		Issued(borrowID, userID, bookID, FixedNow.Add(24*time.Hour), FixedNow.Add(-24*time.Hour)),
	)

	// act
	result := renewborrow.Decide(history, renewborrow.BuildCommand(borrowID, userID, FixedNow))

	// assert
	assert.NoError(t, result.HasError())
}

func Test_Decide_BusinessErrors(t *testing.T) {
	borrowID, otherBorrowID, userID, bookID := uuid.New(), uuid.New(), uuid.New(), uuid.New()
	now := FixedNow
	dueAt := now.Add(24 * time.Hour)

	testCases := []struct {
		name           string
		history        core.DomainEvents
		userID         uuid.UUID
		expectedErr    error
		expectedReason string
	}{
		{
			name:        "unknown borrow",
			history:     History(),
			userID:      userID,
			expectedErr: core.ErrNotFound,
		},
		{
			name:        "borrow of another member",
			history:     History(Issued(borrowID, userID, bookID, dueAt, now)),
			userID:      uuid.New(),
			expectedErr: core.ErrNotFound,
		},
		{
			name: "already returned",
			history: History(
				Issued(borrowID, userID, bookID, dueAt, now),
				Returned(borrowID, userID, bookID, 0, now),
			),
			userID:         userID,
			expectedErr:    core.ErrInvalidRenewal,
			expectedReason: core.RenewalReasonAlreadyReturned,
		},
		{
			name: "already returned wins over limit reached and outstanding fine",
			history: History(
				Issued(borrowID, userID, bookID, dueAt, now),
				Renewed(borrowID, userID, bookID, dueAt.Add(7*24*time.Hour), now),
				Returned(borrowID, userID, bookID, 5000, now),
			),
			userID:         userID,
			expectedErr:    core.ErrInvalidRenewal,
			expectedReason: core.RenewalReasonAlreadyReturned,
		},
		{
			name: "renewal limit reached",
			history: History(
				Issued(borrowID, userID, bookID, dueAt, now),
				Renewed(borrowID, userID, bookID, dueAt.Add(7*24*time.Hour), now),
			),
			userID:         userID,
			expectedErr:    core.ErrInvalidRenewal,
			expectedReason: core.RenewalReasonLimitReached,
		},
		{
			name: "limit reached wins over outstanding fine",
			history: History(
				Issued(otherBorrowID, userID, bookID, dueAt, now),
				Returned(otherBorrowID, userID, bookID, 1000, now),
				Issued(borrowID, userID, bookID, dueAt, now),
				Renewed(borrowID, userID, bookID, dueAt.Add(7*24*time.Hour), now),
			),
			userID:         userID,
			expectedErr:    core.ErrInvalidRenewal,
			expectedReason: core.RenewalReasonLimitReached,
		},
		{
			name: "outstanding fine",
			history: History(
				Issued(otherBorrowID, userID, bookID, dueAt, now),
				Returned(otherBorrowID, userID, bookID, 3000, now),
				Paid(userID, 1000, now),
				Issued(borrowID, userID, bookID, dueAt, now),
			),
			userID:         userID,
			expectedErr:    core.ErrInvalidRenewal,
			expectedReason: core.RenewalReasonOutstandingFine,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			result := renewborrow.Decide(tc.history, renewborrow.BuildCommand(borrowID, tc.userID, now))

			// assert
			err := result.HasError()
			assert.ErrorIs(t, err, tc.expectedErr)

			if tc.expectedReason != "" {
				assert.ErrorContains(t, err, tc.expectedReason)
			}
		})
	}
}
