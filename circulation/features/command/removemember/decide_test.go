package removemember_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation/circulation/features/command/removemember"
	"github.com/AntonStoeckl/library-circulation/circulation/shared/core"
	. "github.com/AntonStoeckl/library-circulation/testutil/fixtures" //nolint:revive
)

func Test_Decide_Success_ReleasesTheEmail(t *testing.T) {
	userID := uuid.New()

	result := removemember.Decide(History(Member(userID, FixedNow)), removemember.BuildCommand(userID, FixedNow))

	require.Len(t, result.Events, 1)
	removed := result.Events[0].(core.MemberRemoved)
	assert.Equal(t, userID.String(), removed.UserID)
	assert.Equal(t, userID.String()+"@example.org", removed.Email)
}

func Test_Decide_BusinessErrors(t *testing.T) {
	userID := uuid.New()

	testCases := []struct {
		description string
		history     core.DomainEvents
	}{
		{"unknown member", nil},
		{"already removed", History(
			Member(userID, FixedNow),
			core.BuildMemberRemoved(userID.String(), userID.String()+"@example.org", FixedNow),
		)},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			// act
			result := removemember.Decide(tc.history, removemember.BuildCommand(userID, FixedNow))

			// assert
			assert.ErrorIs(t, result.Err, core.ErrNotFound)
			assert.False(t, result.HasEventsToAppend())
		})
	}
}
