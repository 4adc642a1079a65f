package updatemember_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation/circulation/features/command/updatemember"
	"github.com/AntonStoeckl/library-circulation/circulation/shared/core"
	. "github.com/AntonStoeckl/library-circulation/testutil/fixtures" //nolint:revive
)

func Test_Decide_Success_Deactivates(t *testing.T) {
	// arrange
	userID := uuid.New()
	inactive := false

	// act
	result := updatemember.Decide(History(Member(userID, FixedNow)), updatemember.BuildCommand(userID, nil, &inactive, FixedNow))

	// assert
	require.Len(t, result.Events, 1)
	updated, ok := result.Events[0].(core.MemberDetailsUpdated)
	require.True(t, ok)
	assert.False(t, updated.Active)
	assert.Equal(t, "Ada Lovelace", updated.FullName)
}

func Test_Decide_Idempotent_WhenNothingChanges(t *testing.T) {
	userID := uuid.New()
	name, active := "Ada Lovelace", true

	result := updatemember.Decide(History(Member(userID, FixedNow)), updatemember.BuildCommand(userID, &name, &active, FixedNow))

	assert.True(t, result.IsIdempotent())
}

func Test_Decide_BusinessErrors(t *testing.T) {
	userID := uuid.New()
	empty := " "
	name := "Ada"

	testCases := []struct {
		description string
		history     core.DomainEvents
		command     updatemember.Command
		expectedErr error
	}{
		{
			description: "unknown member",
			command:     updatemember.BuildCommand(userID, &name, nil, FixedNow),
			expectedErr: core.ErrNotFound,
		},
		{
			description: "removed member",
			history: History(
				Member(userID, FixedNow),
				core.BuildMemberRemoved(userID.String(), userID.String()+"@example.org", FixedNow),
			),
			command:     updatemember.BuildCommand(userID, &name, nil, FixedNow),
			expectedErr: core.ErrNotFound,
		},
		{
			description: "empty name",
			history:     History(Member(userID, FixedNow)),
			command:     updatemember.BuildCommand(userID, &empty, nil, FixedNow),
			expectedErr: core.ErrInvalidRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			// act
			result := updatemember.Decide(tc.history, tc.command)

			// assert
			assert.ErrorIs(t, result.Err, tc.expectedErr)
			assert.False(t, result.HasEventsToAppend())
		})
	}
}
