package registermember_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation/circulation/features/command/registermember"
	"github.com/AntonStoeckl/library-circulation/circulation/shared/core"
	. "github.com/AntonStoeckl/library-circulation/testutil/fixtures" //nolint:revive
)

func Test_Decide_Success_RegistersAnActiveMember(t *testing.T) {
	// arrange
	userID := uuid.New()
	command := registermember.BuildCommand(userID, "Ada Lovelace", " Ada@Example.org ", "hash", "", FixedNow)

	// act
	result := registermember.Decide(core.DomainEvents{}, command)

	// assert
	require.Len(t, result.Events, 1)
	registered, ok := result.Events[0].(core.MemberRegistered)
	require.True(t, ok)
	assert.Equal(t, "ada@example.org", registered.Email)
	assert.Equal(t, core.RoleMember, registered.Role)
}

func Test_Decide_Success_EmailOfARemovedMember(t *testing.T) {
	removedID := uuid.New()
	email := removedID.String() + "@example.org"
	history := History(Member(removedID, FixedNow), core.BuildMemberRemoved(removedID.String(), email, FixedNow))

	result := registermember.Decide(history, registermember.BuildCommand(uuid.New(), "Ada", email, "hash", core.RoleLibrarian.String(), FixedNow))

	require.Len(t, result.Events, 1)
	assert.Equal(t, core.RoleLibrarian, result.Events[0].(core.MemberRegistered).Role)
}

func Test_Decide_Idempotent_WhenTheSameUserIsRegisteredAgain(t *testing.T) {
	userID := uuid.New()

	result := registermember.Decide(
		History(Member(userID, FixedNow)),
		registermember.BuildCommand(userID, "Ada", userID.String()+"@example.org", "hash", "", FixedNow),
	)

	assert.True(t, result.IsIdempotent())
}

func Test_Decide_BusinessErrors(t *testing.T) {
	takenID := uuid.New()

	testCases := []struct {
		description string
		history     core.DomainEvents
		command     registermember.Command
		expectedErr error
	}{
		{
			description: "missing name",
			command:     registermember.BuildCommand(uuid.New(), "", "ada@example.org", "hash", "", FixedNow),
			expectedErr: core.ErrInvalidRequest,
		},
		{
			description: "missing password",
			command:     registermember.BuildCommand(uuid.New(), "Ada", "ada@example.org", "", "", FixedNow),
			expectedErr: core.ErrInvalidRequest,
		},
		{
			description: "invalid email",
			command:     registermember.BuildCommand(uuid.New(), "Ada", "ada", "hash", "", FixedNow),
			expectedErr: core.ErrInvalidRequest,
		},
		{
			description: "unknown role",
			command:     registermember.BuildCommand(uuid.New(), "Ada", "ada@example.org", "hash", "admin", FixedNow),
			expectedErr: core.ErrInvalidRequest,
		},
		{
			description: "email taken",
			history:     History(Member(takenID, FixedNow)),
			command:     registermember.BuildCommand(uuid.New(), "Ada", takenID.String()+"@example.org", "hash", "", FixedNow),
			expectedErr: core.ErrConflict,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			// act
			result := registermember.Decide(tc.history, tc.command)

			// assert
			assert.ErrorIs(t, result.Err, tc.expectedErr)
			assert.False(t, result.HasEventsToAppend())
		})
	}
}
