package members_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation/circulation/features/query/members"
	"github.com/AntonStoeckl/library-circulation/circulation/shared/core"
	. "github.com/AntonStoeckl/library-circulation/testutil/fixtures" //nolint:revive
)

func Test_ProjectMembers(t *testing.T) {
	// arrange
	ada, grace, gone := uuid.New(), uuid.New(), uuid.New()
	history := History(
		MemberWithCard(ada, FixedNow),
		Member(grace, FixedNow.Add(time.Hour)),
		core.BuildMemberRoleChanged(grace.String(), core.RoleLibrarian, FixedNow),
		core.BuildMemberDetailsUpdated(grace.String(), "Grace Hopper", false, FixedNow),
		Member(gone, FixedNow.Add(2*time.Hour)),
		core.BuildMemberRemoved(gone.String(), gone.String()+"@example.org", FixedNow),
	)

	// act
	result := members.ProjectMembers(history, 7)

	// assert
	require.Equal(t, 2, result.Count)

	first := result.Members[0]
	assert.Equal(t, grace.String(), first.UserID)
	assert.Equal(t, core.RoleLibrarian, first.Role)
	assert.Equal(t, "Grace Hopper", first.FullName)
	assert.False(t, first.Active)
	assert.Empty(t, first.LibraryCardID)

	second := result.Members[1]
	assert.Equal(t, ada.String(), second.UserID)
	assert.Equal(t, "LC-0000CAFE", second.LibraryCardID)
	assert.True(t, second.Active)
}
