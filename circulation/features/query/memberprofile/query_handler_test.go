package memberprofile_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation/circulation/features/query/memberprofile"
	"github.com/AntonStoeckl/library-circulation/circulation/shared/core"
	"github.com/AntonStoeckl/library-circulation/eventstore/memengine"
	. "github.com/AntonStoeckl/library-circulation/testutil/fixtures" //nolint:revive
)

func Test_QueryHandler_Handle_ByIDAndByEmail(t *testing.T) {
	// arrange
	ctx := context.Background()
	es, err := memengine.New()
	require.NoError(t, err)

	userID := uuid.New()
	Seed(t, es, History(MemberWithCard(userID, FixedNow), Member(uuid.New(), FixedNow))...)

	handler := memberprofile.NewQueryHandler(es)

	// act
	byID, byIDErr := handler.Handle(ctx, memberprofile.BuildQuery(userID))
	byEmail, byEmailErr := handler.Handle(ctx, memberprofile.BuildQueryByEmail(" "+userID.String()+"@EXAMPLE.org"))

	// assert
	require.NoError(t, byIDErr)
	require.NoError(t, byEmailErr)
	assert.Equal(t, byID, byEmail)
	assert.Equal(t, "LC-0000CAFE", byID.LibraryCardID)
	assert.Equal(t, "hash", byID.PasswordHash)
}

func Test_QueryHandler_Handle_NotFound(t *testing.T) {
	ctx := context.Background()
	es, err := memengine.New()
	require.NoError(t, err)

	removedID := uuid.New()
	Seed(t, es, Member(removedID, FixedNow), core.BuildMemberRemoved(removedID.String(), removedID.String()+"@example.org", FixedNow))

	handler := memberprofile.NewQueryHandler(es)

	_, byIDErr := handler.Handle(ctx, memberprofile.BuildQuery(removedID))
	_, byEmailErr := handler.Handle(ctx, memberprofile.BuildQueryByEmail(removedID.String()+"@example.org"))

	assert.ErrorIs(t, byIDErr, core.ErrNotFound)
	assert.ErrorIs(t, byEmailErr, core.ErrNotFound)
}
