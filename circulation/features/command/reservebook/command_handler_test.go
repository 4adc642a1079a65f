package reservebook_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation/circulation/features/command/issuebook"
	"github.com/AntonStoeckl/library-circulation/circulation/features/command/reservebook"
	"github.com/AntonStoeckl/library-circulation/circulation/shared/core"
	"github.com/AntonStoeckl/library-circulation/eventstore/memengine"
	. "github.com/AntonStoeckl/library-circulation/testutil/fixtures" //nolint:revive
)

func Test_CommandHandler_ReserveThenIssue(t *testing.T) {
	// arrange
	ctx := context.Background()
	es, err := memengine.New()
	require.NoError(t, err)

	userID, bookID := uuid.New(), uuid.New()
	Seed(t, es, History(MemberWithCard(userID, FixedNow), BookInCatalog(bookID, 1, FixedNow))...)

	reserve := reservebook.NewCommandHandler(es)
	issue := issuebook.NewCommandHandler(es)

	// act & assert
	_, err = reserve.Handle(ctx, reservebook.BuildCommand(uuid.New(), userID, bookID, time.Now()))
	require.NoError(t, err)

	_, err = reserve.Handle(ctx, reservebook.BuildCommand(uuid.New(), userID, bookID, time.Now()))
	assert.ErrorIs(t, err, core.ErrConflict, "a second pending reservation must be rejected")

	_, err = issue.Handle(ctx, issuebook.BuildCommand(uuid.New(), userID, bookID, core.DefaultLoanDays, time.Now()))
	require.NoError(t, err)

	// the issue fulfilled the reservation, so the member may reserve again
	_, err = reserve.Handle(ctx, reservebook.BuildCommand(uuid.New(), userID, bookID, time.Now()))
	assert.NoError(t, err)
}
