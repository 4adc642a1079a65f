package editbook_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation/circulation/features/command/editbook"
	"github.com/AntonStoeckl/library-circulation/circulation/shared/core"
	. "github.com/AntonStoeckl/library-circulation/testutil/fixtures" //nolint:revive
)

func ptr[T any](v T) *T {
	return &v
}

func Test_Decide_Success_MergesChangedDetails(t *testing.T) {
	// arrange
	bookID := uuid.New()
	history := History(BookWithISBNInCatalog(bookID, "111", FixedNow))
	command := editbook.BuildCommand(bookID, ptr("Dune Messiah"), nil, ptr("222"), FixedNow)

	// act
	result := editbook.Decide(history, command)

	// assert
	require.Len(t, result.Events, 1)
	edited, ok := result.Events[0].(core.BookDetailsEdited)
	require.True(t, ok)
	assert.Equal(t, "Dune Messiah", edited.Title)
	assert.Equal(t, "Frank Herbert", edited.Author)
	assert.Equal(t, "222", edited.ISBN)
	assert.Equal(t, "111", edited.PreviousISBN)
}

func Test_Decide_Success_ClearsTheISBN(t *testing.T) {
	bookID := uuid.New()
	history := History(BookWithISBNInCatalog(bookID, "111", FixedNow))

	result := editbook.Decide(history, editbook.BuildCommand(bookID, nil, nil, ptr(""), FixedNow))

	require.Len(t, result.Events, 1)
	assert.Empty(t, result.Events[0].(core.BookDetailsEdited).ISBN)
}

func Test_Decide_Idempotent_WhenNothingChanges(t *testing.T) {
	bookID := uuid.New()
	history := History(BookWithISBNInCatalog(bookID, "111", FixedNow))

	result := editbook.Decide(history, editbook.BuildCommand(bookID, ptr("Dune"), nil, ptr("111"), FixedNow))

	assert.True(t, result.IsIdempotent())
}

func Test_Decide_BusinessErrors(t *testing.T) {
	bookID, otherBookID := uuid.New(), uuid.New()

	testCases := []struct {
		description string
		history     core.DomainEvents
		command     editbook.Command
		expectedErr error
	}{
		{
			description: "unknown book",
			command:     editbook.BuildCommand(bookID, ptr("Dune"), nil, nil, FixedNow),
			expectedErr: core.ErrNotFound,
		},
		{
			description: "removed book",
			history:     History(BookInCatalog(bookID, 1, FixedNow), BookRemoved(bookID, FixedNow)),
			command:     editbook.BuildCommand(bookID, ptr("Dune"), nil, nil, FixedNow),
			expectedErr: core.ErrNotFound,
		},
		{
			description: "empty title",
			history:     History(BookInCatalog(bookID, 1, FixedNow)),
			command:     editbook.BuildCommand(bookID, ptr(" "), nil, nil, FixedNow),
			expectedErr: core.ErrInvalidRequest,
		},
		{
			description: "isbn of another book",
			history: History(
				BookInCatalog(bookID, 1, FixedNow),
				BookWithISBNInCatalog(otherBookID, "111", FixedNow),
			),
			command:     editbook.BuildCommand(bookID, nil, nil, ptr("111"), FixedNow),
			expectedErr: core.ErrConflict,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			// act
			result := editbook.Decide(tc.history, tc.command)

			// assert
			assert.ErrorIs(t, result.Err, tc.expectedErr)
			assert.False(t, result.HasEventsToAppend())
		})
	}
}
