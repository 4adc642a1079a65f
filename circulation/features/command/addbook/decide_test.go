package addbook_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation/circulation/features/command/addbook"
	"github.com/AntonStoeckl/library-circulation/circulation/shared/core"
	. "github.com/AntonStoeckl/library-circulation/testutil/fixtures" //nolint:revive
)

func Test_Decide_Success_AllCopiesAreAvailable(t *testing.T) {
	// arrange
	bookID := uuid.New()
	command := addbook.BuildCommand(bookID, " Dune ", "Frank Herbert", "978-0441172719", 3, FixedNow)

	// act
	result := addbook.Decide(core.DomainEvents{}, command)

	// assert
	require.Len(t, result.Events, 1)
	added, ok := result.Events[0].(core.BookAddedToCatalog)
	require.True(t, ok)
	assert.Equal(t, "Dune", added.Title)
	assert.Equal(t, 3, added.TotalCopies)
}

func Test_Decide_Success_ISBNReleasedByAnEdit(t *testing.T) {
	otherBookID := uuid.New()
	history := History(
		BookWithISBNInCatalog(otherBookID, "111", FixedNow),
		core.BuildBookDetailsEdited(otherBookID.String(), "Dune", "Frank Herbert", "222", "111", FixedNow),
	)

	result := addbook.Decide(history, addbook.BuildCommand(uuid.New(), "Dune", "Frank Herbert", "111", 1, FixedNow))

	assert.NoError(t, result.Err)
	assert.True(t, result.HasEventsToAppend())
}

func Test_Decide_Success_ISBNReleasedByARemoval(t *testing.T) {
	otherBookID := uuid.New()
	history := History(
		BookWithISBNInCatalog(otherBookID, "111", FixedNow),
		core.BuildBookRemovedFromCatalog(otherBookID.String(), "111", FixedNow),
	)

	result := addbook.Decide(history, addbook.BuildCommand(uuid.New(), "Dune", "Frank Herbert", "111", 1, FixedNow))

	assert.True(t, result.HasEventsToAppend())
}

func Test_Decide_Idempotent_WhenTheBookWasAlreadyAdded(t *testing.T) {
	bookID := uuid.New()

	result := addbook.Decide(
		History(BookInCatalog(bookID, 1, FixedNow)),
		addbook.BuildCommand(bookID, "Dune", "Frank Herbert", "", 1, FixedNow),
	)

	assert.True(t, result.IsIdempotent())
}

func Test_Decide_BusinessErrors(t *testing.T) {
	testCases := []struct {
		description string
		history     core.DomainEvents
		command     addbook.Command
		expectedErr error
	}{
		{
			description: "missing title",
			command:     addbook.BuildCommand(uuid.New(), "  ", "Frank Herbert", "", 1, FixedNow),
			expectedErr: core.ErrInvalidRequest,
		},
		{
			description: "missing author",
			command:     addbook.BuildCommand(uuid.New(), "Dune", "", "", 1, FixedNow),
			expectedErr: core.ErrInvalidRequest,
		},
		{
			description: "no copies",
			command:     addbook.BuildCommand(uuid.New(), "Dune", "Frank Herbert", "", 0, FixedNow),
			expectedErr: core.ErrInvalidRequest,
		},
		{
			description: "duplicate isbn",
			history:     History(BookWithISBNInCatalog(uuid.New(), "111", FixedNow)),
			command:     addbook.BuildCommand(uuid.New(), "Dune", "Frank Herbert", "111", 1, FixedNow),
			expectedErr: core.ErrConflict,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			// act
			result := addbook.Decide(tc.history, tc.command)

			// assert
			assert.ErrorIs(t, result.Err, tc.expectedErr)
			assert.False(t, result.HasEventsToAppend())
		})
	}
}
