package bookcatalog_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation/circulation/features/query/bookcatalog"
	"github.com/AntonStoeckl/library-circulation/circulation/shared/core"
	. "github.com/AntonStoeckl/library-circulation/testutil/fixtures" //nolint:revive
)

func givenCatalog(dune, emma, removed uuid.UUID) core.DomainEvents {
	return History(
		BookWithISBNInCatalog(dune, "978-0441172719", FixedNow),
		core.BuildBookAddedToCatalog(emma.String(), "Emma", "Jane Austen", "", 2, FixedNow.Add(time.Hour)),
		BookInCatalog(removed, 1, FixedNow.Add(2*time.Hour)),
		BookRemoved(removed, FixedNow.Add(3*time.Hour)),
		Issued(uuid.New(), uuid.New(), emma, FixedNow, FixedNow),
	)
}

func Test_ProjectCatalog_ListsNewestFirstWithAvailableCopies(t *testing.T) {
	// arrange
	dune, emma, removed := uuid.New(), uuid.New(), uuid.New()

	// act
	result := bookcatalog.ProjectCatalog(givenCatalog(dune, emma, removed), bookcatalog.BuildQuery(""), 5)

	// assert
	require.Equal(t, 2, result.Count)
	assert.Equal(t, emma.String(), result.Books[0].BookID)
	assert.Equal(t, 1, result.Books[0].AvailableCopies)
	assert.Equal(t, dune.String(), result.Books[1].BookID)
}

func Test_ProjectCatalog_Search(t *testing.T) {
	dune, emma, removed := uuid.New(), uuid.New(), uuid.New()

	testCases := []struct {
		search   string
		expected []string
	}{
		{"dune", []string{dune.String()}},
		{"AUSTEN", []string{emma.String()}},
		{"0441", []string{dune.String()}},
		{"e", []string{emma.String(), dune.String()}},
		{"tolkien", []string{}},
	}

	for _, tc := range testCases {
		t.Run(tc.search, func(t *testing.T) {
			result := bookcatalog.ProjectCatalog(givenCatalog(dune, emma, removed), bookcatalog.BuildQuery(tc.search), 5)

			ids := make([]string, 0, len(result.Books))
			for _, b := range result.Books {
				ids = append(ids, b.BookID)
			}
			assert.Equal(t, tc.expected, ids)
		})
	}
}
