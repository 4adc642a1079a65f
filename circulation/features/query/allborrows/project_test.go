package allborrows_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation/circulation/features/query/allborrows"
	. "github.com/AntonStoeckl/library-circulation/testutil/fixtures" //nolint:revive
)

func Test_ProjectAllBorrows_JoinsMembersAndBooks(t *testing.T) {
	// arrange
	ada, grace, dune := uuid.New(), uuid.New(), uuid.New()
	first, second := uuid.New(), uuid.New()
	history := History(
		Member(ada, FixedNow),
		BookInCatalog(dune, 2, FixedNow),
		Issued(first, ada, dune, FixedNow.Add(14*24*time.Hour), FixedNow),
		Issued(second, grace, dune, FixedNow.Add(14*24*time.Hour), FixedNow.Add(time.Hour)),
	)

	// act
	result := allborrows.ProjectAllBorrows(history, 4)

	// assert
	require.Equal(t, 2, result.Count)
	assert.Equal(t, second.String(), result.Borrows[0].BorrowID)
	assert.Nil(t, result.Borrows[0].Member)
	require.NotNil(t, result.Borrows[1].Member)
	assert.Equal(t, ada.String()+"@example.org", result.Borrows[1].Member.Email)
	require.NotNil(t, result.Borrows[1].Book)
	assert.Equal(t, "Dune", result.Borrows[1].Book.Title)
	assert.Equal(t, uint(4), result.GetSequenceNumber())
}
