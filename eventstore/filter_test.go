package eventstore_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-circulation/eventstore"
)

func Test_FilterBuilder_MatchingAnyEvent_CreatesEmptyFilter(t *testing.T) {
	filter := eventstore.BuildEventFilter().MatchingAnyEvent()

	assert.Empty(t, filter.Items())
}

func Test_FilterBuilder_SanitizesEventTypes(t *testing.T) {
	// act
	filter := eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf("BookReturned", "", "BookIssued", "BookReturned").
		Finalize()

	// assert
	assert.Len(t, filter.Items(), 1)
	assert.Equal(t, []string{"BookIssued", "BookReturned"}, filter.Items()[0].EventTypes())
	assert.Empty(t, filter.Items()[0].Predicates())
}

func Test_FilterBuilder_SanitizesPredicates(t *testing.T) {
	// act
	filter := eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf("BookIssued").
		AndAnyPredicateOf(
			eventstore.P("UserID", "u-1"),
			eventstore.P("BookID", "b-1"),
			eventstore.P("", "orphan"),
			eventstore.P("BookID", ""),
			eventstore.P("UserID", "u-1"),
		).
		Finalize()

	// assert
	item := filter.Items()[0]
	assert.Equal(t, []eventstore.FilterPredicate{eventstore.P("BookID", "b-1"), eventstore.P("UserID", "u-1")}, item.Predicates())
	assert.False(t, item.AllPredicatesMustMatch())
}

func Test_FilterBuilder_AllPredicatesOf_SetsConjunction(t *testing.T) {
	filter := eventstore.BuildEventFilter().
		Matching().
		AllPredicatesOf(eventstore.P("UserID", "u-1"), eventstore.P("BookID", "b-1")).
		AndAnyEventTypeOf("BookReserved").
		Finalize()

	item := filter.Items()[0]
	assert.True(t, item.AllPredicatesMustMatch())
	assert.Equal(t, []string{"BookReserved"}, item.EventTypes())
}

func Test_FilterBuilder_OrMatching_CreatesMultipleItems(t *testing.T) {
	filter := eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf("BookAddedToCatalog").
		AndAnyPredicateOf(eventstore.P("BookID", "b-1")).
		OrMatching().
		AnyEventTypeOf("BookReserved").
		AndAllPredicatesOf(eventstore.P("BookID", "b-1"), eventstore.P("UserID", "u-1")).
		Finalize()

	assert.Len(t, filter.Items(), 2)
	assert.False(t, filter.Items()[0].AllPredicatesMustMatch())
	assert.True(t, filter.Items()[1].AllPredicatesMustMatch())
}

func Test_FilterBuilder_PartialBuildersCanBeReused(t *testing.T) {
	base := eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf("BookIssued")

	first := base.AndAnyPredicateOf(eventstore.P("BookID", "b-1")).Finalize()
	second := base.AndAnyPredicateOf(eventstore.P("BookID", "b-2")).Finalize()

	assert.Equal(t, "b-1", first.Items()[0].Predicates()[0].Val())
	assert.Equal(t, "b-2", second.Items()[0].Predicates()[0].Val())
}
