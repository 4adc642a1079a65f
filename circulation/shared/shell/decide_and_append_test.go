package shell_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation/circulation/shared/core"
	"github.com/AntonStoeckl/library-circulation/circulation/shared/shell"
	"github.com/AntonStoeckl/library-circulation/eventstore"
	"github.com/AntonStoeckl/library-circulation/eventstore/memengine"
)

func feedbackFilter(userID string) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(core.FeedbackSubmittedEventType).
		AndAnyPredicateOf(eventstore.P("UserID", userID)).
		Finalize()
}

func Test_DecideAndAppend_AppendsDecidedEvents(t *testing.T) {
	// arrange
	ctx := context.Background()
	es, err := memengine.New()
	require.NoError(t, err)

	var seenHistory core.DomainEvents
	decide := func(history core.DomainEvents) core.DecisionResult {
		seenHistory = history
		return core.SuccessDecision(core.BuildFeedbackSubmitted("f-1", "u-1", "great", time.Now()))
	}

	// act
	result, err := shell.DecideAndAppend(ctx, es, feedbackFilter("u-1"), decide)

	// assert
	require.NoError(t, err)
	assert.True(t, result.HasEventsToAppend())
	assert.Empty(t, seenHistory)
	assert.Equal(t, 1, es.Len())

	_, err = shell.DecideAndAppend(ctx, es, feedbackFilter("u-1"), decide)
	require.NoError(t, err)
	assert.Len(t, seenHistory, 1)
}

func Test_DecideAndAppend_RejectionAppendsNothing(t *testing.T) {
	ctx := context.Background()
	es, err := memengine.New()
	require.NoError(t, err)

	decide := func(_ core.DomainEvents) core.DecisionResult {
		return core.ErrorDecision(core.InvalidRequest("empty message"))
	}

	result, err := shell.DecideAndAppend(ctx, es, feedbackFilter("u-1"), decide)

	assert.ErrorIs(t, err, core.ErrInvalidRequest)
	assert.ErrorIs(t, result.HasError(), core.ErrInvalidRequest)
	assert.Equal(t, 0, es.Len())
}

func Test_DecideAndAppend_IdempotentAppendsNothing(t *testing.T) {
	ctx := context.Background()
	es, err := memengine.New()
	require.NoError(t, err)

	result, err := shell.DecideAndAppend(ctx, es, feedbackFilter("u-1"), func(_ core.DomainEvents) core.DecisionResult {
		return core.IdempotentDecision()
	})

	require.NoError(t, err)
	assert.True(t, result.IsIdempotent())
	assert.Equal(t, 0, es.Len())
}

func Test_DecideAndAppend_ConflictsWhenTheBoundaryChangedInBetween(t *testing.T) {
	// arrange
	ctx := context.Background()
	es, err := memengine.New()
	require.NoError(t, err)

	decide := func(_ core.DomainEvents) core.DecisionResult {
		// a concurrent writer sneaks in between query and append
		concurrent, mErr := shell.StorableEventsFrom(core.DomainEvents{
			core.BuildFeedbackSubmitted("f-other", "u-1", "me first", time.Now()),
		})
		require.NoError(t, mErr)
		require.NoError(t, es.Append(ctx, feedbackFilter("u-1"), 0, concurrent[0]))

		return core.SuccessDecision(core.BuildFeedbackSubmitted("f-1", "u-1", "great", time.Now()))
	}

	// act
	_, err = shell.DecideAndAppend(ctx, es, feedbackFilter("u-1"), decide)

	// assert
	assert.ErrorIs(t, err, eventstore.ErrConcurrencyConflict)
	assert.Equal(t, 1, es.Len())
}
