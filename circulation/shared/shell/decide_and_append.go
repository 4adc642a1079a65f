package shell

import (
	"context"

	"github.com/AntonStoeckl/library-circulation/circulation/shared/core"
	"github.com/AntonStoeckl/library-circulation/eventstore"
)

// DecideFunc is the pure decision of a command slice, applied to the history of its boundary.
type DecideFunc func(history core.DomainEvents) core.DecisionResult

// DecideAndAppend runs one attempt of the command cycle every command handler shares:
// query the boundary, rebuild the domain events, decide, and append the decided events
// guarded by the max sequence number that was read.
//
// The returned error is either a business rejection from the decision or an
// infrastructure error, eventstore.ErrConcurrencyConflict included.
func DecideAndAppend(
	ctx context.Context,
	es EventStore,
	filter eventstore.Filter,
	decide DecideFunc,
) (core.DecisionResult, error) {
	storableEvents, maxSequenceNumber, err := es.Query(ctx, filter)
	if err != nil {
		return core.DecisionResult{}, err
	}

	history, err := DomainEventsFrom(storableEvents)
	if err != nil {
		return core.DecisionResult{}, err
	}

	result := decide(history)

	if err = result.HasError(); err != nil {
		return result, err
	}

	if !result.HasEventsToAppend() {
		return result, nil
	}

	toAppend, err := StorableEventsFrom(result.Events)
	if err != nil {
		return core.DecisionResult{}, err
	}

	if err = es.Append(ctx, filter, maxSequenceNumber, toAppend[0], toAppend[1:]...); err != nil {
		return core.DecisionResult{}, err
	}

	return result, nil
}
