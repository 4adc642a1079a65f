package issuelibrarycard

import (
	"github.com/AntonStoeckl/library-circulation/circulation/shared/core"
	"github.com/AntonStoeckl/library-circulation/eventstore"
)

// Decide implements the business logic of issuing a library card.
//
// Business Rules:
//
//	GIVEN: a registered member without a library card
//	WHEN: IssueLibraryCard is received
//	THEN: LibraryCardIssued is generated
//	ERROR: NotFound if the member does not exist or was removed
//	IDEMPOTENCY: nothing is generated if the member already holds a card
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	userID := command.UserID.String()

	var exists, hasCard bool

	for _, event := range history {
		switch event.(type) {
		case core.MemberRegistered:
			exists, hasCard = true, false
		case core.LibraryCardIssued:
			hasCard = true
		case core.MemberRemoved:
			exists = false
		}
	}

	if !exists {
		return core.ErrorDecision(core.NotFound("member %s", userID))
	}

	if hasCard {
		return core.IdempotentDecision()
	}

	return core.SuccessDecision(core.BuildLibraryCardIssued(userID, command.LibraryCardID, command.OccurredAt))
}

// BuildEventFilter creates the filter for the library card of userID.
func BuildEventFilter(userID core.UserIDString) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(
			core.MemberRegisteredEventType,
			core.LibraryCardIssuedEventType,
			core.MemberRemovedEventType,
		).
		AndAnyPredicateOf(eventstore.P("UserID", userID)).
		Finalize()
}
