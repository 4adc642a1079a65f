package removemember

import (
	"github.com/AntonStoeckl/library-circulation/circulation/shared/core"
	"github.com/AntonStoeckl/library-circulation/eventstore"
)

// Decide implements the business logic of removing a member.
//
// Business Rules:
//
//	GIVEN: a registered member
//	WHEN: RemoveMember is received
//	THEN: MemberRemoved is generated, carrying the email it releases
//	ERROR: NotFound if the member does not exist or was already removed
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	userID := command.UserID.String()

	var (
		exists bool
		email  core.EmailString
	)

	for _, event := range history {
		switch e := event.(type) {
		case core.MemberRegistered:
			exists, email = true, e.Email
		case core.MemberRemoved:
			exists = false
		}
	}

	if !exists {
		return core.ErrorDecision(core.NotFound("member %s", userID))
	}

	return core.SuccessDecision(core.BuildMemberRemoved(userID, email, command.OccurredAt))
}

// BuildEventFilter creates the filter for the existence of userID.
func BuildEventFilter(userID core.UserIDString) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(
			core.MemberRegisteredEventType,
			core.MemberRemovedEventType,
		).
		AndAnyPredicateOf(eventstore.P("UserID", userID)).
		Finalize()
}
