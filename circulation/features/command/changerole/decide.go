package changerole

import (
	"github.com/AntonStoeckl/library-circulation/circulation/shared/core"
	"github.com/AntonStoeckl/library-circulation/eventstore"
)

// Decide implements the business logic of changing a member's role.
//
// Business Rules:
//
//	GIVEN: a registered member
//	WHEN: ChangeRole is received with member or librarian
//	THEN: MemberRoleChanged is generated
//	ERROR: InvalidRequest if the role is unknown or empty
//	ERROR: NotFound if the member does not exist or was removed
//	IDEMPOTENCY: nothing is generated if the member already has the role
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	userID := command.UserID.String()

	if command.Role == "" {
		return core.ErrorDecision(core.InvalidRequest("role is required"))
	}

	role, err := core.ParseRole(command.Role)
	if err != nil {
		return core.ErrorDecision(err)
	}

	var (
		exists  bool
		current core.Role
	)

	for _, event := range history {
		switch e := event.(type) {
		case core.MemberRegistered:
			exists, current = true, e.Role
		case core.MemberRoleChanged:
			current = e.Role
		case core.MemberRemoved:
			exists = false
		}
	}

	if !exists {
		return core.ErrorDecision(core.NotFound("member %s", userID))
	}

	if current == role {
		return core.IdempotentDecision()
	}

	return core.SuccessDecision(core.BuildMemberRoleChanged(userID, role, command.OccurredAt))
}

// BuildEventFilter creates the filter for the role of userID.
func BuildEventFilter(userID core.UserIDString) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(
			core.MemberRegisteredEventType,
			core.MemberRoleChangedEventType,
			core.MemberRemovedEventType,
		).
		AndAnyPredicateOf(eventstore.P("UserID", userID)).
		Finalize()
}
