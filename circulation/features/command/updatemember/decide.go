package updatemember

import (
	"github.com/AntonStoeckl/library-circulation/circulation/shared/core"
	"github.com/AntonStoeckl/library-circulation/eventstore"
)

type member struct {
	fullName string
	active   bool
}

// Decide implements the business logic of updating member details.
//
// Business Rules:
//
//	GIVEN: a registered member
//	WHEN: UpdateMember is received
//	THEN: MemberDetailsUpdated is generated with the merged details
//	ERROR: NotFound if the member does not exist or was removed
//	ERROR: InvalidRequest if the full name would become empty
//	IDEMPOTENCY: nothing is generated if no detail changes
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	userID := command.UserID.String()

	current, exists := project(history)
	if !exists {
		return core.ErrorDecision(core.NotFound("member %s", userID))
	}

	updated := current
	if command.FullName != nil {
		updated.fullName = *command.FullName
	}

	if command.Active != nil {
		updated.active = *command.Active
	}

	if updated.fullName == "" {
		return core.ErrorDecision(core.InvalidRequest("full name must not be empty"))
	}

	if updated == current {
		return core.IdempotentDecision()
	}

	return core.SuccessDecision(
		core.BuildMemberDetailsUpdated(userID, updated.fullName, updated.active, command.OccurredAt),
	)
}

func project(history core.DomainEvents) (member, bool) {
	m := member{}
	exists := false

	for _, event := range history {
		switch e := event.(type) {
		case core.MemberRegistered:
			m = member{fullName: e.FullName, active: true}
			exists = true

		case core.MemberDetailsUpdated:
			m = member{fullName: e.FullName, active: e.Active}

		case core.MemberRemoved:
			exists = false
		}
	}

	return m, exists
}

// BuildEventFilter creates the filter for the details of userID.
func BuildEventFilter(userID core.UserIDString) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(
			core.MemberRegisteredEventType,
			core.MemberDetailsUpdatedEventType,
			core.MemberRemovedEventType,
		).
		AndAnyPredicateOf(eventstore.P("UserID", userID)).
		Finalize()
}
