package registermember

import (
	"strings"

	"github.com/AntonStoeckl/library-circulation/circulation/shared/core"
	"github.com/AntonStoeckl/library-circulation/eventstore"
)

// Decide implements the business logic of registering a member.
//
// Business Rules:
//
//	GIVEN: no current member with the same email
//	WHEN: RegisterMember is received
//	THEN: MemberRegistered is generated, the member is active and has no library card
//	ERROR: InvalidRequest if full name, email or password hash is missing, or the role is unknown
//	ERROR: Conflict if the email belongs to a current member
//	IDEMPOTENCY: a repeated registration of the same UserID generates nothing
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	userID := command.UserID.String()

	if command.FullName == "" || command.PasswordHash == "" {
		return core.ErrorDecision(core.InvalidRequest("full name and password are required"))
	}

	if !strings.Contains(command.Email, "@") {
		return core.ErrorDecision(core.InvalidRequest("invalid email %q", command.Email))
	}

	role, err := core.ParseRole(command.Role)
	if err != nil {
		return core.ErrorDecision(err)
	}

	holder := ""
	for _, event := range history {
		switch e := event.(type) {
		case core.MemberRegistered:
			holder = e.UserID
		case core.MemberRemoved:
			holder = ""
		}
	}

	if holder == userID {
		return core.IdempotentDecision()
	}

	if holder != "" {
		return core.ErrorDecision(core.Conflict("email %s is already registered", command.Email))
	}

	return core.SuccessDecision(
		core.BuildMemberRegistered(
			userID,
			command.FullName,
			command.Email,
			command.PasswordHash,
			role,
			command.OccurredAt,
		),
	)
}

// BuildEventFilter creates the filter for the registrations of email.
func BuildEventFilter(email core.EmailString) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(
			core.MemberRegisteredEventType,
			core.MemberRemovedEventType,
		).
		AndAnyPredicateOf(eventstore.P("Email", email)).
		Finalize()
}
