package submitfeedback

import (
	"unicode/utf8"

	"github.com/AntonStoeckl/library-circulation/circulation/shared/core"
	"github.com/AntonStoeckl/library-circulation/eventstore"
)

// Decide implements the business logic of submitting feedback.
//
// Business Rules:
//
//	GIVEN: a message of 1 to MaxMessageLength characters
//	WHEN: SubmitFeedback is received
//	THEN: FeedbackSubmitted is generated
//	ERROR: InvalidRequest if the message is empty or too long
//	IDEMPOTENCY: a repeated submission with the same FeedbackID generates nothing
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	length := utf8.RuneCountInString(command.Message)
	if length == 0 || length > MaxMessageLength {
		return core.ErrorDecision(core.InvalidRequest("message must have 1 to %d characters", MaxMessageLength))
	}

	if len(history) > 0 {
		return core.IdempotentDecision()
	}

	return core.SuccessDecision(
		core.BuildFeedbackSubmitted(
			command.FeedbackID.String(),
			command.UserID.String(),
			command.Message,
			command.OccurredAt,
		),
	)
}

// BuildEventFilter creates the filter for one feedback record.
func BuildEventFilter(feedbackID core.FeedbackIDString) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(core.FeedbackSubmittedEventType).
		AndAnyPredicateOf(eventstore.P("FeedbackID", feedbackID)).
		Finalize()
}
