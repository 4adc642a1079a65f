package core

import (
	"time"
)

// FeedbackSubmittedEventType is the event type identifier.
const FeedbackSubmittedEventType = "FeedbackSubmitted"

// FeedbackSubmitted represents when a member leaves feedback.
type FeedbackSubmitted struct {
	EventType  EventTypeString
	FeedbackID FeedbackIDString
	UserID     UserIDString
	Message    string
	OccurredAt OccurredAtTS
}

// BuildFeedbackSubmitted creates a new FeedbackSubmitted event.
func BuildFeedbackSubmitted(
	feedbackID FeedbackIDString,
	userID UserIDString,
	message string,
	occurredAt time.Time,
) FeedbackSubmitted {
	return FeedbackSubmitted{
		EventType:  FeedbackSubmittedEventType,
		FeedbackID: feedbackID,
		UserID:     userID,
		Message:    message,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e FeedbackSubmitted) IsEventType() string {
	return FeedbackSubmittedEventType
}

// HasOccurredAt returns when this event occurred.
func (e FeedbackSubmitted) HasOccurredAt() time.Time {
	return e.OccurredAt
}
