package core

import (
	"time"
)

// MemberDetailsUpdatedEventType is the event type identifier.
const MemberDetailsUpdatedEventType = "MemberDetailsUpdated"

// MemberDetailsUpdated represents when the name or the active flag of a member changes.
type MemberDetailsUpdated struct {
	EventType  EventTypeString
	UserID     UserIDString
	FullName   string
	Active     bool
	OccurredAt OccurredAtTS
}

// BuildMemberDetailsUpdated creates a new MemberDetailsUpdated event.
func BuildMemberDetailsUpdated(
	userID UserIDString,
	fullName string,
	active bool,
	occurredAt time.Time,
) MemberDetailsUpdated {
	return MemberDetailsUpdated{
		EventType:  MemberDetailsUpdatedEventType,
		UserID:     userID,
		FullName:   fullName,
		Active:     active,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e MemberDetailsUpdated) IsEventType() string {
	return MemberDetailsUpdatedEventType
}

// HasOccurredAt returns when this event occurred.
func (e MemberDetailsUpdated) HasOccurredAt() time.Time {
	return e.OccurredAt
}
