package core

import (
	"time"
)

// MemberRemovedEventType is the event type identifier.
const MemberRemovedEventType = "MemberRemoved"

// MemberRemoved represents when a member account is deleted.
// Email is carried along so that the address becomes available again.
type MemberRemoved struct {
	EventType  EventTypeString
	UserID     UserIDString
	Email      EmailString
	OccurredAt OccurredAtTS
}

// BuildMemberRemoved creates a new MemberRemoved event.
func BuildMemberRemoved(
	userID UserIDString,
	email EmailString,
	occurredAt time.Time,
) MemberRemoved {
	return MemberRemoved{
		EventType:  MemberRemovedEventType,
		UserID:     userID,
		Email:      email,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e MemberRemoved) IsEventType() string {
	return MemberRemovedEventType
}

// HasOccurredAt returns when this event occurred.
func (e MemberRemoved) HasOccurredAt() time.Time {
	return e.OccurredAt
}
