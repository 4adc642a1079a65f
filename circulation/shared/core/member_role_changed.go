package core

import (
	"time"
)

// MemberRoleChangedEventType is the event type identifier.
const MemberRoleChangedEventType = "MemberRoleChanged"

// MemberRoleChanged represents when a librarian changes the role of a member.
type MemberRoleChanged struct {
	EventType  EventTypeString
	UserID     UserIDString
	Role       Role
	OccurredAt OccurredAtTS
}

// BuildMemberRoleChanged creates a new MemberRoleChanged event.
func BuildMemberRoleChanged(
	userID UserIDString,
	role Role,
	occurredAt time.Time,
) MemberRoleChanged {
	return MemberRoleChanged{
		EventType:  MemberRoleChangedEventType,
		UserID:     userID,
		Role:       role,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e MemberRoleChanged) IsEventType() string {
	return MemberRoleChangedEventType
}

// HasOccurredAt returns when this event occurred.
func (e MemberRoleChanged) HasOccurredAt() time.Time {
	return e.OccurredAt
}
