package core

import (
	"time"
)

// MemberRegisteredEventType is the event type identifier.
const MemberRegisteredEventType = "MemberRegistered"

// MemberRegistered represents when a new member account is created.
type MemberRegistered struct {
	EventType    EventTypeString
	UserID       UserIDString
	FullName     string
	Email        EmailString
	PasswordHash string
	Role         Role
	OccurredAt   OccurredAtTS
}

// BuildMemberRegistered creates a new MemberRegistered event.
func BuildMemberRegistered(
	userID UserIDString,
	fullName string,
	email EmailString,
	passwordHash string,
	role Role,
	occurredAt time.Time,
) MemberRegistered {
	return MemberRegistered{
		EventType:    MemberRegisteredEventType,
		UserID:       userID,
		FullName:     fullName,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		OccurredAt:   ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e MemberRegistered) IsEventType() string {
	return MemberRegisteredEventType
}

// HasOccurredAt returns when this event occurred.
func (e MemberRegistered) HasOccurredAt() time.Time {
	return e.OccurredAt
}
