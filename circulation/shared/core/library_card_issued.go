package core

import (
	"time"
)

// LibraryCardIssuedEventType is the event type identifier.
const LibraryCardIssuedEventType = "LibraryCardIssued"

// LibraryCardIssued represents when a member receives a library card.
type LibraryCardIssued struct {
	EventType     EventTypeString
	UserID        UserIDString
	LibraryCardID LibraryCardIDString
	OccurredAt    OccurredAtTS
}

// BuildLibraryCardIssued creates a new LibraryCardIssued event.
func BuildLibraryCardIssued(
	userID UserIDString,
	libraryCardID LibraryCardIDString,
	occurredAt time.Time,
) LibraryCardIssued {
	return LibraryCardIssued{
		EventType:     LibraryCardIssuedEventType,
		UserID:        userID,
		LibraryCardID: libraryCardID,
		OccurredAt:    ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e LibraryCardIssued) IsEventType() string {
	return LibraryCardIssuedEventType
}

// HasOccurredAt returns when this event occurred.
func (e LibraryCardIssued) HasOccurredAt() time.Time {
	return e.OccurredAt
}
