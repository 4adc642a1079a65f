package core

import (
	"time"
)

// BookIssuedEventType is the event type identifier.
const BookIssuedEventType = "BookIssued"

// BookIssued represents when a copy of a book is lent to a member.
type BookIssued struct {
	EventType  EventTypeString
	BorrowID   BorrowIDString
	UserID     UserIDString
	BookID     BookIDString
	DueAt      DueAtTS
	OccurredAt OccurredAtTS
}

// BuildBookIssued creates a new BookIssued event.
func BuildBookIssued(
	borrowID BorrowIDString,
	userID UserIDString,
	bookID BookIDString,
	dueAt time.Time,
	occurredAt time.Time,
) BookIssued {
	return BookIssued{
		EventType:  BookIssuedEventType,
		BorrowID:   borrowID,
		UserID:     userID,
		BookID:     bookID,
		DueAt:      ToOccurredAt(dueAt),
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e BookIssued) IsEventType() string {
	return BookIssuedEventType
}

// HasOccurredAt returns when this event occurred.
func (e BookIssued) HasOccurredAt() time.Time {
	return e.OccurredAt
}
