package core

import (
	"time"
)

// BookReturnedEventType is the event type identifier.
const BookReturnedEventType = "BookReturned"

// BookReturned represents when a member returns a borrowed copy.
// FineCents is the late fine computed at return time, StockRestored is false
// when the book had already left the catalog.
type BookReturned struct {
	EventType     EventTypeString
	BorrowID      BorrowIDString
	UserID        UserIDString
	BookID        BookIDString
	FineCents     CentsInt
	StockRestored bool
	OccurredAt    OccurredAtTS
}

// BuildBookReturned creates a new BookReturned event.
func BuildBookReturned(
	borrowID BorrowIDString,
	userID UserIDString,
	bookID BookIDString,
	fineCents CentsInt,
	stockRestored bool,
	occurredAt time.Time,
) BookReturned {
	return BookReturned{
		EventType:     BookReturnedEventType,
		BorrowID:      borrowID,
		UserID:        userID,
		BookID:        bookID,
		FineCents:     fineCents,
		StockRestored: stockRestored,
		OccurredAt:    ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e BookReturned) IsEventType() string {
	return BookReturnedEventType
}

// HasOccurredAt returns when this event occurred.
func (e BookReturned) HasOccurredAt() time.Time {
	return e.OccurredAt
}
