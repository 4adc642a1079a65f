package core

import (
	"time"
)

// BookReservedEventType is the event type identifier.
const BookReservedEventType = "BookReserved"

// BookReserved represents when a member places a reservation for a book.
type BookReserved struct {
	EventType     EventTypeString
	ReservationID ReservationIDString
	UserID        UserIDString
	BookID        BookIDString
	OccurredAt    OccurredAtTS
}

// BuildBookReserved creates a new BookReserved event.
func BuildBookReserved(
	reservationID ReservationIDString,
	userID UserIDString,
	bookID BookIDString,
	occurredAt time.Time,
) BookReserved {
	return BookReserved{
		EventType:     BookReservedEventType,
		ReservationID: reservationID,
		UserID:        userID,
		BookID:        bookID,
		OccurredAt:    ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e BookReserved) IsEventType() string {
	return BookReservedEventType
}

// HasOccurredAt returns when this event occurred.
func (e BookReserved) HasOccurredAt() time.Time {
	return e.OccurredAt
}
