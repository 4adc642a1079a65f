package core

import (
	"time"
)

// ReservationFulfilledEventType is the event type identifier.
const ReservationFulfilledEventType = "ReservationFulfilled"

// ReservationFulfilled represents when a pending reservation is consumed by issuing the book to the reserving member.
type ReservationFulfilled struct {
	EventType     EventTypeString
	ReservationID ReservationIDString
	UserID        UserIDString
	BookID        BookIDString
	BorrowID      BorrowIDString
	OccurredAt    OccurredAtTS
}

// BuildReservationFulfilled creates a new ReservationFulfilled event.
func BuildReservationFulfilled(
	reservationID ReservationIDString,
	userID UserIDString,
	bookID BookIDString,
	borrowID BorrowIDString,
	occurredAt time.Time,
) ReservationFulfilled {
	return ReservationFulfilled{
		EventType:     ReservationFulfilledEventType,
		ReservationID: reservationID,
		UserID:        userID,
		BookID:        bookID,
		BorrowID:      borrowID,
		OccurredAt:    ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e ReservationFulfilled) IsEventType() string {
	return ReservationFulfilledEventType
}

// HasOccurredAt returns when this event occurred.
func (e ReservationFulfilled) HasOccurredAt() time.Time {
	return e.OccurredAt
}
