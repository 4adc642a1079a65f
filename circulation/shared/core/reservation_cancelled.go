package core

import (
	"time"
)

// ReservationCancelledEventType is the event type identifier.
const ReservationCancelledEventType = "ReservationCancelled"

// ReservationCancelled represents when a member cancels a pending reservation.
type ReservationCancelled struct {
	EventType     EventTypeString
	ReservationID ReservationIDString
	UserID        UserIDString
	BookID        BookIDString
	OccurredAt    OccurredAtTS
}

// BuildReservationCancelled creates a new ReservationCancelled event.
func BuildReservationCancelled(
	reservationID ReservationIDString,
	userID UserIDString,
	bookID BookIDString,
	occurredAt time.Time,
) ReservationCancelled {
	return ReservationCancelled{
		EventType:     ReservationCancelledEventType,
		ReservationID: reservationID,
		UserID:        userID,
		BookID:        bookID,
		OccurredAt:    ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e ReservationCancelled) IsEventType() string {
	return ReservationCancelledEventType
}

// HasOccurredAt returns when this event occurred.
func (e ReservationCancelled) HasOccurredAt() time.Time {
	return e.OccurredAt
}
