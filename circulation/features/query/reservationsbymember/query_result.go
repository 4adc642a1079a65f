package reservationsbymember

import (
	"time"

	"github.com/AntonStoeckl/library-circulation/circulation/shared/core"
)

// Reservation statuses.
const (
	StatusPending   = "pending"
	StatusCancelled = "cancelled"
	StatusFulfilled = "fulfilled"
)

// ReservationInfo is one reservation of the member.
type ReservationInfo struct {
	ReservationID core.ReservationIDString
	BookID        core.BookIDString
	Status        string
	ReservedAt    time.Time
	UpdatedAt     time.Time
}

// ReservationsByMember is the result of the query.
type ReservationsByMember struct {
	UserID         core.UserIDString
	Reservations   []ReservationInfo
	Count          int
	SequenceNumber uint
}

// GetSequenceNumber returns the sequence number of the last event the result was projected from.
func (r ReservationsByMember) GetSequenceNumber() uint {
	return r.SequenceNumber
}
