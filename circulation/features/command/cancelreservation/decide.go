package cancelreservation

import (
	"github.com/AntonStoeckl/library-circulation/circulation/shared/core"
	"github.com/AntonStoeckl/library-circulation/eventstore"
)

type state struct {
	reservation core.BookReserved
	exists      bool
	isPending   bool
}

// Decide implements the business logic of cancelling a reservation.
//
// Business Rules:
//
//	GIVEN: a reservation with ReservationID placed by the member with UserID
//	WHEN: CancelReservation is received
//	THEN: ReservationCancelled is generated
//	ERROR: NotFound if the reservation does not exist or belongs to another member
//	ERROR: Conflict if the reservation is no longer pending (cancelled and fulfilled are terminal)
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	reservationID := command.ReservationID.String()
	s := project(history, reservationID)

	if !s.exists || s.reservation.UserID != command.UserID.String() {
		return core.ErrorDecision(core.NotFound("reservation %s", reservationID))
	}

	if !s.isPending {
		return core.ErrorDecision(core.Conflict("reservation %s is not pending", reservationID))
	}

	return core.SuccessDecision(
		core.BuildReservationCancelled(reservationID, s.reservation.UserID, s.reservation.BookID, command.OccurredAt),
	)
}

func project(history core.DomainEvents, reservationID core.ReservationIDString) state {
	s := state{}

	for _, event := range history {
		switch e := event.(type) {
		case core.BookReserved:
			if e.ReservationID == reservationID {
				s.reservation = e
				s.exists = true
				s.isPending = true
			}

		case core.ReservationCancelled:
			if e.ReservationID == reservationID {
				s.isPending = false
			}

		case core.ReservationFulfilled:
			if e.ReservationID == reservationID {
				s.isPending = false
			}
		}
	}

	return s
}

// BuildEventFilter creates the filter for the consistency boundary of one reservation.
func BuildEventFilter(reservationID core.ReservationIDString) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(
			core.BookReservedEventType,
			core.ReservationCancelledEventType,
			core.ReservationFulfilledEventType,
		).
		AndAnyPredicateOf(eventstore.P("ReservationID", reservationID)).
		Finalize()
}
