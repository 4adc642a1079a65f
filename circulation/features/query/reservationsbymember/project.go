package reservationsbymember

import (
	"cmp"
	"slices"

	"github.com/AntonStoeckl/library-circulation/circulation/shared/core"
	"github.com/AntonStoeckl/library-circulation/eventstore"
)

// ProjectReservationsByMember lists the reservations of the queried member, newest first.
func ProjectReservationsByMember(history core.DomainEvents, query Query, maxSequenceNumber uint) ReservationsByMember {
	userID := query.UserID.String()
	reservations := make(map[core.ReservationIDString]*ReservationInfo)

	for _, event := range history {
		switch e := event.(type) {
		case core.BookReserved:
			if e.UserID == userID {
				reservations[e.ReservationID] = &ReservationInfo{
					ReservationID: e.ReservationID,
					BookID:        e.BookID,
					Status:        StatusPending,
					ReservedAt:    e.OccurredAt,
					UpdatedAt:     e.OccurredAt,
				}
			}

		case core.ReservationCancelled:
			if r, ok := reservations[e.ReservationID]; ok {
				r.Status, r.UpdatedAt = StatusCancelled, e.OccurredAt
			}

		case core.ReservationFulfilled:
			if r, ok := reservations[e.ReservationID]; ok {
				r.Status, r.UpdatedAt = StatusFulfilled, e.OccurredAt
			}
		}
	}

	result := make([]ReservationInfo, 0, len(reservations))
	for _, r := range reservations {
		result = append(result, *r)
	}

	slices.SortFunc(result, func(a, b ReservationInfo) int {
		if c := b.ReservedAt.Compare(a.ReservedAt); c != 0 {
			return c
		}

		return cmp.Compare(a.ReservationID, b.ReservationID)
	})

	return ReservationsByMember{
		UserID:         userID,
		Reservations:   result,
		Count:          len(result),
		SequenceNumber: maxSequenceNumber,
	}
}

// BuildEventFilter creates the filter for the reservation events of userID.
func BuildEventFilter(userID core.UserIDString) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(
			core.BookReservedEventType,
			core.ReservationCancelledEventType,
			core.ReservationFulfilledEventType,
		).
		AndAnyPredicateOf(eventstore.P("UserID", userID)).
		Finalize()
}
