package reservebook

import (
	"github.com/AntonStoeckl/library-circulation/circulation/shared/core"
	"github.com/AntonStoeckl/library-circulation/eventstore"
)

type state struct {
	bookIsInCatalog       bool
	pendingReservationIDs map[core.ReservationIDString]struct{}
}

// Decide implements the business logic of reserving a book.
//
// Business Rules:
//
//	GIVEN: a book with BookID and a member with UserID
//	WHEN: ReserveBook is received
//	THEN: BookReserved is generated, availability is not touched
//	ERROR: NotFound if the book is not in the catalog
//	ERROR: Conflict if the member already holds a pending reservation of this book
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	userID := command.UserID.String()
	bookID := command.BookID.String()
	s := project(history, userID, bookID)

	if !s.bookIsInCatalog {
		return core.ErrorDecision(core.NotFound("book %s", bookID))
	}

	if len(s.pendingReservationIDs) > 0 {
		return core.ErrorDecision(core.Conflict("a pending reservation of book %s already exists", bookID))
	}

	return core.SuccessDecision(
		core.BuildBookReserved(command.ReservationID.String(), userID, bookID, command.OccurredAt),
	)
}

func project(history core.DomainEvents, userID core.UserIDString, bookID core.BookIDString) state {
	s := state{pendingReservationIDs: map[core.ReservationIDString]struct{}{}}

	for _, event := range history {
		switch e := event.(type) {
		case core.BookAddedToCatalog:
			if e.BookID == bookID {
				s.bookIsInCatalog = true
			}

		case core.BookRemovedFromCatalog:
			if e.BookID == bookID {
				s.bookIsInCatalog = false
			}

		case core.BookReserved:
			if e.UserID == userID && e.BookID == bookID {
				s.pendingReservationIDs[e.ReservationID] = struct{}{}
			}

		case core.ReservationCancelled:
			delete(s.pendingReservationIDs, e.ReservationID)

		case core.ReservationFulfilled:
			delete(s.pendingReservationIDs, e.ReservationID)
		}
	}

	return s
}

// BuildEventFilter creates the filter for the consistency boundary of userID reserving bookID.
func BuildEventFilter(userID core.UserIDString, bookID core.BookIDString) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(
			core.BookAddedToCatalogEventType,
			core.BookRemovedFromCatalogEventType,
		).
		AndAnyPredicateOf(eventstore.P("BookID", bookID)).
		OrMatching().
		AnyEventTypeOf(
			core.BookReservedEventType,
			core.ReservationCancelledEventType,
			core.ReservationFulfilledEventType,
		).
		AndAllPredicatesOf(eventstore.P("UserID", userID), eventstore.P("BookID", bookID)).
		Finalize()
}
