package issuebook

import (
	"github.com/AntonStoeckl/library-circulation/circulation/shared/core"
	"github.com/AntonStoeckl/library-circulation/eventstore"
)

type state struct {
	memberIsActive       bool
	memberHasCard        bool
	bookIsInCatalog      bool
	totalCopies          int
	availableCopies      int
	pendingReservationID core.ReservationIDString
}

// Decide implements the business logic of lending a book copy to a member.
//
// Business Rules:
//
//	GIVEN: a member with UserID and a book with BookID
//	WHEN: IssueBook is received
//	THEN: BookIssued is generated with DueAt = now + LoanDays
//	AND: ReservationFulfilled is generated first when the member holds a pending reservation of this book
//	ERROR: InvalidRequest if LoanDays is outside of 1..60
//	ERROR: PermissionDenied if the member has no library card (unknown or removed members have none)
//	ERROR: PermissionDenied if the member account is deactivated
//	ERROR: NotFound if the book is not in the catalog
//	ERROR: OutOfStock if no copy is available
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	if command.LoanDays < core.MinLoanDays || command.LoanDays > core.MaxLoanDays {
		return core.ErrorDecision(core.InvalidRequest("loan days must be between %d and %d", core.MinLoanDays, core.MaxLoanDays))
	}

	userID := command.UserID.String()
	bookID := command.BookID.String()
	s := project(history, userID, bookID)

	if !s.memberHasCard {
		return core.ErrorDecision(core.PermissionDenied("a library card is required to borrow books"))
	}

	if !s.memberIsActive {
		return core.ErrorDecision(core.PermissionDenied("the member account is deactivated"))
	}

	if !s.bookIsInCatalog {
		return core.ErrorDecision(core.NotFound("book %s", bookID))
	}

	if s.availableCopies <= 0 {
		return core.ErrorDecision(core.OutOfStock(bookID))
	}

	borrowID := command.BorrowID.String()
	issued := core.BuildBookIssued(
		borrowID,
		userID,
		bookID,
		core.DueAt(command.OccurredAt, command.LoanDays),
		command.OccurredAt,
	)

	if s.pendingReservationID != "" {
		fulfilled := core.BuildReservationFulfilled(s.pendingReservationID, userID, bookID, borrowID, command.OccurredAt)

		return core.SuccessDecision(fulfilled, issued)
	}

	return core.SuccessDecision(issued)
}

func project(history core.DomainEvents, userID core.UserIDString, bookID core.BookIDString) state {
	s := state{}

	for _, event := range history {
		switch e := event.(type) {
		case core.MemberRegistered:
			if e.UserID == userID {
				s.memberIsActive = true
			}

		case core.MemberDetailsUpdated:
			if e.UserID == userID {
				s.memberIsActive = e.Active
			}

		case core.LibraryCardIssued:
			if e.UserID == userID {
				s.memberHasCard = true
			}

		case core.MemberRemoved:
			if e.UserID == userID {
				s.memberIsActive = false
				s.memberHasCard = false
			}

		case core.BookAddedToCatalog:
			if e.BookID == bookID {
				s.bookIsInCatalog = true
				s.totalCopies = e.TotalCopies
				s.availableCopies = e.TotalCopies
			}

		case core.BookStockAdjusted:
			if e.BookID == bookID {
				s.totalCopies = e.TotalCopies
				s.availableCopies = e.AvailableCopies
			}

		case core.BookRemovedFromCatalog:
			if e.BookID == bookID {
				s.bookIsInCatalog = false
			}

		case core.BookIssued:
			if e.BookID == bookID {
				s.availableCopies--
			}

		case core.BookReturned:
			if e.BookID == bookID && e.StockRestored && s.availableCopies < s.totalCopies {
				s.availableCopies++
			}

		case core.BookReserved:
			if e.UserID == userID && e.BookID == bookID {
				s.pendingReservationID = e.ReservationID
			}

		case core.ReservationCancelled:
			if e.ReservationID == s.pendingReservationID {
				s.pendingReservationID = ""
			}

		case core.ReservationFulfilled:
			if e.ReservationID == s.pendingReservationID {
				s.pendingReservationID = ""
			}
		}
	}

	return s
}

// BuildEventFilter creates the filter for the consistency boundary of issuing bookID to userID.
func BuildEventFilter(userID core.UserIDString, bookID core.BookIDString) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(
			core.MemberRegisteredEventType,
			core.MemberDetailsUpdatedEventType,
			core.LibraryCardIssuedEventType,
			core.MemberRemovedEventType,
		).
		AndAnyPredicateOf(eventstore.P("UserID", userID)).
		OrMatching().
		AnyEventTypeOf(
			core.BookAddedToCatalogEventType,
			core.BookStockAdjustedEventType,
			core.BookRemovedFromCatalogEventType,
			core.BookIssuedEventType,
			core.BookReturnedEventType,
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
