package returnbook

import (
	"github.com/AntonStoeckl/library-circulation/circulation/shared/core"
	"github.com/AntonStoeckl/library-circulation/eventstore"
)

// Mode controls what happens when the borrowed book is no longer in the catalog.
type Mode int

const (
	// ModeBestEffort accepts the return and skips the stock restoration.
	ModeBestEffort Mode = iota

	// ModeStrict rejects the return with NotFound.
	ModeStrict
)

type state struct {
	borrow          core.BookIssued
	borrowExists    bool
	dueAt           core.DueAtTS
	isReturned      bool
	bookIsInCatalog bool
}

// Decide implements the business logic of returning a borrowed copy.
//
// Business Rules:
//
//	GIVEN: a borrow with BorrowID of the member with UserID
//	WHEN: ReturnBook is received
//	THEN: BookReturned is generated, carrying the fine for every full calendar day past the
//	      (possibly renewed) due date, 1000 cents per day
//	AND: the copy goes back to the stock if the book is still in the catalog
//	ERROR: NotFound if the borrow does not exist or belongs to another member
//	ERROR: Conflict if the copy was already returned
//	ERROR: NotFound if the book left the catalog and mode is ModeStrict
func Decide(history core.DomainEvents, command Command, mode Mode) core.DecisionResult {
	borrowID := command.BorrowID.String()
	userID := command.UserID.String()
	s := project(history, borrowID)

	if !s.borrowExists || s.borrow.UserID != userID {
		return core.ErrorDecision(core.NotFound("borrow %s", borrowID))
	}

	if s.isReturned {
		return core.ErrorDecision(core.Conflict("borrow %s was already returned", borrowID))
	}

	if !s.bookIsInCatalog && mode == ModeStrict {
		return core.ErrorDecision(core.NotFound("book %s", s.borrow.BookID))
	}

	return core.SuccessDecision(
		core.BuildBookReturned(
			borrowID,
			userID,
			s.borrow.BookID,
			core.FineFor(s.dueAt, command.OccurredAt),
			s.bookIsInCatalog,
			command.OccurredAt,
		),
	)
}

func project(history core.DomainEvents, borrowID core.BorrowIDString) state {
	s := state{}

	for _, event := range history {
		switch e := event.(type) {
		case core.BookIssued:
			if e.BorrowID == borrowID {
				s.borrow = e
				s.borrowExists = true
				s.dueAt = e.DueAt
			}

		case core.BorrowRenewed:
			if e.BorrowID == borrowID {
				s.dueAt = e.DueAt
			}

		case core.BookReturned:
			if e.BorrowID == borrowID {
				s.isReturned = true
			}

		case core.BookAddedToCatalog:
			s.bookIsInCatalog = true

		case core.BookRemovedFromCatalog:
			s.bookIsInCatalog = false
		}
	}

	return s
}

// BuildBorrowFilter creates the filter for all events of one borrow.
func BuildBorrowFilter(borrowID core.BorrowIDString) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(
			core.BookIssuedEventType,
			core.BorrowRenewedEventType,
			core.BookReturnedEventType,
		).
		AndAnyPredicateOf(eventstore.P("BorrowID", borrowID)).
		Finalize()
}

// BuildEventFilter creates the filter for the consistency boundary of returning borrowID of bookID.
func BuildEventFilter(borrowID core.BorrowIDString, bookID core.BookIDString) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(
			core.BookIssuedEventType,
			core.BorrowRenewedEventType,
			core.BookReturnedEventType,
		).
		AndAnyPredicateOf(eventstore.P("BorrowID", borrowID)).
		OrMatching().
		AnyEventTypeOf(
			core.BookAddedToCatalogEventType,
			core.BookRemovedFromCatalogEventType,
		).
		AndAnyPredicateOf(eventstore.P("BookID", bookID)).
		Finalize()
}
