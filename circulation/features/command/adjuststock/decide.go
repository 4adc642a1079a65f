package adjuststock

import (
	"github.com/AntonStoeckl/library-circulation/circulation/shared/core"
	"github.com/AntonStoeckl/library-circulation/eventstore"
)

type state struct {
	bookIsInCatalog bool
	total           int
	available       int
}

// Decide implements the business logic of adjusting the stock of a book.
//
// Business Rules:
//
//	GIVEN: a book in the catalog
//	WHEN: AdjustStock is received with TotalCopies >= 1
//	THEN: BookStockAdjusted is generated with the new absolute counts
//	AND: without an explicit value, available moves by the same delta as total, clamped to [0, total]
//	ERROR: NotFound if the book is not in the catalog
//	ERROR: InvalidRequest if TotalCopies < 1 or an explicit available value is outside [0, total]
//	IDEMPOTENCY: nothing is generated if both counts stay the same
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	bookID := command.BookID.String()

	if command.TotalCopies < 1 {
		return core.ErrorDecision(core.InvalidRequest("total copies must be at least 1"))
	}

	s := project(history, bookID)

	if !s.bookIsInCatalog {
		return core.ErrorDecision(core.NotFound("book %s", bookID))
	}

	var available int

	switch {
	case command.AvailableCopies != nil:
		available = *command.AvailableCopies
		if available < 0 || available > command.TotalCopies {
			return core.ErrorDecision(
				core.InvalidRequest("available copies must be between 0 and %d", command.TotalCopies),
			)
		}

	default:
		available = min(max(s.available+command.TotalCopies-s.total, 0), command.TotalCopies)
	}

	if available == s.available && command.TotalCopies == s.total {
		return core.IdempotentDecision()
	}

	return core.SuccessDecision(
		core.BuildBookStockAdjusted(bookID, command.TotalCopies, available, command.OccurredAt),
	)
}

func project(history core.DomainEvents, bookID core.BookIDString) state {
	s := state{}

	for _, event := range history {
		switch e := event.(type) {
		case core.BookAddedToCatalog:
			if e.BookID == bookID {
				s.bookIsInCatalog = true
				s.total = e.TotalCopies
				s.available = e.TotalCopies
			}

		case core.BookStockAdjusted:
			if e.BookID == bookID {
				s.total = e.TotalCopies
				s.available = e.AvailableCopies
			}

		case core.BookIssued:
			if e.BookID == bookID {
				s.available = max(s.available-1, 0)
			}

		case core.BookReturned:
			if e.BookID == bookID && e.StockRestored {
				s.available = min(s.available+1, s.total)
			}

		case core.BookRemovedFromCatalog:
			if e.BookID == bookID {
				s.bookIsInCatalog = false
			}
		}
	}

	return s
}

// BuildEventFilter creates the filter for the stock of bookID.
func BuildEventFilter(bookID core.BookIDString) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(
			core.BookAddedToCatalogEventType,
			core.BookStockAdjustedEventType,
			core.BookRemovedFromCatalogEventType,
			core.BookIssuedEventType,
			core.BookReturnedEventType,
		).
		AndAnyPredicateOf(eventstore.P("BookID", bookID)).
		Finalize()
}
