package removebook

import (
	"github.com/AntonStoeckl/library-circulation/circulation/shared/core"
	"github.com/AntonStoeckl/library-circulation/eventstore"
)

// Decide implements the business logic of removing a book.
//
// Business Rules:
//
//	GIVEN: a book in the catalog
//	WHEN: RemoveBook is received
//	THEN: BookRemovedFromCatalog is generated, releasing its ISBN
//	ERROR: NotFound if the book is not in the catalog
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	bookID := command.BookID.String()

	var (
		inCatalog bool
		isbn      core.ISBNString
	)

	for _, event := range history {
		switch e := event.(type) {
		case core.BookAddedToCatalog:
			inCatalog, isbn = true, e.ISBN
		case core.BookDetailsEdited:
			isbn = e.ISBN
		case core.BookRemovedFromCatalog:
			inCatalog = false
		}
	}

	if !inCatalog {
		return core.ErrorDecision(core.NotFound("book %s", bookID))
	}

	return core.SuccessDecision(core.BuildBookRemovedFromCatalog(bookID, isbn, command.OccurredAt))
}

// BuildEventFilter creates the filter for the catalog entry of bookID.
func BuildEventFilter(bookID core.BookIDString) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(
			core.BookAddedToCatalogEventType,
			core.BookDetailsEditedEventType,
			core.BookRemovedFromCatalogEventType,
		).
		AndAnyPredicateOf(eventstore.P("BookID", bookID)).
		Finalize()
}
