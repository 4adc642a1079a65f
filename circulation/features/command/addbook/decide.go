package addbook

import (
	"github.com/AntonStoeckl/library-circulation/circulation/shared/core"
	"github.com/AntonStoeckl/library-circulation/eventstore"
)

type catalogEntry struct {
	isbn    core.ISBNString
	removed bool
}

// Decide implements the business logic of adding a book.
//
// Business Rules:
//
//	GIVEN: a book with title, author, an optional ISBN and at least one copy
//	WHEN: AddBook is received
//	THEN: BookAddedToCatalog is generated with all copies available
//	ERROR: InvalidRequest if title or author is missing or TotalCopies < 1
//	ERROR: Conflict if another book in the catalog has the same ISBN
//	IDEMPOTENCY: a repeated AddBook for the same BookID generates nothing
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	bookID := command.BookID.String()

	if command.Title == "" || command.Author == "" {
		return core.ErrorDecision(core.InvalidRequest("title and author are required"))
	}

	if command.TotalCopies < 1 {
		return core.ErrorDecision(core.InvalidRequest("total copies must be at least 1"))
	}

	entries := project(history)

	if _, ok := entries[bookID]; ok {
		return core.IdempotentDecision()
	}

	if command.ISBN != "" && isbnIsTaken(entries, command.ISBN) {
		return core.ErrorDecision(core.Conflict("isbn %s is already in the catalog", command.ISBN))
	}

	return core.SuccessDecision(
		core.BuildBookAddedToCatalog(
			bookID,
			command.Title,
			command.Author,
			command.ISBN,
			command.TotalCopies,
			command.OccurredAt,
		),
	)
}

func project(history core.DomainEvents) map[core.BookIDString]catalogEntry {
	entries := make(map[core.BookIDString]catalogEntry)

	for _, event := range history {
		switch e := event.(type) {
		case core.BookAddedToCatalog:
			entries[e.BookID] = catalogEntry{isbn: e.ISBN}

		case core.BookDetailsEdited:
			entry := entries[e.BookID]
			entry.isbn = e.ISBN
			entries[e.BookID] = entry

		case core.BookRemovedFromCatalog:
			entry := entries[e.BookID]
			entry.removed = true
			entries[e.BookID] = entry
		}
	}

	return entries
}

func isbnIsTaken(entries map[core.BookIDString]catalogEntry, isbn core.ISBNString) bool {
	for _, entry := range entries {
		if !entry.removed && entry.isbn == isbn {
			return true
		}
	}

	return false
}

// BuildEventFilter creates the filter for the consistency boundary of adding bookID with isbn.
func BuildEventFilter(bookID core.BookIDString, isbn core.ISBNString) eventstore.Filter {
	byBookID := eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(
			core.BookAddedToCatalogEventType,
		).
		AndAnyPredicateOf(eventstore.P("BookID", bookID))

	if isbn == "" {
		return byBookID.Finalize()
	}

	return byBookID.
		OrMatching().
		AnyEventTypeOf(
			core.BookAddedToCatalogEventType,
			core.BookDetailsEditedEventType,
			core.BookRemovedFromCatalogEventType,
		).
		AndAnyPredicateOf(
			eventstore.P("ISBN", isbn),
			eventstore.P("PreviousISBN", isbn),
		).
		Finalize()
}
