package editbook

import (
	"github.com/AntonStoeckl/library-circulation/circulation/shared/core"
	"github.com/AntonStoeckl/library-circulation/eventstore"
)

type book struct {
	title   string
	author  string
	isbn    core.ISBNString
	removed bool
}

// Decide implements the business logic of editing book details.
//
// Business Rules:
//
//	GIVEN: a book in the catalog
//	WHEN: EditBook is received
//	THEN: BookDetailsEdited is generated with the merged details and the ISBN it replaces
//	ERROR: NotFound if the book is not in the catalog
//	ERROR: InvalidRequest if title or author would become empty
//	ERROR: Conflict if another book in the catalog has the new ISBN
//	IDEMPOTENCY: nothing is generated if no detail changes
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	bookID := command.BookID.String()
	books := project(history)

	current, ok := books[bookID]
	if !ok || current.removed {
		return core.ErrorDecision(core.NotFound("book %s", bookID))
	}

	edited := current
	if command.Title != nil {
		edited.title = *command.Title
	}

	if command.Author != nil {
		edited.author = *command.Author
	}

	if command.ISBN != nil {
		edited.isbn = *command.ISBN
	}

	if edited.title == "" || edited.author == "" {
		return core.ErrorDecision(core.InvalidRequest("title and author must not be empty"))
	}

	if edited == current {
		return core.IdempotentDecision()
	}

	if edited.isbn != "" && edited.isbn != current.isbn {
		for otherID, other := range books {
			if otherID != bookID && !other.removed && other.isbn == edited.isbn {
				return core.ErrorDecision(core.Conflict("isbn %s is already in the catalog", edited.isbn))
			}
		}
	}

	return core.SuccessDecision(
		core.BuildBookDetailsEdited(
			bookID,
			edited.title,
			edited.author,
			edited.isbn,
			current.isbn,
			command.OccurredAt,
		),
	)
}

func project(history core.DomainEvents) map[core.BookIDString]book {
	books := make(map[core.BookIDString]book)

	for _, event := range history {
		switch e := event.(type) {
		case core.BookAddedToCatalog:
			books[e.BookID] = book{title: e.Title, author: e.Author, isbn: e.ISBN}

		case core.BookDetailsEdited:
			b := books[e.BookID]
			b.title, b.author, b.isbn = e.Title, e.Author, e.ISBN
			books[e.BookID] = b

		case core.BookRemovedFromCatalog:
			b := books[e.BookID]
			b.removed = true
			books[e.BookID] = b
		}
	}

	return books
}

// BuildEventFilter creates the filter for the consistency boundary of editing bookID.
// A non-empty newISBN adds every catalog event naming that ISBN.
func BuildEventFilter(bookID core.BookIDString, newISBN core.ISBNString) eventstore.Filter {
	byBookID := eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(
			core.BookAddedToCatalogEventType,
			core.BookDetailsEditedEventType,
			core.BookRemovedFromCatalogEventType,
		).
		AndAnyPredicateOf(eventstore.P("BookID", bookID))

	if newISBN == "" {
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
			eventstore.P("ISBN", newISBN),
			eventstore.P("PreviousISBN", newISBN),
		).
		Finalize()
}

// NewISBNOf returns the ISBN the command asks for, or empty when it keeps the current one.
func NewISBNOf(command Command) core.ISBNString {
	if command.ISBN == nil {
		return ""
	}

	return *command.ISBN
}
