package core

import (
	"time"
)

// BookAddedToCatalogEventType is the event type identifier.
const BookAddedToCatalogEventType = "BookAddedToCatalog"

// BookAddedToCatalog represents when a librarian adds a new book to the catalog.
type BookAddedToCatalog struct {
	EventType   EventTypeString
	BookID      BookIDString
	Title       string
	Author      string
	ISBN        ISBNString
	TotalCopies int
	OccurredAt  OccurredAtTS
}

// BuildBookAddedToCatalog creates a new BookAddedToCatalog event.
func BuildBookAddedToCatalog(
	bookID BookIDString,
	title string,
	author string,
	isbn ISBNString,
	totalCopies int,
	occurredAt time.Time,
) BookAddedToCatalog {
	return BookAddedToCatalog{
		EventType:   BookAddedToCatalogEventType,
		BookID:      bookID,
		Title:       title,
		Author:      author,
		ISBN:        isbn,
		TotalCopies: totalCopies,
		OccurredAt:  ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e BookAddedToCatalog) IsEventType() string {
	return BookAddedToCatalogEventType
}

// HasOccurredAt returns when this event occurred.
func (e BookAddedToCatalog) HasOccurredAt() time.Time {
	return e.OccurredAt
}
