package core

import (
	"time"
)

// BookRemovedFromCatalogEventType is the event type identifier.
const BookRemovedFromCatalogEventType = "BookRemovedFromCatalog"

// BookRemovedFromCatalog represents when a librarian removes a book from the catalog.
type BookRemovedFromCatalog struct {
	EventType  EventTypeString
	BookID     BookIDString
	ISBN       ISBNString
	OccurredAt OccurredAtTS
}

// BuildBookRemovedFromCatalog creates a new BookRemovedFromCatalog event.
func BuildBookRemovedFromCatalog(
	bookID BookIDString,
	isbn ISBNString,
	occurredAt time.Time,
) BookRemovedFromCatalog {
	return BookRemovedFromCatalog{
		EventType:  BookRemovedFromCatalogEventType,
		BookID:     bookID,
		ISBN:       isbn,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e BookRemovedFromCatalog) IsEventType() string {
	return BookRemovedFromCatalogEventType
}

// HasOccurredAt returns when this event occurred.
func (e BookRemovedFromCatalog) HasOccurredAt() time.Time {
	return e.OccurredAt
}
