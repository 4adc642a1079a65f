package core

import (
	"time"
)

// BookDetailsEditedEventType is the event type identifier.
const BookDetailsEditedEventType = "BookDetailsEdited"

// BookDetailsEdited represents when a librarian edits title, author, or ISBN of a book.
// PreviousISBN keeps the ISBN before the edit, so that ISBN uniqueness can be decided on ISBN-tagged events alone.
type BookDetailsEdited struct {
	EventType    EventTypeString
	BookID       BookIDString
	Title        string
	Author       string
	ISBN         ISBNString
	PreviousISBN ISBNString
	OccurredAt   OccurredAtTS
}

// BuildBookDetailsEdited creates a new BookDetailsEdited event.
func BuildBookDetailsEdited(
	bookID BookIDString,
	title string,
	author string,
	isbn ISBNString,
	previousISBN ISBNString,
	occurredAt time.Time,
) BookDetailsEdited {
	return BookDetailsEdited{
		EventType:    BookDetailsEditedEventType,
		BookID:       bookID,
		Title:        title,
		Author:       author,
		ISBN:         isbn,
		PreviousISBN: previousISBN,
		OccurredAt:   ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e BookDetailsEdited) IsEventType() string {
	return BookDetailsEditedEventType
}

// HasOccurredAt returns when this event occurred.
func (e BookDetailsEdited) HasOccurredAt() time.Time {
	return e.OccurredAt
}
