package core

import (
	"time"
)

// BookStockAdjustedEventType is the event type identifier.
const BookStockAdjustedEventType = "BookStockAdjusted"

// BookStockAdjusted represents when a librarian sets new stock counts of a book.
// Both counts are absolute values.
type BookStockAdjusted struct {
	EventType       EventTypeString
	BookID          BookIDString
	TotalCopies     int
	AvailableCopies int
	OccurredAt      OccurredAtTS
}

// BuildBookStockAdjusted creates a new BookStockAdjusted event.
func BuildBookStockAdjusted(
	bookID BookIDString,
	totalCopies int,
	availableCopies int,
	occurredAt time.Time,
) BookStockAdjusted {
	return BookStockAdjusted{
		EventType:       BookStockAdjustedEventType,
		BookID:          bookID,
		TotalCopies:     totalCopies,
		AvailableCopies: availableCopies,
		OccurredAt:      ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e BookStockAdjusted) IsEventType() string {
	return BookStockAdjustedEventType
}

// HasOccurredAt returns when this event occurred.
func (e BookStockAdjusted) HasOccurredAt() time.Time {
	return e.OccurredAt
}
