package core

import (
	"time"
)

// Instead of implementing full value objects, I'm using some alias types and helper methods here ...

// EventTypeString represents the type identifier of an event.
type EventTypeString = string

// BookIDString represents a book identifier.
type BookIDString = string

// UserIDString represents a member (user) identifier.
type UserIDString = string

// ReservationIDString represents a reservation identifier.
type ReservationIDString = string

// BorrowIDString represents a borrow identifier.
type BorrowIDString = string

// PaymentIDString represents a fine payment identifier.
type PaymentIDString = string

// FeedbackIDString represents a feedback identifier.
type FeedbackIDString = string

// LibraryCardIDString represents a library card identifier like "LC-8F3A21C0".
type LibraryCardIDString = string

// ISBNString represents an ISBN.
type ISBNString = string

// EmailString represents an e-mail address.
type EmailString = string

// CentsInt is an amount of money in cents.
type CentsInt = int

// OccurredAtTS represents when an event occurred.
type OccurredAtTS = time.Time

// DueAtTS represents when a borrowed copy must be returned.
type DueAtTS = time.Time

// ToOccurredAt converts a time to OccurredAt with UTC normalization and microsecond precision.
func ToOccurredAt(t time.Time) OccurredAtTS {
	return t.UTC().Truncate(time.Microsecond)
}
