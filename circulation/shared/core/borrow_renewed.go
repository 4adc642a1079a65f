package core

import (
	"time"
)

// BorrowRenewedEventType is the event type identifier.
const BorrowRenewedEventType = "BorrowRenewed"

// BorrowRenewed represents when a member extends an active borrow.
// DueAt is the new due date.
type BorrowRenewed struct {
	EventType    EventTypeString
	BorrowID     BorrowIDString
	UserID       UserIDString
	BookID       BookIDString
	DueAt        DueAtTS
	RenewalCount int
	OccurredAt   OccurredAtTS
}

// BuildBorrowRenewed creates a new BorrowRenewed event.
func BuildBorrowRenewed(
	borrowID BorrowIDString,
	userID UserIDString,
	bookID BookIDString,
	dueAt time.Time,
	renewalCount int,
	occurredAt time.Time,
) BorrowRenewed {
	return BorrowRenewed{
		EventType:    BorrowRenewedEventType,
		BorrowID:     borrowID,
		UserID:       userID,
		BookID:       bookID,
		DueAt:        ToOccurredAt(dueAt),
		RenewalCount: renewalCount,
		OccurredAt:   ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e BorrowRenewed) IsEventType() string {
	return BorrowRenewedEventType
}

// HasOccurredAt returns when this event occurred.
func (e BorrowRenewed) HasOccurredAt() time.Time {
	return e.OccurredAt
}
