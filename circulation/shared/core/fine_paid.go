package core

import (
	"time"
)

// FinePaidEventType is the event type identifier.
const FinePaidEventType = "FinePaid"

// FinePaid represents when a member pays (part of) the outstanding fines.
type FinePaid struct {
	EventType   EventTypeString
	PaymentID   PaymentIDString
	UserID      UserIDString
	AmountCents CentsInt
	Reason      string
	OccurredAt  OccurredAtTS
}

// BuildFinePaid creates a new FinePaid event.
func BuildFinePaid(
	paymentID PaymentIDString,
	userID UserIDString,
	amountCents CentsInt,
	reason string,
	occurredAt time.Time,
) FinePaid {
	return FinePaid{
		EventType:   FinePaidEventType,
		PaymentID:   paymentID,
		UserID:      userID,
		AmountCents: amountCents,
		Reason:      reason,
		OccurredAt:  ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e FinePaid) IsEventType() string {
	return FinePaidEventType
}

// HasOccurredAt returns when this event occurred.
func (e FinePaid) HasOccurredAt() time.Time {
	return e.OccurredAt
}
