package payfine

import (
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation/circulation/shared/core"
)

const (
	commandType = "PayFine"

	// DefaultReason is recorded when the caller names no reason.
	DefaultReason = "fine"
)

// Command represents the intent of a member to pay an amount of their outstanding fines.
type Command struct {
	PaymentID   uuid.UUID
	UserID      uuid.UUID
	AmountCents core.CentsInt
	Reason      string
	OccurredAt  core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(
	paymentID uuid.UUID,
	userID uuid.UUID,
	amountCents core.CentsInt,
	reason string,
	occurredAt time.Time,
) Command {
	if reason == "" {
		reason = DefaultReason
	}

	return Command{
		PaymentID:   paymentID,
		UserID:      userID,
		AmountCents: amountCents,
		Reason:      reason,
		OccurredAt:  core.ToOccurredAt(occurredAt),
	}
}
