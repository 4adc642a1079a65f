package cancelreservation

import (
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation/circulation/shared/core"
)

const (
	commandType = "CancelReservation"
)

// Command represents the intent of a member to cancel one of their reservations.
type Command struct {
	ReservationID uuid.UUID
	UserID        uuid.UUID
	OccurredAt    core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(reservationID uuid.UUID, userID uuid.UUID, occurredAt time.Time) Command {
	return Command{
		ReservationID: reservationID,
		UserID:        userID,
		OccurredAt:    core.ToOccurredAt(occurredAt),
	}
}
