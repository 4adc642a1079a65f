package reservebook

import (
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation/circulation/shared/core"
)

const (
	commandType = "ReserveBook"
)

// Command represents the intent of a member to reserve a book.
type Command struct {
	ReservationID uuid.UUID
	UserID        uuid.UUID
	BookID        uuid.UUID
	OccurredAt    core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(reservationID uuid.UUID, userID uuid.UUID, bookID uuid.UUID, occurredAt time.Time) Command {
	return Command{
		ReservationID: reservationID,
		UserID:        userID,
		BookID:        bookID,
		OccurredAt:    core.ToOccurredAt(occurredAt),
	}
}
