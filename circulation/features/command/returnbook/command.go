package returnbook

import (
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation/circulation/shared/core"
)

const (
	commandType = "ReturnBook"
)

// Command represents the intent of a member to return a borrowed copy.
type Command struct {
	BorrowID   uuid.UUID
	UserID     uuid.UUID
	OccurredAt core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(borrowID uuid.UUID, userID uuid.UUID, occurredAt time.Time) Command {
	return Command{
		BorrowID:   borrowID,
		UserID:     userID,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
