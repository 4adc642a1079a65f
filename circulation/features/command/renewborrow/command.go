package renewborrow

import (
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation/circulation/shared/core"
)

const (
	commandType = "RenewBorrow"
)

// Command represents the intent of a member to renew one of their borrows.
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
