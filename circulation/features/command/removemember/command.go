package removemember

import (
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation/circulation/shared/core"
)

const (
	commandType = "RemoveMember"
)

// Command represents the intent of a librarian to remove a member.
type Command struct {
	UserID     uuid.UUID
	OccurredAt core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(userID uuid.UUID, occurredAt time.Time) Command {
	return Command{
		UserID:     userID,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
