package changerole

import (
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation/circulation/shared/core"
)

const (
	commandType = "ChangeRole"
)

// Command represents the intent of a librarian to assign a role to a member.
type Command struct {
	UserID     uuid.UUID
	Role       string
	OccurredAt core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(userID uuid.UUID, role string, occurredAt time.Time) Command {
	return Command{
		UserID:     userID,
		Role:       role,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
