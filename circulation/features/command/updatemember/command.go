package updatemember

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation/circulation/shared/core"
)

const (
	commandType = "UpdateMember"
)

// Command represents the intent of a librarian to update member details.
// A nil field keeps the current value.
type Command struct {
	UserID     uuid.UUID
	FullName   *string
	Active     *bool
	OccurredAt core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(userID uuid.UUID, fullName *string, active *bool, occurredAt time.Time) Command {
	if fullName != nil {
		trimmed := strings.TrimSpace(*fullName)
		fullName = &trimmed
	}

	return Command{
		UserID:     userID,
		FullName:   fullName,
		Active:     active,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
