package issuelibrarycard

import (
	"encoding/hex"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation/circulation/shared/core"
)

const (
	commandType = "IssueLibraryCard"

	libraryCardPrefix = "LC-"
)

// Command represents the intent of a librarian to issue a library card to a member.
type Command struct {
	UserID        uuid.UUID
	LibraryCardID core.LibraryCardIDString
	OccurredAt    core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with a freshly generated card identifier.
func BuildCommand(userID uuid.UUID, occurredAt time.Time) Command {
	return BuildCommandWithCardID(userID, NewLibraryCardID(), occurredAt)
}

// BuildCommandWithCardID creates a new Command for a given card identifier.
func BuildCommandWithCardID(userID uuid.UUID, libraryCardID core.LibraryCardIDString, occurredAt time.Time) Command {
	return Command{
		UserID:        userID,
		LibraryCardID: libraryCardID,
		OccurredAt:    core.ToOccurredAt(occurredAt),
	}
}

// NewLibraryCardID returns "LC-" followed by 8 random uppercase hex characters.
func NewLibraryCardID() core.LibraryCardIDString {
	id := uuid.New()

	return libraryCardPrefix + strings.ToUpper(hex.EncodeToString(id[:4]))
}
