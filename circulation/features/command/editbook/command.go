package editbook

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation/circulation/shared/core"
)

const (
	commandType = "EditBook"
)

// Command represents the intent of a librarian to edit book details.
// A nil field keeps the current value.
type Command struct {
	BookID     uuid.UUID
	Title      *string
	Author     *string
	ISBN       *core.ISBNString
	OccurredAt core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(
	bookID uuid.UUID,
	title *string,
	author *string,
	isbn *core.ISBNString,
	occurredAt time.Time,
) Command {
	return Command{
		BookID:     bookID,
		Title:      trimmed(title),
		Author:     trimmed(author),
		ISBN:       trimmed(isbn),
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}

	t := strings.TrimSpace(*s)

	return &t
}
