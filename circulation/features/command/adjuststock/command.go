package adjuststock

import (
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation/circulation/shared/core"
)

const (
	commandType = "AdjustStock"
)

// Command represents the intent of a librarian to change the number of copies of a book.
// A nil AvailableCopies moves the available count by the same delta as the total.
type Command struct {
	BookID          uuid.UUID
	TotalCopies     int
	AvailableCopies *int
	OccurredAt      core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(bookID uuid.UUID, totalCopies int, availableCopies *int, occurredAt time.Time) Command {
	return Command{
		BookID:          bookID,
		TotalCopies:     totalCopies,
		AvailableCopies: availableCopies,
		OccurredAt:      core.ToOccurredAt(occurredAt),
	}
}
