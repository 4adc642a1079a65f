package addbook

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation/circulation/shared/core"
)

const (
	commandType = "AddBook"
)

// Command represents the intent of a librarian to add a book to the catalog.
type Command struct {
	BookID      uuid.UUID
	Title       string
	Author      string
	ISBN        core.ISBNString
	TotalCopies int
	OccurredAt  core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(
	bookID uuid.UUID,
	title string,
	author string,
	isbn core.ISBNString,
	totalCopies int,
	occurredAt time.Time,
) Command {
	return Command{
		BookID:      bookID,
		Title:       strings.TrimSpace(title),
		Author:      strings.TrimSpace(author),
		ISBN:        strings.TrimSpace(isbn),
		TotalCopies: totalCopies,
		OccurredAt:  core.ToOccurredAt(occurredAt),
	}
}
