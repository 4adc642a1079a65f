package issuebook

import (
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation/circulation/shared/core"
)

const (
	commandType = "IssueBook"
)

// Command represents the intent to lend a copy of a book to a member.
type Command struct {
	BorrowID   uuid.UUID
	UserID     uuid.UUID
	BookID     uuid.UUID
	LoanDays   int
	OccurredAt core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(borrowID uuid.UUID, userID uuid.UUID, bookID uuid.UUID, loanDays int, occurredAt time.Time) Command {
	return Command{
		BorrowID:   borrowID,
		UserID:     userID,
		BookID:     bookID,
		LoanDays:   loanDays,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
