package registermember

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation/circulation/shared/core"
)

const (
	commandType = "RegisterMember"
)

// Command represents the intent to register a member account.
type Command struct {
	UserID       uuid.UUID
	FullName     string
	Email        core.EmailString
	PasswordHash string
	Role         string
	OccurredAt   core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command. The email is normalized to lower case.
func BuildCommand(
	userID uuid.UUID,
	fullName string,
	email core.EmailString,
	passwordHash string,
	role string,
	occurredAt time.Time,
) Command {
	return Command{
		UserID:       userID,
		FullName:     strings.TrimSpace(fullName),
		Email:        NormalizeEmail(email),
		PasswordHash: passwordHash,
		Role:         role,
		OccurredAt:   core.ToOccurredAt(occurredAt),
	}
}

// NormalizeEmail returns the canonical form of an email address used for uniqueness and lookups.
func NormalizeEmail(email core.EmailString) core.EmailString {
	return strings.ToLower(strings.TrimSpace(email))
}
