package submitfeedback

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation/circulation/shared/core"
)

const (
	commandType = "SubmitFeedback"

	// MaxMessageLength is the longest accepted message, in characters.
	MaxMessageLength = 2000
)

// Command represents the intent of a member to leave feedback.
type Command struct {
	FeedbackID uuid.UUID
	UserID     uuid.UUID
	Message    string
	OccurredAt core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(feedbackID uuid.UUID, userID uuid.UUID, message string, occurredAt time.Time) Command {
	return Command{
		FeedbackID: feedbackID,
		UserID:     userID,
		Message:    strings.TrimSpace(message),
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
