package returnbook

import (
	"context"

	"github.com/AntonStoeckl/library-circulation/circulation/shared/core"
	"github.com/AntonStoeckl/library-circulation/circulation/shared/shell"
	"github.com/AntonStoeckl/library-circulation/eventstore"
)

// CommandHandler runs the two-phase Query -> Decide -> Append for ReturnBook,
// retrying on concurrency conflicts. Observability is added by wrapping it.
type CommandHandler struct {
	eventStore   shell.EventStore
	mode         Mode
	retryOptions []shell.RetryOption
}

// Option configures a CommandHandler.
type Option func(*CommandHandler)

// WithRetryOptions sets a custom retry configuration for the handler.
func WithRetryOptions(opts ...shell.RetryOption) Option {
	return func(h *CommandHandler) {
		h.retryOptions = opts
	}
}

// WithMode sets how returns of books that left the catalog are treated, ModeBestEffort is the default.
func WithMode(mode Mode) Option {
	return func(h *CommandHandler) {
		h.mode = mode
	}
}

// NewCommandHandler creates a new CommandHandler.
func NewCommandHandler(eventStore shell.EventStore, opts ...Option) CommandHandler {
	handler := CommandHandler{eventStore: eventStore, mode: ModeBestEffort}

	for _, opt := range opts {
		opt(&handler)
	}

	return handler
}

// Handle executes the command. Business rejections are returned as errors of the core error kinds.
func (h CommandHandler) Handle(ctx context.Context, command Command) (shell.HandlerResult, error) {
	retryMetrics, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		return h.executeCommand(retryCtx, command)
	}, h.retryOptions...)

	if err != nil {
		return shell.NewErrorResult(retryMetrics), err
	}

	return shell.NewSuccessResult(retryMetrics), nil
}

func (h CommandHandler) executeCommand(ctx context.Context, command Command) error {
	filter, err := h.boundaryOf(ctx, command.BorrowID.String())
	if err != nil {
		return err
	}

	_, err = shell.DecideAndAppend(ctx, h.eventStore, filter, func(history core.DomainEvents) core.DecisionResult {
		return Decide(history, command, h.mode)
	})

	return err
}

// boundaryOf reads the borrow to learn its book. An unknown borrow keeps the
// borrow-only filter, Decide rejects it with NotFound.
func (h CommandHandler) boundaryOf(ctx context.Context, borrowID core.BorrowIDString) (eventstore.Filter, error) {
	borrowFilter := BuildBorrowFilter(borrowID)

	storableEvents, _, err := h.eventStore.Query(ctx, borrowFilter)
	if err != nil {
		return eventstore.Filter{}, err
	}

	borrowEvents, err := shell.DomainEventsFrom(storableEvents)
	if err != nil {
		return eventstore.Filter{}, err
	}

	for _, event := range borrowEvents {
		if issued, ok := event.(core.BookIssued); ok {
			return BuildEventFilter(borrowID, issued.BookID), nil
		}
	}

	return borrowFilter, nil
}
