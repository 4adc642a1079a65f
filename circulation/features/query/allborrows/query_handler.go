package allborrows

import (
	"context"

	"github.com/AntonStoeckl/library-circulation/circulation/shared/shell"
)

// QueryHandler runs Query -> Project for the AllBorrows query.
type QueryHandler struct {
	eventStore shell.QueriesEvents
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(eventStore shell.QueriesEvents) QueryHandler {
	return QueryHandler{eventStore: eventStore}
}

// Handle executes the query.
func (h QueryHandler) Handle(ctx context.Context, _ Query) (AllBorrows, error) {
	history, maxSequenceNumber, err := shell.QueryHistory(ctx, h.eventStore, BuildEventFilter())
	if err != nil {
		return AllBorrows{}, err
	}

	return ProjectAllBorrows(history, maxSequenceNumber), nil
}
