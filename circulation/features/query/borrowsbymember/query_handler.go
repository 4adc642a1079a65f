package borrowsbymember

import (
	"context"

	"github.com/AntonStoeckl/library-circulation/circulation/shared/shell"
)

// QueryHandler runs the two reads and the projection of the BorrowsByMember query.
type QueryHandler struct {
	eventStore shell.QueriesEvents
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(eventStore shell.QueriesEvents) QueryHandler {
	return QueryHandler{eventStore: eventStore}
}

// Handle executes the query.
func (h QueryHandler) Handle(ctx context.Context, query Query) (BorrowsByMember, error) {
	borrowEvents, maxSequenceNumber, err := shell.QueryHistory(ctx, h.eventStore, BuildBorrowFilter(query.UserID.String()))
	if err != nil {
		return BorrowsByMember{}, err
	}

	history := borrowEvents

	if bookFilter, ok := BuildBookFilter(BookIDsOf(borrowEvents)); ok {
		bookEvents, bookSequenceNumber, err := shell.QueryHistory(ctx, h.eventStore, bookFilter)
		if err != nil {
			return BorrowsByMember{}, err
		}

		history = append(bookEvents, borrowEvents...)
		maxSequenceNumber = max(maxSequenceNumber, bookSequenceNumber)
	}

	return ProjectBorrowsByMember(history, query, maxSequenceNumber), nil
}

var _ shell.CoreQueryHandler[Query, BorrowsByMember] = QueryHandler{}
