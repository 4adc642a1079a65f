package bookdetails

import (
	"context"

	"github.com/AntonStoeckl/library-circulation/circulation/features/query/bookcatalog"
	"github.com/AntonStoeckl/library-circulation/circulation/shared/core"
	"github.com/AntonStoeckl/library-circulation/circulation/shared/shell"
	"github.com/AntonStoeckl/library-circulation/eventstore"
)

// BookDetails is the result of the query.
type BookDetails struct {
	bookcatalog.BookInfo
	SequenceNumber uint
}

// GetSequenceNumber returns the sequence number of the last event the book was projected from.
func (r BookDetails) GetSequenceNumber() uint {
	return r.SequenceNumber
}

// QueryHandler reads the events of one book and projects it like the catalog does.
type QueryHandler struct {
	eventStore shell.QueriesEvents
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(eventStore shell.QueriesEvents) QueryHandler {
	return QueryHandler{eventStore: eventStore}
}

// Handle executes the query. A book that is not in the catalog yields core.ErrNotFound.
func (h QueryHandler) Handle(ctx context.Context, query Query) (BookDetails, error) {
	bookID := query.BookID.String()

	history, maxSequenceNumber, err := shell.QueryHistory(ctx, h.eventStore, BuildEventFilter(bookID))
	if err != nil {
		return BookDetails{}, err
	}

	catalog := bookcatalog.ProjectCatalog(history, bookcatalog.BuildQuery(""), maxSequenceNumber)
	if catalog.Count == 0 {
		return BookDetails{}, core.NotFound("book %s", bookID)
	}

	return BookDetails{BookInfo: catalog.Books[0], SequenceNumber: maxSequenceNumber}, nil
}

// BuildEventFilter creates the filter for the catalog entry and stock of bookID.
func BuildEventFilter(bookID core.BookIDString) eventstore.Filter {
	types := bookcatalog.StockEventTypes()

	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(types[0], types[1:]...).
		AndAnyPredicateOf(eventstore.P("BookID", bookID)).
		Finalize()
}
