package bookcatalog

import (
	"cmp"
	"slices"
	"strings"

	"github.com/AntonStoeckl/library-circulation/circulation/shared/core"
	"github.com/AntonStoeckl/library-circulation/eventstore"
)

// ProjectCatalog builds the books in the catalog matching the query.
//
// Query Logic:
//
//	GIVEN: the catalog, stock and lending events
//	WHEN: BookCatalog is executed
//	THEN: the books still in the catalog are returned, newest first
//	INCLUDES: available copies, decreased by issues and increased by returns that restored stock
//	EXCLUDES: removed books, books not matching a non-empty search term
func ProjectCatalog(history core.DomainEvents, query Query, maxSequenceNumber uint) Catalog {
	books := make(map[core.BookIDString]*BookInfo)

	for _, event := range history {
		switch e := event.(type) {
		case core.BookAddedToCatalog:
			books[e.BookID] = &BookInfo{
				BookID:          e.BookID,
				Title:           e.Title,
				Author:          e.Author,
				ISBN:            e.ISBN,
				TotalCopies:     e.TotalCopies,
				AvailableCopies: e.TotalCopies,
				AddedAt:         e.OccurredAt,
			}

		case core.BookDetailsEdited:
			if b, ok := books[e.BookID]; ok {
				b.Title, b.Author, b.ISBN = e.Title, e.Author, e.ISBN
			}

		case core.BookStockAdjusted:
			if b, ok := books[e.BookID]; ok {
				b.TotalCopies, b.AvailableCopies = e.TotalCopies, e.AvailableCopies
			}

		case core.BookIssued:
			if b, ok := books[e.BookID]; ok {
				b.AvailableCopies = max(b.AvailableCopies-1, 0)
			}

		case core.BookReturned:
			if b, ok := books[e.BookID]; ok && e.StockRestored {
				b.AvailableCopies = min(b.AvailableCopies+1, b.TotalCopies)
			}

		case core.BookRemovedFromCatalog:
			delete(books, e.BookID)
		}
	}

	term := strings.ToLower(query.Search)
	result := make([]BookInfo, 0, len(books))

	for _, b := range books {
		if term == "" || matches(*b, term) {
			result = append(result, *b)
		}
	}

	slices.SortFunc(result, func(a, b BookInfo) int {
		if c := b.AddedAt.Compare(a.AddedAt); c != 0 {
			return c
		}

		return cmp.Compare(a.BookID, b.BookID)
	})

	return Catalog{Books: result, Count: len(result), SequenceNumber: maxSequenceNumber}
}

func matches(b BookInfo, term string) bool {
	return strings.Contains(strings.ToLower(b.Title), term) ||
		strings.Contains(strings.ToLower(b.Author), term) ||
		strings.Contains(strings.ToLower(b.ISBN), term)
}

// BuildEventFilter creates the filter for all catalog and stock events.
func BuildEventFilter() eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(StockEventTypes()[0], StockEventTypes()[1:]...).
		Finalize()
}

// StockEventTypes are the event types that shape a catalog entry and its copy counts.
func StockEventTypes() []string {
	return []string{
		core.BookAddedToCatalogEventType,
		core.BookDetailsEditedEventType,
		core.BookStockAdjustedEventType,
		core.BookRemovedFromCatalogEventType,
		core.BookIssuedEventType,
		core.BookReturnedEventType,
	}
}
