package borrowsbymember

import (
	"cmp"
	"slices"

	"github.com/AntonStoeckl/library-circulation/circulation/shared/core"
	"github.com/AntonStoeckl/library-circulation/eventstore"
)

type bookDetails struct {
	title  string
	author string
}

// ProjectBorrowsByMember builds the borrow list of the queried member.
//
// Query Logic:
//
//	GIVEN: a member with UserID
//	WHEN: BorrowsByMember is executed
//	THEN: every borrow of the member is returned, newest first
//	INCLUDES: returned borrows with their fine, renewals, the latest book details
func ProjectBorrowsByMember(history core.DomainEvents, query Query, maxSequenceNumber uint) BorrowsByMember {
	userID := query.UserID.String()
	borrows := make(map[core.BorrowIDString]*BorrowInfo)
	books := make(map[core.BookIDString]bookDetails)

	for _, event := range history {
		switch e := event.(type) {
		case core.BookAddedToCatalog:
			books[e.BookID] = bookDetails{title: e.Title, author: e.Author}

		case core.BookDetailsEdited:
			books[e.BookID] = bookDetails{title: e.Title, author: e.Author}

		case core.BookIssued:
			if e.UserID == userID {
				borrows[e.BorrowID] = &BorrowInfo{
					BorrowID: e.BorrowID,
					BookID:   e.BookID,
					IssuedAt: e.OccurredAt,
					DueAt:    e.DueAt,
				}
			}

		case core.BorrowRenewed:
			if b, ok := borrows[e.BorrowID]; ok {
				b.DueAt = e.DueAt
				b.RenewedCount = e.RenewalCount
			}

		case core.BookReturned:
			if b, ok := borrows[e.BorrowID]; ok {
				returnedAt := e.OccurredAt
				b.ReturnedAt = &returnedAt
				b.FineCents = e.FineCents
			}
		}
	}

	result := make([]BorrowInfo, 0, len(borrows))
	for _, b := range borrows {
		details := books[b.BookID]
		b.Title, b.Author = details.title, details.author
		result = append(result, *b)
	}

	slices.SortFunc(result, func(a, b BorrowInfo) int {
		if c := b.IssuedAt.Compare(a.IssuedAt); c != 0 {
			return c
		}

		return cmp.Compare(a.BorrowID, b.BorrowID)
	})

	return BorrowsByMember{
		UserID:         userID,
		Borrows:        result,
		Count:          len(result),
		SequenceNumber: maxSequenceNumber,
	}
}

// BuildBorrowFilter creates the filter for the borrow events of userID.
func BuildBorrowFilter(userID core.UserIDString) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(
			core.BookIssuedEventType,
			core.BorrowRenewedEventType,
			core.BookReturnedEventType,
		).
		AndAnyPredicateOf(eventstore.P("UserID", userID)).
		Finalize()
}

// BuildBookFilter creates the filter for the catalog details of the given books.
// It returns false if bookIDs is empty.
func BuildBookFilter(bookIDs []core.BookIDString) (eventstore.Filter, bool) {
	if len(bookIDs) == 0 {
		return eventstore.Filter{}, false
	}

	predicates := make([]eventstore.FilterPredicate, 0, len(bookIDs))
	for _, bookID := range bookIDs {
		predicates = append(predicates, eventstore.P("BookID", bookID))
	}

	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(
			core.BookAddedToCatalogEventType,
			core.BookDetailsEditedEventType,
		).
		AndAnyPredicateOf(predicates[0], predicates[1:]...).
		Finalize(), true
}

// BookIDsOf returns the distinct books the borrow events mention.
func BookIDsOf(borrowEvents core.DomainEvents) []core.BookIDString {
	bookIDs := make([]core.BookIDString, 0)

	for _, event := range borrowEvents {
		if issued, ok := event.(core.BookIssued); ok && !slices.Contains(bookIDs, issued.BookID) {
			bookIDs = append(bookIDs, issued.BookID)
		}
	}

	return bookIDs
}
