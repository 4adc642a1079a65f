package allborrows

import (
	"cmp"
	"slices"

	"github.com/AntonStoeckl/library-circulation/circulation/shared/core"
	"github.com/AntonStoeckl/library-circulation/eventstore"
)

type borrow struct {
	record BorrowRecord
	userID core.UserIDString
	bookID core.BookIDString
}

// ProjectAllBorrows joins every borrow with its member and book.
func ProjectAllBorrows(history core.DomainEvents, maxSequenceNumber uint) AllBorrows {
	members := make(map[core.UserIDString]MemberInfo)
	books := make(map[core.BookIDString]BookInfo)
	borrows := make(map[core.BorrowIDString]*borrow)

	for _, event := range history {
		switch e := event.(type) {
		case core.MemberRegistered:
			members[e.UserID] = MemberInfo{UserID: e.UserID, FullName: e.FullName, Email: e.Email}

		case core.MemberDetailsUpdated:
			if m, ok := members[e.UserID]; ok {
				m.FullName = e.FullName
				members[e.UserID] = m
			}

		case core.BookAddedToCatalog:
			books[e.BookID] = BookInfo{BookID: e.BookID, Title: e.Title, Author: e.Author}

		case core.BookDetailsEdited:
			books[e.BookID] = BookInfo{BookID: e.BookID, Title: e.Title, Author: e.Author}

		case core.BookIssued:
			borrows[e.BorrowID] = &borrow{
				record: BorrowRecord{BorrowID: e.BorrowID, IssuedAt: e.OccurredAt, DueAt: e.DueAt},
				userID: e.UserID,
				bookID: e.BookID,
			}

		case core.BorrowRenewed:
			if b, ok := borrows[e.BorrowID]; ok {
				b.record.DueAt = e.DueAt
				b.record.RenewedCount = e.RenewalCount
			}

		case core.BookReturned:
			if b, ok := borrows[e.BorrowID]; ok {
				returnedAt := e.OccurredAt
				b.record.ReturnedAt = &returnedAt
				b.record.FineCents = e.FineCents
			}
		}
	}

	records := make([]BorrowRecord, 0, len(borrows))
	for _, b := range borrows {
		if m, ok := members[b.userID]; ok {
			b.record.Member = &m
		}

		if book, ok := books[b.bookID]; ok {
			b.record.Book = &book
		}

		records = append(records, b.record)
	}

	slices.SortFunc(records, func(a, b BorrowRecord) int {
		if c := b.IssuedAt.Compare(a.IssuedAt); c != 0 {
			return c
		}

		return cmp.Compare(a.BorrowID, b.BorrowID)
	})

	return AllBorrows{Borrows: records, Count: len(records), SequenceNumber: maxSequenceNumber}
}

// BuildEventFilter creates the filter for all borrow, member and book detail events.
func BuildEventFilter() eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(
			core.BookIssuedEventType,
			core.BorrowRenewedEventType,
			core.BookReturnedEventType,
			core.MemberRegisteredEventType,
			core.MemberDetailsUpdatedEventType,
			core.BookAddedToCatalogEventType,
			core.BookDetailsEditedEventType,
		).
		Finalize()
}
