package fixtures

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation/circulation/shared/core"
	"github.com/AntonStoeckl/library-circulation/circulation/shared/shell"
	"github.com/AntonStoeckl/library-circulation/eventstore"
)

// FixedNow is a stable point in time for decision tests.
var FixedNow = time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC)

// BookInCatalog returns the history of a book with the given number of copies.
func BookInCatalog(bookID uuid.UUID, copies int, at time.Time) core.DomainEvent {
	return core.BuildBookAddedToCatalog(bookID.String(), "Dune", "Frank Herbert", "", copies, at)
}

// BookWithISBNInCatalog returns the history of a book with an ISBN.
func BookWithISBNInCatalog(bookID uuid.UUID, isbn string, at time.Time) core.DomainEvent {
	return core.BuildBookAddedToCatalog(bookID.String(), "Dune", "Frank Herbert", isbn, 1, at)
}

// BookRemoved removes a book from the catalog.
func BookRemoved(bookID uuid.UUID, at time.Time) core.DomainEvent {
	return core.BuildBookRemovedFromCatalog(bookID.String(), "", at)
}

// Member registers a member without a library card.
func Member(userID uuid.UUID, at time.Time) core.DomainEvent {
	return core.BuildMemberRegistered(userID.String(), "Ada Lovelace", userID.String()+"@example.org", "hash", core.RoleMember, at)
}

// MemberWithCard registers a member and issues a library card.
func MemberWithCard(userID uuid.UUID, at time.Time) core.DomainEvents {
	return core.DomainEvents{
		Member(userID, at),
		core.BuildLibraryCardIssued(userID.String(), "LC-0000CAFE", at),
	}
}

// Issued lends a copy of bookID to userID with the given due date.
func Issued(borrowID, userID, bookID uuid.UUID, dueAt, at time.Time) core.DomainEvent {
	return core.BuildBookIssued(borrowID.String(), userID.String(), bookID.String(), dueAt, at)
}

// Returned returns a borrow with the given fine.
func Returned(borrowID, userID, bookID uuid.UUID, fine core.CentsInt, at time.Time) core.DomainEvent {
	return core.BuildBookReturned(borrowID.String(), userID.String(), bookID.String(), fine, true, at)
}

// Renewed renews a borrow once.
func Renewed(borrowID, userID, bookID uuid.UUID, newDueAt, at time.Time) core.DomainEvent {
	return core.BuildBorrowRenewed(borrowID.String(), userID.String(), bookID.String(), newDueAt, 1, at)
}

// Paid records a fine payment.
func Paid(userID uuid.UUID, amount core.CentsInt, at time.Time) core.DomainEvent {
	return core.BuildFinePaid(uuid.NewString(), userID.String(), amount, "fine", at)
}

// Reserved places a reservation.
func Reserved(reservationID, userID, bookID uuid.UUID, at time.Time) core.DomainEvent {
	return core.BuildBookReserved(reservationID.String(), userID.String(), bookID.String(), at)
}

// History flattens single events and event slices into one history.
func History(parts ...any) core.DomainEvents {
	history := core.DomainEvents{}

	for _, part := range parts {
		switch p := part.(type) {
		case core.DomainEvent:
			history = append(history, p)
		case core.DomainEvents:
			history = append(history, p...)
		}
	}

	return history
}

// Seed appends events to es one by one, each under a catch-all filter.
func Seed(t *testing.T, es shell.EventStore, events ...core.DomainEvent) {
	t.Helper()

	ctx := context.Background()
	filter := eventstore.BuildEventFilter().MatchingAnyEvent()

	for _, event := range events {
		storableEvents, err := shell.StorableEventsFrom(core.DomainEvents{event})
		require.NoError(t, err)

		_, maxSeq, err := es.Query(ctx, filter)
		require.NoError(t, err)

		require.NoError(t, es.Append(ctx, filter, maxSeq, storableEvents[0]))
	}
}
