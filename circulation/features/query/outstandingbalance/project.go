package outstandingbalance

import (
	"github.com/AntonStoeckl/library-circulation/circulation/shared/core"
	"github.com/AntonStoeckl/library-circulation/eventstore"
)

// ProjectOutstandingBalance sums fines and payments of the queried member.
//
// Query Logic:
//
//	GIVEN: a member with UserID
//	WHEN: OutstandingBalance is executed
//	THEN: the balance is max(sum of fines - sum of payments, 0)
func ProjectOutstandingBalance(history core.DomainEvents, query Query, maxSequenceNumber uint) OutstandingBalance {
	userID := query.UserID.String()
	result := OutstandingBalance{UserID: userID, SequenceNumber: maxSequenceNumber}

	for _, event := range history {
		switch e := event.(type) {
		case core.BookReturned:
			if e.UserID == userID {
				result.FinesCents += e.FineCents
			}

		case core.FinePaid:
			if e.UserID == userID {
				result.PaidCents += e.AmountCents
			}
		}
	}

	result.BalanceCents = max(result.FinesCents-result.PaidCents, 0)

	return result
}

// BuildEventFilter creates the filter for the fine ledger of userID.
func BuildEventFilter(userID core.UserIDString) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(
			core.BookReturnedEventType,
			core.FinePaidEventType,
		).
		AndAnyPredicateOf(eventstore.P("UserID", userID)).
		Finalize()
}
