package payfine

import (
	"github.com/AntonStoeckl/library-circulation/circulation/shared/core"
	"github.com/AntonStoeckl/library-circulation/eventstore"
)

// Decide implements the business logic of paying fines.
//
// Business Rules:
//
//	GIVEN: a member with an outstanding balance (fines minus payments)
//	WHEN: PayFine is received with a positive amount not above the balance
//	THEN: FinePaid is generated
//	ERROR: InvalidRequest if the amount is not positive
//	ERROR: InvalidRequest if nothing is outstanding
//	ERROR: InvalidRequest if the amount exceeds the balance
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	userID := command.UserID.String()

	if command.AmountCents <= 0 {
		return core.ErrorDecision(core.InvalidRequest("payment amount must be positive"))
	}

	balance := outstandingBalance(history, userID)

	if balance == 0 {
		return core.ErrorDecision(core.InvalidRequest("member %s has no outstanding fines", userID))
	}

	if command.AmountCents > balance {
		return core.ErrorDecision(core.InvalidRequest("payment of %d exceeds the outstanding balance of %d", command.AmountCents, balance))
	}

	return core.SuccessDecision(
		core.BuildFinePaid(
			command.PaymentID.String(),
			userID,
			command.AmountCents,
			command.Reason,
			command.OccurredAt,
		),
	)
}

func outstandingBalance(history core.DomainEvents, userID core.UserIDString) core.CentsInt {
	var fines, paid core.CentsInt

	for _, event := range history {
		switch e := event.(type) {
		case core.BookReturned:
			if e.UserID == userID {
				fines += e.FineCents
			}

		case core.FinePaid:
			if e.UserID == userID {
				paid += e.AmountCents
			}
		}
	}

	return max(fines-paid, 0)
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
