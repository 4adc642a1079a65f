package renewborrow

import (
	"github.com/AntonStoeckl/library-circulation/circulation/shared/core"
	"github.com/AntonStoeckl/library-circulation/eventstore"
)

type state struct {
	borrow           core.BookIssued
	borrowExists     bool
	dueAt            core.DueAtTS
	renewalCount     int
	isReturned       bool
	outstandingCents core.CentsInt
}

// Decide implements the business logic of renewing a borrow.
//
// Business Rules:
//
//	GIVEN: a borrow with BorrowID of the member with UserID
//	WHEN: RenewBorrow is received
//	THEN: BorrowRenewed is generated with DueAt = current due date + 7 days
//	ERROR: NotFound if the borrow does not exist or belongs to another member
//	ERROR: InvalidRenewal "already returned" if the copy was returned
//	ERROR: InvalidRenewal "renewal limit reached" if the borrow was renewed before
//	ERROR: InvalidRenewal "outstanding fine" if the member's outstanding balance is above zero
//
// The three InvalidRenewal checks are evaluated in exactly this order.
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	borrowID := command.BorrowID.String()
	userID := command.UserID.String()
	s := project(history, borrowID, userID)

	if !s.borrowExists || s.borrow.UserID != userID {
		return core.ErrorDecision(core.NotFound("borrow %s", borrowID))
	}

	if s.isReturned {
		return core.ErrorDecision(core.InvalidRenewal(core.RenewalReasonAlreadyReturned))
	}

	if s.renewalCount >= core.MaxRenewals {
		return core.ErrorDecision(core.InvalidRenewal(core.RenewalReasonLimitReached))
	}

	if s.outstandingCents > 0 {
		return core.ErrorDecision(core.InvalidRenewal(core.RenewalReasonOutstandingFine))
	}

	return core.SuccessDecision(
		core.BuildBorrowRenewed(
			borrowID,
			userID,
			s.borrow.BookID,
			core.RenewedDueAt(s.dueAt),
			s.renewalCount+1,
			command.OccurredAt,
		),
	)
}

func project(history core.DomainEvents, borrowID core.BorrowIDString, userID core.UserIDString) state {
	s := state{}
	fines, paid := core.CentsInt(0), core.CentsInt(0)

	for _, event := range history {
		switch e := event.(type) {
		case core.BookIssued:
			if e.BorrowID == borrowID {
				s.borrow = e
				s.borrowExists = true
				s.dueAt = e.DueAt
			}

		case core.BorrowRenewed:
			if e.BorrowID == borrowID {
				s.dueAt = e.DueAt
				s.renewalCount = e.RenewalCount
			}

		case core.BookReturned:
			if e.BorrowID == borrowID {
				s.isReturned = true
			}

			if e.UserID == userID {
				fines += e.FineCents
			}

		case core.FinePaid:
			if e.UserID == userID {
				paid += e.AmountCents
			}
		}
	}

	s.outstandingCents = max(fines-paid, 0)

	return s
}

// BuildEventFilter creates the filter for the consistency boundary of renewing borrowID of userID.
func BuildEventFilter(userID core.UserIDString, borrowID core.BorrowIDString) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(
			core.BookIssuedEventType,
			core.BorrowRenewedEventType,
			core.BookReturnedEventType,
		).
		AndAnyPredicateOf(eventstore.P("BorrowID", borrowID)).
		OrMatching().
		AnyEventTypeOf(
			core.BookReturnedEventType,
			core.FinePaidEventType,
		).
		AndAnyPredicateOf(eventstore.P("UserID", userID)).
		Finalize()
}
