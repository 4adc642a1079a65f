package outstandingbalance

import (
	"github.com/AntonStoeckl/library-circulation/circulation/shared/core"
)

// OutstandingBalance is the fine ledger summary of one member.
type OutstandingBalance struct {
	UserID         core.UserIDString
	FinesCents     core.CentsInt
	PaidCents      core.CentsInt
	BalanceCents   core.CentsInt
	SequenceNumber uint
}

// GetSequenceNumber returns the sequence number of the last event the balance was projected from.
func (r OutstandingBalance) GetSequenceNumber() uint {
	return r.SequenceNumber
}
