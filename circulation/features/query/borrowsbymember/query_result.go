package borrowsbymember

import (
	"time"

	"github.com/AntonStoeckl/library-circulation/circulation/shared/core"
)

// BorrowInfo is one borrow of the member. ReturnedAt is nil while the copy is outstanding.
type BorrowInfo struct {
	BorrowID     core.BorrowIDString
	BookID       core.BookIDString
	Title        string
	Author       string
	IssuedAt     time.Time
	DueAt        time.Time
	ReturnedAt   *time.Time
	RenewedCount int
	FineCents    core.CentsInt
}

// IsOutstanding reports whether the copy has not been returned yet.
func (b BorrowInfo) IsOutstanding() bool {
	return b.ReturnedAt == nil
}

// BorrowsByMember is the result of the query.
type BorrowsByMember struct {
	UserID         core.UserIDString
	Borrows        []BorrowInfo
	Count          int
	SequenceNumber uint
}

// GetSequenceNumber returns the sequence number of the last event the result was projected from.
func (r BorrowsByMember) GetSequenceNumber() uint {
	return r.SequenceNumber
}
