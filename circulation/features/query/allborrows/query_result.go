package allborrows

import (
	"time"

	"github.com/AntonStoeckl/library-circulation/circulation/shared/core"
)

// MemberInfo identifies the borrowing member.
type MemberInfo struct {
	UserID   core.UserIDString
	FullName string
	Email    core.EmailString
}

// BookInfo identifies the borrowed book.
type BookInfo struct {
	BookID core.BookIDString
	Title  string
	Author string
}

// BorrowRecord is one borrow. Member and Book are nil if their registration is not in the log.
type BorrowRecord struct {
	BorrowID     core.BorrowIDString
	Member       *MemberInfo
	Book         *BookInfo
	IssuedAt     time.Time
	DueAt        time.Time
	ReturnedAt   *time.Time
	RenewedCount int
	FineCents    core.CentsInt
}

// AllBorrows is the result of the query.
type AllBorrows struct {
	Borrows        []BorrowRecord
	Count          int
	SequenceNumber uint
}

// GetSequenceNumber returns the sequence number of the last event the result was projected from.
func (r AllBorrows) GetSequenceNumber() uint {
	return r.SequenceNumber
}
