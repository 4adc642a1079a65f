package api

import (
	"time"

	"github.com/AntonStoeckl/library-circulation/circulation/features/query/allborrows"
	"github.com/AntonStoeckl/library-circulation/circulation/features/query/bookcatalog"
	"github.com/AntonStoeckl/library-circulation/circulation/features/query/borrowsbymember"
	"github.com/AntonStoeckl/library-circulation/circulation/features/query/members"
	"github.com/AntonStoeckl/library-circulation/circulation/features/query/outstandingbalance"
	"github.com/AntonStoeckl/library-circulation/circulation/features/query/reservationsbymember"
	"github.com/AntonStoeckl/library-circulation/circulation/shared/core"
)

/***** requests *****/

type registerRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type addMemberRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type updateMemberRequest struct {
	FullName *string `json:"full_name"`
	Active   *bool   `json:"active"`
}

type changeRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

type addBookRequest struct {
	Title       string `json:"title"`
	Author      string `json:"author"`
	ISBN        string `json:"isbn"`
	TotalCopies *int   `json:"total_copies"`
}

type updateBookRequest struct {
	Title           *string `json:"title"`
	Author          *string `json:"author"`
	ISBN            *string `json:"isbn"`
	TotalCopies     *int    `json:"total_copies"`
	AvailableCopies *int    `json:"available_copies"`
}

type reserveRequest struct {
	BookID string `json:"book_id" binding:"required"`
}

type issueRequest struct {
	BookID string `json:"book_id" binding:"required"`
	Days   *int   `json:"days"`
}

// loanDays returns the requested loan period, or the default when none was given.
func (r issueRequest) loanDays() int {
	if r.Days == nil {
		return core.DefaultLoanDays
	}

	return *r.Days
}

type paymentRequest struct {
	AmountCents int    `json:"amount_cents"`
	Reason      string `json:"reason"`
}

type feedbackRequest struct {
	Message string `json:"message"`
}

/***** responses *****/

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// UserOut is a member as exposed by the API. The password hash is never part of it.
type UserOut struct {
	ID            string    `json:"id"`
	FullName      string    `json:"full_name"`
	Email         string    `json:"email"`
	Role          core.Role `json:"role"`
	LibraryCardID *string   `json:"library_card_id"`
	Active        bool      `json:"active"`
	RegisteredAt  time.Time `json:"registered_at"`
}

type BookOut struct {
	ID              string  `json:"id"`
	Title           string  `json:"title"`
	Author          string  `json:"author"`
	ISBN            *string `json:"isbn"`
	TotalCopies     int     `json:"total_copies"`
	AvailableCopies int     `json:"available_copies"`
}

type BorrowOut struct {
	ID           string     `json:"id"`
	UserID       string     `json:"user_id"`
	BookID       string     `json:"book_id"`
	IssuedAt     time.Time  `json:"issued_at"`
	DueAt        time.Time  `json:"due_at"`
	ReturnedAt   *time.Time `json:"returned_at"`
	RenewedCount int        `json:"renewed_count"`
	FineCents    int        `json:"fine_cents"`
}

type BookSummaryOut struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
}

type BorrowWithBookOut struct {
	Borrow BorrowOut       `json:"borrow"`
	Book   *BookSummaryOut `json:"book"`
}

type MemberSummaryOut struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

type BorrowRecordOut struct {
	Borrow BorrowOut         `json:"borrow"`
	Member *MemberSummaryOut `json:"member"`
	Book   *BookSummaryOut   `json:"book"`
}

type ReservationOut struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	BookID    string    `json:"book_id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type PaymentOut struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	AmountCents int       `json:"amount_cents"`
	Reason      string    `json:"reason"`
	CreatedAt   time.Time `json:"created_at"`
}

type FeedbackOut struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

type BalanceOut struct {
	UserID           string `json:"user_id"`
	FinesCents       int    `json:"fines_cents"`
	PaidCents        int    `json:"paid_cents"`
	OutstandingCents int    `json:"outstanding_cents"`
}

/***** mapping *****/

func userOut(m members.MemberInfo) UserOut {
	return UserOut{
		ID:            m.UserID,
		FullName:      m.FullName,
		Email:         m.Email,
		Role:          m.Role,
		LibraryCardID: optional(m.LibraryCardID),
		Active:        m.Active,
		RegisteredAt:  m.RegisteredAt,
	}
}

func bookOut(b bookcatalog.BookInfo) BookOut {
	return BookOut{
		ID:              b.BookID,
		Title:           b.Title,
		Author:          b.Author,
		ISBN:            optional(b.ISBN),
		TotalCopies:     b.TotalCopies,
		AvailableCopies: b.AvailableCopies,
	}
}

func borrowWithBookOut(userID string, b borrowsbymember.BorrowInfo) BorrowWithBookOut {
	out := BorrowWithBookOut{Borrow: borrowOut(userID, b)}
	if b.Title != "" || b.Author != "" {
		out.Book = &BookSummaryOut{ID: b.BookID, Title: b.Title, Author: b.Author}
	}

	return out
}

func borrowOut(userID string, b borrowsbymember.BorrowInfo) BorrowOut {
	return BorrowOut{
		ID:           b.BorrowID,
		UserID:       userID,
		BookID:       b.BookID,
		IssuedAt:     b.IssuedAt,
		DueAt:        b.DueAt,
		ReturnedAt:   b.ReturnedAt,
		RenewedCount: b.RenewedCount,
		FineCents:    int(b.FineCents),
	}
}

func borrowRecordOut(r allborrows.BorrowRecord) BorrowRecordOut {
	out := BorrowRecordOut{
		Borrow: BorrowOut{
			ID:           r.BorrowID,
			IssuedAt:     r.IssuedAt,
			DueAt:        r.DueAt,
			ReturnedAt:   r.ReturnedAt,
			RenewedCount: r.RenewedCount,
			FineCents:    int(r.FineCents),
		},
	}

	if r.Member != nil {
		out.Borrow.UserID = r.Member.UserID
		out.Member = &MemberSummaryOut{ID: r.Member.UserID, FullName: r.Member.FullName, Email: r.Member.Email}
	}

	if r.Book != nil {
		out.Borrow.BookID = r.Book.BookID
		out.Book = &BookSummaryOut{ID: r.Book.BookID, Title: r.Book.Title, Author: r.Book.Author}
	}

	return out
}

func reservationOut(userID string, r reservationsbymember.ReservationInfo) ReservationOut {
	return ReservationOut{
		ID:        r.ReservationID,
		UserID:    userID,
		BookID:    r.BookID,
		Status:    r.Status,
		CreatedAt: r.ReservedAt,
	}
}

func balanceOut(b outstandingbalance.OutstandingBalance) BalanceOut {
	return BalanceOut{
		UserID:           b.UserID,
		FinesCents:       int(b.FinesCents),
		PaidCents:        int(b.PaidCents),
		OutstandingCents: int(b.BalanceCents),
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}

	return &s
}
