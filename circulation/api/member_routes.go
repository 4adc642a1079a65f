package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation/circulation/features/command/cancelreservation"
	"github.com/AntonStoeckl/library-circulation/circulation/features/command/issuebook"
	"github.com/AntonStoeckl/library-circulation/circulation/features/command/payfine"
	"github.com/AntonStoeckl/library-circulation/circulation/features/command/renewborrow"
	"github.com/AntonStoeckl/library-circulation/circulation/features/command/reservebook"
	"github.com/AntonStoeckl/library-circulation/circulation/features/command/returnbook"
	"github.com/AntonStoeckl/library-circulation/circulation/features/command/submitfeedback"
	"github.com/AntonStoeckl/library-circulation/circulation/features/query/borrowsbymember"
	"github.com/AntonStoeckl/library-circulation/circulation/features/query/outstandingbalance"
	"github.com/AntonStoeckl/library-circulation/circulation/features/query/reservationsbymember"
	"github.com/AntonStoeckl/library-circulation/circulation/shared/core"
)

func (s *Server) reserveBook(c *gin.Context) {
	var req reserveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithBadRequest(c, err)
		return
	}

	bookID, err := uuid.Parse(req.BookID)
	if err != nil {
		abortWithError(c, core.NotFound("book %s", req.BookID))
		return
	}

	ctx := c.Request.Context()
	userID := currentUserID(c)
	reservationID := uuid.New()

	command := reservebook.BuildCommand(reservationID, userID, bookID, s.now())
	if _, err := s.services.ReserveBook.Handle(ctx, command); err != nil {
		abortWithError(c, err)
		return
	}

	s.respondWithReservation(c, http.StatusCreated, userID, reservationID)
}

func (s *Server) cancelReservation(c *gin.Context) {
	reservationID, ok := pathID(c, "reservation_id", "reservation")
	if !ok {
		return
	}

	userID := currentUserID(c)

	command := cancelreservation.BuildCommand(reservationID, userID, s.now())
	if _, err := s.services.CancelReservation.Handle(c.Request.Context(), command); err != nil {
		abortWithError(c, err)
		return
	}

	s.respondWithReservation(c, http.StatusOK, userID, reservationID)
}

func (s *Server) myReservations(c *gin.Context) {
	userID := currentUserID(c)

	reservations, err := s.services.ReservationsByMember.Handle(c.Request.Context(), reservationsbymember.BuildQuery(userID))
	if err != nil {
		abortWithError(c, err)
		return
	}

	out := make([]ReservationOut, 0, len(reservations.Reservations))
	for _, r := range reservations.Reservations {
		out = append(out, reservationOut(userID.String(), r))
	}

	c.JSON(http.StatusOK, out)
}

func (s *Server) respondWithReservation(c *gin.Context, status int, userID uuid.UUID, reservationID uuid.UUID) {
	reservations, err := s.services.ReservationsByMember.Handle(c.Request.Context(), reservationsbymember.BuildQuery(userID))
	if err != nil {
		abortWithError(c, err)
		return
	}

	for _, r := range reservations.Reservations {
		if r.ReservationID == reservationID.String() {
			c.JSON(status, reservationOut(userID.String(), r))
			return
		}
	}

	abortWithError(c, core.NotFound("reservation %s", reservationID))
}

func (s *Server) issueBook(c *gin.Context) {
	var req issueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithBadRequest(c, err)
		return
	}

	bookID, err := uuid.Parse(req.BookID)
	if err != nil {
		abortWithError(c, core.NotFound("book %s", req.BookID))
		return
	}

	ctx := c.Request.Context()
	userID := currentUserID(c)
	borrowID := uuid.New()

	command := issuebook.BuildCommand(borrowID, userID, bookID, req.loanDays(), s.now())
	if _, err := s.services.IssueBook.Handle(ctx, command); err != nil {
		abortWithError(c, err)
		return
	}

	s.respondWithBorrow(c, http.StatusCreated, userID, borrowID)
}

func (s *Server) returnBook(c *gin.Context) {
	borrowID, ok := pathID(c, "borrow_id", "borrow")
	if !ok {
		return
	}

	userID := currentUserID(c)

	command := returnbook.BuildCommand(borrowID, userID, s.now())
	if _, err := s.services.ReturnBook.Handle(c.Request.Context(), command); err != nil {
		abortWithError(c, err)
		return
	}

	s.respondWithBorrow(c, http.StatusOK, userID, borrowID)
}

func (s *Server) renewBorrow(c *gin.Context) {
	borrowID, ok := pathID(c, "borrow_id", "borrow")
	if !ok {
		return
	}

	userID := currentUserID(c)

	command := renewborrow.BuildCommand(borrowID, userID, s.now())
	if _, err := s.services.RenewBorrow.Handle(c.Request.Context(), command); err != nil {
		abortWithError(c, err)
		return
	}

	s.respondWithBorrow(c, http.StatusOK, userID, borrowID)
}

func (s *Server) myBorrows(c *gin.Context) {
	userID := currentUserID(c)

	borrows, err := s.services.BorrowsByMember.Handle(c.Request.Context(), borrowsbymember.BuildQuery(userID))
	if err != nil {
		abortWithError(c, err)
		return
	}

	out := make([]BorrowWithBookOut, 0, len(borrows.Borrows))
	for _, b := range borrows.Borrows {
		out = append(out, borrowWithBookOut(userID.String(), b))
	}

	c.JSON(http.StatusOK, out)
}

func (s *Server) respondWithBorrow(c *gin.Context, status int, userID uuid.UUID, borrowID uuid.UUID) {
	borrow, err := s.borrowOf(c.Request.Context(), userID, borrowID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(status, borrow)
}

func (s *Server) borrowOf(ctx context.Context, userID uuid.UUID, borrowID uuid.UUID) (BorrowOut, error) {
	borrows, err := s.services.BorrowsByMember.Handle(ctx, borrowsbymember.BuildQuery(userID))
	if err != nil {
		return BorrowOut{}, err
	}

	for _, b := range borrows.Borrows {
		if b.BorrowID == borrowID.String() {
			return borrowOut(userID.String(), b), nil
		}
	}

	return BorrowOut{}, core.NotFound("borrow %s", borrowID)
}

func (s *Server) myBalance(c *gin.Context) {
	balance, err := s.services.OutstandingBalance.Handle(c.Request.Context(), outstandingbalance.BuildQuery(currentUserID(c)))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, balanceOut(balance))
}

func (s *Server) payFine(c *gin.Context) {
	var req paymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithBadRequest(c, err)
		return
	}

	userID := currentUserID(c)
	command := payfine.BuildCommand(uuid.New(), userID, req.AmountCents, req.Reason, s.now())

	if _, err := s.services.PayFine.Handle(c.Request.Context(), command); err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, PaymentOut{
		ID:          command.PaymentID.String(),
		UserID:      userID.String(),
		AmountCents: command.AmountCents,
		Reason:      command.Reason,
		CreatedAt:   command.OccurredAt,
	})
}

func (s *Server) submitFeedback(c *gin.Context) {
	var req feedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithBadRequest(c, err)
		return
	}

	userID := currentUserID(c)
	command := submitfeedback.BuildCommand(uuid.New(), userID, req.Message, s.now())

	if _, err := s.services.SubmitFeedback.Handle(c.Request.Context(), command); err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, FeedbackOut{
		ID:        command.FeedbackID.String(),
		UserID:    userID.String(),
		Message:   command.Message,
		CreatedAt: command.OccurredAt,
	})
}
