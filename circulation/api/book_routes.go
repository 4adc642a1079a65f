package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation/circulation/features/command/addbook"
	"github.com/AntonStoeckl/library-circulation/circulation/features/command/adjuststock"
	"github.com/AntonStoeckl/library-circulation/circulation/features/command/editbook"
	"github.com/AntonStoeckl/library-circulation/circulation/features/command/removebook"
	"github.com/AntonStoeckl/library-circulation/circulation/features/query/bookcatalog"
	"github.com/AntonStoeckl/library-circulation/circulation/features/query/bookdetails"
	"github.com/AntonStoeckl/library-circulation/circulation/shared/core"
)

const defaultTotalCopies = 1

func (s *Server) listBooks(c *gin.Context) {
	s.respondWithCatalog(c, "")
}

func (s *Server) searchBooks(c *gin.Context) {
	s.respondWithCatalog(c, c.Query("q"))
}

func (s *Server) respondWithCatalog(c *gin.Context, search string) {
	catalog, err := s.services.BookCatalog.Handle(c.Request.Context(), bookcatalog.BuildQuery(search))
	if err != nil {
		abortWithError(c, err)
		return
	}

	out := make([]BookOut, 0, len(catalog.Books))
	for _, book := range catalog.Books {
		out = append(out, bookOut(book))
	}

	c.JSON(http.StatusOK, out)
}

func (s *Server) getBook(c *gin.Context) {
	bookID, ok := pathID(c, "book_id", "book")
	if !ok {
		return
	}

	s.respondWithBook(c, http.StatusOK, bookID)
}

func (s *Server) addBook(c *gin.Context) {
	var req addBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithBadRequest(c, err)
		return
	}

	totalCopies := defaultTotalCopies
	if req.TotalCopies != nil {
		totalCopies = *req.TotalCopies
	}

	bookID := uuid.New()
	command := addbook.BuildCommand(bookID, req.Title, req.Author, req.ISBN, totalCopies, s.now())

	if _, err := s.services.AddBook.Handle(c.Request.Context(), command); err != nil {
		abortWithError(c, err)
		return
	}

	s.respondWithBook(c, http.StatusCreated, bookID)
}

// updateBook edits the details and adjusts the stock, each only when the request carries the fields.
func (s *Server) updateBook(c *gin.Context) {
	bookID, ok := pathID(c, "book_id", "book")
	if !ok {
		return
	}

	var req updateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithBadRequest(c, err)
		return
	}

	ctx := c.Request.Context()

	if req.Title != nil || req.Author != nil || req.ISBN != nil {
		command := editbook.BuildCommand(bookID, req.Title, req.Author, req.ISBN, s.now())
		if _, err := s.services.EditBook.Handle(ctx, command); err != nil {
			abortWithError(c, err)
			return
		}
	}

	if req.TotalCopies != nil || req.AvailableCopies != nil {
		var totalCopies int

		if req.TotalCopies != nil {
			totalCopies = *req.TotalCopies
		} else {
			current, err := s.services.BookDetails.Handle(ctx, bookdetails.BuildQuery(bookID))
			if err != nil {
				abortWithError(c, err)
				return
			}

			totalCopies = current.TotalCopies
		}

		command := adjuststock.BuildCommand(bookID, totalCopies, req.AvailableCopies, s.now())
		if _, err := s.services.AdjustStock.Handle(ctx, command); err != nil {
			abortWithError(c, err)
			return
		}
	}

	s.respondWithBook(c, http.StatusOK, bookID)
}

func (s *Server) removeBook(c *gin.Context) {
	bookID, ok := pathID(c, "book_id", "book")
	if !ok {
		return
	}

	if _, err := s.services.RemoveBook.Handle(c.Request.Context(), removebook.BuildCommand(bookID, s.now())); err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, messageResponse{Message: "deleted"})
}

func (s *Server) respondWithBook(c *gin.Context, status int, bookID uuid.UUID) {
	details, err := s.services.BookDetails.Handle(c.Request.Context(), bookdetails.BuildQuery(bookID))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(status, bookOut(details.BookInfo))
}

// pathID parses a uuid path parameter. Malformed ids cannot name an existing entity, so they are a 404.
func pathID(c *gin.Context, param string, entity string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		abortWithError(c, core.NotFound("%s %s", entity, c.Param(param)))
		return uuid.Nil, false
	}

	return id, true
}
