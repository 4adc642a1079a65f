package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AntonStoeckl/library-circulation/circulation/shared/core"
	"github.com/AntonStoeckl/library-circulation/circulation/shared/shell/auth"
)

const (
	readHeaderTimeout = 5 * time.Second
	readTimeout       = 15 * time.Second
	writeTimeout      = 15 * time.Second
	idleTimeout       = 60 * time.Second
)

// Server holds the route handlers.
type Server struct {
	services Services
	tokens   auth.Tokens
	logger   *slog.Logger
	now      func() time.Time
}

// Option configures a Server.
type Option func(*Server)

// WithLogger logs every request.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithClock replaces time.Now as the source of OccurredAt, used in tests.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		s.now = now
	}
}

// NewServer creates a Server.
func NewServer(services Services, tokens auth.Tokens, opts ...Option) *Server {
	s := &Server{services: services, tokens: tokens, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Router builds the gin engine with all routes.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if s.logger != nil {
		r.Use(RequestLogger(s.logger))
	}

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, messageResponse{Message: "library circulation service"})
	})

	authenticated := Authenticate(s.tokens, s.services.MemberProfile)

	authGroup := r.Group("/auth")
	authGroup.POST("/register", s.register)
	authGroup.POST("/login", s.login)
	authGroup.GET("/me", authenticated, s.me)

	books := r.Group("/books")
	books.GET("", s.listBooks)
	books.GET("/search", s.searchBooks)
	books.GET("/:book_id", s.getBook)

	member := r.Group("/member", authenticated)
	member.POST("/reservations", s.reserveBook)
	member.GET("/reservations", s.myReservations)
	member.DELETE("/reservations/:reservation_id", s.cancelReservation)
	member.POST("/borrows/issue", s.issueBook)
	member.POST("/borrows/:borrow_id/return", s.returnBook)
	member.POST("/borrows/:borrow_id/renew", s.renewBorrow)
	member.GET("/borrows", s.myBorrows)
	member.GET("/balance", s.myBalance)
	member.POST("/payments", s.payFine)
	member.POST("/feedback", s.submitFeedback)

	librarian := r.Group("/librarian", authenticated, RequireRole(core.RoleLibrarian))
	librarian.POST("/books", s.addBook)
	librarian.PUT("/books/:book_id", s.updateBook)
	librarian.DELETE("/books/:book_id", s.removeBook)
	librarian.GET("/members", s.listMembers)
	librarian.POST("/members", s.addMember)
	librarian.PUT("/members/:user_id", s.updateMember)
	librarian.DELETE("/members/:user_id", s.removeMember)
	librarian.PUT("/members/:user_id/role", s.changeRole)
	librarian.POST("/members/:user_id/issue-card", s.issueLibraryCard)
	librarian.GET("/borrows", s.allBorrows)

	return r
}

// NewHTTPServer creates the http.Server serving handler on addr.
func NewHTTPServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}
}
