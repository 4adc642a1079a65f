package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation/circulation/features/command/registermember"
	"github.com/AntonStoeckl/library-circulation/circulation/features/query/memberprofile"
	"github.com/AntonStoeckl/library-circulation/circulation/shared/core"
	"github.com/AntonStoeckl/library-circulation/circulation/shared/shell"
	"github.com/AntonStoeckl/library-circulation/circulation/shared/shell/auth"
)

const DefaultLibrarianName = "Head Librarian"

var ErrMissingPassword = errors.New("a password is required for the librarian account")

// EventStore is an event store that can create its own schema.
type EventStore interface {
	shell.EventStore
	CreateSchema(ctx context.Context) error
}

// Librarian describes the account to seed.
type Librarian struct {
	FullName string
	Email    core.EmailString
	Password string
}

// Result reports what Run did.
type Result struct {
	UserID  core.UserIDString
	Created bool
}

// Run creates the schema and registers the librarian unless an account with that email exists.
// An existing account is left untouched, whatever its role.
func Run(ctx context.Context, es EventStore, librarian Librarian, now time.Time) (Result, error) {
	if err := es.CreateSchema(ctx); err != nil {
		return Result{}, fmt.Errorf("create schema: %w", err)
	}

	profiles := memberprofile.NewQueryHandler(es)

	existing, err := profiles.Handle(ctx, memberprofile.BuildQueryByEmail(librarian.Email))
	switch {
	case err == nil:
		return Result{UserID: existing.UserID}, nil
	case !errors.Is(err, core.ErrNotFound):
		return Result{}, err
	}

	if librarian.Password == "" {
		return Result{}, ErrMissingPassword
	}

	fullName := librarian.FullName
	if fullName == "" {
		fullName = DefaultLibrarianName
	}

	passwordHash, err := auth.HashPassword(librarian.Password)
	if err != nil {
		return Result{}, err
	}

	userID := uuid.New()
	command := registermember.BuildCommand(userID, fullName, librarian.Email, passwordHash, core.RoleLibrarian.String(), now)

	if _, err := registermember.NewCommandHandler(es).Handle(ctx, command); err != nil {
		return Result{}, err
	}

	return Result{UserID: userID.String(), Created: true}, nil
}
