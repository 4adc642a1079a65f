package memberprofile

import (
	"context"

	"github.com/AntonStoeckl/library-circulation/circulation/features/query/members"
	"github.com/AntonStoeckl/library-circulation/circulation/shared/core"
	"github.com/AntonStoeckl/library-circulation/circulation/shared/shell"
	"github.com/AntonStoeckl/library-circulation/eventstore"
)

// MemberProfile is the result of the query.
type MemberProfile struct {
	members.MemberInfo
	SequenceNumber uint
}

// GetSequenceNumber returns the sequence number of the last event the profile was projected from.
func (r MemberProfile) GetSequenceNumber() uint {
	return r.SequenceNumber
}

// QueryHandler reads one member and projects it like the members list does.
type QueryHandler struct {
	eventStore shell.QueriesEvents
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(eventStore shell.QueriesEvents) QueryHandler {
	return QueryHandler{eventStore: eventStore}
}

// Handle executes the query. Unknown and removed members yield core.ErrNotFound.
func (h QueryHandler) Handle(ctx context.Context, query Query) (MemberProfile, error) {
	userID := query.UserID.String()

	if query.Email != "" {
		holder, err := h.holderOf(ctx, query.Email)
		if err != nil {
			return MemberProfile{}, err
		}

		if holder == "" {
			return MemberProfile{}, core.NotFound("member with email %s", query.Email)
		}

		userID = holder
	}

	history, maxSequenceNumber, err := shell.QueryHistory(ctx, h.eventStore, BuildEventFilter(userID))
	if err != nil {
		return MemberProfile{}, err
	}

	projection := members.ProjectMembers(history, maxSequenceNumber)
	if projection.Count == 0 {
		return MemberProfile{}, core.NotFound("member %s", userID)
	}

	return MemberProfile{MemberInfo: projection.Members[0], SequenceNumber: maxSequenceNumber}, nil
}

func (h QueryHandler) holderOf(ctx context.Context, email core.EmailString) (core.UserIDString, error) {
	history, _, err := shell.QueryHistory(ctx, h.eventStore, BuildEmailFilter(email))
	if err != nil {
		return "", err
	}

	holder := ""
	for _, event := range history {
		switch e := event.(type) {
		case core.MemberRegistered:
			holder = e.UserID
		case core.MemberRemoved:
			holder = ""
		}
	}

	return holder, nil
}

// BuildEventFilter creates the filter for all events of userID.
func BuildEventFilter(userID core.UserIDString) eventstore.Filter {
	types := members.MemberEventTypes()

	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(types[0], types[1:]...).
		AndAnyPredicateOf(eventstore.P("UserID", userID)).
		Finalize()
}

// BuildEmailFilter creates the filter for the registrations of email.
func BuildEmailFilter(email core.EmailString) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(
			core.MemberRegisteredEventType,
			core.MemberRemovedEventType,
		).
		AndAnyPredicateOf(eventstore.P("Email", email)).
		Finalize()
}
