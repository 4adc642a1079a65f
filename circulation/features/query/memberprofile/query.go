package memberprofile

import (
	"strings"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation/circulation/shared/core"
)

const (
	queryType = "MemberProfile"
)

// Query represents the intent to read one member. Exactly one of UserID and Email is set.
type Query struct {
	UserID uuid.UUID
	Email  core.EmailString
}

// BuildQuery creates a new Query by member ID.
func BuildQuery(userID uuid.UUID) Query {
	return Query{
		UserID: userID,
	}
}

// BuildQueryByEmail creates a new Query by email.
func BuildQueryByEmail(email core.EmailString) Query {
	return Query{
		Email: strings.ToLower(strings.TrimSpace(email)),
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
