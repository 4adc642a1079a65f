package reservationsbymember

import (
	"github.com/google/uuid"
)

const (
	queryType = "ReservationsByMember"
)

// Query represents the intent to list the reservations of a member.
type Query struct {
	UserID uuid.UUID
}

// BuildQuery creates a new Query with the provided member ID.
func BuildQuery(userID uuid.UUID) Query {
	return Query{
		UserID: userID,
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
