package members

import (
	"time"

	"github.com/AntonStoeckl/library-circulation/circulation/shared/core"
)

// MemberInfo is one current member. PasswordHash never leaves the service.
type MemberInfo struct {
	UserID        core.UserIDString
	FullName      string
	Email         core.EmailString
	PasswordHash  string
	Role          core.Role
	LibraryCardID core.LibraryCardIDString
	Active        bool
	RegisteredAt  time.Time
}

// Members is the result of the query.
type Members struct {
	Members        []MemberInfo
	Count          int
	SequenceNumber uint
}

// GetSequenceNumber returns the sequence number of the last event the list was projected from.
func (r Members) GetSequenceNumber() uint {
	return r.SequenceNumber
}
