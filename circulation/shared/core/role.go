package core

import (
	"strings"
)

// Role is the role of a member. Values other than the constants below come only from ParseRole.
type Role string

const (
	RoleMember    Role = "member"
	RoleLibrarian Role = "librarian"
)

// ParseRole normalizes s and returns the matching Role.
// An empty s yields RoleMember.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case "", RoleMember:
		return RoleMember, nil
	case RoleLibrarian:
		return RoleLibrarian, nil
	default:
		return "", InvalidRequest("unknown role %q", s)
	}
}

func (r Role) String() string {
	return string(r)
}
