package members

import (
	"cmp"
	"slices"

	"github.com/AntonStoeckl/library-circulation/circulation/shared/core"
	"github.com/AntonStoeckl/library-circulation/eventstore"
)

// ProjectMembers folds the member events into the current members, newest first.
// Removed members are excluded.
func ProjectMembers(history core.DomainEvents, maxSequenceNumber uint) Members {
	members := make(map[core.UserIDString]*MemberInfo)

	for _, event := range history {
		switch e := event.(type) {
		case core.MemberRegistered:
			members[e.UserID] = &MemberInfo{
				UserID:       e.UserID,
				FullName:     e.FullName,
				Email:        e.Email,
				PasswordHash: e.PasswordHash,
				Role:         e.Role,
				Active:       true,
				RegisteredAt: e.OccurredAt,
			}

		case core.MemberDetailsUpdated:
			if m, ok := members[e.UserID]; ok {
				m.FullName, m.Active = e.FullName, e.Active
			}

		case core.MemberRoleChanged:
			if m, ok := members[e.UserID]; ok {
				m.Role = e.Role
			}

		case core.LibraryCardIssued:
			if m, ok := members[e.UserID]; ok {
				m.LibraryCardID = e.LibraryCardID
			}

		case core.MemberRemoved:
			delete(members, e.UserID)
		}
	}

	result := make([]MemberInfo, 0, len(members))
	for _, m := range members {
		result = append(result, *m)
	}

	slices.SortFunc(result, func(a, b MemberInfo) int {
		if c := b.RegisteredAt.Compare(a.RegisteredAt); c != 0 {
			return c
		}

		return cmp.Compare(a.UserID, b.UserID)
	})

	return Members{Members: result, Count: len(result), SequenceNumber: maxSequenceNumber}
}

// MemberEventTypes are the event types that shape a member.
func MemberEventTypes() []string {
	return []string{
		core.MemberRegisteredEventType,
		core.MemberDetailsUpdatedEventType,
		core.MemberRoleChangedEventType,
		core.LibraryCardIssuedEventType,
		core.MemberRemovedEventType,
	}
}

// BuildEventFilter creates the filter for all member events.
func BuildEventFilter() eventstore.Filter {
	types := MemberEventTypes()

	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(types[0], types[1:]...).
		Finalize()
}
