package core

import (
	"time"
)

// Lending policy.
const (
	DefaultLoanDays     = 14
	MinLoanDays         = 1
	MaxLoanDays         = 60
	MaxRenewals         = 1
	RenewalExtension    = 7 * 24 * time.Hour
	FinePerLateDayCents = CentsInt(1000)
)

// DueAt returns the due date of a copy issued at issuedAt for loanDays days.
func DueAt(issuedAt time.Time, loanDays int) DueAtTS {
	return ToOccurredAt(issuedAt.Add(time.Duration(loanDays) * 24 * time.Hour))
}

// RenewedDueAt extends a due date by one renewal period.
func RenewedDueAt(dueAt time.Time) DueAtTS {
	return ToOccurredAt(dueAt.Add(RenewalExtension))
}

// LateDays counts the UTC calendar days between the due date and the return date.
// Returning on the due date or earlier is never late.
func LateDays(dueAt, returnedAt time.Time) int {
	due := calendarDay(dueAt)
	returned := calendarDay(returnedAt)

	if !returned.After(due) {
		return 0
	}

	return int(returned.Sub(due).Hours() / 24)
}

// FineFor returns the fine for a copy returned at returnedAt that was due at dueAt.
func FineFor(dueAt, returnedAt time.Time) CentsInt {
	return CentsInt(LateDays(dueAt, returnedAt)) * FinePerLateDayCents
}

func calendarDay(t time.Time) time.Time {
	u := t.UTC()

	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
