// Package dateutil holds the calendar-day arithmetic shared by the recovery
// scheduler and the inactivity detector. All checks are day-count based, not
// elapsed-duration based: a workout logged at 23:50 counts as one full day
// behind a check at 00:10 the next day.
package dateutil

import "time"

const DateKeyFormat = "2006-01-02"

// DateKey formats t as the canonical day key used in streak documents.
func DateKey(t time.Time) string {
	return t.Format(DateKeyFormat)
}

// DaysBetween returns the number of calendar days from a to b. Time-of-day is
// ignored; the result is negative when b is before a.
func DaysBetween(a, b time.Time) int {
	at := truncateToDay(a)
	bt := truncateToDay(b)
	return int(bt.Sub(at).Hours() / 24)
}

// Yesterday returns the previous calendar day relative to now, in UTC. The
// default evaluation date when a caller names none.
func Yesterday(now time.Time) time.Time {
	return truncateToDay(now.UTC()).AddDate(0, 0, -1)
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
