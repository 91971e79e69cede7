// Package streak maintains consecutive-day activity counters. Counters are
// pure data; both mutations here take the clock as an argument.
package streak

import (
	"time"

	"github.com/macropilot/server/pkg/dateutil"
	"github.com/macropilot/server/pkg/types"
)

// Advance records activity on the given date. Repeat activity on an already
// counted day is a no-op. Returns whether the counter changed and whether an
// existing run was broken by a gap before this activity.
func Advance(s *types.Streak, date time.Time) (changed bool, broken bool) {
	dateKey := dateutil.DateKey(date)
	if s.LastDateKey == dateKey {
		return false, false
	}

	if s.LastDateKey != "" {
		prevKey := dateutil.DateKey(date.AddDate(0, 0, -1))
		if s.LastDateKey != prevKey {
			// Gap day(s) since the last counted activity.
			broken = s.Current > 0
			s.Current = 0
		}
	}

	s.Current++
	if s.Current > s.Longest {
		s.Longest = s.Current
	}
	s.LastDateKey = dateKey
	return true, broken
}

// Expire zeroes the running counter once the streak can no longer continue:
// the last counted day is before yesterday, so even activity today would start
// over. Returns true when the counter was reset. Longest is untouched.
func Expire(s *types.Streak, now time.Time) bool {
	if s.Current == 0 || s.LastDateKey == "" {
		return false
	}
	last, err := time.Parse(dateutil.DateKeyFormat, s.LastDateKey)
	if err != nil {
		return false
	}
	if dateutil.DaysBetween(last, now) <= 1 {
		return false
	}
	s.Current = 0
	return true
}
