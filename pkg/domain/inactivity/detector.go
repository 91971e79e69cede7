// Package inactivity inspects last-activity timestamps and streaks and emits
// graded alert candidates when a user goes quiet in a tracked domain.
package inactivity

import (
	"strconv"
	"time"

	"github.com/macropilot/server/pkg/dateutil"
	"github.com/macropilot/server/pkg/domain/alert"
	"github.com/macropilot/server/pkg/types"
)

// Thresholds are the escalation day counts for one domain: below Info no
// alert, then info, warning, and critical at or beyond Critical. Tunable
// configuration, not business law.
type Thresholds struct {
	Info     int
	Warning  int
	Critical int
}

// Config holds per-domain thresholds. BreakWindowDays bounds how many days
// after its last active day a broken streak may still raise streak_broken;
// older breaks are history, not news, even after the original alert was
// resolved.
type Config struct {
	Thresholds      map[types.ActivityDomain]Thresholds
	BreakWindowDays int
}

// DefaultConfig escalates hydration fastest, then meals, then exercise.
func DefaultConfig() Config {
	return Config{
		Thresholds: map[types.ActivityDomain]Thresholds{
			types.DomainHydration: {Info: 1, Warning: 2, Critical: 3},
			types.DomainMeal:      {Info: 2, Warning: 3, Critical: 5},
			types.DomainExercise:  {Info: 3, Warning: 5, Critical: 7},
		},
		BreakWindowDays: 3,
	}
}

// AlertTypeForDomain maps a domain to its inactivity alert type. Domains
// without a mapping (e.g. login) never alert.
func AlertTypeForDomain(domain types.ActivityDomain) string {
	switch domain {
	case types.DomainHydration:
		return types.AlertHydrationInactivity
	case types.DomainMeal:
		return types.AlertMealInactivity
	case types.DomainExercise:
		return types.AlertExerciseInactivity
	default:
		return ""
	}
}

type Detector struct {
	config Config
}

func NewDetector(config Config) *Detector {
	if config.Thresholds == nil {
		config = DefaultConfig()
	}
	if config.BreakWindowDays <= 0 {
		config.BreakWindowDays = DefaultConfig().BreakWindowDays
	}
	return &Detector{config: config}
}

// Detect returns alert candidates for the user. Persistence and notification
// dispatch belong to the caller; this function only reads its arguments.
//
// Dedup: a candidate is suppressed while an unresolved alert of the same
// (user, type) pair exists in existingUnresolved, so repeat sweeps before
// resolution emit nothing.
func (d *Detector) Detect(userID string, lastSeen map[types.ActivityDomain]time.Time, streaks []*types.Streak, existingUnresolved []*types.Alert, now time.Time) []*types.Alert {
	var candidates []*types.Alert

	for _, domain := range types.TrackedDomains {
		seen, ok := lastSeen[domain]
		if !ok {
			continue // never logged in this domain; nothing to escalate from
		}
		alertType := AlertTypeForDomain(domain)
		if alertType == "" {
			continue
		}

		days := dateutil.DaysBetween(seen, now)
		severity, alerting := d.severityFor(domain, days)
		if !alerting {
			continue
		}
		if alert.FindUnresolved(existingUnresolved, alertType) != nil {
			continue
		}

		candidates = append(candidates, alert.New(userID, alertType, severity, map[string]string{
			"domain":        string(domain),
			"days_inactive": strconv.Itoa(days),
		}, now))
	}

	for _, streak := range streaks {
		if streak == nil || streak.Current != 0 || streak.Longest == 0 || streak.LastDateKey == "" {
			continue
		}
		// Only the fresh reset alerts. A streak that died weeks ago keeps
		// Current at 0 indefinitely; re-deriving the break from that state
		// would re-alert every sweep once the first alert is resolved.
		last, err := time.Parse(dateutil.DateKeyFormat, streak.LastDateKey)
		if err != nil || dateutil.DaysBetween(last, now) > d.config.BreakWindowDays {
			continue
		}
		if alert.FindUnresolved(existingUnresolved, types.AlertStreakBroken) != nil {
			continue
		}
		// Broken streaks are always informational, whatever the domain.
		candidates = append(candidates, alert.New(userID, types.AlertStreakBroken, types.SeverityInfo, map[string]string{
			"domain":       string(streak.Domain),
			"prior_streak": strconv.Itoa(streak.Longest),
		}, now))
		// One streak_broken candidate per sweep keeps the dedup invariant.
		break
	}

	return candidates
}

func (d *Detector) severityFor(domain types.ActivityDomain, days int) (types.Severity, bool) {
	t, ok := d.config.Thresholds[domain]
	if !ok {
		return "", false
	}
	switch {
	case days >= t.Critical:
		return types.SeverityCritical, true
	case days >= t.Warning:
		return types.SeverityWarning, true
	case days >= t.Info:
		return types.SeverityInfo, true
	default:
		return "", false
	}
}
