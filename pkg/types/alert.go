package types

import "time"

// Alert types raised by the coaching engine. The set is closed; titles and
// message templates are looked up per type in pkg/domain/alert.
const (
	AlertAdherenceBreach     = "adherence_breach"
	AlertHydrationInactivity = "hydration_inactivity"
	AlertMealInactivity      = "meal_inactivity"
	AlertExerciseInactivity  = "exercise_inactivity"
	AlertStreakBroken        = "streak_broken"
	AlertOvertrainingWarning = "overtraining_warning"
)

// Alert is a persisted, stateful notice raised by an evaluator or detector.
// Evaluators only create alerts; every later mutation goes through the
// lifecycle transitions in pkg/domain/alert.
type Alert struct {
	AlertId   string            `json:"alertId"`
	UserId    string            `json:"userId"`
	Type      string            `json:"type"`
	Severity  Severity          `json:"severity"`
	Title     string            `json:"title"`
	Message   string            `json:"message"`
	Data      map[string]string `json:"data,omitempty"`
	CreatedAt time.Time         `json:"createdAt"`

	IsActive    bool       `json:"isActive"`
	IsDismissed bool       `json:"isDismissed"`
	DismissedAt *time.Time `json:"dismissedAt,omitempty"`
	IsResolved  bool       `json:"isResolved"`
	ResolvedAt  *time.Time `json:"resolvedAt,omitempty"`
	ExpiresAt   *time.Time `json:"expiresAt,omitempty"`
}
