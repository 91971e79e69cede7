package types

import "strings"

// ContextType identifies a situational context that can relax nutrition
// tolerances for a day. The set is closed; unrecognized external strings
// parse to ContextUnknown and behave as a neutral context.
type ContextType string

const (
	ContextUnknown      ContextType = "unknown"
	ContextStressfulDay ContextType = "stressful_day"
	ContextWeekend      ContextType = "weekend"
	ContextIllness      ContextType = "illness"
	ContextTravel       ContextType = "travel"
	ContextSocialEvent  ContextType = "social_event"
	ContextWorkPressure ContextType = "work_pressure"
	ContextEmotional    ContextType = "emotional_state"
)

var contextTypes = map[string]ContextType{
	"stressful_day":   ContextStressfulDay,
	"weekend":         ContextWeekend,
	"illness":         ContextIllness,
	"travel":          ContextTravel,
	"social_event":    ContextSocialEvent,
	"work_pressure":   ContextWorkPressure,
	"emotional_state": ContextEmotional,
}

// ParseContextType maps an externally-sourced string to a ContextType.
// Unknown values map to ContextUnknown rather than erroring, since context
// entries arrive from free-form client input.
func ParseContextType(s string) ContextType {
	if t, ok := contextTypes[strings.ToLower(strings.TrimSpace(s))]; ok {
		return t
	}
	return ContextUnknown
}

// MuscleGroup identifies a trainable muscle group.
type MuscleGroup string

const (
	MuscleUnknown    MuscleGroup = "unknown"
	MuscleChest      MuscleGroup = "chest"
	MuscleBack       MuscleGroup = "back"
	MuscleShoulders  MuscleGroup = "shoulders"
	MuscleBiceps     MuscleGroup = "biceps"
	MuscleTriceps    MuscleGroup = "triceps"
	MuscleCore       MuscleGroup = "core"
	MuscleQuadriceps MuscleGroup = "quadriceps"
	MuscleHamstrings MuscleGroup = "hamstrings"
	MuscleGlutes     MuscleGroup = "glutes"
	MuscleCalves     MuscleGroup = "calves"
)

// AllMuscleGroups is the full known set, in a stable order.
var AllMuscleGroups = []MuscleGroup{
	MuscleChest,
	MuscleBack,
	MuscleShoulders,
	MuscleBiceps,
	MuscleTriceps,
	MuscleCore,
	MuscleQuadriceps,
	MuscleHamstrings,
	MuscleGlutes,
	MuscleCalves,
}

var muscleGroups = func() map[string]MuscleGroup {
	m := make(map[string]MuscleGroup, len(AllMuscleGroups))
	for _, g := range AllMuscleGroups {
		m[string(g)] = g
	}
	return m
}()

// ParseMuscleGroup maps an externally-sourced string to a MuscleGroup.
// Unknown values map to MuscleUnknown; callers exclude those from
// rested-muscle sets instead of failing.
func ParseMuscleGroup(s string) MuscleGroup {
	if g, ok := muscleGroups[strings.ToLower(strings.TrimSpace(s))]; ok {
		return g
	}
	return MuscleUnknown
}

// ActivityDomain identifies a tracked activity stream for inactivity
// detection and streaks.
type ActivityDomain string

const (
	DomainHydration ActivityDomain = "hydration"
	DomainMeal      ActivityDomain = "meal"
	DomainExercise  ActivityDomain = "exercise"
	DomainLogin     ActivityDomain = "login"
)

// TrackedDomains are the domains the inactivity detector escalates on.
// Login is recorded but never alerts.
var TrackedDomains = []ActivityDomain{DomainHydration, DomainMeal, DomainExercise}

// Severity grades an alert.
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)
