package types

import "time"

// UserRecord is the coaching profile stored per user.
type UserRecord struct {
	UserId    string    `json:"userId"`
	Email     string    `json:"email,omitempty"`
	Goals     *Goals    `json:"goals,omitempty"`
	FCMTokens []string  `json:"fcmTokens,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Goals holds the daily nutrition targets. A zero target means the metric is
// not tracked and is excluded from adherence verdicts.
type Goals struct {
	CalorieGoal int `json:"calorieGoal"`
	ProteinGoal int `json:"proteinGoal"` // grams
	CarbsGoal   int `json:"carbsGoal"`   // grams
	FatGoal     int `json:"fatGoal"`     // grams
}

// DailyNutritionTotals is the aggregated intake for one user-date pair,
// produced by the logging collaborator. EntryCount of zero means no meals
// were logged for the date.
type DailyNutritionTotals struct {
	UserId     string    `json:"userId"`
	Date       time.Time `json:"date"`
	Calories   int       `json:"calories"`
	Protein    int       `json:"protein"` // grams
	Carbs      int       `json:"carbs"`   // grams
	Fat        int       `json:"fat"`     // grams
	EntryCount int       `json:"entryCount"`
}

// ContextEntry is a situational event logged for a date. Several entries may
// be active for the same date; each proposes its own tolerance multiplier.
type ContextEntry struct {
	UserId           string      `json:"userId"`
	Type             ContextType `json:"type"`
	Date             time.Time   `json:"date"`
	AffectsNutrition bool        `json:"affectsNutrition"`
	Note             string      `json:"note,omitempty"`
}

// MuscleFatigueRecord tracks when a muscle group was last worked. One record
// per (user, muscle group); workouts overwrite it (last write wins).
type MuscleFatigueRecord struct {
	UserId         string      `json:"userId"`
	MuscleGroup    MuscleGroup `json:"muscleGroup"`
	LastWorkedDate time.Time   `json:"lastWorkedDate"`
	IntensityLevel int         `json:"intensityLevel"` // 1..5
}

// ExerciseCatalogEntry describes one exercise in the read-only catalog.
type ExerciseCatalogEntry struct {
	Name              string      `json:"name"`
	MuscleGroup       MuscleGroup `json:"muscleGroup"`
	CaloriesPerMinute int         `json:"caloriesPerMinute"`
	Difficulty        string      `json:"difficulty"` // beginner / intermediate / advanced
	Type              string      `json:"type"`       // strength / cardio / mobility
}

// RecommendedExercise is a catalog entry annotated with the computed
// duration needed to hit a calorie target.
type RecommendedExercise struct {
	ExerciseCatalogEntry
	DurationMinutes   int  `json:"durationMinutes"`
	EstimatedCalories int  `json:"estimatedCalories"`
	MuscleIsRested    bool `json:"muscleIsRested"`
}

// ActivityMark records the most recent activity seen in a domain.
type ActivityMark struct {
	UserId   string         `json:"userId"`
	Domain   ActivityDomain `json:"domain"`
	LastSeen time.Time      `json:"lastSeen"`
}

// Streak is a consecutive-day counter for an activity domain. Current resets
// to zero on a missed day; Longest is the historical maximum.
type Streak struct {
	UserId      string         `json:"userId"`
	Domain      ActivityDomain `json:"domain"`
	Current     int            `json:"current"`
	Longest     int            `json:"longest"`
	LastDateKey string         `json:"lastDateKey"` // "2006-01-02" of the last counted day
}

// ExecutionRecord logs one function invocation for observability.
type ExecutionRecord struct {
	ExecutionId string    `json:"executionId"`
	ServiceName string    `json:"serviceName"`
	UserId      string    `json:"userId,omitempty"`
	TestRunID   string    `json:"testRunId,omitempty"`
	TriggerType string    `json:"triggerType"`
	Status      string    `json:"status"`
	Error       string    `json:"error,omitempty"`
	StartedAt   time.Time `json:"startedAt"`
	FinishedAt  time.Time `json:"finishedAt,omitempty"`
}

// Execution statuses.
const (
	StatusStarted = "STARTED"
	StatusSuccess = "SUCCESS"
	StatusSkipped = "SKIPPED"
	StatusFailure = "FAILURE"
)
