package shared

const (
	ProjectID = "macropilot-project" // Can be overridden by env var in main if needed

	TopicDailyEvaluation = "topic-daily-evaluation" // Daily adherence check entry point
	TopicWorkoutLogged   = "topic-workout-logged"
	TopicInactivitySweep = "topic-inactivity-sweep"
	TopicAlertCreated    = "topic-alert-created"
	TopicAlertResolved   = "topic-alert-resolved"

	CollectionUsers      = "users"
	CollectionExecutions = "executions"

	// Per-user sub-collections: users/{uid}/...
	SubcollectionDailyTotals    = "daily_totals"
	SubcollectionContextEntries = "context_entries"
	SubcollectionFatigue        = "fatigue_records"
	SubcollectionAlerts         = "alerts"
	SubcollectionActivityMarks  = "activity_marks"
	SubcollectionStreaks        = "streaks"

	// Well-known keys in an alert's data payload, carried through to push
	// notifications.
	DataKeyAlertType = "alert_type"
	DataKeySeverity  = "severity"
)
