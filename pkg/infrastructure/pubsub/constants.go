package pubsub

// CloudEvent type URNs emitted by the coaching engine. The set is closed;
// new event types must be added here and documented in the topic contract.
const (
	EventTypeAdherenceEvaluated = "app.macropilot.adherence.evaluated.v1"
	EventTypeAlertCreated       = "app.macropilot.alert.created.v1"
	EventTypeAlertResolved      = "app.macropilot.alert.resolved.v1"
	EventTypeWorkoutLogged      = "app.macropilot.workout.logged.v1"
	EventTypeInactivitySwept    = "app.macropilot.inactivity.swept.v1"
)

// CloudEvent source URNs, one per producing service.
const (
	SourceDailyCheck      = "//macropilot/functions/daily-check"
	SourceWorkoutLogged   = "//macropilot/functions/workout-logged"
	SourceInactivityCheck = "//macropilot/functions/inactivity-check"
	SourceAPI             = "//macropilot/services/api"
)
