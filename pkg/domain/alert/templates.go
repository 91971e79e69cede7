package alert

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/macropilot/server/pkg/types"
)

// Coaching copy is a fixed template lookup per alert type, not a generative
// component. Unknown types get a generic fallback rather than an error since
// alert records round-trip through external storage.

var titleCaser = cases.Title(language.English)

type template struct {
	title   string
	message func(data map[string]string) string
}

var templates = map[string]template{
	types.AlertAdherenceBreach: {
		title: "Nutrition Off Track",
		message: func(data map[string]string) string {
			return fmt.Sprintf("Your intake landed in the %s zone today. Worst metric: %s.",
				data["tier"], data["worst_metric"])
		},
	},
	types.AlertHydrationInactivity: {
		title: "Hydration Reminder",
		message: func(data map[string]string) string {
			return fmt.Sprintf("No water logged for %s days. Small sips count too.", data["days_inactive"])
		},
	},
	types.AlertMealInactivity: {
		title: "Meal Logging Paused",
		message: func(data map[string]string) string {
			return fmt.Sprintf("No meals logged for %s days. Jump back in with your next meal.", data["days_inactive"])
		},
	},
	types.AlertExerciseInactivity: {
		title: "Time To Move",
		message: func(data map[string]string) string {
			return fmt.Sprintf("No workouts logged for %s days. Even a short session keeps momentum.", data["days_inactive"])
		},
	},
	types.AlertStreakBroken: {
		title: "Streak Reset",
		message: func(data map[string]string) string {
			return fmt.Sprintf("Your %s-day %s streak ended. Day one starts now.",
				data["prior_streak"], titleCaser.String(data["domain"]))
		},
	},
	types.AlertOvertrainingWarning: {
		title: "Recovery Warning",
		message: func(data map[string]string) string {
			groups := strings.ReplaceAll(data["muscle_groups"], ",", ", ")
			return fmt.Sprintf("%s worked again before full recovery. Allow at least %s rest day(s) between sessions.",
				titleCaser.String(groups), data["rest_days"])
		},
	},
}

// Render returns the display title and message for an alert type.
func Render(alertType string, severity types.Severity, data map[string]string) (title, message string) {
	tmpl, ok := templates[alertType]
	if !ok {
		return titleCaser.String(alertType), "Check your coaching dashboard for details."
	}
	title = tmpl.title
	if severity == types.SeverityCritical {
		title = "Urgent: " + title
	}
	return title, tmpl.message(data)
}
