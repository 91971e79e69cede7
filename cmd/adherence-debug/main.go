// adherence-debug evaluates a day's totals against goals offline, printing
// the tolerance window and per-metric verdicts. Useful for checking why a
// production day classified the way it did without touching Firestore.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/macropilot/server/pkg/domain/adherence"
	"github.com/macropilot/server/pkg/types"
)

func main() {
	var (
		calories = flag.Int("calories", 0, "calories consumed")
		protein  = flag.Int("protein", 0, "protein consumed (g)")
		carbs    = flag.Int("carbs", 0, "carbs consumed (g)")
		fat      = flag.Int("fat", 0, "fat consumed (g)")
		entries  = flag.Int("entries", 1, "meal entries logged")

		calorieGoal = flag.Int("calorie-goal", 2000, "calorie goal")
		proteinGoal = flag.Int("protein-goal", 150, "protein goal (g)")
		carbsGoal   = flag.Int("carbs-goal", 250, "carbs goal (g)")
		fatGoal     = flag.Int("fat-goal", 70, "fat goal (g)")

		contexts = flag.String("contexts", "", "comma-separated context types active for the day (e.g. illness,travel)")
	)
	flag.Parse()

	totals := &types.DailyNutritionTotals{
		Calories:   *calories,
		Protein:    *protein,
		Carbs:      *carbs,
		Fat:        *fat,
		EntryCount: *entries,
	}
	goals := &types.Goals{
		CalorieGoal: *calorieGoal,
		ProteinGoal: *proteinGoal,
		CarbsGoal:   *carbsGoal,
		FatGoal:     *fatGoal,
	}

	now := time.Now().UTC()
	var entriesForDay []*types.ContextEntry
	if *contexts != "" {
		for _, name := range strings.Split(*contexts, ",") {
			ct := types.ParseContextType(name)
			if ct == types.ContextUnknown {
				fmt.Fprintf(os.Stderr, "warning: unknown context %q treated as neutral\n", name)
			}
			entriesForDay = append(entriesForDay, &types.ContextEntry{
				Type:             ct,
				Date:             now,
				AffectsNutrition: true,
			})
		}
	}

	base := adherence.DefaultWindow()
	window := adherence.Adjust(base, now, entriesForDay)
	result := adherence.Evaluate(totals, goals, window)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "window\tcalories ±%.0f kcal\tmacros ±%.0f g\n", window.CalorieTolerance, window.MacroTolerance)
	if window != base {
		fmt.Fprintf(w, "\t(relaxed from ±%.0f / ±%.0f by active contexts)\n", base.CalorieTolerance, base.MacroTolerance)
	}
	fmt.Fprintln(w)

	if result.InsufficientData {
		fmt.Fprintln(w, "verdict\tINSUFFICIENT DATA (no meals logged)")
		w.Flush()
		return
	}

	fmt.Fprintln(w, "metric\tactual\tgoal\tdeviation\ttier")
	printRow(w, adherence.MetricCalories, *calories, *calorieGoal, result)
	printRow(w, adherence.MetricProtein, *protein, *proteinGoal, result)
	printRow(w, adherence.MetricCarbs, *carbs, *carbsGoal, result)
	printRow(w, adherence.MetricFat, *fat, *fatGoal, result)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "verdict\t%s\n", strings.ToUpper(string(result.Tier)))
	w.Flush()
}

func printRow(w *tabwriter.Writer, metric adherence.Metric, actual, goal int, result adherence.Result) {
	tier, tracked := result.PerMetric[metric]
	if !tracked {
		fmt.Fprintf(w, "%s\t%d\t-\t-\tuntracked\n", metric, actual)
		return
	}
	fmt.Fprintf(w, "%s\t%d\t%d\t%.0f\t%s\n", metric, actual, goal, result.Deviations[metric], tier)
}
