package adherence

import (
	"math"

	"github.com/macropilot/server/pkg/types"
)

// Tier classifies how closely a day tracked its goals.
type Tier string

const (
	TierGreen  Tier = "green"
	TierYellow Tier = "yellow"
	TierRed    Tier = "red"
)

// Metric identifies one tracked nutrition axis.
type Metric string

const (
	MetricCalories Metric = "calories"
	MetricProtein  Metric = "protein"
	MetricCarbs    Metric = "carbs"
	MetricFat      Metric = "fat"
)

// Result is the verdict for one user-date pair. When InsufficientData is set
// no meals were logged and the tier fields are meaningless; callers must not
// treat that day as a breach.
type Result struct {
	Tier             Tier
	PerMetric        map[Metric]Tier
	Deviations       map[Metric]float64
	InsufficientData bool
}

// Evaluate compares totals against goals using the given tolerance window.
// Per metric: deviation <= tolerance is green, <= 2x tolerance is yellow,
// beyond that is red. Overall: green only when every tracked metric is green;
// any red makes the day red; otherwise yellow. Metrics with a zero goal are
// not tracked and excluded. Deterministic, no I/O.
func Evaluate(totals *types.DailyNutritionTotals, goals *types.Goals, window Window) Result {
	if totals == nil || totals.EntryCount == 0 {
		return Result{InsufficientData: true}
	}

	type axis struct {
		metric    Metric
		actual    int
		goal      int
		tolerance float64
	}
	axes := []axis{
		{MetricCalories, totals.Calories, goals.CalorieGoal, window.CalorieTolerance},
		{MetricProtein, totals.Protein, goals.ProteinGoal, window.MacroTolerance},
		{MetricCarbs, totals.Carbs, goals.CarbsGoal, window.MacroTolerance},
		{MetricFat, totals.Fat, goals.FatGoal, window.MacroTolerance},
	}

	result := Result{
		Tier:       TierGreen,
		PerMetric:  make(map[Metric]Tier, len(axes)),
		Deviations: make(map[Metric]float64, len(axes)),
	}

	sawRed := false
	sawYellow := false
	for _, a := range axes {
		if a.goal <= 0 {
			continue // untracked metric
		}
		deviation := math.Abs(float64(a.actual - a.goal))
		result.Deviations[a.metric] = deviation

		tier := classify(deviation, a.tolerance)
		result.PerMetric[a.metric] = tier
		switch tier {
		case TierRed:
			sawRed = true
		case TierYellow:
			sawYellow = true
		}
	}

	// Red dominates yellow.
	if sawRed {
		result.Tier = TierRed
	} else if sawYellow {
		result.Tier = TierYellow
	}
	return result
}

func classify(deviation, tolerance float64) Tier {
	switch {
	case deviation <= tolerance:
		return TierGreen
	case deviation <= 2*tolerance:
		return TierYellow
	default:
		return TierRed
	}
}
