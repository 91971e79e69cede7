package adherence

import (
	"reflect"
	"testing"
	"time"

	"github.com/macropilot/server/pkg/types"
)

func totals(calories, protein, carbs, fat int) *types.DailyNutritionTotals {
	return &types.DailyNutritionTotals{
		Date:       time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Calories:   calories,
		Protein:    protein,
		Carbs:      carbs,
		Fat:        fat,
		EntryCount: 3,
	}
}

func standardGoals() *types.Goals {
	return &types.Goals{CalorieGoal: 2000, ProteinGoal: 140, CarbsGoal: 190, FatGoal: 65}
}

func TestEvaluate_AllWithinTolerance(t *testing.T) {
	result := Evaluate(totals(2100, 150, 200, 70), standardGoals(), DefaultWindow())
	if result.InsufficientData {
		t.Fatal("unexpected insufficient data")
	}
	if result.Tier != TierGreen {
		t.Errorf("tier = %s, want green", result.Tier)
	}
	for metric, tier := range result.PerMetric {
		if tier != TierGreen {
			t.Errorf("%s tier = %s, want green", metric, tier)
		}
	}
}

func TestEvaluate_RedDominates(t *testing.T) {
	// Calorie deviation 250 > 2x100: red, regardless of the other metrics.
	result := Evaluate(totals(2250, 150, 200, 70), standardGoals(), DefaultWindow())
	if result.Tier != TierRed {
		t.Errorf("tier = %s, want red", result.Tier)
	}
	if result.PerMetric[MetricCalories] != TierRed {
		t.Errorf("calories tier = %s, want red", result.PerMetric[MetricCalories])
	}
	if result.PerMetric[MetricProtein] != TierGreen {
		t.Errorf("protein tier = %s, want green", result.PerMetric[MetricProtein])
	}
}

func TestEvaluate_YellowBand(t *testing.T) {
	// Calorie deviation 150: above tolerance, within 2x.
	result := Evaluate(totals(2150, 140, 190, 65), standardGoals(), DefaultWindow())
	if result.Tier != TierYellow {
		t.Errorf("tier = %s, want yellow", result.Tier)
	}
	if result.PerMetric[MetricCalories] != TierYellow {
		t.Errorf("calories tier = %s, want yellow", result.PerMetric[MetricCalories])
	}
}

func TestEvaluate_Boundaries(t *testing.T) {
	tests := []struct {
		name     string
		calories int
		want     Tier
	}{
		{"deviation exactly at tolerance is green", 2100, TierGreen},
		{"one above tolerance is yellow", 2101, TierYellow},
		{"deviation exactly at 2x tolerance is yellow", 2200, TierYellow},
		{"one above 2x tolerance is red", 2201, TierRed},
		{"under-eating counts the same", 1799, TierRed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Evaluate(totals(tt.calories, 140, 190, 65), standardGoals(), DefaultWindow())
			if result.PerMetric[MetricCalories] != tt.want {
				t.Errorf("calories tier = %s, want %s", result.PerMetric[MetricCalories], tt.want)
			}
		})
	}
}

func TestEvaluate_AdjustedWindowForgivesBreach(t *testing.T) {
	// Deviation 180 is yellow under the base window (tolerance 100, outer
	// band 200) but green under an illness-adjusted window (tolerance 200).
	day := totals(2180, 140, 190, 65)

	base := Evaluate(day, standardGoals(), DefaultWindow())
	if base.PerMetric[MetricCalories] != TierYellow {
		t.Errorf("base calories tier = %s, want yellow", base.PerMetric[MetricCalories])
	}

	adjusted := Window{CalorieTolerance: 200, MacroTolerance: 22.5}
	relaxed := Evaluate(day, standardGoals(), adjusted)
	if relaxed.Tier != TierGreen {
		t.Errorf("adjusted tier = %s, want green", relaxed.Tier)
	}
}

func TestEvaluate_InsufficientData(t *testing.T) {
	result := Evaluate(nil, standardGoals(), DefaultWindow())
	if !result.InsufficientData {
		t.Error("nil totals should report insufficient data")
	}

	empty := totals(0, 0, 0, 0)
	empty.EntryCount = 0
	result = Evaluate(empty, standardGoals(), DefaultWindow())
	if !result.InsufficientData {
		t.Error("zero entries should report insufficient data, not a red tier")
	}
	if result.Tier == TierRed {
		t.Error("insufficient data must not default to red")
	}
}

func TestEvaluate_ZeroGoalExcluded(t *testing.T) {
	goals := &types.Goals{CalorieGoal: 2000} // macros not tracked
	result := Evaluate(totals(2050, 300, 500, 200), goals, DefaultWindow())
	if result.Tier != TierGreen {
		t.Errorf("tier = %s, want green (only calories tracked)", result.Tier)
	}
	if _, ok := result.PerMetric[MetricProtein]; ok {
		t.Error("untracked protein should be excluded from per-metric tiers")
	}
}

func TestEvaluate_Idempotent(t *testing.T) {
	day := totals(2180, 155, 210, 80)
	first := Evaluate(day, standardGoals(), DefaultWindow())
	second := Evaluate(day, standardGoals(), DefaultWindow())
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeat evaluation differs: %+v vs %+v", first, second)
	}
}
