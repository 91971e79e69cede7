package adherence

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/cucumber/godog"

	"github.com/macropilot/server/pkg/types"
)

type adherenceScenario struct {
	goals    types.Goals
	totals   *types.DailyNutritionTotals
	contexts []*types.ContextEntry
	date     time.Time
	result   Result
}

func (s *adherenceScenario) reset() {
	*s = adherenceScenario{date: time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)}
}

func (s *adherenceScenario) calorieGoal(goal, tolerance int) error {
	s.goals.CalorieGoal = goal
	if float64(tolerance) != DefaultCalorieTolerance {
		return fmt.Errorf("scenario tolerance %d does not match the engine default %.0f", tolerance, DefaultCalorieTolerance)
	}
	return nil
}

func (s *adherenceScenario) proteinGoal(goal, tolerance int) error {
	s.goals.ProteinGoal = goal
	if float64(tolerance) != DefaultMacroTolerance {
		return fmt.Errorf("scenario tolerance %d does not match the engine default %.0f", tolerance, DefaultMacroTolerance)
	}
	return nil
}

func (s *adherenceScenario) mealsLogged(count, calories, protein int) error {
	s.totals = &types.DailyNutritionTotals{
		Date:       s.date,
		Calories:   calories,
		Protein:    protein,
		EntryCount: count,
	}
	return nil
}

func (s *adherenceScenario) noMeals() error {
	s.totals = &types.DailyNutritionTotals{Date: s.date, EntryCount: 0}
	return nil
}

func (s *adherenceScenario) contextAffectsDay(name string) error {
	ct := types.ParseContextType(name)
	if ct == types.ContextUnknown {
		return fmt.Errorf("unknown context type %q", name)
	}
	s.contexts = append(s.contexts, &types.ContextEntry{
		Type:             ct,
		Date:             s.date,
		AffectsNutrition: true,
	})
	return nil
}

func (s *adherenceScenario) evaluate() error {
	window := Adjust(DefaultWindow(), s.date, s.contexts)
	s.result = Evaluate(s.totals, &s.goals, window)
	return nil
}

func (s *adherenceScenario) verdictIs(expected string) error {
	if expected == "insufficient data" {
		if !s.result.InsufficientData {
			return fmt.Errorf("expected insufficient data, got tier %s", s.result.Tier)
		}
		return nil
	}
	if s.result.InsufficientData {
		return fmt.Errorf("expected tier %s, got insufficient data", expected)
	}
	if string(s.result.Tier) != expected {
		return fmt.Errorf("expected tier %s, got %s", expected, s.result.Tier)
	}
	return nil
}

func InitializeScenario(sc *godog.ScenarioContext) {
	s := &adherenceScenario{}
	sc.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		s.reset()
		return ctx, nil
	})

	sc.Step(`^a calorie goal of (\d+) with tolerance (\d+)$`, s.calorieGoal)
	sc.Step(`^a protein goal of (\d+) with tolerance (\d+)$`, s.proteinGoal)
	sc.Step(`^(\d+) meals were logged totalling (\d+) calories and (\d+) protein$`, s.mealsLogged)
	sc.Step(`^no meals were logged$`, s.noMeals)
	sc.Step(`^an? "([^"]+)" context affects the day$`, s.contextAffectsDay)
	sc.Step(`^the day is evaluated$`, s.evaluate)
	sc.Step(`^the verdict is "([^"]+)"$`, s.verdictIs)
}

func TestAdherenceFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features"},
			TestingT: t,
		},
	}
	if suite.Run() != 0 {
		t.Fatal("adherence feature suite failed")
	}
}
