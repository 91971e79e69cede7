// Package adherence scores a day's nutrition totals against the user's goals.
// It replaces the four near-identical evaluation copies the app controllers
// used to carry: call sites fetch the data, this package does the math.
package adherence

import (
	"time"

	"github.com/macropilot/server/pkg/dateutil"
	"github.com/macropilot/server/pkg/types"
)

const (
	DefaultCalorieTolerance = 100.0 // kcal
	DefaultMacroTolerance   = 15.0  // grams
)

// Window is the allowed deviation band used to classify adherence. It is a
// derived value, recomputed per evaluation, never persisted.
type Window struct {
	CalorieTolerance float64
	MacroTolerance   float64
}

// DefaultWindow returns the base tolerance window.
func DefaultWindow() Window {
	return Window{
		CalorieTolerance: DefaultCalorieTolerance,
		MacroTolerance:   DefaultMacroTolerance,
	}
}

// Multiplier is a per-context relaxation factor pair. Values below 1.0 are
// never applied; contexts only relax, never tighten.
type Multiplier struct {
	Calorie float64
	Macro   float64
}

// DefaultMultipliers maps each context type to its relaxation factors.
// Unlisted types (including ContextUnknown) are neutral.
var DefaultMultipliers = map[types.ContextType]Multiplier{
	types.ContextStressfulDay: {Calorie: 1.5, Macro: 1.3},
	types.ContextWeekend:      {Calorie: 1.2, Macro: 1.2},
	types.ContextIllness:      {Calorie: 2.0, Macro: 1.5},
	types.ContextTravel:       {Calorie: 1.8, Macro: 1.4},
}

// Adjust widens base by the most forgiving active context on each axis
// independently (element-wise max, not additive). Only entries dated on the
// target day with AffectsNutrition set participate. Pure function.
func Adjust(base Window, date time.Time, contexts []*types.ContextEntry) Window {
	return AdjustWith(base, date, contexts, DefaultMultipliers)
}

// AdjustWith is Adjust with an overridable multiplier table.
func AdjustWith(base Window, date time.Time, contexts []*types.ContextEntry, table map[types.ContextType]Multiplier) Window {
	adjusted := base
	for _, entry := range contexts {
		if entry == nil || !entry.AffectsNutrition {
			continue
		}
		if !dateutil.SameDay(entry.Date, date) {
			continue
		}
		mult, ok := table[entry.Type]
		if !ok {
			continue // neutral context
		}
		if c := base.CalorieTolerance * mult.Calorie; c > adjusted.CalorieTolerance {
			adjusted.CalorieTolerance = c
		}
		if m := base.MacroTolerance * mult.Macro; m > adjusted.MacroTolerance {
			adjusted.MacroTolerance = m
		}
	}
	return adjusted
}
