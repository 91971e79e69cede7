package recovery

import (
	"math"
	"math/rand"

	"github.com/macropilot/server/pkg/types"
)

// MaxRecommendations caps how many exercises one call returns.
const MaxRecommendations = 10

// Filters narrows the catalog before selection. Empty fields match anything.
type Filters struct {
	Difficulty string
	Type       string
}

// Recommend filters the catalog to exercises whose muscle group is rested and
// that match the optional filters, then annotates up to MaxRecommendations of
// them with the duration needed to hit caloriesTarget. Selection order is not
// part of the contract; when more entries match than the cap, a random subset
// is taken. No matches yields an empty list, never an error - fallback policy
// (e.g. widening the rested set) belongs to the caller.
func Recommend(caloriesTarget int, rested map[types.MuscleGroup]bool, filters Filters, catalog []types.ExerciseCatalogEntry) []types.RecommendedExercise {
	var matched []types.ExerciseCatalogEntry
	for _, entry := range catalog {
		if !rested[entry.MuscleGroup] {
			continue
		}
		if filters.Difficulty != "" && entry.Difficulty != filters.Difficulty {
			continue
		}
		if filters.Type != "" && entry.Type != filters.Type {
			continue
		}
		if entry.CaloriesPerMinute <= 0 {
			continue
		}
		matched = append(matched, entry)
	}

	if len(matched) > MaxRecommendations {
		rand.Shuffle(len(matched), func(i, j int) {
			matched[i], matched[j] = matched[j], matched[i]
		})
		matched = matched[:MaxRecommendations]
	}

	recommendations := make([]types.RecommendedExercise, 0, len(matched))
	for _, entry := range matched {
		duration := int(math.Ceil(float64(caloriesTarget) / float64(entry.CaloriesPerMinute)))
		recommendations = append(recommendations, types.RecommendedExercise{
			ExerciseCatalogEntry: entry,
			DurationMinutes:      duration,
			EstimatedCalories:    duration * entry.CaloriesPerMinute,
			MuscleIsRested:       true,
		})
	}
	return recommendations
}
