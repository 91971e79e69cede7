package recovery

import "github.com/macropilot/server/pkg/types"

// DefaultCatalog is the built-in exercise catalog used when no external
// catalog collaborator is configured. Calories-per-minute figures are rough
// moderate-pace estimates.
var DefaultCatalog = []types.ExerciseCatalogEntry{
	{Name: "Bench Press", MuscleGroup: types.MuscleChest, CaloriesPerMinute: 7, Difficulty: "intermediate", Type: "strength"},
	{Name: "Push-Up", MuscleGroup: types.MuscleChest, CaloriesPerMinute: 8, Difficulty: "beginner", Type: "strength"},
	{Name: "Pull-Up", MuscleGroup: types.MuscleBack, CaloriesPerMinute: 9, Difficulty: "advanced", Type: "strength"},
	{Name: "Bent-Over Row", MuscleGroup: types.MuscleBack, CaloriesPerMinute: 7, Difficulty: "intermediate", Type: "strength"},
	{Name: "Overhead Press", MuscleGroup: types.MuscleShoulders, CaloriesPerMinute: 6, Difficulty: "intermediate", Type: "strength"},
	{Name: "Lateral Raise", MuscleGroup: types.MuscleShoulders, CaloriesPerMinute: 5, Difficulty: "beginner", Type: "strength"},
	{Name: "Barbell Curl", MuscleGroup: types.MuscleBiceps, CaloriesPerMinute: 5, Difficulty: "beginner", Type: "strength"},
	{Name: "Tricep Dip", MuscleGroup: types.MuscleTriceps, CaloriesPerMinute: 6, Difficulty: "intermediate", Type: "strength"},
	{Name: "Plank", MuscleGroup: types.MuscleCore, CaloriesPerMinute: 4, Difficulty: "beginner", Type: "strength"},
	{Name: "Hanging Leg Raise", MuscleGroup: types.MuscleCore, CaloriesPerMinute: 6, Difficulty: "advanced", Type: "strength"},
	{Name: "Back Squat", MuscleGroup: types.MuscleQuadriceps, CaloriesPerMinute: 9, Difficulty: "intermediate", Type: "strength"},
	{Name: "Walking Lunge", MuscleGroup: types.MuscleQuadriceps, CaloriesPerMinute: 8, Difficulty: "beginner", Type: "strength"},
	{Name: "Romanian Deadlift", MuscleGroup: types.MuscleHamstrings, CaloriesPerMinute: 8, Difficulty: "intermediate", Type: "strength"},
	{Name: "Hip Thrust", MuscleGroup: types.MuscleGlutes, CaloriesPerMinute: 7, Difficulty: "beginner", Type: "strength"},
	{Name: "Calf Raise", MuscleGroup: types.MuscleCalves, CaloriesPerMinute: 4, Difficulty: "beginner", Type: "strength"},
	{Name: "Rowing Machine", MuscleGroup: types.MuscleBack, CaloriesPerMinute: 11, Difficulty: "beginner", Type: "cardio"},
	{Name: "Cycling Intervals", MuscleGroup: types.MuscleQuadriceps, CaloriesPerMinute: 12, Difficulty: "intermediate", Type: "cardio"},
	{Name: "Stair Climber", MuscleGroup: types.MuscleGlutes, CaloriesPerMinute: 10, Difficulty: "beginner", Type: "cardio"},
	{Name: "Jump Rope", MuscleGroup: types.MuscleCalves, CaloriesPerMinute: 13, Difficulty: "intermediate", Type: "cardio"},
	{Name: "Mobility Flow", MuscleGroup: types.MuscleCore, CaloriesPerMinute: 3, Difficulty: "beginner", Type: "mobility"},
}
