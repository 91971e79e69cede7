// Package recovery tracks per-muscle rest state and gates exercise
// recommendations on it.
package recovery

import (
	"context"
	"fmt"
	"time"

	"github.com/macropilot/server/pkg/dateutil"
	"github.com/macropilot/server/pkg/types"
)

const (
	// RestThresholdDays is the day-count threshold for a muscle to become
	// eligible again. This follows the logged-day behavior, not a 48-hour
	// elapsed-time rule: a muscle worked late on Monday is rested on
	// Wednesday regardless of the hour.
	RestThresholdDays = 2

	DefaultIntensity = 3
)

// FatigueStore persists one MuscleFatigueRecord per (user, muscle group).
// Implementations must give the upsert last-write-wins semantics at the
// storage layer (e.g. a single-document set), since overwrites make the
// ordering of concurrent logs observable.
type FatigueStore interface {
	GetFatigueRecord(ctx context.Context, userId string, group types.MuscleGroup) (*types.MuscleFatigueRecord, error)
	SetFatigueRecord(ctx context.Context, userId string, record *types.MuscleFatigueRecord) error
	ListFatigueRecords(ctx context.Context, userId string) ([]*types.MuscleFatigueRecord, error)
}

// Scheduler classifies muscle rest state against a fatigue store.
type Scheduler struct {
	store             FatigueStore
	restThresholdDays int
}

func NewScheduler(store FatigueStore) *Scheduler {
	return &Scheduler{store: store, restThresholdDays: RestThresholdDays}
}

// WithRestThreshold overrides the rest threshold; values below 1 are ignored.
func (s *Scheduler) WithRestThreshold(days int) *Scheduler {
	if days >= 1 {
		s.restThresholdDays = days
	}
	return s
}

// RecordWorkout upserts the fatigue record for the muscle group. Overwrite,
// not merge: the new workout's date and intensity always replace the stored
// ones. Intensity outside 1..5 falls back to the default.
func (s *Scheduler) RecordWorkout(ctx context.Context, userID string, group types.MuscleGroup, intensity int, when time.Time) (*types.MuscleFatigueRecord, error) {
	if group == types.MuscleUnknown {
		return nil, fmt.Errorf("record workout: unknown muscle group")
	}
	if intensity < 1 || intensity > 5 {
		intensity = DefaultIntensity
	}
	record := &types.MuscleFatigueRecord{
		UserId:         userID,
		MuscleGroup:    group,
		LastWorkedDate: when,
		IntensityLevel: intensity,
	}
	if err := s.store.SetFatigueRecord(ctx, userID, record); err != nil {
		return nil, fmt.Errorf("record workout: %w", err)
	}
	return record, nil
}

// IsRested reports whether enough calendar days have passed since the record's
// last workout. A nil record means the muscle was never worked and is rested
// by definition.
func (s *Scheduler) IsRested(record *types.MuscleFatigueRecord, now time.Time) bool {
	if record == nil {
		return true
	}
	return dateutil.DaysBetween(record.LastWorkedDate, now) >= s.restThresholdDays
}

// RestedMuscles returns every group in allGroups that either has no fatigue
// record or has rested long enough. Unknown groups are excluded rather than
// erroring, since group names can arrive from external sources.
func (s *Scheduler) RestedMuscles(ctx context.Context, userID string, allGroups []types.MuscleGroup, now time.Time) (map[types.MuscleGroup]bool, error) {
	records, err := s.store.ListFatigueRecords(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("rested muscles: %w", err)
	}

	byGroup := make(map[types.MuscleGroup]*types.MuscleFatigueRecord, len(records))
	for _, r := range records {
		byGroup[r.MuscleGroup] = r
	}

	rested := make(map[types.MuscleGroup]bool)
	for _, group := range allGroups {
		if group == types.MuscleUnknown {
			continue
		}
		if s.IsRested(byGroup[group], now) {
			rested[group] = true
		}
	}
	return rested, nil
}
