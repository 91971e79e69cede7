// Package workoutlogged reacts to a logged workout: it updates muscle fatigue
// records, rolls the exercise streak, and flags overtraining.
package workoutlogged

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/GoogleCloudPlatform/functions-framework-go/functions"
	cloudevents "github.com/cloudevents/sdk-go/v2"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	shared "github.com/macropilot/server/pkg"
	"github.com/macropilot/server/pkg/bootstrap"
	"github.com/macropilot/server/pkg/dateutil"
	"github.com/macropilot/server/pkg/domain/alert"
	"github.com/macropilot/server/pkg/domain/recovery"
	"github.com/macropilot/server/pkg/domain/streak"
	"github.com/macropilot/server/pkg/framework"
	infrapubsub "github.com/macropilot/server/pkg/infrastructure/pubsub"
	"github.com/macropilot/server/pkg/types"
)

var (
	svc     *bootstrap.Service
	svcOnce sync.Once
	svcErr  error
)

func init() {
	functions.CloudEvent("WorkoutLogged", WorkoutLogged)
}

func initService(ctx context.Context) (*bootstrap.Service, error) {
	if svc != nil {
		return svc, nil
	}
	svcOnce.Do(func() {
		svc, svcErr = bootstrap.NewService(ctx)
	})
	return svc, svcErr
}

// WorkoutLogged is the entry point - processes one workout message
func WorkoutLogged(ctx context.Context, e cloudevents.Event) error {
	svc, err := initService(ctx)
	if err != nil {
		return fmt.Errorf("service init failed: %w", err)
	}
	return framework.WrapCloudEvent("workout-logged", svc, workoutHandler)(ctx, e)
}

// workoutPayload is the trigger message from the logging collaborator.
type workoutPayload struct {
	UserID       string   `json:"user_id"`
	MuscleGroups []string `json:"muscle_groups"`
	Intensity    int      `json:"intensity"`
	LoggedAt     string   `json:"logged_at,omitempty"` // RFC 3339; empty means now
}

func workoutHandler(ctx context.Context, e cloudevents.Event, fwCtx *framework.FrameworkContext) (interface{}, error) {
	logger := fwCtx.Logger
	db := fwCtx.Service.DB

	var payload workoutPayload
	if err := framework.DecodeEventData(e, &payload); err != nil {
		return nil, err
	}
	if payload.UserID == "" {
		return nil, fmt.Errorf("missing user_id in payload")
	}
	if len(payload.MuscleGroups) == 0 {
		logger.Info("Workout carried no muscle groups, nothing to record")
		return map[string]interface{}{"status": "SKIPPED", "reason": "no_muscle_groups"}, nil
	}

	when := time.Now().UTC()
	if payload.LoggedAt != "" {
		parsed, err := time.Parse(time.RFC3339, payload.LoggedAt)
		if err != nil {
			return nil, fmt.Errorf("invalid logged_at %q: %w", payload.LoggedAt, err)
		}
		when = parsed.UTC()
	}

	scheduler := recovery.NewScheduler(db)

	// Overtraining check runs against the fatigue state BEFORE this workout
	// overwrites it.
	overtrained := detectOvertraining(ctx, scheduler, db, payload, when, logger)

	recorded := 0
	for _, name := range payload.MuscleGroups {
		group := types.ParseMuscleGroup(name)
		if group == types.MuscleUnknown {
			logger.Warn("Skipping unknown muscle group", "name", name)
			continue
		}
		if _, err := scheduler.RecordWorkout(ctx, payload.UserID, group, payload.Intensity, when); err != nil {
			return nil, fmt.Errorf("record workout for %s: %w", group, err)
		}
		recorded++
	}
	if recorded == 0 {
		return map[string]interface{}{"status": "SKIPPED", "reason": "no_known_muscle_groups"}, nil
	}

	if err := db.SetActivityMark(ctx, payload.UserID, &types.ActivityMark{
		UserId:   payload.UserID,
		Domain:   types.DomainExercise,
		LastSeen: when,
	}); err != nil {
		return nil, fmt.Errorf("set activity mark: %w", err)
	}

	current, err := rollExerciseStreak(ctx, db, payload.UserID, when, logger)
	if err != nil {
		return nil, err
	}

	outputs := map[string]interface{}{
		"muscles_recorded": recorded,
		"streak_current":   current,
	}

	if len(overtrained) > 0 {
		alertID, err := raiseOvertrainingAlert(ctx, fwCtx, payload.UserID, overtrained, when, logger)
		if err != nil {
			return nil, err
		}
		if alertID != "" {
			outputs["overtraining_alert_id"] = alertID
		}
	}

	publishWorkoutEvent(ctx, fwCtx, payload, when, logger)

	return outputs, nil
}

// detectOvertraining returns the muscle groups being hit again before they
// have rested, when the new session is high intensity. Lookup failures only
// log: overtraining advice must never block recording the workout.
func detectOvertraining(ctx context.Context, scheduler *recovery.Scheduler, db shared.Database, payload workoutPayload, when time.Time, logger *slog.Logger) []types.MuscleGroup {
	if payload.Intensity < 4 {
		return nil
	}

	var overtrained []types.MuscleGroup
	for _, name := range payload.MuscleGroups {
		group := types.ParseMuscleGroup(name)
		if group == types.MuscleUnknown {
			continue
		}
		record, err := db.GetFatigueRecord(ctx, payload.UserID, group)
		if err != nil {
			if status.Code(err) != codes.NotFound {
				logger.Warn("Fatigue lookup failed", "muscle_group", group, "error", err)
			}
			continue
		}
		if record != nil && !scheduler.IsRested(record, when) && record.IntensityLevel >= 4 {
			overtrained = append(overtrained, group)
		}
	}
	return overtrained
}

func rollExerciseStreak(ctx context.Context, db shared.Database, userID string, when time.Time, logger *slog.Logger) (int, error) {
	streaks, err := db.ListStreaks(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("list streaks: %w", err)
	}

	s := &types.Streak{UserId: userID, Domain: types.DomainExercise}
	for _, existing := range streaks {
		if existing.Domain == types.DomainExercise {
			s = existing
			break
		}
	}

	changed, broken := streak.Advance(s, when)
	if !changed {
		return s.Current, nil
	}
	if broken {
		logger.Info("Exercise streak restarted after gap", "current", s.Current, "longest", s.Longest)
	}
	if err := db.SetStreak(ctx, userID, s); err != nil {
		return 0, fmt.Errorf("set streak: %w", err)
	}
	logger.Info("Exercise streak advanced", "current", s.Current, "longest", s.Longest)
	return s.Current, nil
}

func raiseOvertrainingAlert(ctx context.Context, fwCtx *framework.FrameworkContext, userID string, groups []types.MuscleGroup, when time.Time, logger *slog.Logger) (string, error) {
	db := fwCtx.Service.DB

	unresolved, err := db.ListUnresolvedAlerts(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("list unresolved alerts: %w", err)
	}
	if existing := alert.FindUnresolved(unresolved, types.AlertOvertrainingWarning); existing != nil {
		logger.Info("Overtraining alert already open", "alert_id", existing.AlertId)
		return existing.AlertId, nil
	}

	names := make([]string, len(groups))
	for i, g := range groups {
		names[i] = string(g)
	}
	data := map[string]string{
		"date":          dateutil.DateKey(when),
		"muscle_groups": strings.Join(names, ","),
		"count":         strconv.Itoa(len(groups)),
		"rest_days":     strconv.Itoa(recovery.RestThresholdDays),
	}
	a := alert.New(userID, types.AlertOvertrainingWarning, types.SeverityWarning, data, when)
	expires := when.AddDate(0, 0, recovery.RestThresholdDays)
	a.ExpiresAt = &expires

	if err := db.CreateAlert(ctx, userID, a); err != nil {
		return "", fmt.Errorf("create overtraining alert: %w", err)
	}
	logger.Info("Created overtraining alert", "alert_id", a.AlertId, "muscle_groups", names)

	ce, err := infrapubsub.NewUserEvent(infrapubsub.SourceWorkoutLogged, infrapubsub.EventTypeAlertCreated, userID, a)
	if err == nil {
		if _, err := fwCtx.Service.Pub.PublishCloudEvent(ctx, shared.TopicAlertCreated, ce); err != nil {
			logger.Error("Failed to publish alert event", "error", err)
		}
	}
	return a.AlertId, nil
}

func publishWorkoutEvent(ctx context.Context, fwCtx *framework.FrameworkContext, payload workoutPayload, when time.Time, logger *slog.Logger) {
	body := map[string]interface{}{
		"user_id":       payload.UserID,
		"muscle_groups": payload.MuscleGroups,
		"intensity":     payload.Intensity,
		"logged_at":     when.Format(time.RFC3339),
	}
	ce, err := infrapubsub.NewUserEvent(infrapubsub.SourceWorkoutLogged, infrapubsub.EventTypeWorkoutLogged, payload.UserID, body)
	if err != nil {
		logger.Error("Failed to build workout event", "error", err)
		return
	}
	if _, err := fwCtx.Service.Pub.PublishCloudEvent(ctx, shared.TopicWorkoutLogged, ce); err != nil {
		logger.Error("Failed to publish workout event", "error", err)
	}
}
