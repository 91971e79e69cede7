// Package inactivitycheck sweeps every user for stale activity domains and
// expired streaks, raising escalating alerts as gaps grow.
package inactivitycheck

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/GoogleCloudPlatform/functions-framework-go/functions"
	cloudevents "github.com/cloudevents/sdk-go/v2"

	shared "github.com/macropilot/server/pkg"
	"github.com/macropilot/server/pkg/bootstrap"
	"github.com/macropilot/server/pkg/domain/inactivity"
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
	functions.CloudEvent("InactivityCheck", InactivityCheck)
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

// InactivityCheck is the entry point - runs the sweep across all users
func InactivityCheck(ctx context.Context, e cloudevents.Event) error {
	svc, err := initService(ctx)
	if err != nil {
		return fmt.Errorf("service init failed: %w", err)
	}
	return framework.WrapCloudEvent("inactivity-check", svc, sweepHandler)(ctx, e)
}

func sweepHandler(ctx context.Context, e cloudevents.Event, fwCtx *framework.FrameworkContext) (interface{}, error) {
	logger := fwCtx.Logger
	db := fwCtx.Service.DB

	users, err := db.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	detector := inactivity.NewDetector(inactivity.DefaultConfig())
	now := time.Now().UTC()

	swept := 0
	alertsCreated := 0
	var failures []string
	for _, user := range users {
		created, err := sweepUser(ctx, fwCtx, detector, user, now, logger.With("user_id", user.UserId))
		if err != nil {
			// One bad user must not abort the whole sweep.
			logger.Error("User sweep failed", "user_id", user.UserId, "error", err)
			failures = append(failures, user.UserId)
			continue
		}
		swept++
		alertsCreated += created
	}

	logger.Info("Inactivity sweep complete", "users_swept", swept, "alerts_created", alertsCreated, "failures", len(failures))

	outputs := map[string]interface{}{
		"users_swept":    swept,
		"alerts_created": alertsCreated,
	}
	if len(failures) > 0 {
		outputs["failed_users"] = failures
	}
	return outputs, nil
}

func sweepUser(ctx context.Context, fwCtx *framework.FrameworkContext, detector *inactivity.Detector, user *types.UserRecord, now time.Time, logger *slog.Logger) (int, error) {
	db := fwCtx.Service.DB

	marks, err := db.ListActivityMarks(ctx, user.UserId)
	if err != nil {
		return 0, fmt.Errorf("list activity marks: %w", err)
	}
	lastSeen := make(map[types.ActivityDomain]time.Time, len(marks))
	for _, mark := range marks {
		lastSeen[mark.Domain] = mark.LastSeen
	}

	streaks, err := db.ListStreaks(ctx, user.UserId)
	if err != nil {
		return 0, fmt.Errorf("list streaks: %w", err)
	}
	// Expire dead streaks first so the detector sees the post-sweep state.
	for _, s := range streaks {
		if streak.Expire(s, now) {
			if err := db.SetStreak(ctx, user.UserId, s); err != nil {
				return 0, fmt.Errorf("expire streak %s: %w", s.Domain, err)
			}
			logger.Info("Streak expired", "domain", s.Domain, "longest", s.Longest)
		}
	}

	unresolved, err := db.ListUnresolvedAlerts(ctx, user.UserId)
	if err != nil {
		return 0, fmt.Errorf("list unresolved alerts: %w", err)
	}

	candidates := detector.Detect(user.UserId, lastSeen, streaks, unresolved, now)

	created := 0
	for _, a := range candidates {
		if err := db.CreateAlert(ctx, user.UserId, a); err != nil {
			return created, fmt.Errorf("create alert %s: %w", a.Type, err)
		}
		created++
		logger.Info("Created inactivity alert", "alert_id", a.AlertId, "type", a.Type, "severity", a.Severity)

		ce, err := infrapubsub.NewUserEvent(infrapubsub.SourceInactivityCheck, infrapubsub.EventTypeAlertCreated, user.UserId, a)
		if err == nil {
			if _, err := fwCtx.Service.Pub.PublishCloudEvent(ctx, shared.TopicAlertCreated, ce); err != nil {
				logger.Error("Failed to publish alert event", "error", err)
			}
		}

		if a.Severity == types.SeverityCritical && fwCtx.Service.Notifier != nil {
			if err := fwCtx.Service.Notifier.SendPushNotification(ctx, user.UserId, a.Title, a.Message, user.FCMTokens, a.Data); err != nil {
				logger.Error("Failed to send push notification", "error", err)
			}
		}
	}
	return created, nil
}
