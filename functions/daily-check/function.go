// Package dailycheck evaluates one user's nutrition adherence for a day and
// manages the resulting adherence_breach alert.
package dailycheck

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/GoogleCloudPlatform/functions-framework-go/functions"
	cloudevents "github.com/cloudevents/sdk-go/v2"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	shared "github.com/macropilot/server/pkg"
	"github.com/macropilot/server/pkg/bootstrap"
	"github.com/macropilot/server/pkg/dateutil"
	"github.com/macropilot/server/pkg/domain/adherence"
	"github.com/macropilot/server/pkg/domain/alert"
	"github.com/macropilot/server/pkg/framework"
	infrapubsub "github.com/macropilot/server/pkg/infrastructure/pubsub"
	blobstore "github.com/macropilot/server/pkg/infrastructure/storage"
	"github.com/macropilot/server/pkg/types"
)

var (
	svc     *bootstrap.Service
	svcOnce sync.Once
	svcErr  error
)

func init() {
	functions.CloudEvent("DailyCheck", DailyCheck)
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

// DailyCheck is the entry point - evaluates adherence for a single user-date pair
func DailyCheck(ctx context.Context, e cloudevents.Event) error {
	svc, err := initService(ctx)
	if err != nil {
		return fmt.Errorf("service init failed: %w", err)
	}
	return framework.WrapCloudEvent("daily-check", svc, checkHandler)(ctx, e)
}

// checkPayload is the trigger message. Date is "2006-01-02"; empty means
// yesterday, since the daily sweep runs after the day closes.
type checkPayload struct {
	UserID string `json:"user_id"`
	Date   string `json:"date,omitempty"`
}

func checkHandler(ctx context.Context, e cloudevents.Event, fwCtx *framework.FrameworkContext) (interface{}, error) {
	logger := fwCtx.Logger
	db := fwCtx.Service.DB

	var payload checkPayload
	if err := framework.DecodeEventData(e, &payload); err != nil {
		return nil, err
	}
	if payload.UserID == "" {
		return nil, fmt.Errorf("missing user_id in payload")
	}

	date, err := resolveDate(payload.Date)
	if err != nil {
		return nil, err
	}
	dateKey := dateutil.DateKey(date)
	logger = logger.With("date", dateKey)

	user, err := db.GetUser(ctx, payload.UserID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user.Goals == nil {
		logger.Info("No goals configured, nothing to evaluate")
		return map[string]interface{}{"status": "SKIPPED", "reason": "no_goals"}, nil
	}

	totals, err := db.GetDailyTotals(ctx, payload.UserID, date)
	if err != nil && !isNotFound(err) {
		return nil, fmt.Errorf("get daily totals: %w", err)
	}

	contexts, err := db.ListContextEntries(ctx, payload.UserID, date)
	if err != nil {
		return nil, fmt.Errorf("list context entries: %w", err)
	}

	window := adherence.Adjust(adherence.DefaultWindow(), date, contexts)
	result := adherence.Evaluate(totals, user.Goals, window)

	logger.Info("Adherence evaluated",
		"tier", result.Tier,
		"insufficient_data", result.InsufficientData,
		"contexts_active", len(contexts),
	)

	outputs := map[string]interface{}{
		"tier":              string(result.Tier),
		"insufficient_data": result.InsufficientData,
	}

	if result.InsufficientData {
		// No meals logged is not a breach; leave any existing alert alone.
		outputs["status"] = "SKIPPED"
		outputs["reason"] = "insufficient_data"
		return outputs, nil
	}

	unresolved, err := db.ListUnresolvedAlerts(ctx, payload.UserID)
	if err != nil {
		return nil, fmt.Errorf("list unresolved alerts: %w", err)
	}
	existing := alert.FindUnresolved(unresolved, types.AlertAdherenceBreach)

	now := time.Now().UTC()
	switch result.Tier {
	case adherence.TierRed:
		if existing != nil {
			if existing.IsDismissed {
				// Dismissed but the condition recurred; surface it again.
				alert.Reactivate(existing)
				if err := db.SetAlert(ctx, payload.UserID, existing); err != nil {
					return nil, fmt.Errorf("reactivate alert: %w", err)
				}
				logger.Info("Reactivated dismissed breach alert", "alert_id", existing.AlertId)
			}
			outputs["alert_id"] = existing.AlertId
			break
		}

		a := newBreachAlert(payload.UserID, dateKey, result, now)
		if err := db.CreateAlert(ctx, payload.UserID, a); err != nil {
			return nil, fmt.Errorf("create alert: %w", err)
		}
		logger.Info("Created adherence breach alert", "alert_id", a.AlertId, "severity", a.Severity)
		outputs["alert_id"] = a.AlertId

		publishAlertEvent(ctx, fwCtx, infrapubsub.EventTypeAlertCreated, shared.TopicAlertCreated, a, logger)
		if a.Severity == types.SeverityCritical {
			notifyUser(ctx, fwCtx, user, a, logger)
		}

	case adherence.TierGreen:
		if existing != nil {
			if err := alert.Resolve(existing, now); err == nil {
				if err := db.SetAlert(ctx, payload.UserID, existing); err != nil {
					return nil, fmt.Errorf("resolve alert: %w", err)
				}
				logger.Info("Auto-resolved breach alert on green day", "alert_id", existing.AlertId)
				outputs["resolved_alert_id"] = existing.AlertId
				publishAlertEvent(ctx, fwCtx, infrapubsub.EventTypeAlertResolved, shared.TopicAlertResolved, existing, logger)
			}
		}
	}

	if bucket := fwCtx.Service.Config.ReportBucket; bucket != "" {
		writeDailyReport(ctx, fwCtx, bucket, payload.UserID, dateKey, window, result, logger)
	}

	publishEvaluated(ctx, fwCtx, payload.UserID, dateKey, result, logger)

	return outputs, nil
}

func resolveDate(s string) (time.Time, error) {
	if s == "" {
		return dateutil.Yesterday(time.Now()), nil
	}
	date, err := time.Parse(dateutil.DateKeyFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return date, nil
}

// newBreachAlert builds the alert for a red day. Two or more red metrics
// escalate to critical. The alert expires a week out so stale breaches do not
// linger in the UI if the user stops logging entirely.
func newBreachAlert(userID, dateKey string, result adherence.Result, now time.Time) *types.Alert {
	redCount := 0
	for _, tier := range result.PerMetric {
		if tier == adherence.TierRed {
			redCount++
		}
	}
	severity := types.SeverityWarning
	if redCount >= 2 {
		severity = types.SeverityCritical
	}

	data := map[string]string{
		"date":        dateKey,
		"red_metrics": strconv.Itoa(redCount),
	}
	for metric, dev := range result.Deviations {
		data["deviation_"+string(metric)] = strconv.FormatFloat(dev, 'f', 0, 64)
	}

	a := alert.New(userID, types.AlertAdherenceBreach, severity, data, now)
	expires := now.AddDate(0, 0, 7)
	a.ExpiresAt = &expires
	return a
}

func publishAlertEvent(ctx context.Context, fwCtx *framework.FrameworkContext, eventType, topic string, a *types.Alert, logger *slog.Logger) {
	ce, err := infrapubsub.NewUserEvent(infrapubsub.SourceDailyCheck, eventType, a.UserId, a)
	if err != nil {
		logger.Error("Failed to build alert event", "error", err)
		return
	}
	if _, err := fwCtx.Service.Pub.PublishCloudEvent(ctx, topic, ce); err != nil {
		// Alert state is already persisted; event delivery is best effort.
		logger.Error("Failed to publish alert event", "topic", topic, "error", err)
	}
}

func publishEvaluated(ctx context.Context, fwCtx *framework.FrameworkContext, userID, dateKey string, result adherence.Result, logger *slog.Logger) {
	body := map[string]interface{}{
		"user_id":    userID,
		"date":       dateKey,
		"tier":       string(result.Tier),
		"per_metric": result.PerMetric,
	}
	ce, err := infrapubsub.NewUserEvent(infrapubsub.SourceDailyCheck, infrapubsub.EventTypeAdherenceEvaluated, userID, body)
	if err != nil {
		logger.Error("Failed to build evaluated event", "error", err)
		return
	}
	if _, err := fwCtx.Service.Pub.PublishCloudEvent(ctx, shared.TopicDailyEvaluation, ce); err != nil {
		logger.Error("Failed to publish evaluated event", "error", err)
	}
}

func notifyUser(ctx context.Context, fwCtx *framework.FrameworkContext, user *types.UserRecord, a *types.Alert, logger *slog.Logger) {
	if fwCtx.Service.Notifier == nil {
		return
	}
	err := fwCtx.Service.Notifier.SendPushNotification(ctx, user.UserId, a.Title, a.Message, user.FCMTokens, a.Data)
	if err != nil {
		logger.Error("Failed to send push notification", "error", err)
	}
}

// writeDailyReport stores the full evaluation as a JSON artifact for later
// inspection: reports/{user}/{date}.json
func writeDailyReport(ctx context.Context, fwCtx *framework.FrameworkContext, bucket, userID, dateKey string, window adherence.Window, result adherence.Result, logger *slog.Logger) {
	report := map[string]interface{}{
		"user_id":           userID,
		"date":              dateKey,
		"tier":              string(result.Tier),
		"per_metric":        result.PerMetric,
		"deviations":        result.Deviations,
		"calorie_tolerance": window.CalorieTolerance,
		"macro_tolerance":   window.MacroTolerance,
	}
	data, err := json.Marshal(report)
	if err != nil {
		logger.Error("Failed to marshal daily report", "error", err)
		return
	}
	object := blobstore.ReportObject(userID, dateKey)
	if err := fwCtx.Service.Store.Write(ctx, bucket, object, data); err != nil {
		logger.Error("Failed to write daily report", "object", object, "error", err)
	}
}

// isNotFound reports whether the error is a Firestore missing-document error.
// A day with no totals document is a normal state, not a failure.
func isNotFound(err error) bool {
	return err != nil && status.Code(err) == codes.NotFound
}
