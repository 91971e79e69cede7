package inactivitycheck

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/cloudevents/sdk-go/v2/event"

	"github.com/macropilot/server/pkg/bootstrap"
	"github.com/macropilot/server/pkg/framework"
	"github.com/macropilot/server/pkg/testing/mocks"
	"github.com/macropilot/server/pkg/types"
)

func testContext(db *mocks.MockDatabase, notifier *mocks.MockNotificationService) *framework.FrameworkContext {
	svc := &bootstrap.Service{
		DB:     db,
		Pub:    &mocks.MockPublisher{},
		Store:  &mocks.MockBlobStore{},
		Config: &bootstrap.Config{ProjectID: "test-project"},
	}
	// Assign conditionally: storing a nil *MockNotificationService in the
	// interface field would make the production nil-check pass and panic on
	// the nil receiver.
	if notifier != nil {
		svc.Notifier = notifier
	}
	return &framework.FrameworkContext{
		Service:     svc,
		Logger:      slog.Default(),
		ExecutionID: "exec-1",
	}
}

func sweepEvent() event.Event {
	e := event.New()
	e.SetType("google.cloud.pubsub.topic.v1.messagePublished")
	e.SetSource("//test")
	return e
}

func TestSweepHandler_CreatesAlertsPerDomain(t *testing.T) {
	now := time.Now().UTC()
	var created []*types.Alert
	db := &mocks.MockDatabase{
		ListUsersFunc: func(ctx context.Context) ([]*types.UserRecord, error) {
			return []*types.UserRecord{{UserId: "user-1"}}, nil
		},
		ListActivityMarksFunc: func(ctx context.Context, userId string) ([]*types.ActivityMark, error) {
			// 4 days silent everywhere: hydration critical, meal warning,
			// exercise info.
			seen := now.AddDate(0, 0, -4)
			return []*types.ActivityMark{
				{UserId: userId, Domain: types.DomainHydration, LastSeen: seen},
				{UserId: userId, Domain: types.DomainMeal, LastSeen: seen},
				{UserId: userId, Domain: types.DomainExercise, LastSeen: seen},
			}, nil
		},
		CreateAlertFunc: func(ctx context.Context, userId string, a *types.Alert) error {
			created = append(created, a)
			return nil
		},
	}

	out, err := sweepHandler(context.Background(), sweepEvent(), testContext(db, nil))
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}

	if len(created) != 3 {
		t.Fatalf("Expected 3 alerts, got %d", len(created))
	}
	severities := map[string]types.Severity{}
	for _, a := range created {
		severities[a.Type] = a.Severity
	}
	if severities[types.AlertHydrationInactivity] != types.SeverityCritical {
		t.Errorf("Expected hydration critical, got %s", severities[types.AlertHydrationInactivity])
	}
	if severities[types.AlertMealInactivity] != types.SeverityWarning {
		t.Errorf("Expected meal warning, got %s", severities[types.AlertMealInactivity])
	}
	if severities[types.AlertExerciseInactivity] != types.SeverityInfo {
		t.Errorf("Expected exercise info, got %s", severities[types.AlertExerciseInactivity])
	}

	outputs := out.(map[string]interface{})
	if outputs["alerts_created"] != 3 {
		t.Errorf("Expected 3 alerts in outputs, got %v", outputs["alerts_created"])
	}
}

func TestSweepHandler_CriticalAlertsPush(t *testing.T) {
	now := time.Now().UTC()
	pushes := 0
	db := &mocks.MockDatabase{
		ListUsersFunc: func(ctx context.Context) ([]*types.UserRecord, error) {
			return []*types.UserRecord{{UserId: "user-1", FCMTokens: []string{"tok"}}}, nil
		},
		ListActivityMarksFunc: func(ctx context.Context, userId string) ([]*types.ActivityMark, error) {
			return []*types.ActivityMark{
				{UserId: userId, Domain: types.DomainHydration, LastSeen: now.AddDate(0, 0, -5)},
			}, nil
		},
	}
	notifier := &mocks.MockNotificationService{
		SendPushNotificationFunc: func(ctx context.Context, userID string, title, body string, tokens []string, data map[string]string) error {
			pushes++
			return nil
		},
	}

	if _, err := sweepHandler(context.Background(), sweepEvent(), testContext(db, notifier)); err != nil {
		t.Fatalf("handler failed: %v", err)
	}

	if pushes != 1 {
		t.Errorf("Expected 1 push for the critical alert, got %d", pushes)
	}
}

func TestSweepHandler_ExpiresDeadStreaks(t *testing.T) {
	now := time.Now().UTC()
	var saved *types.Streak
	var created []*types.Alert
	db := &mocks.MockDatabase{
		ListUsersFunc: func(ctx context.Context) ([]*types.UserRecord, error) {
			return []*types.UserRecord{{UserId: "user-1"}}, nil
		},
		ListStreaksFunc: func(ctx context.Context, userId string) ([]*types.Streak, error) {
			stale := now.AddDate(0, 0, -3).Format("2006-01-02")
			return []*types.Streak{
				{UserId: userId, Domain: types.DomainExercise, Current: 8, Longest: 8, LastDateKey: stale},
			}, nil
		},
		SetStreakFunc: func(ctx context.Context, userId string, s *types.Streak) error {
			saved = s
			return nil
		},
		CreateAlertFunc: func(ctx context.Context, userId string, a *types.Alert) error {
			created = append(created, a)
			return nil
		},
	}

	if _, err := sweepHandler(context.Background(), sweepEvent(), testContext(db, nil)); err != nil {
		t.Fatalf("handler failed: %v", err)
	}

	if saved == nil || saved.Current != 0 {
		t.Fatalf("Expected streak reset persisted, got %+v", saved)
	}
	if saved.Longest != 8 {
		t.Errorf("Longest must survive expiry, got %d", saved.Longest)
	}

	foundBroken := false
	for _, a := range created {
		if a.Type == types.AlertStreakBroken {
			foundBroken = true
			if a.Severity != types.SeverityInfo {
				t.Errorf("streak_broken must be info, got %s", a.Severity)
			}
			if a.Data["prior_streak"] != "8" {
				t.Errorf("Expected prior_streak 8, got %q", a.Data["prior_streak"])
			}
		}
	}
	if !foundBroken {
		t.Error("Expected a streak_broken alert after expiry")
	}
}

func TestSweepHandler_DedupAgainstUnresolved(t *testing.T) {
	now := time.Now().UTC()
	created := 0
	db := &mocks.MockDatabase{
		ListUsersFunc: func(ctx context.Context) ([]*types.UserRecord, error) {
			return []*types.UserRecord{{UserId: "user-1"}}, nil
		},
		ListActivityMarksFunc: func(ctx context.Context, userId string) ([]*types.ActivityMark, error) {
			return []*types.ActivityMark{
				{UserId: userId, Domain: types.DomainHydration, LastSeen: now.AddDate(0, 0, -5)},
			}, nil
		},
		ListUnresolvedAlertsFunc: func(ctx context.Context, userId string) ([]*types.Alert, error) {
			return []*types.Alert{
				{AlertId: "a1", UserId: userId, Type: types.AlertHydrationInactivity, IsActive: true},
			}, nil
		},
		CreateAlertFunc: func(ctx context.Context, userId string, a *types.Alert) error {
			created++
			return nil
		},
	}

	if _, err := sweepHandler(context.Background(), sweepEvent(), testContext(db, nil)); err != nil {
		t.Fatalf("handler failed: %v", err)
	}

	if created != 0 {
		t.Errorf("Expected dedup against unresolved alert, %d created", created)
	}
}

func TestSweepHandler_OneBadUserDoesNotAbort(t *testing.T) {
	now := time.Now().UTC()
	created := 0
	db := &mocks.MockDatabase{
		ListUsersFunc: func(ctx context.Context) ([]*types.UserRecord, error) {
			return []*types.UserRecord{{UserId: "bad"}, {UserId: "good"}}, nil
		},
		ListActivityMarksFunc: func(ctx context.Context, userId string) ([]*types.ActivityMark, error) {
			if userId == "bad" {
				return nil, errors.New("firestore unavailable")
			}
			return []*types.ActivityMark{
				{UserId: userId, Domain: types.DomainMeal, LastSeen: now.AddDate(0, 0, -3)},
			}, nil
		},
		CreateAlertFunc: func(ctx context.Context, userId string, a *types.Alert) error {
			created++
			return nil
		},
	}

	out, err := sweepHandler(context.Background(), sweepEvent(), testContext(db, nil))
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}

	if created != 1 {
		t.Errorf("Expected the good user's alert, got %d", created)
	}
	outputs := out.(map[string]interface{})
	if outputs["users_swept"] != 1 {
		t.Errorf("Expected 1 user swept, got %v", outputs["users_swept"])
	}
	failed := outputs["failed_users"].([]string)
	if len(failed) != 1 || failed[0] != "bad" {
		t.Errorf("Expected bad user reported, got %v", failed)
	}
}
