package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/macropilot/server/pkg/bootstrap"
	"github.com/macropilot/server/pkg/testing/mocks"
	"github.com/macropilot/server/pkg/types"
)

func testServer(db *mocks.MockDatabase) *Server {
	svc := &bootstrap.Service{
		DB:     db,
		Pub:    &mocks.MockPublisher{},
		Store:  &mocks.MockBlobStore{},
		Config: &bootstrap.Config{ProjectID: "test-project"},
	}
	return NewServer(svc, slog.Default())
}

func doRequest(t *testing.T, s *Server, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	s.Routes().ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("Invalid JSON body: %v", err)
	}
	return body
}

func TestGetAdherence(t *testing.T) {
	db := &mocks.MockDatabase{
		GetUserFunc: func(ctx context.Context, id string) (*types.UserRecord, error) {
			return &types.UserRecord{
				UserId: id,
				Goals:  &types.Goals{CalorieGoal: 2000, ProteinGoal: 150},
			}, nil
		},
		GetDailyTotalsFunc: func(ctx context.Context, userId string, date time.Time) (*types.DailyNutritionTotals, error) {
			return &types.DailyNutritionTotals{
				UserId: userId, Date: date, EntryCount: 3,
				Calories: 2150, Protein: 150,
			}, nil
		},
	}

	rec := doRequest(t, testServer(db), "GET", "/v1/users/user-1/adherence?date=2026-05-01")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	body := decodeBody(t, rec)
	if body["tier"] != "yellow" {
		t.Errorf("Expected yellow tier, got %v", body["tier"])
	}
	if body["date"] != "2026-05-01" {
		t.Errorf("Expected echoed date, got %v", body["date"])
	}
}

func TestGetAdherence_BadDate(t *testing.T) {
	rec := doRequest(t, testServer(&mocks.MockDatabase{}), "GET", "/v1/users/user-1/adherence?date=May+1st")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", rec.Code)
	}
}

func TestGetAdherence_NoGoals(t *testing.T) {
	db := &mocks.MockDatabase{
		GetUserFunc: func(ctx context.Context, id string) (*types.UserRecord, error) {
			return &types.UserRecord{UserId: id}, nil
		},
	}

	rec := doRequest(t, testServer(db), "GET", "/v1/users/user-1/adherence?date=2026-05-01")
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("Expected 422, got %d", rec.Code)
	}
}

func TestGetAdherence_UserNotFound(t *testing.T) {
	db := &mocks.MockDatabase{
		GetUserFunc: func(ctx context.Context, id string) (*types.UserRecord, error) {
			return nil, status.Error(codes.NotFound, "missing")
		},
	}

	rec := doRequest(t, testServer(db), "GET", "/v1/users/ghost/adherence?date=2026-05-01")
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", rec.Code)
	}
}

func TestGetRecovery(t *testing.T) {
	db := &mocks.MockDatabase{
		ListFatigueRecordsFunc: func(ctx context.Context, userId string) ([]*types.MuscleFatigueRecord, error) {
			return []*types.MuscleFatigueRecord{
				{UserId: userId, MuscleGroup: types.MuscleChest, LastWorkedDate: time.Now().UTC(), IntensityLevel: 4},
			}, nil
		},
	}

	rec := doRequest(t, testServer(db), "GET", "/v1/users/user-1/recovery")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	body := decodeBody(t, rec)
	muscles := body["muscles"].([]interface{})
	if len(muscles) != len(types.AllMuscleGroups) {
		t.Fatalf("Expected %d muscle entries, got %d", len(types.AllMuscleGroups), len(muscles))
	}
	for _, m := range muscles {
		entry := m.(map[string]interface{})
		rested := entry["rested"].(bool)
		if entry["muscle_group"] == "chest" && rested {
			t.Error("Chest worked today must not be rested")
		}
		if entry["muscle_group"] == "back" && !rested {
			t.Error("Unworked muscle must be rested")
		}
	}
}

func TestGetRecommendations(t *testing.T) {
	db := &mocks.MockDatabase{}

	rec := doRequest(t, testServer(db), "GET", "/v1/users/user-1/recommendations?calories=300&type=strength")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	body := decodeBody(t, rec)
	exercises := body["exercises"].([]interface{})
	if len(exercises) == 0 {
		t.Fatal("Expected recommendations for a fully rested user")
	}
	if len(exercises) > 10 {
		t.Errorf("Recommendations must cap at 10, got %d", len(exercises))
	}
	first := exercises[0].(map[string]interface{})
	if first["type"] != "strength" {
		t.Errorf("Type filter not applied, got %v", first["type"])
	}
	if first["durationMinutes"].(float64) <= 0 {
		t.Error("Expected a computed duration")
	}
}

func TestGetRecommendations_BadCalories(t *testing.T) {
	rec := doRequest(t, testServer(&mocks.MockDatabase{}), "GET", "/v1/users/user-1/recommendations?calories=-5")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", rec.Code)
	}
}

func TestListAlerts_VisibleOnly(t *testing.T) {
	now := time.Now().UTC()
	expired := now.Add(-time.Hour)
	db := &mocks.MockDatabase{
		ListAlertsFunc: func(ctx context.Context, userId string) ([]*types.Alert, error) {
			return []*types.Alert{
				{AlertId: "visible", IsActive: true},
				{AlertId: "dismissed", IsActive: true, IsDismissed: true},
				{AlertId: "resolved", IsActive: true, IsResolved: true},
				{AlertId: "expired", IsActive: true, ExpiresAt: &expired},
			}, nil
		},
	}

	rec := doRequest(t, testServer(db), "GET", "/v1/users/user-1/alerts")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	body := decodeBody(t, rec)
	alerts := body["alerts"].([]interface{})
	if len(alerts) != 1 {
		t.Fatalf("Expected only the visible alert, got %d", len(alerts))
	}
	a := alerts[0].(map[string]interface{})
	if a["alertId"] != "visible" {
		t.Errorf("Expected visible alert, got %v", a["alertId"])
	}
}

func TestListAlerts_All(t *testing.T) {
	db := &mocks.MockDatabase{
		ListAlertsFunc: func(ctx context.Context, userId string) ([]*types.Alert, error) {
			return []*types.Alert{
				{AlertId: "visible", IsActive: true},
				{AlertId: "resolved", IsActive: true, IsResolved: true},
			}, nil
		},
	}

	rec := doRequest(t, testServer(db), "GET", "/v1/users/user-1/alerts?all=true")
	body := decodeBody(t, rec)
	alerts := body["alerts"].([]interface{})
	if len(alerts) != 2 {
		t.Errorf("Expected all alerts, got %d", len(alerts))
	}
}

func TestDismissAlert(t *testing.T) {
	stored := &types.Alert{AlertId: "a1", UserId: "user-1", IsActive: true}
	var saved *types.Alert
	db := &mocks.MockDatabase{
		GetAlertFunc: func(ctx context.Context, userId, alertId string) (*types.Alert, error) {
			return stored, nil
		},
		SetAlertFunc: func(ctx context.Context, userId string, a *types.Alert) error {
			saved = a
			return nil
		},
	}

	rec := doRequest(t, testServer(db), "POST", "/v1/users/user-1/alerts/a1/dismiss")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if saved == nil || !saved.IsDismissed || saved.DismissedAt == nil {
		t.Errorf("Expected dismissal persisted, got %+v", saved)
	}
}

func TestDismissAlert_AlreadyDismissedConflicts(t *testing.T) {
	dismissedAt := time.Now().UTC().Add(-time.Hour)
	db := &mocks.MockDatabase{
		GetAlertFunc: func(ctx context.Context, userId, alertId string) (*types.Alert, error) {
			return &types.Alert{AlertId: alertId, IsActive: true, IsDismissed: true, DismissedAt: &dismissedAt}, nil
		},
	}

	rec := doRequest(t, testServer(db), "POST", "/v1/users/user-1/alerts/a1/dismiss")
	if rec.Code != http.StatusConflict {
		t.Errorf("Expected 409, got %d", rec.Code)
	}
}

func TestResolveAlert_AlreadyResolvedConflicts(t *testing.T) {
	resolvedAt := time.Now().UTC().Add(-time.Hour)
	db := &mocks.MockDatabase{
		GetAlertFunc: func(ctx context.Context, userId, alertId string) (*types.Alert, error) {
			return &types.Alert{AlertId: alertId, IsResolved: true, ResolvedAt: &resolvedAt}, nil
		},
	}

	rec := doRequest(t, testServer(db), "POST", "/v1/users/user-1/alerts/a1/resolve")
	if rec.Code != http.StatusConflict {
		t.Errorf("Expected 409, got %d", rec.Code)
	}
}

func TestResolveAlert_NotFound(t *testing.T) {
	db := &mocks.MockDatabase{
		GetAlertFunc: func(ctx context.Context, userId, alertId string) (*types.Alert, error) {
			return nil, status.Error(codes.NotFound, "missing")
		},
	}

	rec := doRequest(t, testServer(db), "POST", "/v1/users/user-1/alerts/ghost/resolve")
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", rec.Code)
	}
}
