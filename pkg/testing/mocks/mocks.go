package mocks

import (
	"context"
	"fmt"
	"time"

	"github.com/cloudevents/sdk-go/v2/event"

	"github.com/macropilot/server/pkg/types"
)

// --- Mock Database ---
type MockDatabase struct {
	SetExecutionFunc         func(ctx context.Context, record *types.ExecutionRecord) error
	UpdateExecutionFunc      func(ctx context.Context, id string, data map[string]interface{}) error
	GetUserFunc              func(ctx context.Context, id string) (*types.UserRecord, error)
	ListUsersFunc            func(ctx context.Context) ([]*types.UserRecord, error)
	UpdateUserFunc           func(ctx context.Context, id string, data map[string]interface{}) error
	GetDailyTotalsFunc       func(ctx context.Context, userId string, date time.Time) (*types.DailyNutritionTotals, error)
	ListContextEntriesFunc   func(ctx context.Context, userId string, date time.Time) ([]*types.ContextEntry, error)
	GetFatigueRecordFunc     func(ctx context.Context, userId string, group types.MuscleGroup) (*types.MuscleFatigueRecord, error)
	SetFatigueRecordFunc     func(ctx context.Context, userId string, record *types.MuscleFatigueRecord) error
	ListFatigueRecordsFunc   func(ctx context.Context, userId string) ([]*types.MuscleFatigueRecord, error)
	ListActivityMarksFunc    func(ctx context.Context, userId string) ([]*types.ActivityMark, error)
	SetActivityMarkFunc      func(ctx context.Context, userId string, mark *types.ActivityMark) error
	ListStreaksFunc          func(ctx context.Context, userId string) ([]*types.Streak, error)
	SetStreakFunc            func(ctx context.Context, userId string, streak *types.Streak) error
	CreateAlertFunc          func(ctx context.Context, userId string, alert *types.Alert) error
	GetAlertFunc             func(ctx context.Context, userId string, alertId string) (*types.Alert, error)
	SetAlertFunc             func(ctx context.Context, userId string, alert *types.Alert) error
	ListUnresolvedAlertsFunc func(ctx context.Context, userId string) ([]*types.Alert, error)
	ListAlertsFunc           func(ctx context.Context, userId string) ([]*types.Alert, error)
}

func (m *MockDatabase) SetExecution(ctx context.Context, record *types.ExecutionRecord) error {
	if m.SetExecutionFunc != nil {
		return m.SetExecutionFunc(ctx, record)
	}
	return nil
}
func (m *MockDatabase) UpdateExecution(ctx context.Context, id string, data map[string]interface{}) error {
	if m.UpdateExecutionFunc != nil {
		return m.UpdateExecutionFunc(ctx, id, data)
	}
	return nil
}
func (m *MockDatabase) GetUser(ctx context.Context, id string) (*types.UserRecord, error) {
	if m.GetUserFunc != nil {
		return m.GetUserFunc(ctx, id)
	}
	return nil, fmt.Errorf("user not found")
}
func (m *MockDatabase) ListUsers(ctx context.Context) ([]*types.UserRecord, error) {
	if m.ListUsersFunc != nil {
		return m.ListUsersFunc(ctx)
	}
	return nil, nil
}
func (m *MockDatabase) UpdateUser(ctx context.Context, id string, data map[string]interface{}) error {
	if m.UpdateUserFunc != nil {
		return m.UpdateUserFunc(ctx, id, data)
	}
	return nil
}
func (m *MockDatabase) GetDailyTotals(ctx context.Context, userId string, date time.Time) (*types.DailyNutritionTotals, error) {
	if m.GetDailyTotalsFunc != nil {
		return m.GetDailyTotalsFunc(ctx, userId, date)
	}
	return nil, nil
}
func (m *MockDatabase) ListContextEntries(ctx context.Context, userId string, date time.Time) ([]*types.ContextEntry, error) {
	if m.ListContextEntriesFunc != nil {
		return m.ListContextEntriesFunc(ctx, userId, date)
	}
	return nil, nil
}
func (m *MockDatabase) GetFatigueRecord(ctx context.Context, userId string, group types.MuscleGroup) (*types.MuscleFatigueRecord, error) {
	if m.GetFatigueRecordFunc != nil {
		return m.GetFatigueRecordFunc(ctx, userId, group)
	}
	return nil, nil
}
func (m *MockDatabase) SetFatigueRecord(ctx context.Context, userId string, record *types.MuscleFatigueRecord) error {
	if m.SetFatigueRecordFunc != nil {
		return m.SetFatigueRecordFunc(ctx, userId, record)
	}
	return nil
}
func (m *MockDatabase) ListFatigueRecords(ctx context.Context, userId string) ([]*types.MuscleFatigueRecord, error) {
	if m.ListFatigueRecordsFunc != nil {
		return m.ListFatigueRecordsFunc(ctx, userId)
	}
	return nil, nil
}
func (m *MockDatabase) ListActivityMarks(ctx context.Context, userId string) ([]*types.ActivityMark, error) {
	if m.ListActivityMarksFunc != nil {
		return m.ListActivityMarksFunc(ctx, userId)
	}
	return nil, nil
}
func (m *MockDatabase) SetActivityMark(ctx context.Context, userId string, mark *types.ActivityMark) error {
	if m.SetActivityMarkFunc != nil {
		return m.SetActivityMarkFunc(ctx, userId, mark)
	}
	return nil
}
func (m *MockDatabase) ListStreaks(ctx context.Context, userId string) ([]*types.Streak, error) {
	if m.ListStreaksFunc != nil {
		return m.ListStreaksFunc(ctx, userId)
	}
	return nil, nil
}
func (m *MockDatabase) SetStreak(ctx context.Context, userId string, streak *types.Streak) error {
	if m.SetStreakFunc != nil {
		return m.SetStreakFunc(ctx, userId, streak)
	}
	return nil
}
func (m *MockDatabase) CreateAlert(ctx context.Context, userId string, alert *types.Alert) error {
	if m.CreateAlertFunc != nil {
		return m.CreateAlertFunc(ctx, userId, alert)
	}
	return nil
}
func (m *MockDatabase) GetAlert(ctx context.Context, userId string, alertId string) (*types.Alert, error) {
	if m.GetAlertFunc != nil {
		return m.GetAlertFunc(ctx, userId, alertId)
	}
	return nil, fmt.Errorf("alert not found")
}
func (m *MockDatabase) SetAlert(ctx context.Context, userId string, alert *types.Alert) error {
	if m.SetAlertFunc != nil {
		return m.SetAlertFunc(ctx, userId, alert)
	}
	return nil
}
func (m *MockDatabase) ListUnresolvedAlerts(ctx context.Context, userId string) ([]*types.Alert, error) {
	if m.ListUnresolvedAlertsFunc != nil {
		return m.ListUnresolvedAlertsFunc(ctx, userId)
	}
	return nil, nil
}
func (m *MockDatabase) ListAlerts(ctx context.Context, userId string) ([]*types.Alert, error) {
	if m.ListAlertsFunc != nil {
		return m.ListAlertsFunc(ctx, userId)
	}
	return nil, nil
}

// --- Mock Publisher ---
type MockPublisher struct {
	PublishCloudEventFunc func(ctx context.Context, topic string, e event.Event) (string, error)
}

func (m *MockPublisher) PublishCloudEvent(ctx context.Context, topic string, e event.Event) (string, error) {
	if m.PublishCloudEventFunc != nil {
		return m.PublishCloudEventFunc(ctx, topic, e)
	}
	return "msg-id", nil
}

// --- Mock Storage ---
type MockBlobStore struct {
	WriteFunc func(ctx context.Context, bucket, object string, data []byte) error
	ReadFunc  func(ctx context.Context, bucket, object string) ([]byte, error)
}

func (m *MockBlobStore) Write(ctx context.Context, bucket, object string, data []byte) error {
	if m.WriteFunc != nil {
		return m.WriteFunc(ctx, bucket, object, data)
	}
	return nil
}
func (m *MockBlobStore) Read(ctx context.Context, bucket, object string) ([]byte, error) {
	if m.ReadFunc != nil {
		return m.ReadFunc(ctx, bucket, object)
	}
	return []byte("mock-data"), nil
}

// --- Mock Notifications ---
type MockNotificationService struct {
	SendPushNotificationFunc func(ctx context.Context, userID string, title, body string, tokens []string, data map[string]string) error
}

func (m *MockNotificationService) SendPushNotification(ctx context.Context, userID string, title, body string, tokens []string, data map[string]string) error {
	if m.SendPushNotificationFunc != nil {
		return m.SendPushNotificationFunc(ctx, userID, title, body, tokens, data)
	}
	return nil
}
