package shared

import (
	"context"
	"time"

	"github.com/cloudevents/sdk-go/v2/event"

	"github.com/macropilot/server/pkg/types"
)

// --- Persistence Interfaces ---

type Database interface {
	SetExecution(ctx context.Context, record *types.ExecutionRecord) error
	UpdateExecution(ctx context.Context, id string, data map[string]interface{}) error
	GetUser(ctx context.Context, id string) (*types.UserRecord, error)
	ListUsers(ctx context.Context) ([]*types.UserRecord, error)
	UpdateUser(ctx context.Context, id string, data map[string]interface{}) error

	// Nutrition logging (read-only for the engine; written by the logging collaborator)
	GetDailyTotals(ctx context.Context, userId string, date time.Time) (*types.DailyNutritionTotals, error)
	ListContextEntries(ctx context.Context, userId string, date time.Time) ([]*types.ContextEntry, error)

	// Muscle fatigue (upsert semantics: one record per user+muscle, last write wins)
	GetFatigueRecord(ctx context.Context, userId string, group types.MuscleGroup) (*types.MuscleFatigueRecord, error)
	SetFatigueRecord(ctx context.Context, userId string, record *types.MuscleFatigueRecord) error
	ListFatigueRecords(ctx context.Context, userId string) ([]*types.MuscleFatigueRecord, error)

	// Activity marks and streaks
	ListActivityMarks(ctx context.Context, userId string) ([]*types.ActivityMark, error)
	SetActivityMark(ctx context.Context, userId string, mark *types.ActivityMark) error
	ListStreaks(ctx context.Context, userId string) ([]*types.Streak, error)
	SetStreak(ctx context.Context, userId string, streak *types.Streak) error

	// Alerts (created by evaluators, mutated only through lifecycle transitions)
	CreateAlert(ctx context.Context, userId string, alert *types.Alert) error
	GetAlert(ctx context.Context, userId string, alertId string) (*types.Alert, error)
	SetAlert(ctx context.Context, userId string, alert *types.Alert) error
	ListUnresolvedAlerts(ctx context.Context, userId string) ([]*types.Alert, error)
	ListAlerts(ctx context.Context, userId string) ([]*types.Alert, error)
}

// --- Messaging Interfaces ---

type Publisher interface {
	PublishCloudEvent(ctx context.Context, topic string, e event.Event) (string, error)
}

// --- Storage Interfaces ---

type BlobStore interface {
	Write(ctx context.Context, bucket, object string, data []byte) error
	Read(ctx context.Context, bucket, object string) ([]byte, error)
}

// --- Notification Interfaces ---

type NotificationService interface {
	SendPushNotification(ctx context.Context, userID string, title, body string, tokens []string, data map[string]string) error
}
