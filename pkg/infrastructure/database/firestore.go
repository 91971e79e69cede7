package database

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"

	"github.com/macropilot/server/pkg/dateutil"
	storage "github.com/macropilot/server/pkg/storage/firestore"
	"github.com/macropilot/server/pkg/types"
)

// FirestoreAdapter provides database operations using Firestore
// It wraps our typed storage client
type FirestoreAdapter struct {
	Client  *firestore.Client
	storage *storage.Client // internal typed wrapper
}

func NewFirestoreAdapter(client *firestore.Client) *FirestoreAdapter {
	return &FirestoreAdapter{
		Client:  client,
		storage: storage.NewClient(client),
	}
}

func (a *FirestoreAdapter) SetExecution(ctx context.Context, record *types.ExecutionRecord) error {
	return a.storage.Executions().Doc(record.ExecutionId).Set(ctx, record)
}

func (a *FirestoreAdapter) UpdateExecution(ctx context.Context, id string, data map[string]interface{}) error {
	return a.storage.Executions().Doc(id).Update(ctx, data)
}

func (a *FirestoreAdapter) GetUser(ctx context.Context, id string) (*types.UserRecord, error) {
	return a.storage.Users().Doc(id).Get(ctx)
}

func (a *FirestoreAdapter) ListUsers(ctx context.Context) ([]*types.UserRecord, error) {
	return a.storage.Users().All(ctx)
}

func (a *FirestoreAdapter) UpdateUser(ctx context.Context, id string, data map[string]interface{}) error {
	return a.storage.Users().Doc(id).Update(ctx, data)
}

// Daily totals are keyed by date so a read is a single doc get, not a query.
func (a *FirestoreAdapter) GetDailyTotals(ctx context.Context, userId string, date time.Time) (*types.DailyNutritionTotals, error) {
	return a.storage.DailyTotals(userId).Doc(dateutil.DateKey(date)).Get(ctx)
}

func (a *FirestoreAdapter) ListContextEntries(ctx context.Context, userId string, date time.Time) ([]*types.ContextEntry, error) {
	dayStart := date.UTC().Truncate(24 * time.Hour)
	entries, err := a.storage.ContextEntries(userId).Where(ctx, "date", ">=", dayStart)
	if err != nil {
		return nil, err
	}
	// Firestore range queries need two inequality clauses on the same field;
	// filtering the upper bound in memory keeps the index requirements flat.
	dayEnd := dayStart.Add(24 * time.Hour)
	var out []*types.ContextEntry
	for _, e := range entries {
		if e.Date.Before(dayEnd) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (a *FirestoreAdapter) GetFatigueRecord(ctx context.Context, userId string, group types.MuscleGroup) (*types.MuscleFatigueRecord, error) {
	return a.storage.FatigueRecords(userId).Doc(string(group)).Get(ctx)
}

func (a *FirestoreAdapter) SetFatigueRecord(ctx context.Context, userId string, record *types.MuscleFatigueRecord) error {
	// Keyed by muscle group: a new workout replaces the prior record outright.
	return a.storage.FatigueRecords(userId).Doc(string(record.MuscleGroup)).Overwrite(ctx, record)
}

func (a *FirestoreAdapter) ListFatigueRecords(ctx context.Context, userId string) ([]*types.MuscleFatigueRecord, error) {
	return a.storage.FatigueRecords(userId).All(ctx)
}

func (a *FirestoreAdapter) ListActivityMarks(ctx context.Context, userId string) ([]*types.ActivityMark, error) {
	return a.storage.ActivityMarks(userId).All(ctx)
}

func (a *FirestoreAdapter) SetActivityMark(ctx context.Context, userId string, mark *types.ActivityMark) error {
	return a.storage.ActivityMarks(userId).Doc(string(mark.Domain)).Overwrite(ctx, mark)
}

func (a *FirestoreAdapter) ListStreaks(ctx context.Context, userId string) ([]*types.Streak, error) {
	return a.storage.Streaks(userId).All(ctx)
}

func (a *FirestoreAdapter) SetStreak(ctx context.Context, userId string, streak *types.Streak) error {
	return a.storage.Streaks(userId).Doc(string(streak.Domain)).Overwrite(ctx, streak)
}

func (a *FirestoreAdapter) CreateAlert(ctx context.Context, userId string, alert *types.Alert) error {
	return a.storage.Alerts(userId).Doc(alert.AlertId).Set(ctx, alert)
}

func (a *FirestoreAdapter) GetAlert(ctx context.Context, userId string, alertId string) (*types.Alert, error) {
	return a.storage.Alerts(userId).Doc(alertId).Get(ctx)
}

func (a *FirestoreAdapter) SetAlert(ctx context.Context, userId string, alert *types.Alert) error {
	return a.storage.Alerts(userId).Doc(alert.AlertId).Set(ctx, alert)
}

func (a *FirestoreAdapter) ListUnresolvedAlerts(ctx context.Context, userId string) ([]*types.Alert, error) {
	return a.storage.Alerts(userId).Where(ctx, "is_resolved", "==", false)
}

func (a *FirestoreAdapter) ListAlerts(ctx context.Context, userId string) ([]*types.Alert, error) {
	return a.storage.Alerts(userId).All(ctx)
}
