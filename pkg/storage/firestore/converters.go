package firestore

import (
	"time"

	"github.com/macropilot/server/pkg/types"
)

// Helper to safely get string from map
func getString(m map[string]interface{}, key string) string {
	if v, ok := m[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// Helper to safely get int from map (Firestore returns int64 for numbers)
func getInt(m map[string]interface{}, key string) int {
	if v, ok := m[key]; ok {
		switch n := v.(type) {
		case int64:
			return int(n)
		case int:
			return n
		case float64:
			return int(n)
		}
	}
	return 0
}

// Helper to safely get bool from map
func getBool(m map[string]interface{}, key string) bool {
	if v, ok := m[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return false
}

// Helper to safely get time from map (handles time.Time from Firestore)
func getTime(m map[string]interface{}, key string) time.Time {
	if v, ok := m[key]; ok {
		if t, ok := v.(time.Time); ok {
			return t
		}
	}
	return time.Time{}
}

// Helper to get an optional time as a pointer, nil when absent
func getTimePtr(m map[string]interface{}, key string) *time.Time {
	if v, ok := m[key]; ok {
		if t, ok := v.(time.Time); ok {
			return &t
		}
	}
	return nil
}

// Helper to safely get a string slice from map
func getStringSlice(m map[string]interface{}, key string) []string {
	v, ok := m[key]
	if !ok {
		return nil
	}
	items, ok := v.([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// Helper to safely get a string-to-string map from map
func getStringMap(m map[string]interface{}, key string) map[string]string {
	v, ok := m[key]
	if !ok {
		return nil
	}
	raw, ok := v.(map[string]interface{})
	if !ok {
		return nil
	}
	out := make(map[string]string, len(raw))
	for k, item := range raw {
		if s, ok := item.(string); ok {
			out[k] = s
		}
	}
	return out
}

// --- UserRecord Converters ---

func UserToFirestore(u *types.UserRecord) map[string]interface{} {
	m := map[string]interface{}{
		"user_id":    u.UserId,
		"email":      u.Email,
		"created_at": u.CreatedAt,
	}
	if u.Goals != nil {
		m["goals"] = map[string]interface{}{
			"calorie_goal": u.Goals.CalorieGoal,
			"protein_goal": u.Goals.ProteinGoal,
			"carbs_goal":   u.Goals.CarbsGoal,
			"fat_goal":     u.Goals.FatGoal,
		}
	}
	if len(u.FCMTokens) > 0 {
		m["fcm_tokens"] = u.FCMTokens
	}
	return m
}

func FirestoreToUser(m map[string]interface{}) *types.UserRecord {
	u := &types.UserRecord{
		UserId:    getString(m, "user_id"),
		Email:     getString(m, "email"),
		FCMTokens: getStringSlice(m, "fcm_tokens"),
		CreatedAt: getTime(m, "created_at"),
	}
	if raw, ok := m["goals"].(map[string]interface{}); ok {
		u.Goals = &types.Goals{
			CalorieGoal: getInt(raw, "calorie_goal"),
			ProteinGoal: getInt(raw, "protein_goal"),
			CarbsGoal:   getInt(raw, "carbs_goal"),
			FatGoal:     getInt(raw, "fat_goal"),
		}
	}
	return u
}

// --- ExecutionRecord Converters ---

func ExecutionToFirestore(e *types.ExecutionRecord) map[string]interface{} {
	m := map[string]interface{}{
		"execution_id": e.ExecutionId,
		"service_name": e.ServiceName,
		"trigger_type": e.TriggerType,
		"status":       e.Status,
		"started_at":   e.StartedAt,
	}
	if e.UserId != "" {
		m["user_id"] = e.UserId
	}
	if e.TestRunID != "" {
		m["test_run_id"] = e.TestRunID
	}
	if e.Error != "" {
		m["error"] = e.Error
	}
	if !e.FinishedAt.IsZero() {
		m["finished_at"] = e.FinishedAt
	}
	return m
}

func FirestoreToExecution(m map[string]interface{}) *types.ExecutionRecord {
	return &types.ExecutionRecord{
		ExecutionId: getString(m, "execution_id"),
		ServiceName: getString(m, "service_name"),
		UserId:      getString(m, "user_id"),
		TestRunID:   getString(m, "test_run_id"),
		TriggerType: getString(m, "trigger_type"),
		Status:      getString(m, "status"),
		Error:       getString(m, "error"),
		StartedAt:   getTime(m, "started_at"),
		FinishedAt:  getTime(m, "finished_at"),
	}
}

// --- DailyNutritionTotals Converters ---

func DailyTotalsToFirestore(t *types.DailyNutritionTotals) map[string]interface{} {
	return map[string]interface{}{
		"user_id":     t.UserId,
		"date":        t.Date,
		"calories":    t.Calories,
		"protein":     t.Protein,
		"carbs":       t.Carbs,
		"fat":         t.Fat,
		"entry_count": t.EntryCount,
	}
}

func FirestoreToDailyTotals(m map[string]interface{}) *types.DailyNutritionTotals {
	return &types.DailyNutritionTotals{
		UserId:     getString(m, "user_id"),
		Date:       getTime(m, "date"),
		Calories:   getInt(m, "calories"),
		Protein:    getInt(m, "protein"),
		Carbs:      getInt(m, "carbs"),
		Fat:        getInt(m, "fat"),
		EntryCount: getInt(m, "entry_count"),
	}
}

// --- ContextEntry Converters ---

func ContextEntryToFirestore(c *types.ContextEntry) map[string]interface{} {
	m := map[string]interface{}{
		"user_id":           c.UserId,
		"type":              string(c.Type),
		"date":              c.Date,
		"affects_nutrition": c.AffectsNutrition,
	}
	if c.Note != "" {
		m["note"] = c.Note
	}
	return m
}

func FirestoreToContextEntry(m map[string]interface{}) *types.ContextEntry {
	return &types.ContextEntry{
		UserId:           getString(m, "user_id"),
		Type:             types.ParseContextType(getString(m, "type")),
		Date:             getTime(m, "date"),
		AffectsNutrition: getBool(m, "affects_nutrition"),
		Note:             getString(m, "note"),
	}
}

// --- MuscleFatigueRecord Converters ---

func FatigueRecordToFirestore(r *types.MuscleFatigueRecord) map[string]interface{} {
	return map[string]interface{}{
		"user_id":          r.UserId,
		"muscle_group":     string(r.MuscleGroup),
		"last_worked_date": r.LastWorkedDate,
		"intensity_level":  r.IntensityLevel,
	}
}

func FirestoreToFatigueRecord(m map[string]interface{}) *types.MuscleFatigueRecord {
	return &types.MuscleFatigueRecord{
		UserId:         getString(m, "user_id"),
		MuscleGroup:    types.ParseMuscleGroup(getString(m, "muscle_group")),
		LastWorkedDate: getTime(m, "last_worked_date"),
		IntensityLevel: getInt(m, "intensity_level"),
	}
}

// --- Alert Converters ---

func AlertToFirestore(a *types.Alert) map[string]interface{} {
	m := map[string]interface{}{
		"alert_id":     a.AlertId,
		"user_id":      a.UserId,
		"type":         a.Type,
		"severity":     string(a.Severity),
		"title":        a.Title,
		"message":      a.Message,
		"created_at":   a.CreatedAt,
		"is_active":    a.IsActive,
		"is_dismissed": a.IsDismissed,
		"is_resolved":  a.IsResolved,
	}
	if len(a.Data) > 0 {
		m["data"] = a.Data
	}
	if a.DismissedAt != nil {
		m["dismissed_at"] = *a.DismissedAt
	}
	if a.ResolvedAt != nil {
		m["resolved_at"] = *a.ResolvedAt
	}
	if a.ExpiresAt != nil {
		m["expires_at"] = *a.ExpiresAt
	}
	return m
}

func FirestoreToAlert(m map[string]interface{}) *types.Alert {
	return &types.Alert{
		AlertId:     getString(m, "alert_id"),
		UserId:      getString(m, "user_id"),
		Type:        getString(m, "type"),
		Severity:    types.Severity(getString(m, "severity")),
		Title:       getString(m, "title"),
		Message:     getString(m, "message"),
		Data:        getStringMap(m, "data"),
		CreatedAt:   getTime(m, "created_at"),
		IsActive:    getBool(m, "is_active"),
		IsDismissed: getBool(m, "is_dismissed"),
		DismissedAt: getTimePtr(m, "dismissed_at"),
		IsResolved:  getBool(m, "is_resolved"),
		ResolvedAt:  getTimePtr(m, "resolved_at"),
		ExpiresAt:   getTimePtr(m, "expires_at"),
	}
}

// --- ActivityMark Converters ---

func ActivityMarkToFirestore(a *types.ActivityMark) map[string]interface{} {
	return map[string]interface{}{
		"user_id":   a.UserId,
		"domain":    string(a.Domain),
		"last_seen": a.LastSeen,
	}
}

func FirestoreToActivityMark(m map[string]interface{}) *types.ActivityMark {
	return &types.ActivityMark{
		UserId:   getString(m, "user_id"),
		Domain:   types.ActivityDomain(getString(m, "domain")),
		LastSeen: getTime(m, "last_seen"),
	}
}

// --- Streak Converters ---

func StreakToFirestore(s *types.Streak) map[string]interface{} {
	return map[string]interface{}{
		"user_id":       s.UserId,
		"domain":        string(s.Domain),
		"current":       s.Current,
		"longest":       s.Longest,
		"last_date_key": s.LastDateKey,
	}
}

func FirestoreToStreak(m map[string]interface{}) *types.Streak {
	return &types.Streak{
		UserId:      getString(m, "user_id"),
		Domain:      types.ActivityDomain(getString(m, "domain")),
		Current:     getInt(m, "current"),
		Longest:     getInt(m, "longest"),
		LastDateKey: getString(m, "last_date_key"),
	}
}
