package main

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/macropilot/server/pkg/dateutil"
	"github.com/macropilot/server/pkg/domain/adherence"
	"github.com/macropilot/server/pkg/domain/alert"
	"github.com/macropilot/server/pkg/domain/recovery"
	httputil "github.com/macropilot/server/pkg/infrastructure/http"
	infrasentry "github.com/macropilot/server/pkg/infrastructure/sentry"
	"github.com/macropilot/server/pkg/types"
)

const defaultCalorieTarget = 300

// handleGetAdherence evaluates one date on demand. Read-only: unlike the
// daily check it never touches alerts.
func (s *Server) handleGetAdherence(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := chi.URLParam(r, "userID")

	date := dateutil.Yesterday(time.Now())
	if d := r.URL.Query().Get("date"); d != "" {
		parsed, err := time.Parse("2006-01-02", d)
		if err != nil {
			httputil.WriteError(w, http.StatusBadRequest, "invalid date, want YYYY-MM-DD")
			return
		}
		date = parsed
	}

	user, err := s.svc.DB.GetUser(ctx, userID)
	if err != nil {
		s.writeLookupError(w, r, err, "user")
		return
	}
	if user.Goals == nil {
		httputil.WriteError(w, http.StatusUnprocessableEntity, "user has no goals configured")
		return
	}

	totals, err := s.svc.DB.GetDailyTotals(ctx, userID, date)
	if err != nil && status.Code(err) != codes.NotFound {
		s.writeLookupError(w, r, err, "daily totals")
		return
	}
	contexts, err := s.svc.DB.ListContextEntries(ctx, userID, date)
	if err != nil {
		s.writeLookupError(w, r, err, "context entries")
		return
	}

	window := adherence.Adjust(adherence.DefaultWindow(), date, contexts)
	result := adherence.Evaluate(totals, user.Goals, window)

	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"user_id":           userID,
		"date":              date.Format("2006-01-02"),
		"tier":              result.Tier,
		"per_metric":        result.PerMetric,
		"deviations":        result.Deviations,
		"insufficient_data": result.InsufficientData,
		"window": map[string]float64{
			"calorie_tolerance": window.CalorieTolerance,
			"macro_tolerance":   window.MacroTolerance,
		},
	})
}

// handleGetRecovery reports the rest state of every muscle group.
func (s *Server) handleGetRecovery(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := chi.URLParam(r, "userID")

	scheduler := recovery.NewScheduler(s.svc.DB)
	rested, err := scheduler.RestedMuscles(ctx, userID, types.AllMuscleGroups, time.Now().UTC())
	if err != nil {
		s.writeLookupError(w, r, err, "fatigue records")
		return
	}

	muscles := make([]map[string]interface{}, 0, len(types.AllMuscleGroups))
	for _, group := range types.AllMuscleGroups {
		muscles = append(muscles, map[string]interface{}{
			"muscle_group": group,
			"rested":       rested[group],
		})
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"user_id": userID,
		"muscles": muscles,
	})
}

// handleGetRecommendations suggests exercises targeting rested muscles.
func (s *Server) handleGetRecommendations(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := chi.URLParam(r, "userID")

	target := defaultCalorieTarget
	if c := r.URL.Query().Get("calories"); c != "" {
		parsed, err := strconv.Atoi(c)
		if err != nil || parsed <= 0 {
			httputil.WriteError(w, http.StatusBadRequest, "calories must be a positive integer")
			return
		}
		target = parsed
	}
	filters := recovery.Filters{
		Difficulty: r.URL.Query().Get("difficulty"),
		Type:       r.URL.Query().Get("type"),
	}

	scheduler := recovery.NewScheduler(s.svc.DB)
	rested, err := scheduler.RestedMuscles(ctx, userID, types.AllMuscleGroups, time.Now().UTC())
	if err != nil {
		s.writeLookupError(w, r, err, "fatigue records")
		return
	}

	recommendations := recovery.Recommend(target, rested, filters, recovery.DefaultCatalog)

	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"user_id":         userID,
		"calories_target": target,
		"exercises":       recommendations,
	})
}

// handleListAlerts returns the user's visible alerts. ?all=true includes
// dismissed, resolved and expired ones.
func (s *Server) handleListAlerts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := chi.URLParam(r, "userID")

	alerts, err := s.svc.DB.ListAlerts(ctx, userID)
	if err != nil {
		s.writeLookupError(w, r, err, "alerts")
		return
	}

	includeAll := r.URL.Query().Get("all") == "true"
	now := time.Now().UTC()
	visible := make([]*types.Alert, 0, len(alerts))
	for _, a := range alerts {
		if includeAll || (alert.IsVisible(a, now) && !a.IsResolved) {
			visible = append(visible, a)
		}
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"user_id": userID,
		"alerts":  visible,
	})
}

func (s *Server) handleDismissAlert(w http.ResponseWriter, r *http.Request) {
	s.mutateAlert(w, r, func(a *types.Alert, now time.Time) error {
		return alert.Dismiss(a, now)
	})
}

func (s *Server) handleResolveAlert(w http.ResponseWriter, r *http.Request) {
	s.mutateAlert(w, r, func(a *types.Alert, now time.Time) error {
		return alert.Resolve(a, now)
	})
}

// mutateAlert loads, transitions and persists one alert. Precondition
// failures map to 409 so clients can distinguish them from transport errors.
func (s *Server) mutateAlert(w http.ResponseWriter, r *http.Request, transition func(*types.Alert, time.Time) error) {
	ctx := r.Context()
	userID := chi.URLParam(r, "userID")
	alertID := chi.URLParam(r, "alertID")

	a, err := s.svc.DB.GetAlert(ctx, userID, alertID)
	if err != nil {
		s.writeLookupError(w, r, err, "alert")
		return
	}

	if err := transition(a, time.Now().UTC()); err != nil {
		if errors.Is(err, alert.ErrAlreadyDismissed) || errors.Is(err, alert.ErrAlreadyResolved) {
			httputil.WriteError(w, http.StatusConflict, err.Error())
			return
		}
		s.logger.Error("Alert transition failed", "alert_id", alertID, "error", err)
		httputil.WriteError(w, http.StatusInternalServerError, "alert update failed")
		return
	}

	if err := s.svc.DB.SetAlert(ctx, userID, a); err != nil {
		s.logger.Error("Alert save failed", "alert_id", alertID, "error", err)
		httputil.WriteError(w, http.StatusInternalServerError, "alert update failed")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, a)
}

func (s *Server) writeLookupError(w http.ResponseWriter, r *http.Request, err error, what string) {
	if status.Code(err) == codes.NotFound {
		httputil.WriteError(w, http.StatusNotFound, what+" not found")
		return
	}
	s.logger.Error("Lookup failed", "what", what, "error", err)
	infrasentry.CaptureUserError(err, chi.URLParam(r, "userID"), s.logger)
	httputil.WriteError(w, http.StatusInternalServerError, what+" lookup failed")
}
