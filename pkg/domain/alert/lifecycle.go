// Package alert owns the alert state machine. Evaluators and detectors only
// create alerts; dismissal, resolution and reactivation all go through the
// transitions here so the stored flags and timestamps never drift apart.
package alert

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	shared "github.com/macropilot/server/pkg"
	"github.com/macropilot/server/pkg/types"
)

// Precondition failures. These are client-correctable: retrying a dismiss
// that already happened is safe and reports the same error.
var (
	ErrAlreadyDismissed = errors.New("alert already dismissed")
	ErrAlreadyResolved  = errors.New("alert already resolved")
)

// New creates an alert in the Active state.
func New(userID, alertType string, severity types.Severity, data map[string]string, now time.Time) *types.Alert {
	title, message := Render(alertType, severity, data)
	payload := make(map[string]string, len(data)+2)
	for k, v := range data {
		payload[k] = v
	}
	payload[shared.DataKeyAlertType] = alertType
	payload[shared.DataKeySeverity] = string(severity)
	return &types.Alert{
		AlertId:     uuid.NewString(),
		UserId:      userID,
		Type:        alertType,
		Severity:    severity,
		Title:       title,
		Message:     message,
		Data:        payload,
		CreatedAt:   now,
		IsActive:    true,
		IsDismissed: false,
		IsResolved:  false,
	}
}

// Dismiss hides the alert from display. It does not imply the underlying
// condition is resolved.
func Dismiss(a *types.Alert, now time.Time) error {
	if a.IsDismissed {
		return fmt.Errorf("dismiss %s: %w", a.AlertId, ErrAlreadyDismissed)
	}
	a.IsDismissed = true
	a.DismissedAt = &now
	return nil
}

// Resolve marks the underlying condition as cleared. Independent of dismiss:
// an alert can resolve without ever having been dismissed (e.g. the next
// green day auto-resolves an adherence breach).
func Resolve(a *types.Alert, now time.Time) error {
	if a.IsResolved {
		return fmt.Errorf("resolve %s: %w", a.AlertId, ErrAlreadyResolved)
	}
	a.IsResolved = true
	a.ResolvedAt = &now
	return nil
}

// Reactivate clears a dismissal when a previously dismissed condition recurs.
func Reactivate(a *types.Alert) {
	a.IsActive = true
	a.IsDismissed = false
	a.DismissedAt = nil
}

// IsVisible reports whether the alert should currently be shown. Expiry is
// derived, not stored: an alert past its ExpiresAt is invisible regardless of
// flags.
func IsVisible(a *types.Alert, now time.Time) bool {
	if !a.IsActive || a.IsDismissed {
		return false
	}
	if a.ExpiresAt != nil && !a.ExpiresAt.After(now) {
		return false
	}
	return true
}

// FindUnresolved returns the first unresolved alert of the given type, or nil.
// Creation-time dedup: callers check this before persisting a new candidate so
// at most one unresolved alert exists per (user, type) pair.
func FindUnresolved(alerts []*types.Alert, alertType string) *types.Alert {
	for _, a := range alerts {
		if a != nil && a.Type == alertType && !a.IsResolved {
			return a
		}
	}
	return nil
}
