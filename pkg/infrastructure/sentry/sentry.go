package sentry

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
)

type Config struct {
	DSN              string
	Environment      string
	Release          string
	ServerName       string
	TracesSampleRate float64
}

// FromEnv builds a Config from SENTRY_DSN, ENV and SENTRY_RELEASE.
func FromEnv(serverName string) Config {
	return Config{
		DSN:              os.Getenv("SENTRY_DSN"),
		Environment:      os.Getenv("ENV"),
		Release:          os.Getenv("SENTRY_RELEASE"),
		ServerName:       serverName,
		TracesSampleRate: 0.1,
	}
}

// Init initializes Sentry. An empty DSN disables reporting without error so
// local runs need no configuration.
func Init(cfg Config, logger *slog.Logger) error {
	if cfg.DSN == "" {
		if logger != nil {
			logger.Warn("Sentry DSN not configured - error tracking disabled")
		}
		return nil
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.DSN,
		Environment:      cfg.Environment,
		Release:          cfg.Release,
		ServerName:       cfg.ServerName,
		TracesSampleRate: cfg.TracesSampleRate,
		BeforeSend: func(event *sentry.Event, hint *sentry.EventHint) *sentry.Event {
			// Auth headers must never reach the error tracker.
			if event.Request != nil && event.Request.Headers != nil {
				delete(event.Request.Headers, "Authorization")
				delete(event.Request.Headers, "Cookie")
			}
			return event
		},
	})

	if err != nil {
		if logger != nil {
			logger.Error("Failed to initialize Sentry", "error", err)
		}
		return fmt.Errorf("sentry init: %w", err)
	}

	if logger != nil {
		logger.Info("Sentry initialized", "environment", cfg.Environment, "release", cfg.Release)
	}

	return nil
}

// CaptureUserError reports an error scoped to the user whose request failed.
// The isolated scope keeps the user tag from leaking into unrelated events.
func CaptureUserError(err error, userID string, logger *slog.Logger) {
	if err == nil {
		return
	}

	sentry.WithScope(func(scope *sentry.Scope) {
		if userID != "" {
			scope.SetUser(sentry.User{ID: userID})
		}
		sentry.CaptureException(err)
	})

	if logger != nil {
		logger.Debug("Exception captured in Sentry", "error", err.Error(), "user_id", userID)
	}
}

// Flush waits for buffered events to reach Sentry. Call before shutdown.
func Flush(timeout time.Duration) bool {
	return sentry.Flush(timeout)
}

// RecoverAndCapture reports a panic to Sentry and re-panics so the caller's
// normal panic handling still runs.
func RecoverAndCapture(logger *slog.Logger) {
	if r := recover(); r != nil {
		err, ok := r.(error)
		if !ok {
			err = fmt.Errorf("panic: %v", r)
		}
		CaptureUserError(err, "", logger)
		Flush(2 * time.Second)
		panic(r)
	}
}
