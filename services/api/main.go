// The api service exposes the coaching engine's read and alert-management
// surface over HTTP.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/macropilot/server/pkg/bootstrap"
	httputil "github.com/macropilot/server/pkg/infrastructure/http"
	infrasentry "github.com/macropilot/server/pkg/infrastructure/sentry"
)

func main() {
	ctx := context.Background()

	svc, err := bootstrap.NewService(ctx)
	if err != nil {
		slog.Error("Service init failed", "error", err)
		os.Exit(1)
	}

	logger := bootstrap.NewLogger("api", os.Getenv("ENV") == "dev")

	if err := infrasentry.Init(infrasentry.FromEnv("api"), logger); err != nil {
		logger.Warn("Sentry init failed", "error", err)
	}
	defer infrasentry.Flush(2 * time.Second)

	server := NewServer(svc, logger)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	logger.Info("Listening", "port", port)
	if err := http.ListenAndServe(":"+port, server.Routes()); err != nil {
		logger.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}

// Server bundles the handlers with their dependencies.
type Server struct {
	svc    *bootstrap.Service
	logger *slog.Logger
}

func NewServer(svc *bootstrap.Service, logger *slog.Logger) *Server {
	return &Server{svc: svc, logger: logger}
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.NotFound(httputil.NotFound)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/v1/users/{userID}", func(r chi.Router) {
		r.Get("/adherence", s.handleGetAdherence)
		r.Get("/recovery", s.handleGetRecovery)
		r.Get("/recommendations", s.handleGetRecommendations)
		r.Get("/alerts", s.handleListAlerts)
		r.Post("/alerts/{alertID}/dismiss", s.handleDismissAlert)
		r.Post("/alerts/{alertID}/resolve", s.handleResolveAlert)
	})

	return r
}
