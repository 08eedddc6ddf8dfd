package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	callHandler "github.com/Hassnain829/Ai-Sales-Representative/internal/handler/call"
	conversationHandler "github.com/Hassnain829/Ai-Sales-Representative/internal/handler/conversation"
	trainingHandler "github.com/Hassnain829/Ai-Sales-Representative/internal/handler/training"
	appMiddleware "github.com/Hassnain829/Ai-Sales-Representative/internal/middleware"
	"github.com/Hassnain829/Ai-Sales-Representative/internal/telephony"
	"github.com/Hassnain829/Ai-Sales-Representative/pkg/utils"
)

// HealthChecker probes one collaborator for the health endpoint.
type HealthChecker interface {
	Healthy(ctx context.Context) error
}

// Pinger is the database reachability probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps collects everything the router mounts. Nil fields disable their
// routes gracefully instead of panicking at startup.
type Deps struct {
	Pipeline  conversationHandler.Processor
	History   conversationHandler.HistoryStore
	Training  trainingHandler.Ingestor
	Dialer    telephony.Dialer
	DB        Pinger
	Inference HealthChecker
}

// NewRouter wires HTTP routes to core services.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(appMiddleware.CORS)

	r.Route("/api/v1", func(api chi.Router) {
		conversationHandler.New(deps.Pipeline, deps.History).RegisterRoutes(api)
		trainingHandler.New(deps.Training).RegisterRoutes(api)
		callHandler.New(deps.Dialer).RegisterRoutes(api)
	})

	r.Get("/health", healthHandler(deps))

	return r
}

func healthHandler(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if deps.DB != nil {
			if err := deps.DB.Ping(ctx); err != nil {
				utils.RespondJSON(w, http.StatusServiceUnavailable, map[string]string{
					"status": "unhealthy",
					"error":  err.Error(),
				})
				return
			}
		}

		if deps.Inference != nil {
			if err := deps.Inference.Healthy(ctx); err != nil {
				utils.RespondJSON(w, http.StatusServiceUnavailable, map[string]string{
					"status": "unhealthy",
					"error":  err.Error(),
				})
				return
			}
		}

		utils.RespondJSON(w, http.StatusOK, map[string]string{
			"status":    "healthy",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
}
