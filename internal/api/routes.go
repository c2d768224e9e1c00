package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/halcyonair/skyaudit/internal/audit"
	"github.com/halcyonair/skyaudit/internal/config"
	"github.com/halcyonair/skyaudit/pkg/logger"
)

// Router is the API router
type Router struct {
	handler    *Handler
	middleware *Middleware
	config     *config.Config
	logger     *logger.Logger
}

// NewRouter creates a new API router
func NewRouter(auditor *audit.Auditor, bundle *audit.Bundle, config *config.Config, logger *logger.Logger) *Router {
	return &Router{
		handler:    NewHandler(auditor, bundle, logger),
		middleware: NewMiddleware(logger),
		config:     config,
		logger:     logger.Named("api-router"),
	}
}

// Routes returns the API routes
func (r *Router) Routes() http.Handler {
	router := chi.NewRouter()

	// Middleware
	router.Use(r.middleware.RequestID)
	router.Use(r.middleware.Logger)
	router.Use(r.middleware.Recoverer)
	router.Use(r.middleware.CORS(r.config.Server.CORSAllowedOrigins))

	// API routes
	router.Route("/api/v1", func(router chi.Router) {
		// Audit routes
		router.Get("/violations", r.handler.GetViolations)
		router.Get("/lessons", r.handler.GetLessons)

		// Pilot routes
		router.Get("/pilots/{id}/certification", r.handler.GetPilotCertification)

		// Health check
		router.Get("/health", r.handler.GetHealth)
	})

	return router
}
