// Package server provides the HTTP server and routing for Folio.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/foliotracker/folio/internal/config"
	"github.com/foliotracker/folio/internal/database"
	analyticshandlers "github.com/foliotracker/folio/internal/modules/analytics/handlers"
	"github.com/foliotracker/folio/internal/modules/auth"
	authhandlers "github.com/foliotracker/folio/internal/modules/auth/handlers"
	dashboardhandlers "github.com/foliotracker/folio/internal/modules/dashboard/handlers"
	investmenthandlers "github.com/foliotracker/folio/internal/modules/investment/handlers"
	journalhandlers "github.com/foliotracker/folio/internal/modules/journal/handlers"
	settingshandlers "github.com/foliotracker/folio/internal/modules/settings/handlers"
	"github.com/foliotracker/folio/internal/scheduler"
)

// Config holds server configuration
type Config struct {
	Log     zerolog.Logger
	Cfg     *config.Config
	JWT     auth.JWT
	FolioDB *database.DB
	CacheDB *database.DB
	DevMode bool

	Scheduler      JobTrigger
	MaintenanceJob scheduler.Job

	AuthHandlers       *authhandlers.Handler
	InvestmentHandlers *investmenthandlers.Handler
	JournalHandlers    *journalhandlers.Handler
	SettingsHandlers   *settingshandlers.Handler
	AnalyticsHandlers  *analyticshandlers.Handler
	DashboardHandlers  *dashboardhandlers.Handler
}

// Server represents the HTTP server
type Server struct {
	router         *chi.Mux
	server         *http.Server
	log            zerolog.Logger
	cfg            Config
	systemHandlers *SystemHandlers
}

// New creates a new HTTP server
func New(cfg Config) *Server {
	s := &Server{
		router:         chi.NewRouter(),
		log:            cfg.Log.With().Str("component", "server").Logger(),
		cfg:            cfg,
		systemHandlers: NewSystemHandlers(cfg.Log, cfg.Cfg.DataDir, cfg.FolioDB, cfg.CacheDB, cfg.Scheduler, cfg.MaintenanceJob),
	}

	s.setupMiddleware(cfg.DevMode)
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Cfg.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// setupMiddleware configures middleware
func (s *Server) setupMiddleware(devMode bool) {
	// Recovery from panics
	s.router.Use(middleware.Recoverer)

	// Request ID
	s.router.Use(middleware.RequestID)

	// Real IP
	s.router.Use(middleware.RealIP)

	// Logging
	s.router.Use(s.loggingMiddleware)

	// Timeout
	s.router.Use(middleware.Timeout(60 * time.Second))

	// CORS
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Compress responses
	if !devMode {
		s.router.Use(middleware.Compress(5))
	}
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	s.router.Route("/api", func(r chi.Router) {
		// Public routes
		r.Get("/health", s.systemHandlers.HandleHealth)
		s.cfg.AuthHandlers.RegisterRoutes(r)

		// Routes requiring a valid session
		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(s.cfg.JWT))

			s.cfg.AuthHandlers.RegisterProtectedRoutes(r)
			s.cfg.InvestmentHandlers.RegisterRoutes(r)
			s.cfg.JournalHandlers.RegisterRoutes(r)
			s.cfg.SettingsHandlers.RegisterRoutes(r)
			s.cfg.AnalyticsHandlers.RegisterRoutes(r)
			s.cfg.DashboardHandlers.RegisterRoutes(r)

			r.Route("/system", func(r chi.Router) {
				r.Get("/status", s.systemHandlers.HandleSystemStatus)
				r.Get("/databases", s.systemHandlers.HandleDatabaseStats)
				r.Get("/disk", s.systemHandlers.HandleDiskUsage)
				r.Post("/maintenance", s.systemHandlers.HandleRunMaintenance)
			})
		})
	})
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.log.Info().Int("port", s.cfg.Cfg.Port).Msg("Starting HTTP server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

// loggingMiddleware logs HTTP requests with structured logging
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration_ms", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("HTTP request")
	})
}
