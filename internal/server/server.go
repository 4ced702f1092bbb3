// Package server provides the HTTP server setup and routing configuration.
package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/wfedor/telecast/internal/api"
	"github.com/wfedor/telecast/internal/clock"
	"github.com/wfedor/telecast/internal/config"
	"github.com/wfedor/telecast/internal/db"
	"github.com/wfedor/telecast/internal/fetch"
	"github.com/wfedor/telecast/internal/guide"
	"github.com/wfedor/telecast/internal/logger"
	"github.com/wfedor/telecast/internal/middleware"
	"github.com/wfedor/telecast/internal/schedule"
	"github.com/wfedor/telecast/internal/tuning"
)

// Server represents the HTTP server
type Server struct {
	config          *config.Config
	db              *db.DB
	repos           *db.Repositories
	tuner           *tuning.Service
	cache           *guide.Cache
	scheduleService *schedule.Service
	router          *gin.Engine
	server          *http.Server
}

// New creates a new server instance. The playlist cache is constructed
// before the schedule service because the schedule service reads lineups
// through it.
func New(cfg *config.Config, database *db.DB) *Server {
	repos := db.NewRepositories(database)
	clk := clock.System{}

	tuner := tuning.NewService(repos.Preferences, nil, "local")
	fetcher := fetch.NewRSSFetcher(&cfg.Fetch)
	cache := guide.NewCache(repos, fetcher, tuner, clk, cfg.Cache)
	scheduleService := schedule.NewService(repos, cache, clk)

	return &Server{
		config:          cfg,
		db:              database,
		repos:           repos,
		tuner:           tuner,
		cache:           cache,
		scheduleService: scheduleService,
	}
}

// Tuner exposes the preference service for startup loading
func (s *Server) Tuner() *tuning.Service {
	return s.tuner
}

// setupRouter initializes the Gin router with middleware and routes
func (s *Server) setupRouter() {
	// Set Gin mode based on log level
	if s.config.Logging.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create new Gin router
	s.router = gin.New()

	// Add middleware stack
	s.router.Use(middleware.RequestLogger()) // Custom zerolog request logger
	s.router.Use(gin.Recovery())             // Panic recovery
	s.router.Use(cors.Default())             // CORS support (allows all origins)
	s.router.Use(middleware.ViewerContext(middleware.DefaultViewerResolver))

	// Prometheus scrape endpoint
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Create API route group
	apiGroup := s.router.Group("/api")

	// Register service routes
	api.SetupHealthRoutes(apiGroup, s.db)
	api.SetupChannelRoutes(apiGroup, s.repos, s.cache)
	api.SetupPlaybackRoutes(apiGroup, s.scheduleService)
	api.SetupPreferenceRoutes(apiGroup, s.tuner)
	api.SetupSettingsRoutes(apiGroup, s.repos, s.cache)
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.setupRouter()

	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)

	s.server = &http.Server{
		Addr:           addr,
		Handler:        s.router,
		ReadTimeout:    s.config.Server.ReadTimeout,
		WriteTimeout:   s.config.Server.WriteTimeout,
		MaxHeaderBytes: 1 << 20, // 1 MB
	}

	logger.Log.Info().
		Str("host", s.config.Server.Host).
		Int("port", s.config.Server.Port).
		Msg("Starting HTTP server")

	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	logger.Log.Info().Msg("Shutting down server gracefully")

	// Check if server was started before attempting shutdown
	if s.server != nil {
		if err := s.server.Shutdown(ctx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
	}

	logger.Log.Info().Msg("Server stopped")
	return nil
}
