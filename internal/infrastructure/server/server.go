package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/klauspost/compress/gzhttp"
	"go.uber.org/zap"

	httpapi "github.com/GriffinCanCode/launcher/internal/api/http"
	"github.com/GriffinCanCode/launcher/internal/api/middleware"
	"github.com/GriffinCanCode/launcher/internal/infrastructure/config"
	"github.com/GriffinCanCode/launcher/internal/infrastructure/logging"
	"github.com/GriffinCanCode/launcher/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/launcher/internal/infrastructure/tracing"
)

// Server wraps the HTTP server and dependencies
type Server struct {
	router     *gin.Engine
	httpServer *http.Server
	deps       *Deps
	logger     *logging.Logger
	config     *config.Config
	metrics    *monitoring.Metrics
	tracer     *tracing.Tracer
}

// NewServer opens the bench and creates a new server instance
func NewServer(cfg *config.Config, logger *logging.Logger) (*Server, error) {
	deps, err := OpenDeps(cfg.Bench)
	if err != nil {
		return nil, fmt.Errorf("failed to open bench %s: %w", cfg.Bench.Path, err)
	}
	return NewWithDeps(cfg, logger, deps), nil
}

// NewWithDeps creates a server over already opened deps. The server owns
// deps from here on and closes them in Close.
func NewWithDeps(cfg *config.Config, logger *logging.Logger, deps *Deps) *Server {
	if logger == nil {
		logger = logging.NewNop()
	}

	logger.Info("Initializing launcher server",
		zap.String("addr", cfg.Server.Addr()),
		zap.String("bench", deps.BenchPath),
		zap.Int("schema_version", deps.Store.SchemaVersion()),
	)

	metrics := monitoring.NewMetrics()
	tracer := tracing.New("launcher", logger.Logger)

	resolver := deps.Resolver(logger.Logger).
		WithMetrics(metrics).
		WithTracer(tracer)

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// Add middleware
	router.Use(gin.Recovery())
	router.Use(tracing.HTTPMiddleware(tracer))
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(middleware.CORSFor(cfg.CORS.AllowedOrigins)))
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
			zap.Int("global_rps", cfg.RateLimit.GlobalRequestsPerSecond),
		)
		if cfg.RateLimit.GlobalRequestsPerSecond > 0 {
			global := middleware.RateLimitConfig{
				RequestsPerSecond: cfg.RateLimit.GlobalRequestsPerSecond,
				Burst:             cfg.RateLimit.GlobalBurst,
			}
			if global.Burst <= 0 {
				global.Burst = global.RequestsPerSecond
			}
			router.Use(middleware.GlobalRateLimit(global))
		}
		limits := middleware.DefaultRateLimitConfig()
		limits.RequestsPerSecond = cfg.RateLimit.RequestsPerSecond
		limits.Burst = cfg.RateLimit.Burst
		router.Use(middleware.RateLimit(limits))
	}

	handlers := httpapi.NewHandlers(resolver, deps.Store, deps.BenchPath, logger.Logger)
	aggregator := httpapi.NewMetricsAggregator(metrics)

	// Register routes
	router.GET("/", handlers.Root)
	router.GET("/health", handlers.Health)

	// Launcher, under both the short and the dotted host method paths.
	// Host method calls arrive as POST by default.
	for _, path := range []string{"/api/method/get_apps", "/api/method/home_page.api.get_apps"} {
		router.GET(path, handlers.GetApps)
		router.POST(path, handlers.GetApps)
	}

	// Metrics endpoints
	router.GET("/metrics", monitoring.Handler(metrics))
	router.GET("/metrics/json", aggregator.GetAggregatedMetrics)

	s := &Server{
		router:  router,
		deps:    deps,
		logger:  logger,
		config:  cfg,
		metrics: metrics,
		tracer:  tracer,
	}
	s.httpServer = &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("Server initialized successfully")
	return s
}

// Handler returns the router wrapped with response compression
func (s *Server) Handler() http.Handler {
	return gzhttp.GzipHandler(s.router)
}

// Run starts the HTTP server and blocks until it stops
func (s *Server) Run() error {
	s.logger.Info("Starting HTTP server", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server...")
	return s.httpServer.Shutdown(ctx)
}

// Close releases the tracer and the record store
func (s *Server) Close() error {
	s.tracer.Close()

	var err error
	if cerr := s.deps.Close(); cerr != nil {
		s.logger.Error("Failed to close record store", zap.Error(cerr))
		err = fmt.Errorf("failed to close record store: %w", cerr)
	}

	// Sync logger before exit
	s.logger.Sync()
	return err
}
