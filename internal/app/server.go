// File: internal/app/server.go
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"studybuddy_backend/internal/auth"
	"studybuddy_backend/internal/config"
	"studybuddy_backend/internal/dashboard"
	"studybuddy_backend/internal/jobs"
	"studybuddy_backend/internal/middleware"
	"studybuddy_backend/internal/shared"
	"studybuddy_backend/internal/signup"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Server struct holds the dependencies for the HTTP server.
type Server struct {
	httpServer *http.Server
	router     *gin.Engine
	cfg        *config.Config
	logger     *zap.Logger

	reportJob *jobs.ReconciliationReportJob
}

// NewServer creates a new instance of our application server.
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	signupHandler *signup.Handler,
	authHandler *auth.Handler,
	dashboardHandler *dashboard.Handler,
	reportJob *jobs.ReconciliationReportJob,
	authenticator shared.Authenticator,
	blocklist auth.TokenBlocklistService,
) (*Server, error) {
	gin.SetMode(cfg.GinMode)
	router := gin.New()

	// --- Global Middleware ---
	router.Use(middleware.ZapLogger(logger, cfg))
	router.Use(middleware.ErrorHandler(logger))
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"*"}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader}
	corsConfig.ExposeHeaders = []string{"Content-Length", middleware.RequestIDHeader}
	router.Use(cors.New(corsConfig))

	router.HandleMethodNotAllowed = true
	router.NoRoute(middleware.NoRoute)
	router.NoMethod(middleware.NoMethod)

	authMW := middleware.AuthMiddleware(authenticator, blocklist, logger.Named("AuthMiddleware"))

	// --- Setup Routes ---
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP", "message": "StudyBuddy API is healthy!"})
	})

	v1 := router.Group("/api/v1")
	signupHandler.RegisterRoutes(v1)
	authHandler.RegisterRoutes(v1, authMW)
	dashboardHandler.RegisterRoutes(v1, authMW)

	addr := fmt.Sprintf("%s:%s", cfg.ServerHost, cfg.ServerPort)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		router:     router,
		cfg:        cfg,
		logger:     logger,
		reportJob:  reportJob,
	}, nil
}

// Router returns the HTTP handler, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// ReportJob returns the reconciliation report job.
func (s *Server) ReportJob() *jobs.ReconciliationReportJob {
	return s.reportJob
}

func (s *Server) Start() error {
	if s.reportJob != nil {
		if err := s.reportJob.SetupAndStart(); err != nil {
			s.logger.Error("Failed to setup and start reconciliation report job", zap.Error(err))
		}
	} else {
		s.logger.Info("Reconciliation report job is not configured, skipping start.")
	}

	s.logger.Info("HTTP Server starting",
		zap.String("address", s.httpServer.Addr),
		zap.String("gin_mode", s.cfg.GinMode),
	)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		s.logger.Error("Failed to start HTTP server", zap.Error(err))
		return err
	}
	s.logger.Info("HTTP Server stopped")
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Attempting graceful server shutdown...")
	if s.reportJob != nil {
		s.reportJob.Stop()
	}
	return s.httpServer.Shutdown(ctx)
}
