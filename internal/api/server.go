// Package api assembles the HTTP surface over the import service and the
// repository.
package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/ledgerpipe/ledgerpipe/internal/api/handlers"
	"github.com/ledgerpipe/ledgerpipe/internal/api/middleware"
	"github.com/ledgerpipe/ledgerpipe/internal/application/service"
	"github.com/ledgerpipe/ledgerpipe/internal/infrastructure/config"
	"github.com/ledgerpipe/ledgerpipe/internal/infrastructure/storage"
)

// Server is the HTTP API server.
type Server struct {
	cfg        *config.Config
	router     *gin.Engine
	httpServer *http.Server
	logger     *slog.Logger
}

// NewServer creates a new API server over the repository.
func NewServer(cfg *config.Config, repo storage.Repository, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger))

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	s := &Server{
		cfg:    cfg,
		router: router,
		logger: logger,
	}
	s.setupRoutes(repo)

	return s
}

// setupRoutes wires all API routes.
func (s *Server) setupRoutes(repo storage.Repository) {
	// Health check (no /api prefix - for load balancers)
	s.router.GET("/health", handlers.Health)

	importSvc := service.NewImportService(repo, s.logger)
	importsHandler := handlers.NewImportsHandler(importSvc, s.cfg.Import, s.cfg.Reconcile)
	transactionsHandler := handlers.NewTransactionsHandler(repo)
	rulesHandler := handlers.NewRulesHandler(repo)
	runsHandler := handlers.NewRunsHandler(repo)
	lookupsHandler := handlers.NewLookupsHandler(repo)

	api := s.router.Group("/api")
	{
		api.POST("/imports/stage", importsHandler.Stage)
		api.POST("/imports/commit", importsHandler.Commit)
		api.POST("/reconcile", importsHandler.Reconcile)

		api.GET("/transactions", transactionsHandler.List)
		api.GET("/transactions/:id", transactionsHandler.Get)
		api.DELETE("/transactions/:id", transactionsHandler.Delete)

		api.GET("/rules", rulesHandler.List)
		api.POST("/rules", rulesHandler.Save)
		api.DELETE("/rules/:id", rulesHandler.Delete)

		api.GET("/runs", runsHandler.List)
		api.GET("/runs/:id", runsHandler.Get)

		api.GET("/accounts", lookupsHandler.ListAccounts)
		api.POST("/accounts", lookupsHandler.SaveAccount)
		api.GET("/types", lookupsHandler.ListTypes)
		api.POST("/types", lookupsHandler.SaveType)
	}
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Server.Port)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("starting API server", "addr", addr)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down API server")

	if s.httpServer == nil {
		return nil
	}

	return s.httpServer.Shutdown(ctx)
}

// Router returns the gin engine for testing.
func (s *Server) Router() *gin.Engine {
	return s.router
}
