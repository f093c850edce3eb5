package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/encorelab/moment-nft-service/internal/api/middleware"
	"github.com/encorelab/moment-nft-service/internal/api/rest"
	"github.com/encorelab/moment-nft-service/internal/chain"
	"github.com/encorelab/moment-nft-service/internal/diag"
	"github.com/encorelab/moment-nft-service/internal/edition"
	"github.com/encorelab/moment-nft-service/internal/ledger"
	"github.com/encorelab/moment-nft-service/internal/logger"
	"github.com/encorelab/moment-nft-service/internal/metadata"
	"github.com/encorelab/moment-nft-service/internal/rarity"
	"github.com/encorelab/moment-nft-service/internal/reconcile"
	"github.com/encorelab/moment-nft-service/internal/store"
)

// Config holds the server configuration
type Config struct {
	Debug        bool
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	Auth         middleware.AuthConfig
	Handler      rest.Config
}

// Dependencies bundles the components the REST handler is built from
type Dependencies struct {
	Store       store.Store
	Scorer      rarity.Scorer
	Policy      *edition.Policy
	Builder     *metadata.Builder
	Ledger      ledger.Ledger
	Gateway     chain.Gateway
	Reconciler  reconcile.Service
	Diagnostics diag.Service
}

// Server wraps the HTTP server
type Server struct {
	config     Config
	deps       Dependencies
	httpServer *http.Server
}

// New creates a new API server
func New(cfg Config, deps Dependencies) *Server {
	return &Server{
		config: cfg,
		deps:   deps,
	}
}

// Start initializes and starts the HTTP server
func (s *Server) Start() error {
	// Set Gin mode based on debug flag
	if s.config.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create Gin router
	router := gin.New()

	// Setup middleware
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.SetupCORS())

	// Create REST handler
	restHandler := rest.NewHandler(
		s.config.Handler,
		s.deps.Store,
		s.deps.Scorer,
		s.deps.Policy,
		s.deps.Builder,
		s.deps.Ledger,
		s.deps.Gateway,
		s.deps.Reconciler,
		s.deps.Diagnostics,
	)

	// Setup REST routes
	rest.SetupRoutes(router, restHandler, s.config.Auth)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	logger.Info("Starting API server",
		zap.String("address", addr),
	)

	// Start server
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	logger.Info("Shutting down API server")

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown server: %w", err)
		}
	}

	return nil
}
