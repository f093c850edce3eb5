package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/encorelab/moment-nft-service/internal/adapter"
	"github.com/encorelab/moment-nft-service/internal/api/middleware"
	"github.com/encorelab/moment-nft-service/internal/api/rest"
	"github.com/encorelab/moment-nft-service/internal/api/server"
	"github.com/encorelab/moment-nft-service/internal/chain"
	"github.com/encorelab/moment-nft-service/internal/config"
	"github.com/encorelab/moment-nft-service/internal/diag"
	"github.com/encorelab/moment-nft-service/internal/edition"
	"github.com/encorelab/moment-nft-service/internal/ledger"
	"github.com/encorelab/moment-nft-service/internal/logger"
	"github.com/encorelab/moment-nft-service/internal/messaging"
	"github.com/encorelab/moment-nft-service/internal/metadata"
	"github.com/encorelab/moment-nft-service/internal/providers/jetstream"
	"github.com/encorelab/moment-nft-service/internal/rarity"
	"github.com/encorelab/moment-nft-service/internal/reconcile"
	"github.com/encorelab/moment-nft-service/internal/store"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadAPIConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:     cfg.Debug,
		SentryDSN: cfg.SentryDSN,
		Tags: map[string]string{
			"service": "api-server",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Moment NFT API")

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err))
	}

	// Configure connection pool
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to database",
		zap.Int("max_open_conns", cfg.Database.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.Database.MaxIdleConns),
	)

	if err := store.Migrate(db); err != nil {
		logger.FatalCtx(ctx, "Failed to run migrations", zap.Error(err))
	}

	// Initialize store and adapters
	dataStore := store.NewPGStore(db)
	clock := adapter.NewClock()
	jsonAdapter := adapter.NewJSON()

	// Connect to Ethereum
	ethClient, err := adapter.NewEthClientDialer().Dial(ctx, cfg.Ethereum.RPCURL)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to Ethereum RPC", zap.Error(err))
	}
	defer ethClient.Close()
	logger.InfoCtx(ctx, "Connected to Ethereum RPC", zap.Int64("chain_id", cfg.Ethereum.ChainID))

	// The operator signer is optional for the API: the usual flow has the
	// owner's wallet signing in the browser, with the API only recording
	// confirmed transactions.
	var signer adapter.Signer
	if cfg.Ethereum.OperatorKey != "" {
		signer, err = adapter.NewKeySigner(cfg.Ethereum.OperatorKey)
		if err != nil {
			logger.FatalCtx(ctx, "Failed to load operator key", zap.Error(err))
		}
	}

	gateway, err := chain.NewGateway(chain.Config{
		ContractAddress:     cfg.Ethereum.ContractAddress,
		ChainID:             cfg.Ethereum.ChainID,
		ConfirmationTimeout: cfg.Ethereum.ConfirmationTimeout,
		ReceiptPollInterval: cfg.Ethereum.ReceiptPollInterval,
	}, ethClient, signer, clock)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create chain gateway", zap.Error(err))
	}

	// Connect to NATS JetStream; fall back to a no-op publisher when not
	// configured so a local setup works without a broker
	var publisher messaging.Publisher
	if cfg.NATS.URL != "" {
		publisher, err = jetstream.NewPublisher(jetstream.Config{
			URL:            cfg.NATS.URL,
			StreamName:     cfg.NATS.StreamName,
			MaxReconnects:  cfg.NATS.MaxReconnects,
			ReconnectWait:  cfg.NATS.ReconnectWait,
			ConnectionName: cfg.NATS.ConnectionName,
		}, adapter.NewNatsJetStream(), jsonAdapter)
		if err != nil {
			logger.FatalCtx(ctx, "Failed to connect to NATS", zap.Error(err))
		}
		logger.InfoCtx(ctx, "Connected to NATS", zap.String("stream", cfg.NATS.StreamName))
	} else {
		publisher = messaging.NewNopPublisher()
		logger.WarnCtx(ctx, "NATS URL not configured, ledger events will not be published")
	}
	defer publisher.Close()

	// Assemble domain components
	editionLedger := ledger.New(dataStore, publisher, clock)
	reconciler := reconcile.NewService(gateway, dataStore, publisher, jsonAdapter, clock, cfg.Ethereum.ContractAddress)

	serverConfig := server.Config{
		Debug:        cfg.Debug,
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
		Auth: middleware.AuthConfig{
			JWTPublicKey: cfg.Auth.JWTPublicKey,
			APIKeys:      cfg.Auth.APIKeys,
		},
		Handler: rest.Config{
			ContractAddress: cfg.Ethereum.ContractAddress,
			MetadataBaseURL: cfg.ExternalBaseURL,
		},
	}

	srv := server.New(serverConfig, server.Dependencies{
		Store:       dataStore,
		Scorer:      rarity.NewScorer(rarity.DefaultWeights()),
		Policy:      edition.NewPolicy(edition.DefaultPricing()),
		Builder:     metadata.NewBuilder(cfg.ExternalBaseURL, jsonAdapter),
		Ledger:      editionLedger,
		Gateway:     gateway,
		Reconciler:  reconciler,
		Diagnostics: diag.New(gateway, dataStore),
	})

	// Start server in a goroutine
	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "server"))
		cancel()
	}

	// Create shutdown context with timeout (don't use canceled ctx)
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	logger.InfoCtx(shutdownCtx, "Shutting down server...")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.FatalCtx(shutdownCtx, "Server forced to shutdown", zap.Error(err))
	}

	logger.InfoCtx(shutdownCtx, "Server stopped")
}
