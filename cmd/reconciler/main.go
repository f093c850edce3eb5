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
	"github.com/encorelab/moment-nft-service/internal/chain"
	"github.com/encorelab/moment-nft-service/internal/config"
	"github.com/encorelab/moment-nft-service/internal/logger"
	"github.com/encorelab/moment-nft-service/internal/messaging"
	"github.com/encorelab/moment-nft-service/internal/providers/jetstream"
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
	cfg, err := config.LoadReconcilerConfig(*configFile, *envPath)
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
			"service": "reconciler",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Reconciliation Sweeper")

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err))
	}

	// Configure connection pool
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
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

	// The sweeper only reads chain state, no signer needed
	gateway, err := chain.NewGateway(chain.Config{
		ContractAddress:     cfg.Ethereum.ContractAddress,
		ChainID:             cfg.Ethereum.ChainID,
		ConfirmationTimeout: cfg.Ethereum.ConfirmationTimeout,
		ReceiptPollInterval: cfg.Ethereum.ReceiptPollInterval,
	}, ethClient, nil, clock)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create chain gateway", zap.Error(err))
	}

	// Connect to NATS JetStream; fall back to a no-op publisher when not
	// configured
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
		logger.WarnCtx(ctx, "NATS URL not configured, reconciliation events will not be published")
	}
	defer publisher.Close()

	// Initialize reconciliation service and sweeper
	service := reconcile.NewService(gateway, dataStore, publisher, jsonAdapter, clock, cfg.Ethereum.ContractAddress)
	sweeper := reconcile.NewSweeper(reconcile.SweeperConfig{
		BatchSize:      cfg.Sweep.BatchSize,
		WorkerPoolSize: cfg.Sweep.WorkerPoolSize,
		RecheckAfter:   cfg.Sweep.RecheckAfter,
		CycleInterval:  cfg.Sweep.CycleInterval,
	}, service, dataStore, clock)

	logger.InfoCtx(ctx, "Initialized reconciliation sweeper (continuous mode)",
		zap.Int("batch_size", cfg.Sweep.BatchSize),
		zap.Int("worker_pool_size", cfg.Sweep.WorkerPoolSize),
		zap.Duration("recheck_after", cfg.Sweep.RecheckAfter),
	)

	// Start the sweeper in a goroutine
	errChan := make(chan error, 1)
	go func() {
		if err := sweeper.Start(ctx); err != nil {
			errChan <- err
		}
	}()

	// Wait for interrupt signal or error
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
	case err := <-errChan:
		logger.ErrorCtx(ctx, err)
	}

	// Cancel context to stop the sweeper
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer shutdownCancel()

	sweeper.Stop()
	logger.InfoCtx(shutdownCtx, "Reconciliation sweeper stopped")
}
