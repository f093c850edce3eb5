package reconcile

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/encorelab/moment-nft-service/internal/adapter"
	"github.com/encorelab/moment-nft-service/internal/domain"
	"github.com/encorelab/moment-nft-service/internal/logger"
	"github.com/encorelab/moment-nft-service/internal/store"
)

// SweeperConfig holds configuration for the reconciliation sweeper
type SweeperConfig struct {
	// BatchSize is the number of editions pulled per cycle
	BatchSize int
	// WorkerPoolSize bounds concurrent chain reads
	WorkerPoolSize int
	// RecheckAfter skips editions reconciled more recently than this
	RecheckAfter time.Duration
	// CycleInterval is the sleep between sweep cycles
	CycleInterval time.Duration
}

// Sweeper continuously converges active and stuck-pending editions with
// chain truth. It is the recovery path for the dangerous partial failure
// where the chain moved ahead of the ledger: as long as it runs, the ledger
// can always be recomputed from the chain.
type Sweeper struct {
	config  SweeperConfig
	service Service
	store   store.Store
	clock   adapter.Clock
	running atomic.Bool
	stopCh  chan struct{}
}

// NewSweeper creates a reconciliation sweeper
func NewSweeper(cfg SweeperConfig, svc Service, st store.Store, clock adapter.Clock) *Sweeper {
	return &Sweeper{
		config:  cfg,
		service: svc,
		store:   st,
		clock:   clock,
		stopCh:  make(chan struct{}),
	}
}

// Start begins the sweeper's main loop until the context is canceled or Stop
// is called
func (s *Sweeper) Start(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return fmt.Errorf("sweeper already running")
	}
	defer s.running.Store(false)

	logger.InfoCtx(ctx, "Starting reconciliation sweeper",
		zap.Int("batch_size", s.config.BatchSize),
		zap.Int("worker_pool_size", s.config.WorkerPoolSize),
		zap.Duration("recheck_after", s.config.RecheckAfter),
	)

	pool := pond.NewPool(
		s.config.WorkerPoolSize,
		pond.WithQueueSize(s.config.BatchSize),
		pond.WithContext(ctx),
	)
	defer pool.StopAndWait()

	for {
		swept, err := s.sweepCycle(ctx, pool)
		if err != nil {
			logger.ErrorCtx(ctx, err, zap.String("component", "sweeper"))
		}
		if swept > 0 {
			logger.InfoCtx(ctx, "Sweep cycle complete", zap.Int("swept", swept))
		}

		// Park after every cycle, not only idle ones: a converged edition
		// performs no write, stays past the recheck cutoff, and would be
		// re-listed immediately in a tight loop
		select {
		case <-ctx.Done():
			logger.InfoCtx(ctx, "Reconciliation sweeper stopping", zap.Error(ctx.Err()))
			return nil
		case <-s.stopCh:
			logger.InfoCtx(ctx, "Reconciliation sweeper stop requested")
			return nil
		case <-s.clock.After(s.config.CycleInterval):
		}
	}
}

// Stop requests the sweeper to stop after the current cycle
func (s *Sweeper) Stop() {
	close(s.stopCh)
}

// sweepCycle reconciles one batch of active and stuck-pending editions
func (s *Sweeper) sweepCycle(ctx context.Context, pool pond.Pool) (int, error) {
	cutoff := s.clock.Now().Add(-s.config.RecheckAfter)
	group := pool.NewGroup()

	swept := 0
	for _, status := range []domain.EditionStatus{
		domain.EditionStatusActive,
		domain.EditionStatusPendingCreation,
	} {
		editions, err := s.store.ListEditionsByStatus(ctx, status, cutoff, s.config.BatchSize)
		if err != nil {
			return swept, err
		}

		for _, edition := range editions {
			momentID := edition.MomentID
			group.Submit(func() {
				s.reconcileWithRetry(ctx, momentID)
			})
		}
		swept += len(editions)
	}

	_ = group.Wait()
	return swept, nil
}

// reconcileWithRetry retries transient chain-read failures with exponential
// backoff before giving up on this cycle; the edition stays due for the next
// one.
func (s *Sweeper) reconcileWithRetry(ctx context.Context, momentID uint64) {
	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = 30 * time.Second

	err := backoff.Retry(func() error {
		_, err := s.service.Reconcile(ctx, momentID)
		return err
	}, backoff.WithContext(policy, ctx))
	if err != nil {
		logger.WarnCtx(ctx, "Reconciliation failed for moment",
			zap.Uint64("moment_id", momentID),
			zap.Error(err),
		)
	}
}
