package reconcile

import (
	"context"
	"fmt"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/encorelab/moment-nft-service/internal/adapter"
	"github.com/encorelab/moment-nft-service/internal/chain"
	"github.com/encorelab/moment-nft-service/internal/domain"
	"github.com/encorelab/moment-nft-service/internal/logger"
	"github.com/encorelab/moment-nft-service/internal/messaging"
	"github.com/encorelab/moment-nft-service/internal/store"
	"github.com/encorelab/moment-nft-service/internal/store/schema"
)

// Result describes what a reconciliation pass did for one moment
type Result struct {
	// Repaired is true when the ledger row was created or updated from chain state
	Repaired bool
	// FaultID is set when a consistency fault was recorded
	FaultID string
	// MintedCount is the converged minted count after the pass
	MintedCount uint64
}

// Service pulls chain truth into the edition ledger. The chain read is
// authoritative: a ledger row that is missing or behind is overwritten
// last-writer-wins, which makes the operation idempotent and safe to run
// repeatedly and concurrently. A ledger row the chain does not recognize is
// recorded as a consistency fault and surfaced, never deleted.
//
//go:generate mockgen -source=service.go -destination=../mocks/reconciler.go -package=mocks -mock_names=Service=MockReconciler
type Service interface {
	// Reconcile converges the ledger row for one moment with chain state
	Reconcile(ctx context.Context, momentID uint64) (*Result, error)
}

type service struct {
	gateway         chain.Gateway
	store           store.Store
	publisher       messaging.Publisher
	json            adapter.JSON
	clock           adapter.Clock
	contractAddress string
}

// NewService creates a reconciliation service
func NewService(gateway chain.Gateway, st store.Store, publisher messaging.Publisher, jsonAdapter adapter.JSON, clock adapter.Clock, contractAddress string) Service {
	return &service{
		gateway:         gateway,
		store:           st,
		publisher:       publisher,
		json:            jsonAdapter,
		clock:           clock,
		contractAddress: contractAddress,
	}
}

// Reconcile converges the ledger row for one moment with chain state
func (s *service) Reconcile(ctx context.Context, momentID uint64) (*Result, error) {
	view, err := s.gateway.GetEdition(ctx, momentID)
	if err != nil {
		return nil, fmt.Errorf("failed to read chain edition: %w", err)
	}

	row, err := s.store.GetEditionByMomentID(ctx, momentID)
	if err != nil {
		return nil, err
	}

	if view == nil {
		if row == nil || row.Status == domain.EditionStatusPendingCreation {
			// Nothing on-chain and nothing durable off-chain; a pending row
			// is an in-flight creation, not a divergence
			return &Result{}, nil
		}
		// The ledger shows an edition the chain does not recognize. Surface
		// it for operator review; deleting the row would destroy the only
		// evidence of the divergence.
		return s.recordFault(ctx, momentID, row)
	}

	repaired := false
	switch {
	case row == nil ||
		row.Status == domain.EditionStatusPendingCreation ||
		(row.Status == domain.EditionStatusActive) != view.Active:
		if err := s.store.UpsertEditionFromChain(ctx, s.rowFromView(view, row)); err != nil {
			return nil, err
		}
		repaired = true
	case row.MintedCount < view.Minted:
		// Only the mirrored counter is behind; the rest of the row already
		// matches chain state
		if err := s.store.SetMintedCount(ctx, momentID, view.Minted); err != nil {
			return nil, err
		}
		repaired = true
	}

	if repaired {
		logger.InfoCtx(ctx, "Ledger repaired from chain state",
			zap.Uint64("moment_id", momentID),
			zap.Uint64("minted", view.Minted),
			zap.Bool("active", view.Active),
		)
	}

	return &Result{Repaired: repaired, MintedCount: view.Minted}, nil
}

// rowFromView builds the chain-authoritative edition row, preserving fields
// the chain does not carry (tier snapshot, creation tx hash) from any
// existing row.
func (s *service) rowFromView(view *domain.EditionView, existing *schema.Edition) *schema.Edition {
	status := domain.EditionStatusEnded
	if view.Active {
		status = domain.EditionStatusActive
	}

	row := &schema.Edition{
		MomentID:        view.MomentID,
		Status:          status,
		MetadataURI:     view.MetadataURI,
		PriceWei:        view.PriceWei.String(),
		WindowStart:     view.StartTime,
		WindowEnd:       view.EndTime,
		MaxSupply:       view.MaxSupply,
		MintedCount:     view.Minted,
		RarityTier:      tierForRarity(view.Rarity),
		Rarity:          view.Rarity,
		ContractAddress: s.contractAddress,
	}
	if existing != nil {
		row.RarityTier = existing.RarityTier
		row.CreationTxHash = existing.CreationTxHash
		if existing.ContractAddress != "" {
			row.ContractAddress = existing.ContractAddress
		}
	}
	return row
}

// recordFault persists and publishes a consistency fault. A divergence that is
// already on record is reported again without inserting a duplicate row or
// re-publishing the event; reconciliation stays safe to run repeatedly.
func (s *service) recordFault(ctx context.Context, momentID uint64, row *schema.Edition) (*Result, error) {
	existing, err := s.store.GetUnresolvedFault(ctx, momentID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return &Result{FaultID: existing.ID, MintedCount: row.MintedCount}, nil
	}

	detail, err := s.json.Marshal(map[string]any{
		"ledger_status":       row.Status,
		"ledger_minted_count": row.MintedCount,
		"creation_tx_hash":    row.CreationTxHash,
		"chain_edition":       nil,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal fault detail: %w", err)
	}

	fault := &schema.ConsistencyFault{
		ID:       ulid.Make().String(),
		MomentID: momentID,
		Detail:   datatypes.JSON(detail),
	}
	if err := s.store.CreateConsistencyFault(ctx, fault); err != nil {
		return nil, err
	}

	logger.WarnCtx(ctx, "Consistency fault recorded",
		zap.String("fault_id", fault.ID),
		zap.Uint64("moment_id", momentID),
	)
	if err := s.publisher.PublishLedgerEvent(ctx, &messaging.LedgerEvent{
		Type:      messaging.EventConsistencyFault,
		MomentID:  momentID,
		FaultID:   fault.ID,
		Timestamp: s.clock.Now().UTC(),
	}); err != nil {
		logger.WarnCtx(ctx, "Failed to publish consistency fault event", zap.Error(err))
	}

	return &Result{FaultID: fault.ID, MintedCount: row.MintedCount}, nil
}

// tierForRarity derives a display tier when no off-chain snapshot survived.
// Only used for rows recreated wholesale from chain state.
func tierForRarity(rarity uint8) domain.RarityTier {
	switch {
	case rarity >= 7:
		return domain.TierLegendary
	case rarity >= 5:
		return domain.TierEpic
	case rarity >= 4:
		return domain.TierRare
	case rarity >= 2:
		return domain.TierUncommon
	default:
		return domain.TierCommon
	}
}
