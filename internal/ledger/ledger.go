package ledger

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/encorelab/moment-nft-service/internal/adapter"
	"github.com/encorelab/moment-nft-service/internal/domain"
	"github.com/encorelab/moment-nft-service/internal/logger"
	"github.com/encorelab/moment-nft-service/internal/messaging"
	"github.com/encorelab/moment-nft-service/internal/store"
	"github.com/encorelab/moment-nft-service/internal/store/schema"
)

// StatusView is the read model served to the UI for a moment's edition state
type StatusView struct {
	HasEdition  bool              `json:"has_edition"`
	IsActive    bool              `json:"is_active"`
	MintedCount uint64            `json:"minted_count"`
	PriceWei    string            `json:"price_wei,omitempty"`
	RarityTier  domain.RarityTier `json:"rarity_tier,omitempty"`
}

// Ledger is the off-chain projection of edition and mint state. It owns the
// only two mutating write paths (creation recording and mint recording), both
// idempotent, plus the optimistic pending state around a dispatched creation.
// Minted counts here are display mirrors of chain truth and never gate mints.
//
//go:generate mockgen -source=ledger.go -destination=../mocks/ledger.go -package=mocks -mock_names=Ledger=MockLedger
type Ledger interface {
	// HasEdition reports whether any edition row exists for the moment
	HasEdition(ctx context.Context, momentID uint64) (bool, error)

	// MarkPending inserts the optimistic pending_creation row the instant a
	// createEdition transaction is dispatched, before confirmation. Returns
	// domain.ErrEditionExists when a row already exists.
	MarkPending(ctx context.Context, momentID uint64, params domain.MintParams, contractAddress string) error

	// ClearPending removes the pending row after a declined signature or a
	// reverted creation. Never touches rows that reached active.
	ClearPending(ctx context.Context, momentID uint64) error

	// RecordCreation records a confirmed edition creation. Idempotent on
	// momentID: a replay with the same transaction hash no-ops; a second
	// creation with different parameters fails with domain.ErrEditionExists
	// and never silently overwrites the first record.
	RecordCreation(ctx context.Context, momentID uint64, txHash string, contractAddress string, tier domain.RarityTier, view *domain.EditionView) error

	// RecordMint appends a confirmed mint, keyed by transaction hash. A
	// duplicate hash leaves the minted count unchanged. Returns whether the
	// record was new.
	RecordMint(ctx context.Context, momentID uint64, minter string, quantity uint64, txHash string, confirmedAt time.Time) (bool, error)

	// Status returns the UI read model, lazily ending editions whose window
	// elapsed or supply sold out
	Status(ctx context.Context, momentID uint64) (*StatusView, error)
}

type editionLedger struct {
	store     store.Store
	publisher messaging.Publisher
	clock     adapter.Clock
}

// New creates the edition ledger over the given store
func New(st store.Store, publisher messaging.Publisher, clock adapter.Clock) Ledger {
	return &editionLedger{store: st, publisher: publisher, clock: clock}
}

// HasEdition reports whether any edition row exists for the moment
func (l *editionLedger) HasEdition(ctx context.Context, momentID uint64) (bool, error) {
	edition, err := l.store.GetEditionByMomentID(ctx, momentID)
	if err != nil {
		return false, err
	}
	return edition != nil, nil
}

// MarkPending inserts the optimistic pending_creation row
func (l *editionLedger) MarkPending(ctx context.Context, momentID uint64, params domain.MintParams, contractAddress string) error {
	now := l.clock.Now().UTC()
	inserted, err := l.store.InsertPendingEdition(ctx, &schema.Edition{
		MomentID:        momentID,
		MetadataURI:     params.MetadataURI,
		PriceWei:        params.PriceWei.String(),
		WindowStart:     now,
		WindowEnd:       now.Add(time.Duration(params.DurationDays) * 24 * time.Hour),
		MaxSupply:       params.MaxSupply,
		RarityTier:      params.Tier,
		Rarity:          params.Rarity,
		ContractAddress: contractAddress,
	})
	if err != nil {
		return err
	}
	if !inserted {
		return domain.ErrEditionExists
	}
	return nil
}

// ClearPending removes the pending row without mutating anything that
// reached active
func (l *editionLedger) ClearPending(ctx context.Context, momentID uint64) error {
	return l.store.DeletePendingEdition(ctx, momentID)
}

// RecordCreation records a confirmed edition creation. The chain view is the
// authoritative source for the mint window and price; the caller obtains it
// after confirmation.
func (l *editionLedger) RecordCreation(ctx context.Context, momentID uint64, txHash string, contractAddress string, tier domain.RarityTier, view *domain.EditionView) error {
	if view == nil {
		return fmt.Errorf("record creation requires the confirmed chain view: %w", domain.ErrEditionNotFound)
	}

	row := &schema.Edition{
		MomentID:        momentID,
		MetadataURI:     view.MetadataURI,
		PriceWei:        view.PriceWei.String(),
		WindowStart:     view.StartTime,
		WindowEnd:       view.EndTime,
		MaxSupply:       view.MaxSupply,
		MintedCount:     view.Minted,
		RarityTier:      tier,
		Rarity:          view.Rarity,
		ContractAddress: contractAddress,
		CreationTxHash:  txHash,
	}

	existing, err := l.store.GetEditionByMomentID(ctx, momentID)
	if err != nil {
		return err
	}
	if existing != nil && existing.Status != domain.EditionStatusPendingCreation {
		return l.checkReplay(existing, txHash)
	}

	activated, err := l.store.ActivateEdition(ctx, row)
	if err != nil {
		return err
	}
	if !activated {
		// Lost a race against a concurrent activation; decide replay vs
		// conflict against what actually landed
		landed, err := l.store.GetEditionByMomentID(ctx, momentID)
		if err != nil {
			return err
		}
		if landed == nil {
			return fmt.Errorf("edition activation conflicted but no row found for moment %d", momentID)
		}
		return l.checkReplay(landed, txHash)
	}

	l.publish(ctx, &messaging.LedgerEvent{
		Type:        messaging.EventEditionCreated,
		MomentID:    momentID,
		TxHash:      txHash,
		MintedCount: view.Minted,
		Timestamp:   l.clock.Now().UTC(),
	})
	return nil
}

// checkReplay distinguishes an idempotent replay of the original creation
// from an attempt to record a second, different edition
func (l *editionLedger) checkReplay(existing *schema.Edition, txHash string) error {
	if existing.CreationTxHash == txHash {
		return nil
	}
	return domain.ErrEditionExists
}

// RecordMint appends a confirmed mint, keyed by transaction hash
func (l *editionLedger) RecordMint(ctx context.Context, momentID uint64, minter string, quantity uint64, txHash string, confirmedAt time.Time) (bool, error) {
	edition, err := l.store.GetEditionByMomentID(ctx, momentID)
	if err != nil {
		return false, err
	}
	if edition == nil {
		return false, domain.ErrEditionNotFound
	}

	inserted, err := l.store.InsertMintRecord(ctx, &schema.MintRecord{
		EditionID:     edition.ID,
		MinterAddress: minter,
		Quantity:      quantity,
		TxHash:        txHash,
		ConfirmedAt:   confirmedAt,
	})
	if err != nil {
		return false, err
	}
	if !inserted {
		logger.DebugCtx(ctx, "Duplicate mint record ignored",
			zap.Uint64("moment_id", momentID),
			zap.String("tx_hash", txHash),
		)
		return false, nil
	}

	l.publish(ctx, &messaging.LedgerEvent{
		Type:        messaging.EventMintRecorded,
		MomentID:    momentID,
		TxHash:      txHash,
		Quantity:    quantity,
		MintedCount: edition.MintedCount + quantity,
		Timestamp:   l.clock.Now().UTC(),
	})

	// Sell-out detection; window expiry is caught lazily on the next read
	if edition.MaxSupply > 0 && edition.MintedCount+quantity >= edition.MaxSupply {
		if err := l.endEdition(ctx, momentID); err != nil {
			return true, err
		}
	}
	return true, nil
}

// Status returns the UI read model, lazily ending stale editions
func (l *editionLedger) Status(ctx context.Context, momentID uint64) (*StatusView, error) {
	edition, err := l.store.GetEditionByMomentID(ctx, momentID)
	if err != nil {
		return nil, err
	}
	if edition == nil {
		return &StatusView{}, nil
	}

	status := edition.Status
	if status == domain.EditionStatusActive && l.shouldEnd(edition) {
		if err := l.endEdition(ctx, momentID); err != nil {
			return nil, err
		}
		status = domain.EditionStatusEnded
	}

	return &StatusView{
		HasEdition:  status != domain.EditionStatusPendingCreation,
		IsActive:    status == domain.EditionStatusActive,
		MintedCount: edition.MintedCount,
		PriceWei:    edition.PriceWei,
		RarityTier:  edition.RarityTier,
	}, nil
}

// shouldEnd reports whether an active edition's window elapsed or its supply
// sold out
func (l *editionLedger) shouldEnd(edition *schema.Edition) bool {
	if l.clock.Now().After(edition.WindowEnd) {
		return true
	}
	return edition.MaxSupply > 0 && edition.MintedCount >= edition.MaxSupply
}

func (l *editionLedger) endEdition(ctx context.Context, momentID uint64) error {
	if err := l.store.SetEditionStatus(ctx, momentID, domain.EditionStatusEnded); err != nil {
		return err
	}
	l.publish(ctx, &messaging.LedgerEvent{
		Type:      messaging.EventEditionEnded,
		MomentID:  momentID,
		Timestamp: l.clock.Now().UTC(),
	})
	return nil
}

// publish is best-effort: a failed event never rolls back a ledger write
func (l *editionLedger) publish(ctx context.Context, event *messaging.LedgerEvent) {
	if err := l.publisher.PublishLedgerEvent(ctx, event); err != nil {
		logger.WarnCtx(ctx, "Failed to publish ledger event",
			zap.String("type", string(event.Type)),
			zap.Uint64("moment_id", event.MomentID),
			zap.Error(err),
		)
	}
}
