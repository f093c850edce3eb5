package diag

import (
	"context"
	"fmt"
	"time"

	"github.com/encorelab/moment-nft-service/internal/chain"
	"github.com/encorelab/moment-nft-service/internal/domain"
	"github.com/encorelab/moment-nft-service/internal/store"
)

// LedgerState is the ledger side of a diagnostics report
type LedgerState struct {
	Status         domain.EditionStatus `json:"status"`
	MintedCount    uint64               `json:"minted_count"`
	RecordedMints  uint64               `json:"recorded_mints"`
	PriceWei       string               `json:"price_wei"`
	MaxSupply      uint64               `json:"max_supply"`
	WindowEnd      time.Time            `json:"window_end"`
	CreationTxHash string               `json:"creation_tx_hash,omitempty"`
}

// ChainState is the chain side of a diagnostics report
type ChainState struct {
	Active    bool      `json:"active"`
	Minted    uint64    `json:"minted"`
	PriceWei  string    `json:"price_wei"`
	MaxSupply uint64    `json:"max_supply"`
	EndTime   time.Time `json:"end_time"`
	Rarity    uint8     `json:"rarity"`
}

// Report is a side-by-side view of one moment's edition state. Either side
// may be nil; Drift lists the divergences an operator should look at.
type Report struct {
	MomentID uint64       `json:"moment_id"`
	Ledger   *LedgerState `json:"ledger"`
	Chain    *ChainState  `json:"chain"`
	Drift    []string     `json:"drift"`
}

// Service reads both sides of an edition without mutating either. It is the
// read-only counterpart to reconciliation: same comparison, no repair.
//
//go:generate mockgen -source=diag.go -destination=../mocks/diag.go -package=mocks -mock_names=Service=MockDiagnostics
type Service interface {
	// Snapshot reads the ledger row and the chain edition for a moment and
	// reports the divergences between them
	Snapshot(ctx context.Context, momentID uint64) (*Report, error)
}

type service struct {
	gateway chain.Gateway
	store   store.Store
}

// New creates a diagnostics service
func New(gateway chain.Gateway, st store.Store) Service {
	return &service{gateway: gateway, store: st}
}

// Snapshot reads the ledger row and the chain edition for a moment
func (s *service) Snapshot(ctx context.Context, momentID uint64) (*Report, error) {
	report := &Report{MomentID: momentID, Drift: []string{}}

	row, err := s.store.GetEditionByMomentID(ctx, momentID)
	if err != nil {
		return nil, fmt.Errorf("failed to read ledger edition: %w", err)
	}
	if row != nil {
		recorded, err := s.store.SumMintQuantities(ctx, row.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to sum mint records: %w", err)
		}
		report.Ledger = &LedgerState{
			Status:         row.Status,
			MintedCount:    row.MintedCount,
			RecordedMints:  recorded,
			PriceWei:       row.PriceWei,
			MaxSupply:      row.MaxSupply,
			WindowEnd:      row.WindowEnd,
			CreationTxHash: row.CreationTxHash,
		}
	}

	view, err := s.gateway.GetEdition(ctx, momentID)
	if err != nil {
		return nil, fmt.Errorf("failed to read chain edition: %w", err)
	}
	if view != nil {
		report.Chain = &ChainState{
			Active:    view.Active,
			Minted:    view.Minted,
			PriceWei:  view.PriceWei.String(),
			MaxSupply: view.MaxSupply,
			EndTime:   view.EndTime,
			Rarity:    view.Rarity,
		}
	}

	report.Drift = drift(report.Ledger, report.Chain)
	return report, nil
}

// drift compares the two sides and names each divergence
func drift(ledger *LedgerState, chainState *ChainState) []string {
	divergences := []string{}

	switch {
	case ledger == nil && chainState == nil:
		return divergences
	case ledger == nil:
		return append(divergences, "edition exists on chain but has no ledger row")
	case chainState == nil:
		if ledger.Status != domain.EditionStatusPendingCreation {
			divergences = append(divergences, "ledger row has no edition on chain")
		}
		return divergences
	}

	if ledger.MintedCount != chainState.Minted {
		divergences = append(divergences, fmt.Sprintf(
			"minted count mismatch: ledger %d, chain %d", ledger.MintedCount, chainState.Minted))
	}
	if ledger.RecordedMints != chainState.Minted {
		divergences = append(divergences, fmt.Sprintf(
			"mint records sum to %d, chain minted %d", ledger.RecordedMints, chainState.Minted))
	}
	if ledger.PriceWei != chainState.PriceWei {
		divergences = append(divergences, fmt.Sprintf(
			"price mismatch: ledger %s, chain %s", ledger.PriceWei, chainState.PriceWei))
	}
	if ledger.MaxSupply != chainState.MaxSupply {
		divergences = append(divergences, fmt.Sprintf(
			"max supply mismatch: ledger %d, chain %d", ledger.MaxSupply, chainState.MaxSupply))
	}
	if ledger.Status == domain.EditionStatusActive && !chainState.Active {
		divergences = append(divergences, "ledger row active but chain window closed")
	}

	return divergences
}
