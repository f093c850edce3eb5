package store

import (
	"context"
	"time"

	"github.com/encorelab/moment-nft-service/internal/domain"
	"github.com/encorelab/moment-nft-service/internal/store/schema"
)

// Store defines the interface for database operations. Edition rows and mint
// counters are mutated only through the idempotent write paths below; no
// other code path touches minted_count or edition status directly.
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore
type Store interface {
	// GetMoment retrieves a moment by ID; nil when absent
	GetMoment(ctx context.Context, momentID uint64) (*schema.Moment, error)

	// GetEditionByMomentID retrieves the edition row for a moment; nil when absent
	GetEditionByMomentID(ctx context.Context, momentID uint64) (*schema.Edition, error)

	// InsertPendingEdition optimistically inserts a pending_creation row the
	// instant a createEdition transaction is dispatched. Returns false when a
	// row for the moment already exists.
	InsertPendingEdition(ctx context.Context, edition *schema.Edition) (bool, error)

	// DeletePendingEdition removes a pending_creation row after a declined
	// signature or a reverted creation. Rows that reached active are never
	// deleted; the delete is a no-op for them.
	DeletePendingEdition(ctx context.Context, momentID uint64) error

	// ActivateEdition upserts the confirmed edition row: inserts when absent,
	// promotes a pending_creation row in place, and leaves an already-active
	// row untouched. Returns true when the row was inserted or promoted.
	ActivateEdition(ctx context.Context, edition *schema.Edition) (bool, error)

	// InsertMintRecord appends a confirmed mint and increments the edition's
	// minted count in one transaction, keyed by tx hash. A duplicate tx hash
	// inserts nothing and increments nothing; returns whether the row was new.
	InsertMintRecord(ctx context.Context, record *schema.MintRecord) (bool, error)

	// SetEditionStatus transitions an edition row's status
	SetEditionStatus(ctx context.Context, momentID uint64, status domain.EditionStatus) error

	// SetMintedCount overwrites the mirrored mint counter with the
	// chain-authoritative value (reconciliation only)
	SetMintedCount(ctx context.Context, momentID uint64, count uint64) error

	// UpsertEditionFromChain overwrites the edition row with
	// chain-authoritative values, last-writer-wins (reconciliation only)
	UpsertEditionFromChain(ctx context.Context, edition *schema.Edition) error

	// SumMintQuantities returns the total quantity across mint records for an edition
	SumMintQuantities(ctx context.Context, editionID uint64) (uint64, error)

	// CreateConsistencyFault records ledger state the chain does not recognize
	CreateConsistencyFault(ctx context.Context, fault *schema.ConsistencyFault) error

	// GetUnresolvedFault returns the oldest open consistency fault for a
	// moment; nil when none is on record
	GetUnresolvedFault(ctx context.Context, momentID uint64) (*schema.ConsistencyFault, error)

	// ListEditionsByStatus pages edition rows in a given status, oldest update first
	ListEditionsByStatus(ctx context.Context, status domain.EditionStatus, updatedBefore time.Time, limit int) ([]schema.Edition, error)
}
