package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/encorelab/moment-nft-service/internal/domain"
	"github.com/encorelab/moment-nft-service/internal/store/schema"
)

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// Migrate creates or updates the tables this service owns
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&schema.Moment{},
		&schema.Edition{},
		&schema.MintRecord{},
		&schema.ConsistencyFault{},
	)
}

// ConfigureConnectionPool configures the connection pool settings for a GORM
// database connection. Zero values fall back to defaults: 20 open, 5 idle,
// 5m lifetime, 10m idle time.
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// GetMoment retrieves a moment by ID; nil when absent
func (s *pgStore) GetMoment(ctx context.Context, momentID uint64) (*schema.Moment, error) {
	var moment schema.Moment
	err := s.db.WithContext(ctx).Where("id = ?", momentID).First(&moment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get moment: %w", err)
	}
	return &moment, nil
}

// GetEditionByMomentID retrieves the edition row for a moment; nil when absent
func (s *pgStore) GetEditionByMomentID(ctx context.Context, momentID uint64) (*schema.Edition, error) {
	var edition schema.Edition
	err := s.db.WithContext(ctx).Where("moment_id = ?", momentID).First(&edition).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get edition: %w", err)
	}
	return &edition, nil
}

// InsertPendingEdition optimistically inserts a pending_creation row. The
// unique index on moment_id arbitrates concurrent dispatches: the loser's
// insert conflicts and reports false.
func (s *pgStore) InsertPendingEdition(ctx context.Context, edition *schema.Edition) (bool, error) {
	edition.Status = domain.EditionStatusPendingCreation
	result := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "moment_id"}},
			DoNothing: true,
		}).
		Create(edition)
	if result.Error != nil {
		return false, fmt.Errorf("failed to insert pending edition: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// DeletePendingEdition removes a pending_creation row. The status predicate
// makes this safe to call after any failed attempt: a row that reached active
// is never touched.
func (s *pgStore) DeletePendingEdition(ctx context.Context, momentID uint64) error {
	err := s.db.WithContext(ctx).
		Where("moment_id = ? AND status = ?", momentID, domain.EditionStatusPendingCreation).
		Delete(&schema.Edition{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete pending edition: %w", err)
	}
	return nil
}

// ActivateEdition upserts the confirmed edition row. A conflicting row is
// promoted only while still pending_creation; an already-active row keeps its
// original parameters untouched (the caller decides whether the second call
// was an idempotent replay or a conflicting overwrite attempt).
func (s *pgStore) ActivateEdition(ctx context.Context, edition *schema.Edition) (bool, error) {
	edition.Status = domain.EditionStatusActive
	result := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "moment_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"status":           domain.EditionStatusActive,
				"metadata_uri":     edition.MetadataURI,
				"price_wei":        edition.PriceWei,
				"window_start":     edition.WindowStart,
				"window_end":       edition.WindowEnd,
				"max_supply":       edition.MaxSupply,
				"rarity_tier":      edition.RarityTier,
				"rarity":           edition.Rarity,
				"contract_address": edition.ContractAddress,
				"creation_tx_hash": edition.CreationTxHash,
				"updated_at":       gorm.Expr("now()"),
			}),
			Where: clause.Where{
				Exprs: []clause.Expression{
					clause.Eq{
						Column: clause.Column{Table: "editions", Name: "status"},
						Value:  string(domain.EditionStatusPendingCreation),
					},
				},
			},
		}).
		Create(edition)
	if result.Error != nil {
		return false, fmt.Errorf("failed to activate edition: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// InsertMintRecord appends a confirmed mint and increments the edition's
// minted count in one transaction. The unique tx_hash index absorbs replays:
// a duplicate inserts nothing, so the counter is incremented exactly once per
// confirmed mint transaction.
func (s *pgStore) InsertMintRecord(ctx context.Context, record *schema.MintRecord) (bool, error) {
	var inserted bool
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "tx_hash"}},
				DoNothing: true,
			}).
			Create(record)
		if result.Error != nil {
			return fmt.Errorf("failed to insert mint record: %w", result.Error)
		}

		inserted = result.RowsAffected > 0
		if !inserted {
			return nil
		}

		return tx.Model(&schema.Edition{}).
			Where("id = ?", record.EditionID).
			Updates(map[string]any{
				"minted_count": gorm.Expr("minted_count + ?", record.Quantity),
				"updated_at":   gorm.Expr("now()"),
			}).Error
	})
	if err != nil {
		return false, err
	}
	return inserted, nil
}

// SetEditionStatus transitions an edition row's status
func (s *pgStore) SetEditionStatus(ctx context.Context, momentID uint64, status domain.EditionStatus) error {
	err := s.db.WithContext(ctx).Model(&schema.Edition{}).
		Where("moment_id = ?", momentID).
		Updates(map[string]any{
			"status":     status,
			"updated_at": gorm.Expr("now()"),
		}).Error
	if err != nil {
		return fmt.Errorf("failed to set edition status: %w", err)
	}
	return nil
}

// SetMintedCount overwrites the mirrored mint counter with the
// chain-authoritative value
func (s *pgStore) SetMintedCount(ctx context.Context, momentID uint64, count uint64) error {
	err := s.db.WithContext(ctx).Model(&schema.Edition{}).
		Where("moment_id = ?", momentID).
		Updates(map[string]any{
			"minted_count": count,
			"updated_at":   gorm.Expr("now()"),
		}).Error
	if err != nil {
		return fmt.Errorf("failed to set minted count: %w", err)
	}
	return nil
}

// UpsertEditionFromChain overwrites the edition row with chain-authoritative
// values, last-writer-wins
func (s *pgStore) UpsertEditionFromChain(ctx context.Context, edition *schema.Edition) error {
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "moment_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"status":           edition.Status,
				"metadata_uri":     edition.MetadataURI,
				"price_wei":        edition.PriceWei,
				"window_start":     edition.WindowStart,
				"window_end":       edition.WindowEnd,
				"max_supply":       edition.MaxSupply,
				"minted_count":     edition.MintedCount,
				"rarity_tier":      edition.RarityTier,
				"rarity":           edition.Rarity,
				"contract_address": edition.ContractAddress,
				"creation_tx_hash": edition.CreationTxHash,
				"updated_at":       gorm.Expr("now()"),
			}),
		}).
		Create(edition).Error
	if err != nil {
		return fmt.Errorf("failed to upsert edition from chain: %w", err)
	}
	return nil
}

// SumMintQuantities returns the total quantity across mint records for an edition
func (s *pgStore) SumMintQuantities(ctx context.Context, editionID uint64) (uint64, error) {
	var total *uint64
	err := s.db.WithContext(ctx).Model(&schema.MintRecord{}).
		Where("edition_id = ?", editionID).
		Select("SUM(quantity)").
		Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("failed to sum mint quantities: %w", err)
	}
	if total == nil {
		return 0, nil
	}
	return *total, nil
}

// CreateConsistencyFault records ledger state the chain does not recognize
func (s *pgStore) CreateConsistencyFault(ctx context.Context, fault *schema.ConsistencyFault) error {
	if err := s.db.WithContext(ctx).Create(fault).Error; err != nil {
		return fmt.Errorf("failed to create consistency fault: %w", err)
	}
	return nil
}

// GetUnresolvedFault returns the oldest open consistency fault for a moment;
// nil when none is on record
func (s *pgStore) GetUnresolvedFault(ctx context.Context, momentID uint64) (*schema.ConsistencyFault, error) {
	var fault schema.ConsistencyFault
	err := s.db.WithContext(ctx).
		Where("moment_id = ? AND resolved = false", momentID).
		Order("created_at ASC").
		First(&fault).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get unresolved fault: %w", err)
	}
	return &fault, nil
}

// ListEditionsByStatus pages edition rows in a given status, oldest update first
func (s *pgStore) ListEditionsByStatus(ctx context.Context, status domain.EditionStatus, updatedBefore time.Time, limit int) ([]schema.Edition, error) {
	var editions []schema.Edition
	err := s.db.WithContext(ctx).
		Where("status = ? AND updated_at < ?", status, updatedBefore).
		Order("updated_at ASC").
		Limit(limit).
		Find(&editions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list editions: %w", err)
	}
	return editions, nil
}
