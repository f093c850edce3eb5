package schema

import (
	"time"

	"github.com/encorelab/moment-nft-service/internal/domain"
)

// Edition represents the editions table - the off-chain projection of one
// moment's mint offer. Exactly one edition may exist per moment (unique index
// on moment_id, enforced both here and by the contract). Rows reaching
// "active" are never removed; expiry and sell-out flip them to "ended".
type Edition struct {
	// ID is the internal database primary key
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// MomentID is the ledger key; one edition per moment
	MomentID uint64 `gorm:"column:moment_id;not null;uniqueIndex"`
	// Status tracks the row lifecycle (pending_creation, active, ended)
	Status domain.EditionStatus `gorm:"column:status;not null;type:text;index"`
	// MetadataURI points at the canonical edition metadata document
	MetadataURI string `gorm:"column:metadata_uri;not null;type:text"`
	// PriceWei is the unit mint price (string to support 78-digit values)
	PriceWei string `gorm:"column:price_wei;not null;type:numeric(78,0)"`
	// WindowStart and WindowEnd bound the mint window
	WindowStart time.Time `gorm:"column:window_start;not null;type:timestamptz"`
	WindowEnd   time.Time `gorm:"column:window_end;not null;type:timestamptz"`
	// MaxSupply caps total mints; 0 means unlimited
	MaxSupply uint64 `gorm:"column:max_supply;not null;default:0"`
	// MintedCount mirrors the chain's totalMinted. Display-only: it is never
	// consulted to gate a mint.
	MintedCount uint64 `gorm:"column:minted_count;not null;default:0"`
	// RarityTier is the tier snapshot at creation time
	RarityTier domain.RarityTier `gorm:"column:rarity_tier;not null;type:text"`
	// Rarity is the integer rarity recorded on-chain (1-7)
	Rarity uint8 `gorm:"column:rarity;not null;default:1"`
	// ContractAddress is the editions contract this edition lives on
	ContractAddress string `gorm:"column:contract_address;not null;type:text"`
	// CreationTxHash is the confirmed creation transaction hash (empty while
	// pending_creation)
	CreationTxHash string `gorm:"column:creation_tx_hash;not null;default:'';type:text"`
	// CreatedAt is the timestamp when this record was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp when this record was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`

	// Associations
	MintRecords []MintRecord `gorm:"foreignKey:EditionID;constraint:OnDelete:RESTRICT"`
}

// TableName specifies the table name for the Edition model
func (Edition) TableName() string {
	return "editions"
}
