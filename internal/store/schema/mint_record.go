package schema

import (
	"time"
)

// MintRecord represents the mint_records table - one row per confirmed mint
// transaction. The transaction hash is globally unique and is the idempotency
// key: replaying a confirmed mint must never produce a second row or a second
// counter increment.
type MintRecord struct {
	// ID is the internal database primary key
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// EditionID references the edition minted against
	EditionID uint64 `gorm:"column:edition_id;not null;index"`
	// MinterAddress is the minter's wallet address
	MinterAddress string `gorm:"column:minter_address;not null;type:text;index"`
	// Quantity is the number of tokens minted in this transaction
	Quantity uint64 `gorm:"column:quantity;not null"`
	// TxHash is the confirmed mint transaction hash (globally unique)
	TxHash string `gorm:"column:tx_hash;not null;uniqueIndex;type:text"`
	// ConfirmedAt is the chain confirmation timestamp
	ConfirmedAt time.Time `gorm:"column:confirmed_at;not null;type:timestamptz"`
	// CreatedAt is the timestamp when this record was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`

	// Associations
	Edition Edition `gorm:"foreignKey:EditionID;constraint:OnDelete:RESTRICT"`
}

// TableName specifies the table name for the MintRecord model
func (MintRecord) TableName() string {
	return "mint_records"
}
