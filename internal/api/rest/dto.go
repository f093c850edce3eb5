package rest

import (
	"github.com/encorelab/moment-nft-service/internal/domain"
	"github.com/encorelab/moment-nft-service/internal/metadata"
)

// PrepareEditionRequest asks for mint parameters ahead of a wallet signature
type PrepareEditionRequest struct {
	DurationDays int    `json:"duration_days" binding:"required"`
	MaxSupply    uint64 `json:"max_supply"`
}

// PrepareEditionResponse carries everything the client wallet needs to
// dispatch the createEdition transaction
type PrepareEditionResponse struct {
	MomentID     uint64            `json:"moment_id"`
	PriceWei     string            `json:"price_wei"`
	DurationDays int               `json:"duration_days"`
	MaxSupply    uint64            `json:"max_supply"`
	Rarity       uint8             `json:"rarity"`
	RarityTier   domain.RarityTier `json:"rarity_tier"`
	MetadataURI  string            `json:"metadata_uri"`
	Metadata     metadata.Document `json:"metadata"`
	Contract     string            `json:"contract_address"`
}

// RecordEditionRequest records a confirmed edition creation. The tx hash is
// all the ledger needs; price, window, and rarity are read back from the
// confirmed chain state rather than trusted from the caller.
type RecordEditionRequest struct {
	TxHash string `json:"tx_hash" binding:"required"`
}

// RecordMintRequest records a confirmed mint transaction
type RecordMintRequest struct {
	Quantity      uint64 `json:"quantity" binding:"required"`
	MinterAddress string `json:"minter_address" binding:"required"`
	TxHash        string `json:"tx_hash" binding:"required"`
}

// RecordMintResponse reports whether the mint record was new
type RecordMintResponse struct {
	Recorded    bool   `json:"recorded"`
	MintedCount uint64 `json:"minted_count"`
}

// SyncResponse reports what reconciliation did
type SyncResponse struct {
	Repaired    bool   `json:"repaired"`
	FaultID     string `json:"fault_id,omitempty"`
	MintedCount uint64 `json:"minted_count"`
}
