package domain

import (
	"math/big"
	"time"
)

// ContentKind classifies what a moment captures. It replaces the free-form
// content-type strings the upload layer used to pass around.
type ContentKind string

const (
	KindSong   ContentKind = "song"
	KindIntro  ContentKind = "intro"
	KindOutro  ContentKind = "outro"
	KindJam    ContentKind = "jam"
	KindImprov ContentKind = "improv"
	KindCrowd  ContentKind = "crowd"
	KindOther  ContentKind = "other"
)

// IsValidContentKind checks if a content kind is valid
func IsValidContentKind(kind ContentKind) bool {
	switch kind {
	case KindSong, KindIntro, KindOutro, KindJam, KindImprov, KindCrowd, KindOther:
		return true
	}
	return false
}

// QualityRating represents a user-assessed media quality level
type QualityRating string

const (
	QualityPoor      QualityRating = "poor"
	QualityFair      QualityRating = "fair"
	QualityGood      QualityRating = "good"
	QualityExcellent QualityRating = "excellent"
)

// RarityTier represents the display tier derived from a rarity score
type RarityTier string

const (
	TierCommon    RarityTier = "common"
	TierUncommon  RarityTier = "uncommon"
	TierRare      RarityTier = "rare"
	TierEpic      RarityTier = "epic"
	TierLegendary RarityTier = "legendary"
)

// tierRank orders tiers for cap comparisons
var tierRank = map[RarityTier]int{
	TierCommon:    0,
	TierUncommon:  1,
	TierRare:      2,
	TierEpic:      3,
	TierLegendary: 4,
}

// Rank returns the ordinal position of the tier (common lowest)
func (t RarityTier) Rank() int {
	return tierRank[t]
}

// MinTier returns the lower of two tiers
func MinTier(a, b RarityTier) RarityTier {
	if a.Rank() <= b.Rank() {
		return a
	}
	return b
}

// Moment is a snapshot of an uploaded media item, carrying every attribute
// the rarity scorer reads. It is assembled from the moments projection and
// never mutated by the scoring path.
type Moment struct {
	// ID is the numeric moment identifier, also the edition key on-chain
	ID uint64
	// OwnerAddress is the uploader's wallet address
	OwnerAddress string
	// Kind classifies the content
	Kind ContentKind
	// SongTitle is set for song moments
	SongTitle string
	// PerformanceCount is how many times the song has ever been played live (0 for non-song)
	PerformanceCount int
	// PerformanceDate is when the captured performance happened
	PerformanceDate time.Time
	// DurationSeconds is the media clip length
	DurationSeconds float64
	// AudioQuality and VideoQuality are user-assessed ratings
	AudioQuality QualityRating
	VideoQuality QualityRating
	// FirstOfKind marks the globally first upload for this content kind
	FirstOfKind bool
	// FirstAtPerformance marks the first moment for this song at this performance
	FirstAtPerformance bool
	// Optional metadata fields; empty means absent
	Description      string
	Tags             []string
	SpecialOccasion  string
	Instruments      string
	GuestAppearances string
	CrowdReaction    string
	UniqueElements   string
	PersonalStory    string
}

// RarityScore is the scorer output: a 0-7 score with one decimal of
// precision and the tier it maps to after the per-kind cap is applied.
type RarityScore struct {
	Score float64    `json:"score"`
	Tier  RarityTier `json:"tier"`
}

// OnChainRarity converts the score into the integer rarity persisted on-chain
func (r RarityScore) OnChainRarity() uint8 {
	rarity := int(r.Score)
	if rarity < 1 {
		rarity = 1
	}
	if rarity > 7 {
		rarity = 7
	}
	return uint8(rarity)
}

// EditionStatus tracks the off-chain edition row lifecycle
type EditionStatus string

const (
	// EditionStatusPendingCreation is set optimistically when a createEdition
	// transaction has been dispatched but not yet confirmed
	EditionStatusPendingCreation EditionStatus = "pending_creation"
	// EditionStatusActive means the creation transaction confirmed on-chain
	EditionStatusActive EditionStatus = "active"
	// EditionStatusEnded means the mint window elapsed or supply sold out
	EditionStatusEnded EditionStatus = "ended"
)

// MintParams are the edition parameters derived by the policy and persisted
// both on-chain and in the ledger row.
type MintParams struct {
	// PriceWei is the unit mint price in wei
	PriceWei *big.Int
	// DurationDays is the mint window length, one of the allowed set
	DurationDays int
	// MaxSupply caps total mints; 0 means unlimited
	MaxSupply uint64
	// Rarity is the integer rarity recorded on-chain (1-7)
	Rarity uint8
	// Tier is the display tier snapshot at creation time
	Tier RarityTier
	// MetadataURI points at the canonical edition metadata document
	MetadataURI string
}

// EditionView is the authoritative on-chain edition state returned by the
// chain gateway. Absent editions are represented by a nil *EditionView.
type EditionView struct {
	MomentID    uint64
	MetadataURI string
	PriceWei    *big.Int
	StartTime   time.Time
	EndTime     time.Time
	MaxSupply   uint64
	Minted      uint64
	Active      bool
	Rarity      uint8
}

// ConfirmationStatus is the terminal state of a transaction watch
type ConfirmationStatus string

const (
	// ConfirmationConfirmed means the transaction was mined successfully
	ConfirmationConfirmed ConfirmationStatus = "confirmed"
	// ConfirmationReverted means the transaction was mined but reverted
	ConfirmationReverted ConfirmationStatus = "reverted"
	// ConfirmationIndeterminate means the watch deadline expired with the
	// transaction still unmined; it may confirm later
	ConfirmationIndeterminate ConfirmationStatus = "indeterminate"
)
