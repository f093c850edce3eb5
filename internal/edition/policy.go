package edition

import (
	"math/big"

	"github.com/encorelab/moment-nft-service/internal/domain"
)

// AllowedDurationDays enumerates the selectable mint window lengths
var AllowedDurationDays = []int{1, 3, 7, 14, 30}

// PricingConfig holds the tier-scaled pricing table. BasePriceWei is the
// common-tier unit price; each tier multiplies it.
type PricingConfig struct {
	BasePriceWei    *big.Int
	TierMultipliers map[domain.RarityTier]int64
}

// DefaultPricing returns the production pricing table: base 0.01 ETH scaled
// by tier.
func DefaultPricing() PricingConfig {
	return PricingConfig{
		BasePriceWei: big.NewInt(10_000_000_000_000_000), // 0.01 ETH
		TierMultipliers: map[domain.RarityTier]int64{
			domain.TierCommon:    1,
			domain.TierUncommon:  2,
			domain.TierRare:      3,
			domain.TierEpic:      5,
			domain.TierLegendary: 10,
		},
	}
}

// Policy derives mint parameters from a rarity score. Pure: no I/O; callers
// are responsible for checking ledger state before dispatching a creation.
type Policy struct {
	pricing PricingConfig
}

// NewPolicy creates a policy with the given pricing table
func NewPolicy(pricing PricingConfig) *Policy {
	return &Policy{pricing: pricing}
}

// MintParams computes the edition parameters for a scored moment.
// durationDays must be one of AllowedDurationDays; maxSupply 0 means
// unlimited. editionExists is the ledger's answer for the moment and makes
// the policy reject a second edition with domain.ErrEditionExists without
// doing any I/O itself. Returns domain.ErrInvalidDuration for a window
// outside the allowed set.
func (p *Policy) MintParams(score domain.RarityScore, editionExists bool, durationDays int, maxSupply uint64, metadataURI string) (*domain.MintParams, error) {
	if editionExists {
		return nil, domain.ErrEditionExists
	}
	if !validDuration(durationDays) {
		return nil, domain.ErrInvalidDuration
	}

	return &domain.MintParams{
		PriceWei:     p.unitPrice(score.Tier),
		DurationDays: durationDays,
		MaxSupply:    maxSupply,
		Rarity:       score.OnChainRarity(),
		Tier:         score.Tier,
		MetadataURI:  metadataURI,
	}, nil
}

// unitPrice scales the base price by the tier multiplier
func (p *Policy) unitPrice(tier domain.RarityTier) *big.Int {
	multiplier, ok := p.pricing.TierMultipliers[tier]
	if !ok {
		multiplier = 1
	}
	return new(big.Int).Mul(p.pricing.BasePriceWei, big.NewInt(multiplier))
}

func validDuration(days int) bool {
	for _, allowed := range AllowedDurationDays {
		if days == allowed {
			return true
		}
	}
	return false
}
