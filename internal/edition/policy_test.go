package edition_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/encorelab/moment-nft-service/internal/domain"
	"github.com/encorelab/moment-nft-service/internal/edition"
)

func TestPolicy_MintParams_PricingScalesWithTier(t *testing.T) {
	policy := edition.NewPolicy(edition.DefaultPricing())

	tests := []struct {
		tier     domain.RarityTier
		expected string // wei
	}{
		{domain.TierCommon, "10000000000000000"},
		{domain.TierUncommon, "20000000000000000"},
		{domain.TierRare, "30000000000000000"},
		{domain.TierEpic, "50000000000000000"},
		{domain.TierLegendary, "100000000000000000"},
	}

	for _, tt := range tests {
		t.Run(string(tt.tier), func(t *testing.T) {
			params, err := policy.MintParams(domain.RarityScore{Score: 3, Tier: tt.tier}, false, 7, 100, "https://example.com/meta/1")
			require.NoError(t, err)
			assert.Equal(t, tt.expected, params.PriceWei.String())
			assert.Equal(t, 7, params.DurationDays)
			assert.Equal(t, uint64(100), params.MaxSupply)
			assert.Equal(t, tt.tier, params.Tier)
		})
	}
}

func TestPolicy_MintParams_RejectsExistingEdition(t *testing.T) {
	policy := edition.NewPolicy(edition.DefaultPricing())

	params, err := policy.MintParams(domain.RarityScore{Score: 5, Tier: domain.TierEpic}, true, 7, 0, "uri")
	assert.Nil(t, params)
	assert.ErrorIs(t, err, domain.ErrEditionExists)
}

func TestPolicy_MintParams_DurationValidation(t *testing.T) {
	policy := edition.NewPolicy(edition.DefaultPricing())

	for _, days := range edition.AllowedDurationDays {
		params, err := policy.MintParams(domain.RarityScore{Tier: domain.TierCommon}, false, days, 0, "uri")
		require.NoError(t, err, "days=%d", days)
		assert.Equal(t, days, params.DurationDays)
	}

	for _, days := range []int{0, -1, 2, 5, 15, 31, 365} {
		params, err := policy.MintParams(domain.RarityScore{Tier: domain.TierCommon}, false, days, 0, "uri")
		assert.Nil(t, params, "days=%d", days)
		assert.ErrorIs(t, err, domain.ErrInvalidDuration, "days=%d", days)
	}
}

func TestPolicy_MintParams_UnlimitedSupply(t *testing.T) {
	policy := edition.NewPolicy(edition.DefaultPricing())

	params, err := policy.MintParams(domain.RarityScore{Score: 2.5, Tier: domain.TierUncommon}, false, 30, 0, "uri")
	require.NoError(t, err)
	assert.Equal(t, uint64(0), params.MaxSupply)
}

func TestPolicy_MintParams_OnChainRarityIsClamped(t *testing.T) {
	policy := edition.NewPolicy(edition.DefaultPricing())

	params, err := policy.MintParams(domain.RarityScore{Score: 0.3, Tier: domain.TierCommon}, false, 1, 10, "uri")
	require.NoError(t, err)
	assert.Equal(t, uint8(1), params.Rarity)

	params, err = policy.MintParams(domain.RarityScore{Score: 7, Tier: domain.TierLegendary}, false, 1, 10, "uri")
	require.NoError(t, err)
	assert.Equal(t, uint8(7), params.Rarity)
}

func TestPolicy_MintParams_UnknownTierFallsBackToBase(t *testing.T) {
	policy := edition.NewPolicy(edition.PricingConfig{
		BasePriceWei:    big.NewInt(1000),
		TierMultipliers: map[domain.RarityTier]int64{},
	})

	params, err := policy.MintParams(domain.RarityScore{Tier: domain.TierEpic}, false, 3, 5, "uri")
	require.NoError(t, err)
	assert.Equal(t, "1000", params.PriceWei.String())
}
