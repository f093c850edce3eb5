package rarity

import "github.com/encorelab/moment-nft-service/internal/domain"

// FrequencyBand maps a performance-count range to its rarity component.
// Fewer performances score higher (inverse popularity).
type FrequencyBand struct {
	// MaxCount is the inclusive upper bound of the band
	MaxCount int
	// Component is the score contribution for counts in this band
	Component float64
}

// Weights holds every scoring constant. The product rationale behind the
// defaults is not documented anywhere, so they are deliberately configuration
// rather than hard-coded law; callers may override any of them.
type Weights struct {
	// FrequencyBands is evaluated in order; the first band whose MaxCount is
	// >= the performance count wins. Counts beyond the last band score
	// FrequencyFloor.
	FrequencyBands []FrequencyBand
	// FrequencyFloor is the component for songs performed more often than the
	// last band covers
	FrequencyFloor float64
	// MetadataMax is the maximum metadata-completeness component
	MetadataMax float64
	// IdealDurationSeconds is the media length the length component peaks at
	IdealDurationSeconds float64
	// LengthMax is the maximum media-length component
	LengthMax float64
	// PriorityMax is the component for the first moment of a song at a
	// specific performance
	PriorityMax float64
	// NonSongBase is the base score per non-song kind
	NonSongBase map[domain.ContentKind]float64
	// FirstOfKindBonus is the one-time bonus for the globally first upload of
	// a non-song kind
	FirstOfKindBonus float64
	// NonSongMetadataMax caps the metadata bonus for non-song content
	NonSongMetadataMax float64
	// QualityMax caps the combined audio/video quality bonus
	QualityMax float64
	// MaxScore clamps the total
	MaxScore float64
	// TierCaps is the hard per-kind tier ceiling, applied after the numeric
	// score maps to a tier
	TierCaps map[domain.ContentKind]domain.RarityTier
	// TierThresholds maps score floors to tiers, highest first
	TierThresholds []TierThreshold
}

// TierThreshold assigns a tier to scores at or above MinScore
type TierThreshold struct {
	MinScore float64
	Tier     domain.RarityTier
}

// DefaultWeights returns the production scoring constants.
func DefaultWeights() Weights {
	return Weights{
		FrequencyBands: []FrequencyBand{
			{MaxCount: 10, Component: 4},
			{MaxCount: 50, Component: 3},
			{MaxCount: 100, Component: 2.5},
			{MaxCount: 150, Component: 2},
			{MaxCount: 200, Component: 1.5},
		},
		FrequencyFloor:       1,
		MetadataMax:          1,
		IdealDurationSeconds: 150,
		LengthMax:            1,
		PriorityMax:          1,
		NonSongBase: map[domain.ContentKind]float64{
			domain.KindJam:    2.5,
			domain.KindImprov: 2,
			domain.KindCrowd:  1.5,
			domain.KindIntro:  1.5,
			domain.KindOutro:  1.5,
			domain.KindOther:  0.5,
		},
		FirstOfKindBonus:   1.5,
		NonSongMetadataMax: 0.5,
		QualityMax:         0.5,
		MaxScore:           7,
		TierCaps: map[domain.ContentKind]domain.RarityTier{
			domain.KindSong:   domain.TierLegendary,
			domain.KindJam:    domain.TierEpic,
			domain.KindImprov: domain.TierRare,
			domain.KindCrowd:  domain.TierRare,
			domain.KindIntro:  domain.TierRare,
			domain.KindOutro:  domain.TierRare,
			domain.KindOther:  domain.TierUncommon,
		},
		TierThresholds: []TierThreshold{
			{MinScore: 6.5, Tier: domain.TierLegendary},
			{MinScore: 5, Tier: domain.TierEpic},
			{MinScore: 3.5, Tier: domain.TierRare},
			{MinScore: 2, Tier: domain.TierUncommon},
			{MinScore: 0, Tier: domain.TierCommon},
		},
	}
}
