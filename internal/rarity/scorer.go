package rarity

import (
	"math"
	"strings"

	"github.com/encorelab/moment-nft-service/internal/domain"
)

// Scorer computes a deterministic rarity score for a moment snapshot. It is
// pure: no I/O, never errors. Missing or malformed fields contribute zero to
// their component instead of failing the computation.
//
//go:generate mockgen -source=scorer.go -destination=../mocks/scorer.go -package=mocks -mock_names=Scorer=MockScorer
type Scorer interface {
	// Score computes the rarity score and tier for a moment
	Score(moment domain.Moment) domain.RarityScore
}

type scorer struct {
	weights Weights
}

// NewScorer creates a scorer with the given weights
func NewScorer(weights Weights) Scorer {
	return &scorer{weights: weights}
}

// Score computes the rarity score and tier for a moment
func (s *scorer) Score(moment domain.Moment) domain.RarityScore {
	var score float64
	if moment.Kind == domain.KindSong {
		score = s.scoreSong(moment)
	} else {
		score = s.scoreNonSong(moment)
	}

	score = math.Min(math.Max(score, 0), s.weights.MaxScore)
	score = math.Round(score*10) / 10

	return domain.RarityScore{
		Score: score,
		Tier:  s.tierFor(score, moment.Kind),
	}
}

// scoreSong sums the four song components: inverse-popularity frequency band,
// metadata completeness, media length, and first-at-performance priority.
func (s *scorer) scoreSong(moment domain.Moment) float64 {
	score := s.frequencyComponent(moment.PerformanceCount)
	score += s.metadataCompleteness(moment) * s.weights.MetadataMax
	score += s.lengthComponent(moment.DurationSeconds) * s.weights.LengthMax
	if moment.FirstAtPerformance {
		score += s.weights.PriorityMax
	}
	return score
}

// scoreNonSong applies the per-kind base plus the one-time first-of-kind
// bonus and the capped metadata and quality bonuses.
func (s *scorer) scoreNonSong(moment domain.Moment) float64 {
	score := s.weights.NonSongBase[moment.Kind]
	if moment.FirstOfKind {
		score += s.weights.FirstOfKindBonus
	}
	score += s.metadataCompleteness(moment) * s.weights.NonSongMetadataMax
	score += s.qualityComponent(moment) * s.weights.QualityMax
	return score
}

// frequencyComponent bands the performance count: fewer live performances
// score higher. A count of zero means the field is absent.
func (s *scorer) frequencyComponent(count int) float64 {
	if count <= 0 {
		return 0
	}
	for _, band := range s.weights.FrequencyBands {
		if count <= band.MaxCount {
			return band.Component
		}
	}
	return s.weights.FrequencyFloor
}

// metadataCompleteness returns the filled fraction of the fixed 8-field
// optional metadata set.
func (s *scorer) metadataCompleteness(moment domain.Moment) float64 {
	fields := []bool{
		strings.TrimSpace(moment.Description) != "",
		len(moment.Tags) > 0,
		strings.TrimSpace(moment.SpecialOccasion) != "",
		strings.TrimSpace(moment.Instruments) != "",
		strings.TrimSpace(moment.GuestAppearances) != "",
		strings.TrimSpace(moment.CrowdReaction) != "",
		strings.TrimSpace(moment.UniqueElements) != "",
		strings.TrimSpace(moment.PersonalStory) != "",
	}

	filled := 0
	for _, present := range fields {
		if present {
			filled++
		}
	}
	return float64(filled) / float64(len(fields))
}

// lengthComponent peaks at the ideal duration and decays linearly to zero at
// twice the ideal or at zero length.
func (s *scorer) lengthComponent(durationSeconds float64) float64 {
	ideal := s.weights.IdealDurationSeconds
	if durationSeconds <= 0 || ideal <= 0 {
		return 0
	}
	component := 1 - math.Abs(durationSeconds-ideal)/ideal
	return math.Max(component, 0)
}

// qualityComponent averages the audio and video rating fractions
func (s *scorer) qualityComponent(moment domain.Moment) float64 {
	return (qualityFraction(moment.AudioQuality) + qualityFraction(moment.VideoQuality)) / 2
}

func qualityFraction(rating domain.QualityRating) float64 {
	switch rating {
	case domain.QualityPoor:
		return 0.25
	case domain.QualityFair:
		return 0.5
	case domain.QualityGood:
		return 0.75
	case domain.QualityExcellent:
		return 1
	default:
		// Unknown or absent rating scores nothing
		return 0
	}
}

// tierFor maps a score to its tier, then hard-clamps to the per-kind cap.
// The cap is authoritative even when the numeric score rounds into a higher
// threshold.
func (s *scorer) tierFor(score float64, kind domain.ContentKind) domain.RarityTier {
	tier := domain.TierCommon
	for _, threshold := range s.weights.TierThresholds {
		if score >= threshold.MinScore {
			tier = threshold.Tier
			break
		}
	}

	ceiling, ok := s.weights.TierCaps[kind]
	if !ok {
		ceiling = s.weights.TierCaps[domain.KindOther]
	}
	return domain.MinTier(tier, ceiling)
}
