package types

import (
	"encoding/json"

	"github.com/encorelab/moment-nft-service/internal/domain"
	"github.com/encorelab/moment-nft-service/internal/store/schema"
)

// ToDomainMoment converts a moments row into the scorer's snapshot type.
// Pointer fields collapse to their zero value, which the scorer treats as
// absent.
func ToDomainMoment(row *schema.Moment) domain.Moment {
	moment := domain.Moment{
		ID:                 row.ID,
		OwnerAddress:       row.OwnerAddress,
		Kind:               row.Kind,
		SongTitle:          StringValue(row.SongTitle),
		PerformanceCount:   row.PerformanceCount,
		PerformanceDate:    row.PerformanceDate,
		DurationSeconds:    row.DurationSeconds,
		AudioQuality:       domain.QualityRating(StringValue(row.AudioQuality)),
		VideoQuality:       domain.QualityRating(StringValue(row.VideoQuality)),
		FirstOfKind:        row.FirstOfKind,
		FirstAtPerformance: row.FirstAtPerformance,
		Description:        StringValue(row.Description),
		SpecialOccasion:    StringValue(row.SpecialOccasion),
		Instruments:        StringValue(row.Instruments),
		GuestAppearances:   StringValue(row.GuestAppearances),
		CrowdReaction:      StringValue(row.CrowdReaction),
		UniqueElements:     StringValue(row.UniqueElements),
		PersonalStory:      StringValue(row.PersonalStory),
	}

	if len(row.Tags) > 0 {
		// Malformed tag JSON scores as absent rather than failing
		_ = json.Unmarshal(row.Tags, &moment.Tags)
	}

	return moment
}

// StringValue dereferences a string pointer, returning "" for nil
func StringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// StringPtr returns a pointer to the given string
func StringPtr(s string) *string {
	return &s
}
