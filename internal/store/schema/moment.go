package schema

import (
	"time"

	"gorm.io/datatypes"

	"github.com/encorelab/moment-nft-service/internal/domain"
)

// Moment represents the moments table - the projection of uploaded media
// items this service scores and mints editions for. Upload and moderation
// write paths live in the CRUD service; this service only reads moments,
// except for the edition association.
type Moment struct {
	// ID is the internal database primary key, also the edition key on-chain
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// OwnerAddress is the uploader's wallet address
	OwnerAddress string `gorm:"column:owner_address;not null;type:text;index"`
	// Kind classifies the content (song, intro, outro, jam, improv, crowd, other)
	Kind domain.ContentKind `gorm:"column:kind;not null;type:text"`
	// SongTitle is set for song moments
	SongTitle *string `gorm:"column:song_title;type:text"`
	// PerformanceCount is how many times the song has ever been played live (0 for non-song)
	PerformanceCount int `gorm:"column:performance_count;not null;default:0"`
	// PerformanceDate is when the captured performance happened
	PerformanceDate time.Time `gorm:"column:performance_date;not null;type:timestamptz"`
	// DurationSeconds is the media clip length
	DurationSeconds float64 `gorm:"column:duration_seconds;not null;default:0"`
	// AudioQuality and VideoQuality are user-assessed ratings
	AudioQuality *string `gorm:"column:audio_quality;type:text"`
	VideoQuality *string `gorm:"column:video_quality;type:text"`
	// FirstOfKind marks the globally first upload for this content kind
	FirstOfKind bool `gorm:"column:first_of_kind;not null;default:false"`
	// FirstAtPerformance marks the first moment for this song at this performance
	FirstAtPerformance bool `gorm:"column:first_at_performance;not null;default:false"`
	// Description is the uploader's free-form description
	Description *string `gorm:"column:description;type:text"`
	// Tags is the uploader's tag list stored as a JSON array
	Tags datatypes.JSON `gorm:"column:tags;type:jsonb"`
	// SpecialOccasion, Instruments, GuestAppearances, CrowdReaction,
	// UniqueElements, PersonalStory are the optional metadata fields the
	// rarity scorer counts
	SpecialOccasion  *string `gorm:"column:special_occasion;type:text"`
	Instruments      *string `gorm:"column:instruments;type:text"`
	GuestAppearances *string `gorm:"column:guest_appearances;type:text"`
	CrowdReaction    *string `gorm:"column:crowd_reaction;type:text"`
	UniqueElements   *string `gorm:"column:unique_elements;type:text"`
	PersonalStory    *string `gorm:"column:personal_story;type:text"`
	// CreatedAt is the timestamp when this record was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp when this record was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`

	// Associations
	Edition *Edition `gorm:"foreignKey:MomentID;constraint:OnDelete:RESTRICT"`
}

// TableName specifies the table name for the Moment model
func (Moment) TableName() string {
	return "moments"
}
