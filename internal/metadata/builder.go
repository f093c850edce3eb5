package metadata

import (
	"fmt"
	"strings"

	"github.com/encorelab/moment-nft-service/internal/adapter"
	"github.com/encorelab/moment-nft-service/internal/domain"
)

// Document is the canonical edition metadata shape referenced by URI
// on-chain. There is exactly one builder for it; the attribute list is fixed
// so two editions of comparable moments marshal identically field for field.
type Document struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	ExternalURL string      `json:"external_url,omitempty"`
	Attributes  []Attribute `json:"attributes"`
}

// Attribute is a single trait entry in the metadata document
type Attribute struct {
	TraitType string `json:"trait_type"`
	Value     string `json:"value"`
}

// Builder assembles edition metadata documents from moment snapshots
type Builder struct {
	externalBaseURL string
	json            adapter.JSON
}

// NewBuilder creates a metadata builder. externalBaseURL, when set, is the
// public site prefix for the external_url field.
func NewBuilder(externalBaseURL string, jsonAdapter adapter.JSON) *Builder {
	return &Builder{externalBaseURL: strings.TrimRight(externalBaseURL, "/"), json: jsonAdapter}
}

// Build produces the canonical metadata document for a scored moment
func (b *Builder) Build(moment domain.Moment, score domain.RarityScore) Document {
	doc := Document{
		Name:        b.name(moment),
		Description: moment.Description,
		Attributes: []Attribute{
			{TraitType: "Content Kind", Value: string(moment.Kind)},
			{TraitType: "Rarity Tier", Value: string(score.Tier)},
			{TraitType: "Rarity Score", Value: fmt.Sprintf("%.1f", score.Score)},
			{TraitType: "Performance Date", Value: moment.PerformanceDate.Format("2006-01-02")},
		},
	}

	if moment.SongTitle != "" {
		doc.Attributes = append(doc.Attributes, Attribute{TraitType: "Song", Value: moment.SongTitle})
	}
	if b.externalBaseURL != "" {
		doc.ExternalURL = fmt.Sprintf("%s/moments/%d", b.externalBaseURL, moment.ID)
	}

	return doc
}

// Marshal serializes a document to the JSON bytes stored behind the metadata
// URI
func (b *Builder) Marshal(doc Document) ([]byte, error) {
	data, err := b.json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metadata document: %w", err)
	}
	return data, nil
}

func (b *Builder) name(moment domain.Moment) string {
	if moment.Kind == domain.KindSong && moment.SongTitle != "" {
		return fmt.Sprintf("%s - Moment #%d", moment.SongTitle, moment.ID)
	}
	return fmt.Sprintf("%s Moment #%d", capitalize(string(moment.Kind)), moment.ID)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
