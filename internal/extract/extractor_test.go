package extract_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonesrussell/north-cloud/lead-engine/internal/extract"
)

func newTestExtractor() *extract.Extractor {
	return extract.New(extract.Config{
		ProductKeywords: []string{
			"road construction", "highway", "bitumen", "diesel", "furnace oil",
			"boiler", "solvent extraction", "hexane",
		},
		UrgencyKeywords: []string{"urgent", "immediate", "asap"},
		States:          []string{"Gujarat", "Maharashtra", "Karnataka"},
		KnownCompanies: []string{
			"Reliance", "Adani Power", "NTPC", "L&T", "JSW Steel", "UltraTech",
		},
	})
}

func TestExtractKeywords(t *testing.T) {
	e := newTestExtractor()

	tests := []struct {
		name         string
		text         string
		wantKeywords []string
		wantUrgency  []string
		wantStates   []string
	}{
		{
			name:         "multiple keywords sorted and deduplicated",
			text:         "Highway tender: bitumen for road construction, more bitumen next phase",
			wantKeywords: []string{"bitumen", "highway", "road construction"},
		},
		{
			name:         "matching is case insensitive",
			text:         "Supply of BITUMEN and Diesel required",
			wantKeywords: []string{"bitumen", "diesel"},
		},
		{
			name:         "punctuation does not block multi-word keywords",
			text:         "road-construction scheme announced",
			wantKeywords: []string{"road construction"},
		},
		{
			name: "keywords match whole words only",
			text: "the soil was dieselly odd", // no "oil" table entry, "dieselly" must not hit "diesel"
		},
		{
			name:        "urgency keywords collected separately",
			text:        "Urgent requirement for diesel, immediate delivery",
			wantUrgency: []string{"immediate", "urgent"},
			wantKeywords: []string{
				"diesel",
			},
		},
		{
			name:       "states detected for territory routing",
			text:       "New highway project in Gujarat and Maharashtra",
			wantStates: []string{"gujarat", "maharashtra"},
			wantKeywords: []string{
				"highway",
			},
		},
		{
			name: "no matches yields empty sets",
			text: "cricket team wins the series",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Extract(tt.text)
			assert.Equal(t, tt.wantKeywords, got.Keywords)
			assert.Equal(t, tt.wantUrgency, got.UrgencyKeywords)
			assert.Equal(t, tt.wantStates, got.States)
		})
	}
}

func TestExtractCompanyDictionary(t *testing.T) {
	e := newTestExtractor()

	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "known company matched case insensitively",
			text: "reliance announces new refinery capacity",
			want: "Reliance",
		},
		{
			name: "longest dictionary match wins",
			text: "Adani Power commissions new unit", // "Adani Power" over any shorter hit
			want: "Adani Power",
		},
		{
			name: "ampersand names match",
			text: "L&T wins metro construction contract",
			want: "L&T",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Extract(tt.text)
			assert.Equal(t, tt.want, got.CompanyCandidate)
		})
	}
}

func TestExtractCompanyCapitalizedSpan(t *testing.T) {
	e := newTestExtractor()

	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "leading capitalized span becomes candidate",
			text: "Bharat Forge expands auto components plant",
			want: "Bharat Forge",
		},
		{
			name: "connectives extend a span",
			text: "Gujarat State Road Development Corporation invites bids",
			want: "Gujarat State Road Development Corporation",
		},
		{
			name: "sentence boundary ends the span",
			text: "Marico Industries. The company requires hexane supply",
			want: "Marico Industries",
		},
		{
			name: "single capitalized word is not enough",
			text: "Tenders invited for diesel supply",
			want: "",
		},
		{
			name: "all lowercase text has no candidate",
			text: "tenders invited for diesel supply across the region",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Extract(tt.text)
			assert.Equal(t, tt.want, got.CompanyCandidate)
		})
	}
}

func TestExtractIsDeterministic(t *testing.T) {
	e := newTestExtractor()
	text := "Urgent: Adani Power needs furnace oil and diesel for boiler units in Gujarat"

	first := e.Extract(text)
	for range 10 {
		assert.Equal(t, first, e.Extract(text))
	}
}

func TestExtractEmptyTables(t *testing.T) {
	e := extract.New(extract.Config{})
	got := e.Extract("Adani Power needs diesel urgently")

	assert.Empty(t, got.Keywords)
	assert.Empty(t, got.UrgencyKeywords)
	assert.Empty(t, got.States)
	// The span heuristic still runs without a dictionary.
	assert.Equal(t, "Adani Power", got.CompanyCandidate)
}
