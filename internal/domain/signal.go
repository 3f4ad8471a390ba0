package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
	"unicode"
)

// Signal represents a raw piece of text (news excerpt, tender notice)
// considered as a candidate lead source. Signals are immutable once created.
type Signal struct {
	// Source is the adapter name the signal came from (e.g. "economic_times").
	Source string `json:"source"`
	// RawText is the combined title + summary text of the signal.
	RawText string `json:"raw_text"`
	// URL is the link to the original item; may be empty for demo sources.
	URL string `json:"url"`
	// SignalType distinguishes news from tender signals.
	SignalType string `json:"signal_type"`

	PublishedAt  *time.Time `json:"published_at,omitempty"`
	DiscoveredAt time.Time  `json:"discovered_at"`
}

// Signal type constants.
const (
	SignalTypeNews   = "news"
	SignalTypeTender = "tender"
)

// DedupKey derives the stable identity of a signal. It hashes (source, url)
// when a URL is present, falling back to the normalized signal text so that
// URL-less demo records still deduplicate.
func (s *Signal) DedupKey() string {
	if s.URL != "" {
		return hashKey(s.Source + "|" + s.URL)
	}
	return hashKey(s.Source + "|" + normalizeForHash(s.RawText))
}

func hashKey(input string) string {
	sum := sha256.Sum256([]byte(input))
	return hex.EncodeToString(sum[:])
}

// normalizeForHash lowercases and collapses all non-alphanumeric runs so
// trivial whitespace or punctuation differences do not defeat dedup.
func normalizeForHash(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	lastSpace := true
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastSpace = false
		} else if !lastSpace {
			b.WriteByte(' ')
			lastSpace = true
		}
	}
	return strings.TrimSpace(b.String())
}
