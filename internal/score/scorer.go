// Package score ranks leads on a 0-100 scale from their recommendations
// and urgency markers.
package score

import (
	"strings"

	"github.com/jonesrussell/north-cloud/lead-engine/internal/domain"
)

// Config holds the scoring weights and thresholds.
type Config struct {
	// UrgencyKeywords each add UrgencyBonus when present in the signal's
	// keyword set.
	UrgencyKeywords []string
	UrgencyBonus    float64
	// HighThreshold and MediumThreshold split scores into intent bands.
	HighThreshold   float64
	MediumThreshold float64
}

// Scorer computes lead scores. Score is a pure function: identical inputs
// always produce identical outputs.
type Scorer struct {
	cfg     Config
	urgency map[string]bool
}

// NewScorer creates a scorer with the given weights.
func NewScorer(cfg Config) *Scorer {
	urgency := make(map[string]bool, len(cfg.UrgencyKeywords))
	for _, kw := range cfg.UrgencyKeywords {
		urgency[strings.ToLower(strings.TrimSpace(kw))] = true
	}
	return &Scorer{cfg: cfg, urgency: urgency}
}

// Score computes the lead score and intent band. Base score is 100 times
// the maximum recommendation confidence; each urgency keyword present
// adds a fixed bonus; the total is capped at 100.
func (s *Scorer) Score(
	urgencyKeywords []string,
	recommendations []domain.ProductRecommendation,
) (float64, domain.IntentStrength) {
	maxConfidence := 0.0
	for _, rec := range recommendations {
		if rec.Confidence > maxConfidence {
			maxConfidence = rec.Confidence
		}
	}

	score := 100 * maxConfidence
	seen := make(map[string]bool)
	for _, kw := range urgencyKeywords {
		norm := strings.ToLower(strings.TrimSpace(kw))
		if s.urgency[norm] && !seen[norm] {
			seen[norm] = true
			score += s.cfg.UrgencyBonus
		}
	}
	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}

	return score, s.intent(score)
}

func (s *Scorer) intent(score float64) domain.IntentStrength {
	switch {
	case score >= s.cfg.HighThreshold:
		return domain.IntentHigh
	case score >= s.cfg.MediumThreshold:
		return domain.IntentMedium
	default:
		return domain.IntentLow
	}
}

// UrgencyDays estimates how soon the lead needs action from its urgency
// markers: more markers means a shorter window.
func (s *Scorer) UrgencyDays(urgencyKeywords []string) int {
	count := 0
	for _, kw := range urgencyKeywords {
		if s.urgency[strings.ToLower(strings.TrimSpace(kw))] {
			count++
		}
	}
	switch {
	case count >= 2:
		return 3
	case count == 1:
		return 7
	default:
		return 30
	}
}

// NextAction suggests the follow-up step for a lead based on its intent
// band and signal type.
func NextAction(intent domain.IntentStrength, signalType string) string {
	if signalType == domain.SignalTypeTender {
		return "Review tender documents and submit bid before closing date"
	}
	switch intent {
	case domain.IntentHigh:
		return "Call decision maker within 24 hours"
	case domain.IntentMedium:
		return "Send product brochure and schedule follow-up call"
	default:
		return "Add to nurture campaign and monitor for stronger signals"
	}
}
