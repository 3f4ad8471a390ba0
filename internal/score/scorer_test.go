package score_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonesrussell/north-cloud/lead-engine/internal/domain"
	"github.com/jonesrussell/north-cloud/lead-engine/internal/score"
)

func newTestScorer() *score.Scorer {
	return score.NewScorer(score.Config{
		UrgencyKeywords: []string{"urgent", "immediate", "tender"},
		UrgencyBonus:    10,
		HighThreshold:   70,
		MediumThreshold: 40,
	})
}

func recs(confidences ...float64) []domain.ProductRecommendation {
	out := make([]domain.ProductRecommendation, 0, len(confidences))
	for _, c := range confidences {
		out = append(out, domain.ProductRecommendation{Product: "X", Confidence: c})
	}
	return out
}

func TestScore(t *testing.T) {
	s := newTestScorer()

	tests := []struct {
		name       string
		urgency    []string
		recs       []domain.ProductRecommendation
		wantScore  float64
		wantIntent domain.IntentStrength
	}{
		{
			name:       "base score is max confidence times 100",
			recs:       recs(0.5, 0.9, 0.3),
			wantScore:  90,
			wantIntent: domain.IntentHigh,
		},
		{
			name:       "urgency keywords add fixed bonus",
			urgency:    []string{"urgent"},
			recs:       recs(0.5),
			wantScore:  60,
			wantIntent: domain.IntentMedium,
		},
		{
			name:       "total capped at 100",
			urgency:    []string{"urgent", "immediate", "tender"},
			recs:       recs(0.9),
			wantScore:  100,
			wantIntent: domain.IntentHigh,
		},
		{
			name:       "duplicate urgency keyword counts once",
			urgency:    []string{"urgent", "URGENT"},
			recs:       recs(0.4),
			wantScore:  50,
			wantIntent: domain.IntentMedium,
		},
		{
			name:       "unknown urgency words add nothing",
			urgency:    []string{"quickly", "fast"},
			recs:       recs(0.4),
			wantScore:  40,
			wantIntent: domain.IntentMedium,
		},
		{
			name:       "no recommendations scores zero",
			wantScore:  0,
			wantIntent: domain.IntentLow,
		},
		{
			name:       "high boundary is inclusive",
			recs:       recs(0.7),
			wantScore:  70,
			wantIntent: domain.IntentHigh,
		},
		{
			name:       "medium boundary is inclusive",
			recs:       recs(0.4),
			wantScore:  40,
			wantIntent: domain.IntentMedium,
		},
		{
			name:       "below medium is low",
			recs:       recs(0.39),
			wantScore:  39,
			wantIntent: domain.IntentLow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotScore, gotIntent := s.Score(tt.urgency, tt.recs)
			assert.InDelta(t, tt.wantScore, gotScore, 0.001)
			assert.Equal(t, tt.wantIntent, gotIntent)
		})
	}
}

func TestScoreIsDeterministic(t *testing.T) {
	s := newTestScorer()
	urgency := []string{"urgent", "tender"}
	recommendations := recs(0.6, 0.8)

	firstScore, firstIntent := s.Score(urgency, recommendations)
	for range 10 {
		gotScore, gotIntent := s.Score(urgency, recommendations)
		assert.Equal(t, firstScore, gotScore)
		assert.Equal(t, firstIntent, gotIntent)
	}
}

func TestUrgencyDays(t *testing.T) {
	s := newTestScorer()

	assert.Equal(t, 30, s.UrgencyDays(nil))
	assert.Equal(t, 7, s.UrgencyDays([]string{"urgent"}))
	assert.Equal(t, 3, s.UrgencyDays([]string{"urgent", "tender"}))
}

func TestNextAction(t *testing.T) {
	assert.Contains(t, score.NextAction(domain.IntentHigh, domain.SignalTypeTender), "tender")
	assert.Contains(t, score.NextAction(domain.IntentHigh, domain.SignalTypeNews), "24 hours")
	assert.Contains(t, score.NextAction(domain.IntentMedium, domain.SignalTypeNews), "brochure")
	assert.Contains(t, score.NextAction(domain.IntentLow, domain.SignalTypeNews), "nurture")
}
