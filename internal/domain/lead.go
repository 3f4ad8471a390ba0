package domain

import (
	"fmt"
	"sort"
	"time"
)

// ProductRecommendation is a value object owned by exactly one lead.
// Ordering by descending confidence is significant: the top entries are
// what the dashboard shows.
type ProductRecommendation struct {
	Product    string  `json:"product"`
	Confidence float64 `json:"confidence"`
	Reason     string  `json:"reason"`
}

// IntentStrength is the categorical urgency label derived from the lead score.
type IntentStrength string

const (
	IntentLow    IntentStrength = "low"
	IntentMedium IntentStrength = "medium"
	IntentHigh   IntentStrength = "high"
)

// LeadStatus tracks the sales workflow state of a lead. Transitions are
// monotonic: new → contacted → qualified → converted.
type LeadStatus string

const (
	StatusNew       LeadStatus = "new"
	StatusContacted LeadStatus = "contacted"
	StatusQualified LeadStatus = "qualified"
	StatusConverted LeadStatus = "converted"
)

// statusRank orders lead statuses for monotonic transition checks.
var statusRank = map[LeadStatus]int{
	StatusNew:       0,
	StatusContacted: 1,
	StatusQualified: 2,
	StatusConverted: 3,
}

// ValidStatus reports whether s is a known lead status.
func ValidStatus(s LeadStatus) bool {
	_, ok := statusRank[s]
	return ok
}

// ValidTransition reports whether moving from one status to another is
// allowed. Staying on the same status is not a transition.
func ValidTransition(from, to LeadStatus) bool {
	fromRank, ok := statusRank[from]
	if !ok {
		return false
	}
	toRank, ok := statusRank[to]
	if !ok {
		return false
	}
	return toRank > fromRank
}

// Lead is a persisted, scored sales opportunity derived from one signal.
// A lead always references exactly one company and carries at least one
// product recommendation.
type Lead struct {
	ID        int64  `db:"id"         json:"id"`
	CompanyID int64  `db:"company_id" json:"company_id"`
	DedupKey  string `db:"dedup_key"  json:"dedup_key"`

	SignalText string `db:"signal_text" json:"signal_text"`
	SignalURL  string `db:"signal_url"  json:"signal_url,omitempty"`
	SignalType string `db:"signal_type" json:"signal_type"`

	Keywords            []string                `db:"keywords"             json:"keywords"`
	RecommendedProducts []ProductRecommendation `db:"recommended_products" json:"recommended_products"`

	LeadScore      float64        `db:"lead_score"      json:"lead_score"`
	IntentStrength IntentStrength `db:"intent_strength" json:"intent_strength"`
	UrgencyDays    int            `db:"urgency_days"    json:"urgency_days"`
	NextAction     string         `db:"next_action"     json:"next_action"`
	TerritoryState string         `db:"territory_state" json:"territory_state,omitempty"`

	Status    LeadStatus `db:"status"     json:"status"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
}

// Validate checks the persisted-lead invariants: a company reference, a
// non-empty recommendation list, and a score within range.
func (l *Lead) Validate() error {
	if l.CompanyID == 0 {
		return fmt.Errorf("lead has no company reference")
	}
	if len(l.RecommendedProducts) == 0 {
		return fmt.Errorf("lead has no product recommendations")
	}
	if l.LeadScore < 0 || l.LeadScore > 100 {
		return fmt.Errorf("lead score %.2f out of range [0,100]", l.LeadScore)
	}
	if !sort.SliceIsSorted(l.RecommendedProducts, func(i, j int) bool {
		a, b := l.RecommendedProducts[i], l.RecommendedProducts[j]
		if a.Confidence != b.Confidence {
			return a.Confidence > b.Confidence
		}
		return a.Product < b.Product
	}) {
		return fmt.Errorf("recommendations not sorted by confidence desc, product asc")
	}
	return nil
}

// TopRecommendation returns the highest-confidence recommendation.
// Callers must have validated the lead first.
func (l *Lead) TopRecommendation() ProductRecommendation {
	return l.RecommendedProducts[0]
}
