package pipeline

import "time"

// DropReason classifies why a signal did not become a lead.
type DropReason string

const (
	DropAlreadySeen       DropReason = "already_seen"
	DropIrrelevant        DropReason = "irrelevant"
	DropNoCompany         DropReason = "no_company"
	DropNoKeywords        DropReason = "no_keywords"
	DropNoRecommendations DropReason = "no_recommendations"
	DropLowScore          DropReason = "low_score"
	DropProcessingError   DropReason = "processing_error"
	DropPersistFailed     DropReason = "persist_failed"
)

// BatchResult summarizes one orchestrator run.
type BatchResult struct {
	RunID        string             `json:"run_id"`
	StartedAt    time.Time          `json:"started_at"`
	FinishedAt   time.Time          `json:"finished_at"`
	Fetched      int                `json:"fetched"`
	LeadsCreated int                `json:"leads_created"`
	Dropped      map[DropReason]int `json:"dropped"`
	SourceErrors map[string]string  `json:"source_errors,omitempty"`
}

// newBatchResult creates an empty result for a run.
func newBatchResult(runID string, start time.Time) *BatchResult {
	return &BatchResult{
		RunID:        runID,
		StartedAt:    start,
		Dropped:      make(map[DropReason]int),
		SourceErrors: make(map[string]string),
	}
}

// DroppedTotal sums drops across all reasons.
func (r *BatchResult) DroppedTotal() int {
	total := 0
	for _, n := range r.Dropped {
		total += n
	}
	return total
}
