package pipeline

import (
	"context"

	"github.com/jonesrussell/north-cloud/lead-engine/internal/domain"
	"github.com/jonesrussell/north-cloud/lead-engine/internal/source"
)

// sourceFetcher adapts a source.Fetcher to the SignalFetcher interface.
type sourceFetcher struct {
	fetcher *source.Fetcher
}

// NewSourceFetcher wraps the adapter fan-out fetcher for pipeline use.
func NewSourceFetcher(f *source.Fetcher) SignalFetcher {
	return &sourceFetcher{fetcher: f}
}

func (s *sourceFetcher) FetchAll(ctx context.Context) ([]domain.Signal, []FetchOutcome) {
	signals, results := s.fetcher.FetchAll(ctx)
	outcomes := make([]FetchOutcome, 0, len(results))
	for _, res := range results {
		outcomes = append(outcomes, FetchOutcome{Source: res.Source, Err: res.Err})
	}
	return signals, outcomes
}
