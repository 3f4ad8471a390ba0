package source

import (
	"context"
	"sync"

	"github.com/jonesrussell/north-cloud/lead-engine/internal/domain"
	"github.com/jonesrussell/north-cloud/lead-engine/internal/logger"
)

// FetchResult is the outcome of fetching one source.
type FetchResult struct {
	Source  string
	Signals []domain.Signal
	Err     error
}

// Fetcher fans out across all registered adapters concurrently and gathers
// their signals. One failing source never blocks the others.
type Fetcher struct {
	registry *Registry
	log      logger.Logger
}

// NewFetcher creates a fetcher over the given registry.
func NewFetcher(registry *Registry, log logger.Logger) *Fetcher {
	return &Fetcher{registry: registry, log: log}
}

// FetchAll fetches every source concurrently and returns the combined
// signals in registration order, plus the per-source outcomes. Sources
// that fail contribute no signals; their error is recorded and logged.
func (f *Fetcher) FetchAll(ctx context.Context) ([]domain.Signal, []FetchResult) {
	adapters := f.registry.Adapters()
	results := make([]FetchResult, len(adapters))

	var wg sync.WaitGroup
	for i, adapter := range adapters {
		wg.Add(1)
		go func(i int, adapter Adapter) {
			defer wg.Done()
			signals, err := adapter.Fetch(ctx)
			results[i] = FetchResult{Source: adapter.Name(), Signals: signals, Err: err}
		}(i, adapter)
	}
	wg.Wait()

	var combined []domain.Signal
	for _, res := range results {
		if res.Err != nil {
			f.log.Warn("source fetch failed",
				logger.String("source", res.Source),
				logger.Error(res.Err))
			continue
		}
		f.log.Debug("source fetched",
			logger.String("source", res.Source),
			logger.Int("signals", len(res.Signals)))
		combined = append(combined, res.Signals...)
	}
	return combined, results
}
