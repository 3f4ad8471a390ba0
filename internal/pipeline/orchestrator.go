// Package pipeline orchestrates the signal-to-lead flow: fetched signals
// are deduplicated, extracted, resolved to companies, scored and persisted
// as leads, with per-signal failure isolation.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/jonesrussell/north-cloud/lead-engine/internal/domain"
	"github.com/jonesrussell/north-cloud/lead-engine/internal/extract"
	"github.com/jonesrussell/north-cloud/lead-engine/internal/infer"
	"github.com/jonesrussell/north-cloud/lead-engine/internal/logger"
	"github.com/jonesrussell/north-cloud/lead-engine/internal/score"
)

// Store is the persistence surface the orchestrator writes through.
type Store interface {
	// SignalSeen reports whether a dedup key was already processed.
	SignalSeen(ctx context.Context, dedupKey string) (bool, error)
	// MarkSignalSeen durably records a processed dedup key.
	MarkSignalSeen(ctx context.Context, signal *domain.Signal, dedupKey string) error
	// SaveLead persists a lead and fills in its ID.
	SaveLead(ctx context.Context, lead *domain.Lead) error
}

// CompanyResolver maps a candidate name to a company record.
type CompanyResolver interface {
	Resolve(ctx context.Context, candidate string) (*domain.Company, error)
}

// Notifier delivers lead alerts. Called exactly once per persisted lead,
// only after the lead is durably committed.
type Notifier interface {
	Notify(ctx context.Context, lead *domain.Lead, company *domain.Company) error
}

// DedupCache is an optional fast path in front of Store.SignalSeen.
type DedupCache interface {
	Seen(ctx context.Context, dedupKey string) (bool, error)
	MarkSeen(ctx context.Context, dedupKey string) error
}

// LeadIndexer mirrors persisted leads into a search index. Indexing
// failures never affect the lead's persistence.
type LeadIndexer interface {
	IndexLead(ctx context.Context, lead *domain.Lead, company *domain.Company) error
}

// SignalFetcher produces the batch input.
type SignalFetcher interface {
	FetchAll(ctx context.Context) ([]domain.Signal, []FetchOutcome)
}

// FetchOutcome reports one source's fetch result.
type FetchOutcome struct {
	Source string
	Err    error
}

// Metrics records pipeline telemetry. All methods must be safe to call
// with a nil receiver guard upstream; the orchestrator always checks.
type Metrics interface {
	SignalProcessed(signalType string)
	SignalDropped(reason string)
	LeadCreated(intent string)
	RecordLeadScore(score float64)
	BatchCompleted(duration time.Duration, leads int)
	NotifyFailed()
	FetchFailed(source string)
}

// Config holds the orchestrator's tunables.
type Config struct {
	// MinLeadScore drops leads scoring below this floor.
	MinLeadScore float64
}

// Orchestrator runs the batch pipeline. Fetch fans out per source; the
// extract-resolve-score-persist stage is strictly sequential because the
// resolver reads then writes the company directory.
type Orchestrator struct {
	fetcher   SignalFetcher
	extractor *extract.Extractor
	resolver  CompanyResolver
	engine    *infer.Engine
	scorer    *score.Scorer
	store     Store
	cache     DedupCache
	indexer   LeadIndexer
	notifier  Notifier
	metrics   Metrics
	tracer    trace.Tracer
	log       logger.Logger
	cfg       Config

	lastResult *BatchResult
}

// Option configures optional orchestrator collaborators.
type Option func(*Orchestrator)

// WithDedupCache installs a dedup fast path.
func WithDedupCache(cache DedupCache) Option {
	return func(o *Orchestrator) { o.cache = cache }
}

// WithLeadIndexer installs search-index mirroring.
func WithLeadIndexer(indexer LeadIndexer) Option {
	return func(o *Orchestrator) { o.indexer = indexer }
}

// WithNotifier installs lead alert delivery.
func WithNotifier(notifier Notifier) Option {
	return func(o *Orchestrator) { o.notifier = notifier }
}

// WithMetrics installs telemetry recording.
func WithMetrics(metrics Metrics) Option {
	return func(o *Orchestrator) { o.metrics = metrics }
}

// WithTracer installs distributed tracing.
func WithTracer(tracer trace.Tracer) Option {
	return func(o *Orchestrator) { o.tracer = tracer }
}

// NewOrchestrator wires the pipeline stages together.
func NewOrchestrator(
	fetcher SignalFetcher,
	extractor *extract.Extractor,
	resolver CompanyResolver,
	engine *infer.Engine,
	scorer *score.Scorer,
	store Store,
	log logger.Logger,
	cfg Config,
	opts ...Option,
) *Orchestrator {
	o := &Orchestrator{
		fetcher:   fetcher,
		extractor: extractor,
		resolver:  resolver,
		engine:    engine,
		scorer:    scorer,
		store:     store,
		log:       log,
		cfg:       cfg,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// RunBatch fetches all sources and processes every signal sequentially.
// One bad signal never aborts the batch; store outages surface as per-signal
// failures rather than a batch error.
func (o *Orchestrator) RunBatch(ctx context.Context) (*BatchResult, error) {
	start := time.Now().UTC()
	runID := uuid.NewString()
	result := newBatchResult(runID, start)

	if o.tracer != nil {
		var span trace.Span
		ctx, span = o.tracer.Start(ctx, "pipeline.run_batch")
		defer span.End()
	}

	o.log.Info("batch run started", logger.String("run_id", runID))

	signals, outcomes := o.fetcher.FetchAll(ctx)
	result.Fetched = len(signals)
	for _, outcome := range outcomes {
		if outcome.Err != nil {
			result.SourceErrors[outcome.Source] = outcome.Err.Error()
			if o.metrics != nil {
				o.metrics.FetchFailed(outcome.Source)
			}
		}
	}

	for i := range signals {
		o.processSignal(ctx, &signals[i], result)
	}

	result.FinishedAt = time.Now().UTC()
	if o.metrics != nil {
		o.metrics.BatchCompleted(result.FinishedAt.Sub(start), result.LeadsCreated)
	}
	o.lastResult = result

	o.log.Info("batch run finished",
		logger.String("run_id", runID),
		logger.Int("fetched", result.Fetched),
		logger.Int("leads_created", result.LeadsCreated),
		logger.Int("dropped", result.DroppedTotal()),
		logger.Duration("duration", result.FinishedAt.Sub(start)))
	return result, nil
}

// LastResult returns the most recent batch result, or nil before the
// first run.
func (o *Orchestrator) LastResult() *BatchResult {
	return o.lastResult
}

// processSignal walks one signal through the state machine. A panic in
// any stage is contained and counted as a processing error.
func (o *Orchestrator) processSignal(ctx context.Context, signal *domain.Signal, result *BatchResult) {
	defer func() {
		if r := recover(); r != nil {
			o.drop(result, signal, DropProcessingError, fmt.Sprintf("panic: %v", r))
		}
	}()

	if o.metrics != nil {
		o.metrics.SignalProcessed(signal.SignalType)
	}

	dedupKey := signal.DedupKey()
	seen, err := o.alreadySeen(ctx, dedupKey)
	if err != nil {
		o.drop(result, signal, DropProcessingError, err.Error())
		return
	}
	if seen {
		o.drop(result, signal, DropAlreadySeen, "")
		return
	}

	extraction := o.extractor.Extract(signal.RawText)
	if extraction.CompanyCandidate == "" {
		o.markSeen(ctx, signal, dedupKey)
		o.drop(result, signal, DropNoCompany, "")
		return
	}
	if len(extraction.Keywords) == 0 {
		o.markSeen(ctx, signal, dedupKey)
		o.drop(result, signal, DropNoKeywords, "")
		return
	}

	company, err := o.resolver.Resolve(ctx, extraction.CompanyCandidate)
	if err != nil {
		o.drop(result, signal, DropProcessingError, err.Error())
		return
	}

	recommendations := o.engine.Infer(extraction.Keywords)
	if len(recommendations) == 0 {
		o.markSeen(ctx, signal, dedupKey)
		o.drop(result, signal, DropNoRecommendations, "")
		return
	}

	leadScore, intent := o.scorer.Score(extraction.UrgencyKeywords, recommendations)
	if leadScore < o.cfg.MinLeadScore {
		o.markSeen(ctx, signal, dedupKey)
		o.drop(result, signal, DropLowScore, fmt.Sprintf("score %.0f", leadScore))
		return
	}

	lead := &domain.Lead{
		CompanyID:           company.ID,
		DedupKey:            dedupKey,
		SignalText:          signal.RawText,
		SignalURL:           signal.URL,
		SignalType:          signal.SignalType,
		Keywords:            extraction.Keywords,
		RecommendedProducts: recommendations,
		LeadScore:           leadScore,
		IntentStrength:      intent,
		UrgencyDays:         o.scorer.UrgencyDays(extraction.UrgencyKeywords),
		NextAction:          score.NextAction(intent, signal.SignalType),
		TerritoryState:      firstOrEmpty(extraction.States),
		Status:              domain.StatusNew,
		CreatedAt:           time.Now().UTC(),
	}

	if err := o.store.SaveLead(ctx, lead); err != nil {
		o.drop(result, signal, DropPersistFailed, err.Error())
		return
	}
	o.markSeen(ctx, signal, dedupKey)

	result.LeadsCreated++
	if o.metrics != nil {
		o.metrics.LeadCreated(string(intent))
		o.metrics.RecordLeadScore(leadScore)
	}
	o.log.Info("lead created",
		logger.Int64("lead_id", lead.ID),
		logger.String("company", company.Name),
		logger.Float64("score", leadScore),
		logger.String("intent", string(intent)))

	// Notification and indexing happen only after the durable commit;
	// their failures never roll back the lead.
	if o.notifier != nil {
		if err := o.notifier.Notify(ctx, lead, company); err != nil {
			if o.metrics != nil {
				o.metrics.NotifyFailed()
			}
			o.log.Error("lead notification failed",
				logger.Int64("lead_id", lead.ID),
				logger.Error(err))
		}
	}
	if o.indexer != nil {
		if err := o.indexer.IndexLead(ctx, lead, company); err != nil {
			o.log.Warn("lead indexing failed",
				logger.Int64("lead_id", lead.ID),
				logger.Error(err))
		}
	}
}

// alreadySeen consults the cache fast path before the store. A cache
// error degrades to the store check.
func (o *Orchestrator) alreadySeen(ctx context.Context, dedupKey string) (bool, error) {
	if o.cache != nil {
		seen, err := o.cache.Seen(ctx, dedupKey)
		if err == nil && seen {
			return true, nil
		}
		if err != nil {
			o.log.Debug("dedup cache read failed", logger.Error(err))
		}
	}
	return o.store.SignalSeen(ctx, dedupKey)
}

// markSeen records a terminal outcome for the dedup key. Transient
// failures (processing errors, persist failures) are deliberately not
// marked so the signal retries next run.
func (o *Orchestrator) markSeen(ctx context.Context, signal *domain.Signal, dedupKey string) {
	if err := o.store.MarkSignalSeen(ctx, signal, dedupKey); err != nil {
		o.log.Warn("failed to record processed signal",
			logger.String("dedup_key", dedupKey),
			logger.Error(err))
		return
	}
	if o.cache != nil {
		if err := o.cache.MarkSeen(ctx, dedupKey); err != nil {
			o.log.Debug("dedup cache write failed", logger.Error(err))
		}
	}
}

func (o *Orchestrator) drop(result *BatchResult, signal *domain.Signal, reason DropReason, detail string) {
	result.Dropped[reason]++
	if o.metrics != nil {
		o.metrics.SignalDropped(string(reason))
	}
	fields := []logger.Field{
		logger.String("source", signal.Source),
		logger.String("reason", string(reason)),
	}
	if detail != "" {
		fields = append(fields, logger.String("detail", detail))
	}
	if reason == DropProcessingError || reason == DropPersistFailed {
		o.log.Error("signal dropped", fields...)
	} else {
		o.log.Debug("signal dropped", fields...)
	}
}

func firstOrEmpty(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
