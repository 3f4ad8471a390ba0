package cmd

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jonesrussell/north-cloud/lead-engine/internal/cache"
	"github.com/jonesrussell/north-cloud/lead-engine/internal/config"
	"github.com/jonesrussell/north-cloud/lead-engine/internal/database"
	"github.com/jonesrussell/north-cloud/lead-engine/internal/extract"
	"github.com/jonesrussell/north-cloud/lead-engine/internal/infer"
	"github.com/jonesrussell/north-cloud/lead-engine/internal/logger"
	"github.com/jonesrussell/north-cloud/lead-engine/internal/notify"
	"github.com/jonesrussell/north-cloud/lead-engine/internal/pipeline"
	"github.com/jonesrussell/north-cloud/lead-engine/internal/resolve"
	"github.com/jonesrussell/north-cloud/lead-engine/internal/score"
	"github.com/jonesrussell/north-cloud/lead-engine/internal/source"
	"github.com/jonesrussell/north-cloud/lead-engine/internal/storage"
	"github.com/jonesrussell/north-cloud/lead-engine/internal/telemetry"
)

const serviceVersion = "1.0.0"

// Deps holds everything a command needs to run the pipeline.
type Deps struct {
	Cfg          *config.Config
	Log          logger.Logger
	DB           *sqlx.DB
	Store        *database.Store
	Orchestrator *pipeline.Orchestrator
	Telemetry    *telemetry.Provider

	dedupCache *cache.DedupCache
}

// Close releases held connections. Safe to call once, typically deferred
// right after buildDeps succeeds.
func (d *Deps) Close() {
	if d.dedupCache != nil {
		if err := d.dedupCache.Close(); err != nil {
			d.Log.Warn("Failed to close dedup cache", logger.Error(err))
		}
	}
	if d.DB != nil {
		if err := d.DB.Close(); err != nil {
			d.Log.Warn("Failed to close database", logger.Error(err))
		}
	}
	_ = d.Log.Sync()
}

// buildDeps loads configuration and wires the full pipeline: sources,
// extraction, resolution, inference, scoring, persistence, and the
// optional cache, search index, and notifier.
func buildDeps(ctx context.Context) (*Deps, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if debug {
		cfg.Service.Debug = true
		cfg.Logging.Level = "debug"
	}

	log, err := logger.New(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	db, err := database.NewPostgresConnection(cfg.Database.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.EnsureSchema(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ensure schema: %w", err)
	}
	store := database.NewStore(db)

	deps := &Deps{
		Cfg:       cfg,
		Log:       log,
		DB:        db,
		Store:     store,
		Telemetry: telemetry.NewProvider(),
	}

	fetcher, err := buildFetcher(cfg, log)
	if err != nil {
		deps.Close()
		return nil, err
	}

	rules := cfg.Inference.Rules
	if len(rules) == 0 {
		rules = infer.DefaultRules()
	}
	engine := infer.NewEngine(rules, cfg.Inference.ConfidenceFloor)

	urgencyKeywords := cfg.Scoring.UrgencyKeywords
	if len(urgencyKeywords) == 0 {
		urgencyKeywords = infer.DefaultUrgencyKeywords()
	}
	states := cfg.Extraction.States
	if len(states) == 0 {
		states = infer.DefaultStates()
	}
	knownCompanies := cfg.Extraction.KnownCompanies
	if len(knownCompanies) == 0 {
		knownCompanies = infer.DefaultKnownCompanies()
	}

	extractor := extract.New(extract.Config{
		ProductKeywords: engine.Keywords(),
		UrgencyKeywords: urgencyKeywords,
		States:          states,
		KnownCompanies:  knownCompanies,
	})

	resolver := resolve.NewResolver(store, cfg.Resolver.MatchThreshold, log)

	scorer := score.NewScorer(score.Config{
		UrgencyKeywords: urgencyKeywords,
		UrgencyBonus:    cfg.Scoring.UrgencyBonus,
		HighThreshold:   cfg.Scoring.HighThreshold,
		MediumThreshold: cfg.Scoring.MediumThreshold,
	})

	opts := []pipeline.Option{
		pipeline.WithMetrics(deps.Telemetry),
		pipeline.WithTracer(deps.Telemetry.Tracer),
	}

	if cfg.Redis.Enabled() {
		dedupCache, cacheErr := cache.NewDedupCache(cache.Config{
			Address:  cfg.Redis.Address,
			Password: cfg.Redis.Password,
			Database: cfg.Redis.Database,
			Timeout:  cfg.Redis.Timeout,
			TTL:      cfg.Redis.CacheTTL,
		})
		if cacheErr != nil {
			deps.Close()
			return nil, fmt.Errorf("failed to connect dedup cache: %w", cacheErr)
		}
		deps.dedupCache = dedupCache
		opts = append(opts, pipeline.WithDedupCache(dedupCache))
		log.Info("Signal dedup cache enabled", logger.String("address", cfg.Redis.Address))
	}

	if cfg.Elasticsearch.Enabled() {
		esClient, esErr := storage.NewClient(
			cfg.Elasticsearch.URL, cfg.Elasticsearch.Username, cfg.Elasticsearch.Password)
		if esErr != nil {
			deps.Close()
			return nil, fmt.Errorf("failed to create elasticsearch client: %w", esErr)
		}
		leadIndex := storage.NewLeadIndex(esClient, cfg.Elasticsearch.LeadIndex)
		if ensureErr := leadIndex.EnsureIndex(ctx); ensureErr != nil {
			log.Warn("Failed to ensure lead index, indexing may fail", logger.Error(ensureErr))
		}
		opts = append(opts, pipeline.WithLeadIndexer(leadIndex))
		log.Info("Lead search indexing enabled", logger.String("index", cfg.Elasticsearch.LeadIndex))
	}

	if cfg.Notifications.Enabled() {
		opts = append(opts, pipeline.WithNotifier(notify.NewEmailNotifier(cfg.Notifications, log)))
		log.Info("Lead alert notifications enabled", logger.String("smtp", cfg.Notifications.SMTPHost))
	}

	deps.Orchestrator = pipeline.NewOrchestrator(
		pipeline.NewSourceFetcher(fetcher),
		extractor,
		resolver,
		engine,
		scorer,
		store,
		log,
		pipeline.Config{MinLeadScore: cfg.Scoring.MinLeadScore},
		opts...,
	)

	return deps, nil
}

// buildFetcher registers all configured source adapters.
func buildFetcher(cfg *config.Config, log logger.Logger) (*source.Fetcher, error) {
	registry := source.NewRegistry()
	client := source.NewClient(cfg.Sources.FetchTimeout, cfg.Sources.UserAgent, cfg.Sources.FetchRPS)

	relevant := cfg.Sources.RelevantKeywords
	if len(relevant) == 0 {
		relevant = infer.DefaultRelevanceKeywords()
	}

	if cfg.Sources.DemoEnabled {
		if err := registry.Register(source.NewDemoAdapter()); err != nil {
			return nil, fmt.Errorf("failed to register demo source: %w", err)
		}
	}
	for _, feed := range cfg.Sources.Feeds {
		adapter := source.NewRSSAdapter(feed.Name, feed.URL, client, cfg.Sources.ItemsPerFeed, relevant)
		if err := registry.Register(adapter); err != nil {
			return nil, fmt.Errorf("failed to register feed %q: %w", feed.Name, err)
		}
	}
	for _, tender := range cfg.Sources.Tenders {
		adapter := source.NewTenderAdapter(tender.Name, tender.URL, tender.RowSelector, client, relevant)
		if err := registry.Register(adapter); err != nil {
			return nil, fmt.Errorf("failed to register tender source %q: %w", tender.Name, err)
		}
	}

	return source.NewFetcher(registry, log), nil
}
