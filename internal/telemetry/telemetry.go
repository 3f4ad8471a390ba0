// Package telemetry provides OpenTelemetry instrumentation for the
// lead-engine service. It exports Prometheus metrics and provides tracing
// capabilities.
package telemetry

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "lead-engine"

// Metrics holds all lead-engine Prometheus metrics
type Metrics struct {
	// Signal intake metrics
	SignalsProcessed *prometheus.CounterVec
	SignalsDropped   *prometheus.CounterVec
	FetchFailures    *prometheus.CounterVec

	// Lead metrics
	LeadsCreated *prometheus.CounterVec
	LeadScores   prometheus.Histogram

	// Batch metrics
	BatchDuration prometheus.Histogram
	BatchLeads    prometheus.Histogram

	// Notification metrics
	NotifyFailures prometheus.Counter
}

// Provider wraps telemetry providers
type Provider struct {
	Tracer  trace.Tracer
	Metrics *Metrics
}

// NewProvider initializes telemetry with Prometheus metrics
func NewProvider() *Provider {
	return &Provider{
		Tracer:  otel.Tracer(serviceName),
		Metrics: initMetrics(),
	}
}

// Handler returns the Prometheus HTTP handler for /metrics endpoint
func (p *Provider) Handler() http.Handler {
	return promhttp.Handler()
}

func initMetrics() *Metrics {
	m := &Metrics{}

	m.SignalsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lead_engine_signals_processed_total",
		Help: "Total signals that produced a lead, by signal type",
	}, []string{"signal_type"})

	m.SignalsDropped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lead_engine_signals_dropped_total",
		Help: "Total signals dropped before becoming leads, by reason",
	}, []string{"reason"})

	m.FetchFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lead_engine_fetch_failures_total",
		Help: "Total source fetch failures",
	}, []string{"source"})

	m.LeadsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lead_engine_leads_created_total",
		Help: "Total leads persisted, by intent strength",
	}, []string{"intent"})

	m.LeadScores = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "lead_engine_lead_score",
		Help:    "Distribution of scores for created leads",
		Buckets: []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
	})

	m.BatchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "lead_engine_batch_duration_seconds",
		Help:    "Time to run one full pipeline batch",
		Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
	})

	m.BatchLeads = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "lead_engine_batch_leads",
		Help:    "Number of leads created per batch",
		Buckets: []float64{0, 1, 2, 5, 10, 25, 50, 100},
	})

	m.NotifyFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lead_engine_notify_failures_total",
		Help: "Total lead alert emails that failed to send",
	})

	return m
}

// SignalProcessed records a signal that made it through the pipeline.
func (p *Provider) SignalProcessed(signalType string) {
	label := signalType
	if label == "" {
		label = "unknown"
	}
	p.Metrics.SignalsProcessed.WithLabelValues(label).Inc()
}

// SignalDropped records a dropped signal with its drop reason.
func (p *Provider) SignalDropped(reason string) {
	p.Metrics.SignalsDropped.WithLabelValues(reason).Inc()
}

// LeadCreated records a persisted lead by intent strength.
func (p *Provider) LeadCreated(intent string) {
	p.Metrics.LeadsCreated.WithLabelValues(intent).Inc()
}

// RecordLeadScore records the score of a created lead.
func (p *Provider) RecordLeadScore(score float64) {
	p.Metrics.LeadScores.Observe(score)
}

// BatchCompleted records a finished pipeline batch.
func (p *Provider) BatchCompleted(duration time.Duration, leads int) {
	p.Metrics.BatchDuration.Observe(duration.Seconds())
	p.Metrics.BatchLeads.Observe(float64(leads))
}

// NotifyFailed records a failed lead alert send.
func (p *Provider) NotifyFailed() {
	p.Metrics.NotifyFailures.Inc()
}

// FetchFailed records a source that failed to fetch.
func (p *Provider) FetchFailed(source string) {
	p.Metrics.FetchFailures.WithLabelValues(source).Inc()
}

// StartSpan starts a new trace span.
// The caller is responsible for ending the span with span.End().
//
//nolint:spancheck // Caller is responsible for ending the span
func (p *Provider) StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	ctx, span := p.Tracer.Start(ctx, name, trace.WithAttributes(attrs...))
	return ctx, span
}
