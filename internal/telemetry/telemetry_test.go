package telemetry_test

import (
	"sync"
	"testing"
	"time"

	"github.com/jonesrussell/north-cloud/lead-engine/internal/pipeline"
	"github.com/jonesrussell/north-cloud/lead-engine/internal/telemetry"
)

// providerOnce ensures we only create one Provider per test run to avoid
// duplicate Prometheus metric registration errors from promauto's global registry
var (
	testProvider *telemetry.Provider
	providerOnce sync.Once
)

func getTestProvider(t *testing.T) *telemetry.Provider {
	t.Helper()
	providerOnce.Do(func() {
		testProvider = telemetry.NewProvider()
	})
	return testProvider
}

func TestNewProvider(t *testing.T) {
	provider := getTestProvider(t)
	if provider == nil {
		t.Fatal("expected non-nil provider")
	}
	if provider.Tracer == nil {
		t.Error("expected non-nil tracer")
	}
	if provider.Metrics == nil {
		t.Error("expected non-nil metrics")
	}
}

func TestProviderSatisfiesPipelineMetrics(t *testing.T) {
	var _ pipeline.Metrics = getTestProvider(t)
}

func TestRecordSignalMetrics(t *testing.T) {
	provider := getTestProvider(t)

	// Should not panic
	provider.SignalProcessed("tender")
	provider.SignalProcessed("")
	provider.SignalDropped("already_seen")
	provider.FetchFailed("gem-portal")
}

func TestRecordLeadMetrics(t *testing.T) {
	provider := getTestProvider(t)

	// Should not panic
	provider.LeadCreated("high")
	provider.RecordLeadScore(85)
	provider.BatchCompleted(2*time.Second, 3)
	provider.NotifyFailed()
}

func TestHandler(t *testing.T) {
	provider := getTestProvider(t)
	if provider.Handler() == nil {
		t.Error("expected non-nil metrics handler")
	}
}
