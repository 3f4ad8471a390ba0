package source

import (
	"context"
	"time"

	"github.com/jonesrussell/north-cloud/lead-engine/internal/domain"
)

// DemoAdapter emits a fixed set of realistic tender and news signals so the
// full pipeline can be exercised without network access.
type DemoAdapter struct{}

// NewDemoAdapter creates the demo source.
func NewDemoAdapter() *DemoAdapter { return &DemoAdapter{} }

// Name implements Adapter.
func (a *DemoAdapter) Name() string { return "demo" }

// Fetch returns the canned signal set.
func (a *DemoAdapter) Fetch(_ context.Context) ([]domain.Signal, error) {
	now := time.Now().UTC()

	type sample struct {
		text       string
		url        string
		signalType string
	}
	samples := []sample{
		{
			text: "NTPC Rihand invites tenders for supply of 5000 MT Furnace Oil for boiler operations. " +
				"Requirement for power generation unit. Delivery required by March 2026.",
			url:        "https://gem.gov.in/tender/NTPC-2026-FO-001",
			signalType: domain.SignalTypeTender,
		},
		{
			text: "Indian Railways Central Organization for Railway Electrification requires 10000 liters " +
				"HSD for DG sets and construction equipment at various project sites.",
			url:        "https://gem.gov.in/tender/CORE-2026-HSD-045",
			signalType: domain.SignalTypeTender,
		},
		{
			text: "L&T Metro Rail Project Bangalore requires Bitumen VG-30 grade 500 MT for road construction " +
				"and surface works. Part of Phase 3 metro expansion project.",
			url:        "https://gem.gov.in/tender/LT-BMRCL-2026-089",
			signalType: domain.SignalTypeTender,
		},
		{
			text: "GSRDC invites bids for supply of Bitumen emulsion 2500 MT for state highway maintenance " +
				"and new road projects in Gujarat. Urgent requirement, immediate delivery.",
			url:        "https://gem.gov.in/tender/GSRDC-2026-BE-234",
			signalType: domain.SignalTypeTender,
		},
		{
			text: "Marico edible oil division requires Food Grade Hexane 50000 liters for solvent extraction " +
				"plant. ISO certified supplier required for ongoing contract.",
			url:        "https://gem.gov.in/tender/MARICO-2026-HEX-012",
			signalType: domain.SignalTypeTender,
		},
		{
			text: "Adani Power announces 1600 MW thermal power plant expansion in Chhattisgarh. Project " +
				"requires continuous fuel oil supply for next 3 years. Construction to begin March 2026.",
			url:        "https://economictimes.indiatimes.com/industry/energy/adani-power-expansion",
			signalType: domain.SignalTypeNews,
		},
		{
			text: "JSW Steel plans major expansion of Vijayanagar plant. New blast furnaces to be " +
				"commissioned requiring increased diesel and industrial fuel supplies.",
			url:        "https://economictimes.indiatimes.com/industry/metals/jsw-steel-expansion",
			signalType: domain.SignalTypeNews,
		},
		{
			text: "UltraTech to set up 3 new grinding units across North India with combined capacity of " +
				"6 MTPA. Project involves significant diesel requirement for construction and operations.",
			url:        "https://economictimes.indiatimes.com/industry/cement/ultratech-expansion",
			signalType: domain.SignalTypeNews,
		},
	}

	signals := make([]domain.Signal, 0, len(samples))
	for _, s := range samples {
		signals = append(signals, domain.Signal{
			Source:       a.Name(),
			RawText:      s.text,
			URL:          s.url,
			SignalType:   s.signalType,
			DiscoveredAt: now,
		})
	}
	return signals, nil
}
