// Package infer maps extracted keywords onto product recommendations
// using a configurable rule table.
package infer

import (
	"sort"
	"strings"

	"github.com/jonesrussell/north-cloud/lead-engine/internal/domain"
)

// Engine turns keyword sets into ordered product recommendations. It is
// immutable after construction and its Infer method is a pure function.
type Engine struct {
	rules map[string][]domain.InferenceRule
	floor float64
}

// NewEngine builds an engine from the given rule table. Rules with an
// empty keyword or product are skipped. floor is the minimum confidence
// a recommendation needs to survive.
func NewEngine(rules []domain.InferenceRule, floor float64) *Engine {
	byKeyword := make(map[string][]domain.InferenceRule, len(rules))
	for _, rule := range rules {
		kw := strings.ToLower(strings.TrimSpace(rule.Keyword))
		if kw == "" || rule.Product == "" {
			continue
		}
		byKeyword[kw] = append(byKeyword[kw], rule)
	}
	return &Engine{rules: byKeyword, floor: floor}
}

// Keywords returns the distinct keywords the rule table knows, sorted.
// The extractor uses this as its keyword table.
func (e *Engine) Keywords() []string {
	out := make([]string, 0, len(e.rules))
	for kw := range e.rules {
		out = append(out, kw)
	}
	sort.Strings(out)
	return out
}

// Infer emits one recommendation per matched rule, merges recommendations
// for the same product (maximum confidence, distinct reasons joined) and
// returns them sorted by confidence descending, product name ascending.
// Recommendations below the confidence floor are dropped. An empty
// keyword set yields an empty result.
func (e *Engine) Infer(keywords []string) []domain.ProductRecommendation {
	type accum struct {
		confidence float64
		reasons    []string
		seen       map[string]bool
	}
	byProduct := make(map[string]*accum)

	for _, kw := range keywords {
		for _, rule := range e.rules[strings.ToLower(strings.TrimSpace(kw))] {
			acc, ok := byProduct[rule.Product]
			if !ok {
				acc = &accum{seen: make(map[string]bool)}
				byProduct[rule.Product] = acc
			}
			if rule.Confidence > acc.confidence {
				acc.confidence = rule.Confidence
			}
			reason := rule.Reason
			if reason == "" {
				reason = "Mentioned '" + kw + "'"
			}
			if !acc.seen[reason] {
				acc.seen[reason] = true
				acc.reasons = append(acc.reasons, reason)
			}
		}
	}

	recs := make([]domain.ProductRecommendation, 0, len(byProduct))
	for product, acc := range byProduct {
		if acc.confidence < e.floor {
			continue
		}
		sort.Strings(acc.reasons)
		recs = append(recs, domain.ProductRecommendation{
			Product:    product,
			Confidence: acc.confidence,
			Reason:     strings.Join(acc.reasons, "; "),
		})
	}

	sort.Slice(recs, func(i, j int) bool {
		if recs[i].Confidence != recs[j].Confidence {
			return recs[i].Confidence > recs[j].Confidence
		}
		return recs[i].Product < recs[j].Product
	})
	return recs
}
