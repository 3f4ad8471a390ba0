package infer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/north-cloud/lead-engine/internal/domain"
	"github.com/jonesrussell/north-cloud/lead-engine/internal/infer"
)

func testRules() []domain.InferenceRule {
	return []domain.InferenceRule{
		{Keyword: "bitumen", Product: "Bitumen", Confidence: 0.9, Reason: "Mentioned 'bitumen'"},
		{Keyword: "highway", Product: "Bitumen", Confidence: 0.6, Reason: "Industry: highway works"},
		{Keyword: "diesel", Product: "HSD", Confidence: 0.7, Reason: "Mentioned 'diesel'"},
		{Keyword: "generator", Product: "HSD", Confidence: 0.5, Reason: "Equipment: 'generator' detected"},
		{Keyword: "paint", Product: "MTO", Confidence: 0.2, Reason: "Industry: paint"},
	}
}

func TestInferSingleKeyword(t *testing.T) {
	e := infer.NewEngine(testRules(), 0.3)

	recs := e.Infer([]string{"diesel"})
	require.Len(t, recs, 1)
	assert.Equal(t, "HSD", recs[0].Product)
	assert.InDelta(t, 0.7, recs[0].Confidence, 0.001)
	assert.Equal(t, "Mentioned 'diesel'", recs[0].Reason)
}

func TestInferMergesSameProduct(t *testing.T) {
	e := infer.NewEngine(testRules(), 0.3)

	recs := e.Infer([]string{"bitumen", "highway"})
	require.Len(t, recs, 1)
	assert.Equal(t, "Bitumen", recs[0].Product)
	// Maximum confidence wins the merge.
	assert.InDelta(t, 0.9, recs[0].Confidence, 0.001)
	// Distinct reasons are concatenated.
	assert.Contains(t, recs[0].Reason, "Mentioned 'bitumen'")
	assert.Contains(t, recs[0].Reason, "Industry: highway works")
}

func TestInferSortOrder(t *testing.T) {
	rules := []domain.InferenceRule{
		{Keyword: "a", Product: "Zeta", Confidence: 0.5},
		{Keyword: "b", Product: "Alpha", Confidence: 0.5},
		{Keyword: "c", Product: "Mid", Confidence: 0.8},
	}
	e := infer.NewEngine(rules, 0.3)

	recs := e.Infer([]string{"a", "b", "c"})
	require.Len(t, recs, 3)
	assert.Equal(t, "Mid", recs[0].Product)
	// Ties break by product name ascending.
	assert.Equal(t, "Alpha", recs[1].Product)
	assert.Equal(t, "Zeta", recs[2].Product)
}

func TestInferConfidenceFloor(t *testing.T) {
	e := infer.NewEngine(testRules(), 0.3)

	recs := e.Infer([]string{"paint"})
	assert.Empty(t, recs)

	// Floor is inclusive: exactly at the floor survives.
	e = infer.NewEngine(testRules(), 0.2)
	recs = e.Infer([]string{"paint"})
	require.Len(t, recs, 1)
	assert.Equal(t, "MTO", recs[0].Product)
}

func TestInferEmptyKeywords(t *testing.T) {
	e := infer.NewEngine(testRules(), 0.3)
	assert.Empty(t, e.Infer(nil))
	assert.Empty(t, e.Infer([]string{}))
}

func TestInferUnknownKeywords(t *testing.T) {
	e := infer.NewEngine(testRules(), 0.3)
	assert.Empty(t, e.Infer([]string{"cricket", "monsoon"}))
}

func TestInferCaseInsensitiveKeywords(t *testing.T) {
	e := infer.NewEngine(testRules(), 0.3)
	recs := e.Infer([]string{"BITUMEN"})
	require.Len(t, recs, 1)
	assert.Equal(t, "Bitumen", recs[0].Product)
}

func TestInferIsDeterministic(t *testing.T) {
	e := infer.NewEngine(testRules(), 0.3)
	keywords := []string{"bitumen", "highway", "diesel", "generator"}

	first := e.Infer(keywords)
	for range 10 {
		assert.Equal(t, first, e.Infer(keywords))
	}
}

func TestKeywords(t *testing.T) {
	e := infer.NewEngine(testRules(), 0.3)
	assert.Equal(t, []string{"bitumen", "diesel", "generator", "highway", "paint"}, e.Keywords())
}

func TestDefaultRulesAreWellFormed(t *testing.T) {
	for _, rule := range infer.DefaultRules() {
		assert.NotEmpty(t, rule.Keyword)
		assert.NotEmpty(t, rule.Product)
		assert.Greater(t, rule.Confidence, 0.0)
		assert.LessOrEqual(t, rule.Confidence, 1.0)
		assert.NotEmpty(t, rule.Reason)
	}
}
