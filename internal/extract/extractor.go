// Package extract pulls company candidates and product-relevant keywords
// out of raw signal text. Keyword matching uses an Aho-Corasick automaton
// so a batch of signals scans each text once regardless of table size.
package extract

import (
	"sort"
	"strings"
	"unicode"

	ahocorasick "github.com/cloudflare/ahocorasick"

	"github.com/jonesrussell/north-cloud/lead-engine/internal/domain"
)

// keywordKind distinguishes what a matched automaton pattern represents.
type keywordKind int

const (
	kindProduct keywordKind = iota
	kindUrgency
	kindState
)

// Extractor finds keywords, urgency markers, territory states and a
// company-name candidate in signal text. It is immutable after
// construction and safe for concurrent use.
type Extractor struct {
	matcher  *ahocorasick.Matcher
	patterns []string
	kinds    []keywordKind
	// display maps a padded pattern back to its canonical keyword form.
	display []string

	companyMatcher  *ahocorasick.Matcher
	companyPatterns []string
	companyNames    []string
}

// Config holds the keyword tables the extractor matches against.
type Config struct {
	// ProductKeywords are the keys of the inference rule table.
	ProductKeywords []string
	// UrgencyKeywords mark time pressure ("urgent", "immediate").
	UrgencyKeywords []string
	// States recognized for territory routing.
	States []string
	// KnownCompanies is a dictionary of organizations matched before the
	// capitalized-span heuristic runs.
	KnownCompanies []string
}

// New builds an extractor from the given keyword tables.
func New(cfg Config) *Extractor {
	e := &Extractor{}

	add := func(words []string, kind keywordKind) {
		for _, w := range words {
			norm := normalizeText(w)
			if norm == "" {
				continue
			}
			e.patterns = append(e.patterns, pad(norm))
			e.kinds = append(e.kinds, kind)
			e.display = append(e.display, norm)
		}
	}
	add(cfg.ProductKeywords, kindProduct)
	add(cfg.UrgencyKeywords, kindUrgency)
	add(cfg.States, kindState)

	if len(e.patterns) > 0 {
		e.matcher = ahocorasick.NewStringMatcher(e.patterns)
	}

	for _, name := range cfg.KnownCompanies {
		norm := normalizeText(name)
		if norm == "" {
			continue
		}
		e.companyPatterns = append(e.companyPatterns, pad(norm))
		e.companyNames = append(e.companyNames, strings.TrimSpace(name))
	}
	if len(e.companyPatterns) > 0 {
		e.companyMatcher = ahocorasick.NewStringMatcher(e.companyPatterns)
	}

	return e
}

// Extract analyzes one signal text. Same input always yields the same
// output: matched keyword sets are deduplicated and sorted.
func (e *Extractor) Extract(text string) domain.Extraction {
	padded := pad(normalizeText(text))

	var result domain.Extraction
	if e.matcher != nil {
		seen := make(map[string]bool)
		for _, hit := range e.matcher.Match([]byte(padded)) {
			if hit >= len(e.patterns) {
				continue
			}
			word := e.display[hit]
			if seen[word] {
				continue
			}
			seen[word] = true
			switch e.kinds[hit] {
			case kindProduct:
				result.Keywords = append(result.Keywords, word)
			case kindUrgency:
				result.UrgencyKeywords = append(result.UrgencyKeywords, word)
			case kindState:
				result.States = append(result.States, word)
			}
		}
		sort.Strings(result.Keywords)
		sort.Strings(result.UrgencyKeywords)
		sort.Strings(result.States)
	}

	result.CompanyCandidate = e.extractCompany(text, padded)
	return result
}

// extractCompany returns the best company-name candidate, or empty when no
// plausible organization span is found. The known-company dictionary wins
// over the capitalized-span heuristic; among dictionary hits the longest
// name wins.
func (e *Extractor) extractCompany(original, padded string) string {
	if e.companyMatcher != nil {
		best := ""
		for _, hit := range e.companyMatcher.Match([]byte(padded)) {
			if hit >= len(e.companyNames) {
				continue
			}
			if name := e.companyNames[hit]; len(name) > len(best) {
				best = name
			}
		}
		if best != "" {
			return best
		}
	}
	return capitalizedSpan(original)
}

// maxSpanWords caps the heuristic span so a fully title-cased headline does
// not become one giant "company name".
const maxSpanWords = 5

// capitalizedSpan finds the first run of two or more capitalized words and
// returns it as a company-name candidate. Connectives and corporate
// suffixes ("of", "&", "Ltd") extend a run without starting one.
func capitalizedSpan(text string) string {
	words := strings.Fields(text)

	var span []string
	for _, word := range words {
		trimmed := strings.TrimFunc(word, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '&'
		})
		if trimmed == "" {
			if result := flushSpan(span); result != "" {
				return result
			}
			span = nil
			continue
		}

		if isSpanWord(trimmed, len(span) > 0) && len(span) < maxSpanWords {
			span = append(span, trimmed)
			// A word ending in sentence punctuation ends the span.
			if strings.ContainsAny(word, ".,;:!?") {
				if result := flushSpan(span); result != "" {
					return result
				}
				span = nil
			}
			continue
		}

		if result := flushSpan(span); result != "" {
			return result
		}
		span = nil
	}
	return flushSpan(span)
}

// connectives may appear inside a company-name span without capitalization.
var connectives = map[string]bool{
	"of": true, "and": true, "for": true, "the": true, "&": true,
}

// isSpanWord reports whether a word can belong to a capitalized span.
// inSpan allows lowercase connectives once a span has started.
func isSpanWord(word string, inSpan bool) bool {
	if inSpan && connectives[strings.ToLower(word)] {
		return true
	}
	first := []rune(word)[0]
	return unicode.IsUpper(first) || unicode.IsDigit(first) || first == '&'
}

// flushSpan converts an accumulated span into a candidate, requiring at
// least two words and at least one word that is not a connective.
func flushSpan(span []string) string {
	if len(span) < 2 {
		return ""
	}
	real := 0
	for _, w := range span {
		if !connectives[strings.ToLower(w)] {
			real++
		}
	}
	if real < 2 {
		return ""
	}
	// Trailing connectives read badly in a name.
	for len(span) > 0 && connectives[strings.ToLower(span[len(span)-1])] {
		span = span[:len(span)-1]
	}
	return strings.Join(span, " ")
}

// normalizeText lowercases, replaces every non-alphanumeric rune with a
// space and collapses runs so word boundaries are single spaces.
func normalizeText(text string) string {
	text = strings.ToLower(text)

	var b strings.Builder
	b.Grow(len(text))
	lastSpace := true
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastSpace = false
		} else if !lastSpace {
			b.WriteByte(' ')
			lastSpace = true
		}
	}
	return strings.TrimSpace(b.String())
}

// pad wraps normalized text in spaces so padded patterns only match at
// word boundaries.
func pad(s string) string {
	if s == "" {
		return s
	}
	return " " + s + " "
}
