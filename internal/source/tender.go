package source

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonesrussell/north-cloud/lead-engine/internal/domain"
)

// defaultRowSelector matches the listing rows of common tender portals.
const defaultRowSelector = "table tr, .tender-row, .bid-listing li"

// TenderAdapter scrapes tender and procurement notices from an HTML
// listing page.
type TenderAdapter struct {
	name        string
	pageURL     string
	rowSelector string
	client      *Client
	relevantKWs []string
}

// NewTenderAdapter creates an adapter for one tender portal. rowSelector
// is a goquery selector for the listing rows; empty uses a selector that
// covers common portal layouts.
func NewTenderAdapter(name, pageURL, rowSelector string, client *Client, relevantKeywords []string) *TenderAdapter {
	if rowSelector == "" {
		rowSelector = defaultRowSelector
	}
	return &TenderAdapter{
		name:        name,
		pageURL:     pageURL,
		rowSelector: rowSelector,
		client:      client,
		relevantKWs: relevantKeywords,
	}
}

// Name implements Adapter.
func (a *TenderAdapter) Name() string { return a.name }

// Fetch downloads the listing page and emits one signal per row with
// usable text. Rows failing the relevance pre-filter are skipped.
func (a *TenderAdapter) Fetch(ctx context.Context) ([]domain.Signal, error) {
	body, err := a.client.Get(ctx, a.pageURL)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse tender page %s: %w", a.pageURL, err)
	}

	now := time.Now().UTC()
	var signals []domain.Signal
	doc.Find(a.rowSelector).Each(func(_ int, row *goquery.Selection) {
		text := collapseWhitespace(row.Text())
		if len(text) < minTenderTextLen {
			return
		}
		if !Relevant(text, a.relevantKWs) {
			return
		}

		// Rows without their own link keep an empty URL so their dedup
		// key comes from the row text, not the shared listing page URL.
		var link string
		if href, ok := row.Find("a").First().Attr("href"); ok && href != "" {
			link = resolveHref(a.pageURL, href)
		}

		signals = append(signals, domain.Signal{
			Source:       a.name,
			RawText:      text,
			URL:          link,
			SignalType:   domain.SignalTypeTender,
			DiscoveredAt: now,
		})
	})
	return signals, nil
}

// minTenderTextLen filters out header rows and navigation fragments.
const minTenderTextLen = 30

// collapseWhitespace normalizes scraped cell text into a single line.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// resolveHref resolves a possibly relative href against the page URL.
func resolveHref(pageURL, href string) string {
	base, err := url.Parse(pageURL)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return pageURL
	}
	return base.ResolveReference(ref).String()
}
