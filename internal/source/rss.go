package source

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/jonesrussell/north-cloud/lead-engine/internal/domain"
)

// RSSAdapter fetches signals from one RSS or Atom feed.
type RSSAdapter struct {
	name        string
	feedURL     string
	client      *Client
	maxItems    int
	relevantKWs []string
}

// NewRSSAdapter creates an adapter for the given feed. maxItems caps how
// many entries a single fetch emits; relevantKeywords pre-filter entries
// that mention none of them.
func NewRSSAdapter(name, feedURL string, client *Client, maxItems int, relevantKeywords []string) *RSSAdapter {
	return &RSSAdapter{
		name:        name,
		feedURL:     feedURL,
		client:      client,
		maxItems:    maxItems,
		relevantKWs: relevantKeywords,
	}
}

// Name implements Adapter.
func (a *RSSAdapter) Name() string { return a.name }

// Fetch downloads and parses the feed. Entries without a usable link are
// skipped; entries failing the relevance pre-filter are skipped.
func (a *RSSAdapter) Fetch(ctx context.Context) ([]domain.Signal, error) {
	body, err := a.client.Get(ctx, a.feedURL)
	if err != nil {
		return nil, err
	}

	parsed, err := gofeed.NewParser().ParseString(string(body))
	if err != nil {
		return nil, fmt.Errorf("parse feed %s: %w", a.feedURL, err)
	}

	now := time.Now().UTC()
	signals := make([]domain.Signal, 0, len(parsed.Items))
	for _, entry := range parsed.Items {
		if a.maxItems > 0 && len(signals) >= a.maxItems {
			break
		}

		text := entryText(entry)
		if text == "" {
			continue
		}
		if !Relevant(text, a.relevantKWs) {
			continue
		}

		signals = append(signals, domain.Signal{
			Source:       a.name,
			RawText:      text,
			URL:          entryLink(entry),
			SignalType:   domain.SignalTypeNews,
			PublishedAt:  entry.PublishedParsed,
			DiscoveredAt: now,
		})
	}
	return signals, nil
}

// entryText joins title and description so extraction sees both the
// headline and the summary.
func entryText(entry *gofeed.Item) string {
	title := strings.TrimSpace(entry.Title)
	desc := strings.TrimSpace(entry.Description)
	switch {
	case title == "":
		return desc
	case desc == "":
		return title
	default:
		return title + ". " + desc
	}
}

// entryLink returns the best available URL from a feed entry, preferring
// the explicit Link field and falling back to a URL-shaped GUID.
func entryLink(entry *gofeed.Item) string {
	if entry.Link != "" {
		return entry.Link
	}
	if strings.HasPrefix(entry.GUID, "http") {
		return entry.GUID
	}
	return ""
}
