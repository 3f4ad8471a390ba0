// Package storage mirrors persisted leads into Elasticsearch so the
// dashboard can search them. Indexing is best-effort; the database row is
// always the source of truth.
package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	es "github.com/elastic/go-elasticsearch/v8"

	"github.com/jonesrussell/north-cloud/lead-engine/internal/domain"
	"github.com/jonesrussell/north-cloud/lead-engine/internal/elasticsearch/mappings"
)

// LeadIndex writes lead documents to one Elasticsearch index.
type LeadIndex struct {
	client *es.Client
	index  string
}

// NewLeadIndex creates a lead index over the given client.
func NewLeadIndex(client *es.Client, index string) *LeadIndex {
	return &LeadIndex{client: client, index: index}
}

// NewClient builds an Elasticsearch client from connection settings.
func NewClient(url, username, password string) (*es.Client, error) {
	client, err := es.NewClient(es.Config{
		Addresses: []string{url},
		Username:  username,
		Password:  password,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create elasticsearch client: %w", err)
	}
	return client, nil
}

// EnsureIndex creates the lead index with its mapping if it does not
// already exist.
func (s *LeadIndex) EnsureIndex(ctx context.Context) error {
	res, err := s.client.Indices.Exists(
		[]string{s.index},
		s.client.Indices.Exists.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("failed to check index existence: %w", err)
	}
	res.Body.Close()
	if res.StatusCode == http.StatusOK {
		return nil
	}

	mapping := mappings.NewLeadMapping()
	if err = mapping.Validate(); err != nil {
		return fmt.Errorf("invalid lead mapping: %w", err)
	}
	body, err := mapping.GetJSON()
	if err != nil {
		return err
	}

	res, err = s.client.Indices.Create(
		s.index,
		s.client.Indices.Create.WithContext(ctx),
		s.client.Indices.Create.WithBody(strings.NewReader(body)),
	)
	if err != nil {
		return fmt.Errorf("failed to create index %s: %w", s.index, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("error creating index %s: %s", s.index, res.String())
	}
	return nil
}

// leadDocument is the indexed shape: the lead denormalized with its
// company so dashboard queries need no join.
type leadDocument struct {
	LeadID              int64                          `json:"lead_id"`
	CompanyID           int64                          `json:"company_id"`
	CompanyName         string                         `json:"company_name"`
	SignalText          string                         `json:"signal_text"`
	SignalURL           string                         `json:"signal_url"`
	SignalType          string                         `json:"signal_type"`
	Keywords            []string                       `json:"keywords"`
	RecommendedProducts []domain.ProductRecommendation `json:"recommended_products"`
	LeadScore           float64                        `json:"lead_score"`
	IntentStrength      domain.IntentStrength          `json:"intent_strength"`
	TerritoryState      string                         `json:"territory_state"`
	Status              domain.LeadStatus              `json:"status"`
	CreatedAt           time.Time                      `json:"created_at"`
}

// IndexLead writes one lead document, keyed by lead ID so re-indexing is
// idempotent.
func (s *LeadIndex) IndexLead(ctx context.Context, lead *domain.Lead, company *domain.Company) error {
	doc := leadDocument{
		LeadID:              lead.ID,
		CompanyID:           lead.CompanyID,
		CompanyName:         company.Name,
		SignalText:          lead.SignalText,
		SignalURL:           lead.SignalURL,
		SignalType:          lead.SignalType,
		Keywords:            lead.Keywords,
		RecommendedProducts: lead.RecommendedProducts,
		LeadScore:           lead.LeadScore,
		IntentStrength:      lead.IntentStrength,
		TerritoryState:      lead.TerritoryState,
		Status:              lead.Status,
		CreatedAt:           lead.CreatedAt,
	}

	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal lead document: %w", err)
	}

	res, err := s.client.Index(
		s.index,
		bytes.NewReader(body),
		s.client.Index.WithContext(ctx),
		s.client.Index.WithDocumentID(strconv.FormatInt(lead.ID, 10)),
	)
	if err != nil {
		return fmt.Errorf("failed to index lead %d: %w", lead.ID, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("error indexing lead %d: %s", lead.ID, res.String())
	}
	return nil
}
