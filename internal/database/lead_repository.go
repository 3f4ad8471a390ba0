package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/jonesrussell/north-cloud/lead-engine/internal/domain"
)

// LeadRepository handles database operations for leads.
type LeadRepository struct {
	db *sqlx.DB
}

// NewLeadRepository creates a new lead repository.
func NewLeadRepository(db *sqlx.DB) *LeadRepository {
	return &LeadRepository{db: db}
}

// SaveLead validates and inserts a lead, filling in its ID and creation
// timestamp.
func (r *LeadRepository) SaveLead(ctx context.Context, lead *domain.Lead) error {
	if err := lead.Validate(); err != nil {
		return fmt.Errorf("invalid lead: %w", err)
	}

	products, err := json.Marshal(lead.RecommendedProducts)
	if err != nil {
		return fmt.Errorf("failed to marshal recommendations: %w", err)
	}

	query := `
		INSERT INTO leads (
			company_id, dedup_key, signal_text, signal_url, signal_type,
			keywords, recommended_products, lead_score, intent_strength,
			urgency_days, next_action, territory_state, status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at
	`

	err = r.db.QueryRowContext(
		ctx,
		query,
		lead.CompanyID,
		lead.DedupKey,
		lead.SignalText,
		lead.SignalURL,
		lead.SignalType,
		pq.Array(lead.Keywords),
		products,
		lead.LeadScore,
		lead.IntentStrength,
		lead.UrgencyDays,
		lead.NextAction,
		lead.TerritoryState,
		lead.Status,
	).Scan(&lead.ID, &lead.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save lead: %w", err)
	}

	return nil
}

// GetByID retrieves a lead by its ID.
func (r *LeadRepository) GetByID(ctx context.Context, id int64) (*domain.Lead, error) {
	query := `
		SELECT id, company_id, dedup_key, signal_text, signal_url, signal_type,
		       keywords, recommended_products, lead_score, intent_strength,
		       urgency_days, next_action, territory_state, status, created_at
		FROM leads
		WHERE id = $1
	`

	lead, err := scanLead(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("lead not found: %d", id)
		}
		return nil, fmt.Errorf("failed to get lead: %w", err)
	}

	return lead, nil
}

// ListFilter narrows ListLeads results. Zero values mean no filtering.
type ListFilter struct {
	Status         domain.LeadStatus
	IntentStrength domain.IntentStrength
	TerritoryState string
	MinScore       float64
	Limit          int
}

// ListLeads retrieves leads matching the filter, newest first.
func (r *LeadRepository) ListLeads(ctx context.Context, filter ListFilter) ([]*domain.Lead, error) {
	query := `
		SELECT id, company_id, dedup_key, signal_text, signal_url, signal_type,
		       keywords, recommended_products, lead_score, intent_strength,
		       urgency_days, next_action, territory_state, status, created_at
		FROM leads
	`

	var clauses []string
	var args []any
	argIndex := 1
	addClause := func(cond string, value any) {
		clauses = append(clauses, fmt.Sprintf(cond, argIndex))
		args = append(args, value)
		argIndex++
	}

	if filter.Status != "" {
		addClause("status = $%d", filter.Status)
	}
	if filter.IntentStrength != "" {
		addClause("intent_strength = $%d", filter.IntentStrength)
	}
	if filter.TerritoryState != "" {
		addClause("territory_state = $%d", filter.TerritoryState)
	}
	if filter.MinScore > 0 {
		addClause("lead_score >= $%d", filter.MinScore)
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY created_at DESC, id DESC"
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIndex)
		args = append(args, filter.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list leads: %w", err)
	}
	defer rows.Close()

	var leads []*domain.Lead
	for rows.Next() {
		lead, scanErr := scanLead(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan lead: %w", scanErr)
		}
		leads = append(leads, lead)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate leads: %w", err)
	}

	return leads, nil
}

// UpdateStatus advances a lead's status. Transitions must move forward in
// the new -> contacted -> qualified -> converted order; anything else is
// rejected.
func (r *LeadRepository) UpdateStatus(ctx context.Context, id int64, status domain.LeadStatus) error {
	lead, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !domain.ValidTransition(lead.Status, status) {
		return fmt.Errorf("invalid status transition %s -> %s for lead %d", lead.Status, status, id)
	}

	result, err := r.db.ExecContext(ctx,
		`UPDATE leads SET status = $1 WHERE id = $2 AND status = $3`,
		status, id, lead.Status)
	if err != nil {
		return fmt.Errorf("failed to update lead status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("lead %d changed concurrently, status not updated", id)
	}

	return nil
}

// CountByIntent returns lead counts grouped by intent strength.
func (r *LeadRepository) CountByIntent(ctx context.Context) (map[domain.IntentStrength]int, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT intent_strength, COUNT(*) FROM leads GROUP BY intent_strength`)
	if err != nil {
		return nil, fmt.Errorf("failed to count leads by intent: %w", err)
	}
	defer rows.Close()

	counts := make(map[domain.IntentStrength]int)
	for rows.Next() {
		var intent domain.IntentStrength
		var count int
		if err := rows.Scan(&intent, &count); err != nil {
			return nil, fmt.Errorf("failed to scan intent count: %w", err)
		}
		counts[intent] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate intent counts: %w", err)
	}

	return counts, nil
}

// rowScanner abstracts *sql.Row and *sql.Rows for scanLead.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanLead(row rowScanner) (*domain.Lead, error) {
	var lead domain.Lead
	var products []byte

	err := row.Scan(
		&lead.ID,
		&lead.CompanyID,
		&lead.DedupKey,
		&lead.SignalText,
		&lead.SignalURL,
		&lead.SignalType,
		pq.Array(&lead.Keywords),
		&products,
		&lead.LeadScore,
		&lead.IntentStrength,
		&lead.UrgencyDays,
		&lead.NextAction,
		&lead.TerritoryState,
		&lead.Status,
		&lead.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(products) > 0 {
		if err := json.Unmarshal(products, &lead.RecommendedProducts); err != nil {
			return nil, fmt.Errorf("failed to unmarshal recommendations: %w", err)
		}
	}

	return &lead, nil
}
