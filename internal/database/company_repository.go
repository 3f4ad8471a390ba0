package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jonesrussell/north-cloud/lead-engine/internal/domain"
)

// CompanyRepository handles database operations for companies.
type CompanyRepository struct {
	db *sqlx.DB
}

// NewCompanyRepository creates a new company repository.
func NewCompanyRepository(db *sqlx.DB) *CompanyRepository {
	return &CompanyRepository{db: db}
}

// CreateCompany inserts a new company and fills in its ID and timestamps.
func (r *CompanyRepository) CreateCompany(ctx context.Context, company *domain.Company) error {
	query := `
		INSERT INTO companies (name, normalized_name, industry, city, state)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRowContext(
		ctx,
		query,
		company.Name,
		company.NormalizedName,
		company.Industry,
		company.City,
		company.State,
	).Scan(&company.ID, &company.CreatedAt, &company.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create company: %w", err)
	}

	return nil
}

// GetCompany retrieves a company by its ID.
func (r *CompanyRepository) GetCompany(ctx context.Context, id int64) (*domain.Company, error) {
	var company domain.Company
	query := `
		SELECT id, name, normalized_name, industry, city, state, created_at, updated_at
		FROM companies
		WHERE id = $1
	`

	if err := r.db.GetContext(ctx, &company, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("company not found: %d", id)
		}
		return nil, fmt.Errorf("failed to get company: %w", err)
	}

	return &company, nil
}

// ListCompanies retrieves every company, oldest first.
func (r *CompanyRepository) ListCompanies(ctx context.Context) ([]domain.Company, error) {
	var companies []domain.Company
	query := `
		SELECT id, name, normalized_name, industry, city, state, created_at, updated_at
		FROM companies
		ORDER BY id
	`

	if err := r.db.SelectContext(ctx, &companies, query); err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}

	return companies, nil
}

// LeadCountByCompany returns how many leads reference the company.
func (r *CompanyRepository) LeadCountByCompany(ctx context.Context, companyID int64) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM leads WHERE company_id = $1`

	if err := r.db.GetContext(ctx, &count, query, companyID); err != nil {
		return 0, fmt.Errorf("failed to count leads for company %d: %w", companyID, err)
	}

	return count, nil
}
