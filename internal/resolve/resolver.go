package resolve

import (
	"context"
	"fmt"
	"time"

	"github.com/jonesrussell/north-cloud/lead-engine/internal/domain"
	"github.com/jonesrussell/north-cloud/lead-engine/internal/logger"
)

// CompanyDirectory is the persistence surface the resolver needs.
type CompanyDirectory interface {
	// ListCompanies returns every known company.
	ListCompanies(ctx context.Context) ([]domain.Company, error)
	// CreateCompany persists a new company and fills in its ID.
	CreateCompany(ctx context.Context, company *domain.Company) error
	// LeadCountByCompany returns how many leads reference the company.
	LeadCountByCompany(ctx context.Context, companyID int64) (int, error)
}

// Resolver fuzzily matches candidate names against the company directory.
type Resolver struct {
	directory CompanyDirectory
	threshold int
	log       logger.Logger
}

// NewResolver creates a resolver. threshold is the inclusive similarity
// score at or above which a candidate resolves to an existing company.
func NewResolver(directory CompanyDirectory, threshold int, log logger.Logger) *Resolver {
	return &Resolver{directory: directory, threshold: threshold, log: log}
}

// Resolve returns the company for a candidate name, creating one when no
// existing company scores at or above the threshold. Existing company
// fields are never overwritten. Ties at the top score prefer the company
// with the most leads, then the lowest ID.
func (r *Resolver) Resolve(ctx context.Context, candidate string) (*domain.Company, error) {
	if candidate == "" {
		return nil, fmt.Errorf("empty company candidate")
	}

	companies, err := r.directory.ListCompanies(ctx)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}

	best, score, err := r.bestMatch(ctx, candidate, companies)
	if err != nil {
		return nil, err
	}
	if best != nil && score >= r.threshold {
		r.log.Debug("resolved company candidate",
			logger.String("candidate", candidate),
			logger.String("company", best.Name),
			logger.Int("score", score))
		return best, nil
	}

	now := time.Now().UTC()
	company := &domain.Company{
		Name:           candidate,
		NormalizedName: Normalize(candidate),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := r.directory.CreateCompany(ctx, company); err != nil {
		return nil, fmt.Errorf("create company %q: %w", candidate, err)
	}
	r.log.Info("created company",
		logger.String("name", candidate),
		logger.Int64("id", company.ID))
	return company, nil
}

// bestMatch scores the candidate against every company and applies the
// tie-break rules among equal top scorers.
func (r *Resolver) bestMatch(
	ctx context.Context,
	candidate string,
	companies []domain.Company,
) (*domain.Company, int, error) {
	bestScore := -1
	var tied []*domain.Company
	for i := range companies {
		score := TokenSetRatio(candidate, companies[i].Name)
		switch {
		case score > bestScore:
			bestScore = score
			tied = tied[:0]
			tied = append(tied, &companies[i])
		case score == bestScore:
			tied = append(tied, &companies[i])
		}
	}

	if len(tied) == 0 {
		return nil, 0, nil
	}
	if len(tied) == 1 || bestScore < r.threshold {
		return tied[0], bestScore, nil
	}

	best := tied[0]
	bestLeads, err := r.directory.LeadCountByCompany(ctx, best.ID)
	if err != nil {
		return nil, 0, fmt.Errorf("lead count for company %d: %w", best.ID, err)
	}
	for _, c := range tied[1:] {
		leads, err := r.directory.LeadCountByCompany(ctx, c.ID)
		if err != nil {
			return nil, 0, fmt.Errorf("lead count for company %d: %w", c.ID, err)
		}
		if leads > bestLeads || (leads == bestLeads && c.ID < best.ID) {
			best = c
			bestLeads = leads
		}
	}
	return best, bestScore, nil
}
