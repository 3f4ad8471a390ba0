package resolve_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/north-cloud/lead-engine/internal/domain"
	"github.com/jonesrussell/north-cloud/lead-engine/internal/logger"
	"github.com/jonesrussell/north-cloud/lead-engine/internal/resolve"
)

type fakeDirectory struct {
	companies  []domain.Company
	leadCounts map[int64]int
	nextID     int64
	listErr    error
	created    []string
}

func (f *fakeDirectory) ListCompanies(_ context.Context) ([]domain.Company, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]domain.Company, len(f.companies))
	copy(out, f.companies)
	return out, nil
}

func (f *fakeDirectory) CreateCompany(_ context.Context, c *domain.Company) error {
	f.nextID++
	c.ID = f.nextID
	f.companies = append(f.companies, *c)
	f.created = append(f.created, c.Name)
	return nil
}

func (f *fakeDirectory) LeadCountByCompany(_ context.Context, companyID int64) (int, error) {
	return f.leadCounts[companyID], nil
}

func newDirectory(names ...string) *fakeDirectory {
	dir := &fakeDirectory{leadCounts: map[int64]int{}}
	for i, name := range names {
		dir.companies = append(dir.companies, domain.Company{
			ID:             int64(i + 1),
			Name:           name,
			NormalizedName: resolve.Normalize(name),
		})
	}
	dir.nextID = int64(len(names))
	return dir
}

func TestResolveMatchesExistingCompany(t *testing.T) {
	dir := newDirectory("Reliance Industries Ltd", "UltraTech Cement")
	r := resolve.NewResolver(dir, 80, logger.NewNop())

	company, err := r.Resolve(context.Background(), "Reliance Industries Limited")
	require.NoError(t, err)
	assert.Equal(t, int64(1), company.ID)
	// Existing fields are never overwritten.
	assert.Equal(t, "Reliance Industries Ltd", company.Name)
	assert.Empty(t, dir.created)
}

func TestResolveThresholdIsInclusive(t *testing.T) {
	dir := newDirectory("Adani Power")
	score := resolve.TokenSetRatio("Adani Powers", "Adani Power")

	// At exactly the boundary the existing company must win.
	r := resolve.NewResolver(dir, score, logger.NewNop())
	company, err := r.Resolve(context.Background(), "Adani Powers")
	require.NoError(t, err)
	assert.Equal(t, int64(1), company.ID)
	assert.Empty(t, dir.created)

	// One above the score, a new company is created instead.
	dir = newDirectory("Adani Power")
	r = resolve.NewResolver(dir, score+1, logger.NewNop())
	company, err = r.Resolve(context.Background(), "Adani Powers")
	require.NoError(t, err)
	assert.Equal(t, []string{"Adani Powers"}, dir.created)
	assert.Equal(t, "Adani Powers", company.Name)
}

func TestResolveCreatesCompanyOnMiss(t *testing.T) {
	dir := newDirectory("UltraTech Cement")
	r := resolve.NewResolver(dir, 80, logger.NewNop())

	company, err := r.Resolve(context.Background(), "Bharat Forge")
	require.NoError(t, err)
	assert.Equal(t, "Bharat Forge", company.Name)
	assert.Equal(t, "bharat forge", company.NormalizedName)
	assert.NotZero(t, company.ID)
	assert.Equal(t, []string{"Bharat Forge"}, dir.created)
}

func TestResolveTieBreakPrefersMostLeads(t *testing.T) {
	// Both names normalize identically, so they tie at 100.
	dir := newDirectory("Jai Traders Ltd", "Jai Traders Limited")
	dir.leadCounts[2] = 5
	r := resolve.NewResolver(dir, 80, logger.NewNop())

	company, err := r.Resolve(context.Background(), "Jai Traders")
	require.NoError(t, err)
	assert.Equal(t, int64(2), company.ID)
}

func TestResolveTieBreakFallsBackToLowestID(t *testing.T) {
	dir := newDirectory("Jai Traders Ltd", "Jai Traders Limited")
	r := resolve.NewResolver(dir, 80, logger.NewNop())

	company, err := r.Resolve(context.Background(), "Jai Traders")
	require.NoError(t, err)
	assert.Equal(t, int64(1), company.ID)
}

func TestResolveEmptyCandidateIsError(t *testing.T) {
	r := resolve.NewResolver(newDirectory(), 80, logger.NewNop())
	_, err := r.Resolve(context.Background(), "")
	require.Error(t, err)
}

func TestResolveDirectoryFailure(t *testing.T) {
	dir := newDirectory()
	dir.listErr = errors.New("connection refused")
	r := resolve.NewResolver(dir, 80, logger.NewNop())

	_, err := r.Resolve(context.Background(), "Reliance")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list companies")
}

func TestResolveEmptyDirectoryCreates(t *testing.T) {
	dir := newDirectory()
	r := resolve.NewResolver(dir, 80, logger.NewNop())

	company, err := r.Resolve(context.Background(), "Reliance Industries")
	require.NoError(t, err)
	assert.Equal(t, "Reliance Industries", company.Name)
	assert.Equal(t, []string{"Reliance Industries"}, dir.created)
}
