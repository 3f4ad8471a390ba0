package database_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/north-cloud/lead-engine/internal/database"
	"github.com/jonesrussell/north-cloud/lead-engine/internal/domain"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "sqlmock"), mock
}

func sampleLead() *domain.Lead {
	return &domain.Lead{
		CompanyID:  1,
		DedupKey:   "abc123",
		SignalText: "Reliance urgent tender for bitumen supply",
		SignalURL:  "https://example.com/reliance",
		SignalType: domain.SignalTypeNews,
		Keywords:   []string{"bitumen"},
		RecommendedProducts: []domain.ProductRecommendation{
			{Product: "Bitumen", Confidence: 0.9, Reason: "Mentioned 'bitumen'"},
		},
		LeadScore:      90,
		IntentStrength: domain.IntentHigh,
		UrgencyDays:    7,
		NextAction:     "Call decision maker within 24 hours",
		TerritoryState: "gujarat",
		Status:         domain.StatusNew,
	}
}

func TestCompanyRepositoryCreateCompany(t *testing.T) {
	db, mock := newMockDB(t)
	repo := database.NewCompanyRepository(db)

	now := time.Now()
	mock.ExpectQuery("INSERT INTO companies").
		WithArgs("Reliance", "reliance", "", "", "").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow(int64(7), now, now))

	company := &domain.Company{Name: "Reliance", NormalizedName: "reliance"}
	require.NoError(t, repo.CreateCompany(context.Background(), company))
	assert.Equal(t, int64(7), company.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCompanyRepositoryListCompanies(t *testing.T) {
	db, mock := newMockDB(t)
	repo := database.NewCompanyRepository(db)

	now := time.Now()
	mock.ExpectQuery("SELECT (.+) FROM companies").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "normalized_name", "industry", "city", "state", "created_at", "updated_at",
		}).
			AddRow(int64(1), "Reliance", "reliance", "", "", "", now, now).
			AddRow(int64(2), "NTPC", "ntpc", "power", "", "Delhi", now, now))

	companies, err := repo.ListCompanies(context.Background())
	require.NoError(t, err)
	require.Len(t, companies, 2)
	assert.Equal(t, "Reliance", companies[0].Name)
	assert.Equal(t, "NTPC", companies[1].Name)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCompanyRepositoryLeadCount(t *testing.T) {
	db, mock := newMockDB(t)
	repo := database.NewCompanyRepository(db)

	mock.ExpectQuery("SELECT COUNT").
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(5))

	count, err := repo.LeadCountByCompany(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, 5, count)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLeadRepositorySaveLead(t *testing.T) {
	db, mock := newMockDB(t)
	repo := database.NewLeadRepository(db)
	lead := sampleLead()

	products, err := json.Marshal(lead.RecommendedProducts)
	require.NoError(t, err)

	mock.ExpectQuery("INSERT INTO leads").
		WithArgs(
			lead.CompanyID, lead.DedupKey, lead.SignalText, lead.SignalURL,
			lead.SignalType, pq.Array(lead.Keywords), products, lead.LeadScore,
			lead.IntentStrength, lead.UrgencyDays, lead.NextAction,
			lead.TerritoryState, lead.Status,
		).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).
			AddRow(int64(42), time.Now()))

	require.NoError(t, repo.SaveLead(context.Background(), lead))
	assert.Equal(t, int64(42), lead.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLeadRepositorySaveLeadRejectsInvalid(t *testing.T) {
	db, _ := newMockDB(t)
	repo := database.NewLeadRepository(db)

	lead := sampleLead()
	lead.RecommendedProducts = nil

	err := repo.SaveLead(context.Background(), lead)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid lead")
}

func TestLeadRepositoryGetByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := database.NewLeadRepository(db)

	products := `[{"product":"Bitumen","confidence":0.9,"reason":"Mentioned 'bitumen'"}]`
	mock.ExpectQuery("SELECT (.+) FROM leads").
		WithArgs(int64(42)).
		WillReturnRows(leadRows().
			AddRow(int64(42), int64(1), "abc123", "text", "https://x", "news",
				[]byte("{bitumen}"), []byte(products), 90.0, "high",
				7, "Call", "gujarat", "new", time.Now()))

	lead, err := repo.GetByID(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, int64(42), lead.ID)
	require.Len(t, lead.RecommendedProducts, 1)
	assert.Equal(t, "Bitumen", lead.RecommendedProducts[0].Product)
	assert.Equal(t, []string{"bitumen"}, lead.Keywords)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLeadRepositoryGetByIDNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := database.NewLeadRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM leads").
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 99)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestLeadRepositoryUpdateStatus(t *testing.T) {
	db, mock := newMockDB(t)
	repo := database.NewLeadRepository(db)

	products := `[{"product":"Bitumen","confidence":0.9,"reason":"r"}]`
	mock.ExpectQuery("SELECT (.+) FROM leads").
		WithArgs(int64(42)).
		WillReturnRows(leadRows().
			AddRow(int64(42), int64(1), "abc123", "text", "https://x", "news",
				[]byte("{bitumen}"), []byte(products), 90.0, "high",
				7, "Call", "gujarat", "new", time.Now()))
	mock.ExpectExec("UPDATE leads SET status").
		WithArgs(domain.StatusContacted, int64(42), domain.StatusNew).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpdateStatus(context.Background(), 42, domain.StatusContacted))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLeadRepositoryUpdateStatusRejectsBackwards(t *testing.T) {
	db, mock := newMockDB(t)
	repo := database.NewLeadRepository(db)

	products := `[{"product":"Bitumen","confidence":0.9,"reason":"r"}]`
	mock.ExpectQuery("SELECT (.+) FROM leads").
		WithArgs(int64(42)).
		WillReturnRows(leadRows().
			AddRow(int64(42), int64(1), "abc123", "text", "https://x", "news",
				[]byte("{bitumen}"), []byte(products), 90.0, "high",
				7, "Call", "gujarat", "qualified", time.Now()))

	err := repo.UpdateStatus(context.Background(), 42, domain.StatusContacted)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid status transition")
}

func TestSignalRepository(t *testing.T) {
	db, mock := newMockDB(t)
	repo := database.NewSignalRepository(db)

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("key1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	seen, err := repo.SignalSeen(context.Background(), "key1")
	require.NoError(t, err)
	assert.True(t, seen)

	sig := &domain.Signal{Source: "gem", URL: "https://x", SignalType: domain.SignalTypeTender}
	mock.ExpectExec("INSERT INTO processed_signals").
		WithArgs("key1", "gem", "https://x", domain.SignalTypeTender).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.MarkSignalSeen(context.Background(), sig, "key1"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func leadRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "company_id", "dedup_key", "signal_text", "signal_url", "signal_type",
		"keywords", "recommended_products", "lead_score", "intent_strength",
		"urgency_days", "next_action", "territory_state", "status", "created_at",
	})
}
