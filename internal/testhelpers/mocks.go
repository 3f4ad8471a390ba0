// Package testhelpers provides shared in-memory fakes for the lead-engine
// service.
package testhelpers

import (
	"context"
	"sync"

	"github.com/jonesrussell/north-cloud/lead-engine/internal/domain"
)

// MockStore implements the pipeline's Store and the resolver's
// CompanyDirectory against in-memory maps.
type MockStore struct {
	mu         sync.RWMutex
	seen       map[string]bool
	companies  []domain.Company
	leads      []domain.Lead
	nextCompID int64
	nextLeadID int64

	// SaveLeadErr, when set, makes every SaveLead call fail.
	SaveLeadErr error
	// SeenErr, when set, makes every SignalSeen call fail.
	SeenErr error
}

// NewMockStore creates an empty store.
func NewMockStore() *MockStore {
	return &MockStore{seen: make(map[string]bool)}
}

// SignalSeen reports whether the dedup key was recorded.
func (m *MockStore) SignalSeen(_ context.Context, dedupKey string) (bool, error) {
	if m.SeenErr != nil {
		return false, m.SeenErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.seen[dedupKey], nil
}

// MarkSignalSeen records a dedup key.
func (m *MockStore) MarkSignalSeen(_ context.Context, _ *domain.Signal, dedupKey string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seen[dedupKey] = true
	return nil
}

// SaveLead appends a lead and assigns its ID.
func (m *MockStore) SaveLead(_ context.Context, lead *domain.Lead) error {
	if m.SaveLeadErr != nil {
		return m.SaveLeadErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextLeadID++
	lead.ID = m.nextLeadID
	m.leads = append(m.leads, *lead)
	return nil
}

// ListCompanies returns a copy of all companies.
func (m *MockStore) ListCompanies(_ context.Context) ([]domain.Company, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.Company, len(m.companies))
	copy(out, m.companies)
	return out, nil
}

// CreateCompany appends a company and assigns its ID.
func (m *MockStore) CreateCompany(_ context.Context, company *domain.Company) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextCompID++
	company.ID = m.nextCompID
	m.companies = append(m.companies, *company)
	return nil
}

// LeadCountByCompany counts stored leads referencing the company.
func (m *MockStore) LeadCountByCompany(_ context.Context, companyID int64) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	count := 0
	for _, lead := range m.leads {
		if lead.CompanyID == companyID {
			count++
		}
	}
	return count, nil
}

// Leads returns a copy of all stored leads.
func (m *MockStore) Leads() []domain.Lead {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.Lead, len(m.leads))
	copy(out, m.leads)
	return out
}

// Companies returns a copy of all stored companies.
func (m *MockStore) Companies() []domain.Company {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.Company, len(m.companies))
	copy(out, m.companies)
	return out
}

// SeenKeys returns the recorded dedup keys.
func (m *MockStore) SeenKeys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, 0, len(m.seen))
	for k := range m.seen {
		out = append(out, k)
	}
	return out
}

// Notification captures one delivered alert.
type Notification struct {
	Lead    domain.Lead
	Company domain.Company
}

// MockNotifier records notifications instead of sending them.
type MockNotifier struct {
	mu   sync.Mutex
	sent []Notification

	// Err, when set, makes every Notify call fail.
	Err error
}

// NewMockNotifier creates an empty notifier.
func NewMockNotifier() *MockNotifier {
	return &MockNotifier{}
}

// Notify records the notification.
func (m *MockNotifier) Notify(_ context.Context, lead *domain.Lead, company *domain.Company) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, Notification{Lead: *lead, Company: *company})
	return nil
}

// Sent returns a copy of all recorded notifications.
func (m *MockNotifier) Sent() []Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Notification, len(m.sent))
	copy(out, m.sent)
	return out
}
