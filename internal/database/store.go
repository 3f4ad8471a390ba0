package database

import "github.com/jmoiron/sqlx"

// Store bundles the repositories into the single persistence surface the
// pipeline and API consume.
type Store struct {
	*CompanyRepository
	*LeadRepository
	*SignalRepository
}

// NewStore creates repositories over one shared connection pool.
func NewStore(db *sqlx.DB) *Store {
	return &Store{
		CompanyRepository: NewCompanyRepository(db),
		LeadRepository:    NewLeadRepository(db),
		SignalRepository:  NewSignalRepository(db),
	}
}
