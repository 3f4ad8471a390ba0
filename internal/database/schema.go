package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// schema is the lead-engine table set. EnsureSchema is idempotent so the
// service can bootstrap an empty database on first run.
const schema = `
CREATE TABLE IF NOT EXISTS companies (
	id              BIGSERIAL PRIMARY KEY,
	name            TEXT NOT NULL,
	normalized_name TEXT NOT NULL,
	industry        TEXT NOT NULL DEFAULT '',
	city            TEXT NOT NULL DEFAULT '',
	state           TEXT NOT NULL DEFAULT '',
	created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_companies_normalized_name ON companies (normalized_name);

CREATE TABLE IF NOT EXISTS processed_signals (
	dedup_key     TEXT PRIMARY KEY,
	source        TEXT NOT NULL,
	signal_url    TEXT NOT NULL DEFAULT '',
	signal_type   TEXT NOT NULL DEFAULT '',
	processed_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS leads (
	id                   BIGSERIAL PRIMARY KEY,
	company_id           BIGINT NOT NULL REFERENCES companies (id),
	dedup_key            TEXT NOT NULL UNIQUE,
	signal_text          TEXT NOT NULL,
	signal_url           TEXT NOT NULL DEFAULT '',
	signal_type          TEXT NOT NULL DEFAULT '',
	keywords             TEXT[] NOT NULL DEFAULT '{}',
	recommended_products JSONB NOT NULL DEFAULT '[]',
	lead_score           DOUBLE PRECISION NOT NULL,
	intent_strength      TEXT NOT NULL,
	urgency_days         INTEGER NOT NULL DEFAULT 30,
	next_action          TEXT NOT NULL DEFAULT '',
	territory_state      TEXT NOT NULL DEFAULT '',
	status               TEXT NOT NULL DEFAULT 'new',
	created_at           TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_leads_company_id ON leads (company_id);
CREATE INDEX IF NOT EXISTS idx_leads_status ON leads (status);
CREATE INDEX IF NOT EXISTS idx_leads_created_at ON leads (created_at);
`

// EnsureSchema creates the lead-engine tables when they do not exist.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}
