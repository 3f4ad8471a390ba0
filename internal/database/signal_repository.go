package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jonesrussell/north-cloud/lead-engine/internal/domain"
)

// SignalRepository records processed dedup keys so a signal is handled at
// most once across batch runs.
type SignalRepository struct {
	db *sqlx.DB
}

// NewSignalRepository creates a new signal repository.
func NewSignalRepository(db *sqlx.DB) *SignalRepository {
	return &SignalRepository{db: db}
}

// SignalSeen reports whether the dedup key was already processed.
func (r *SignalRepository) SignalSeen(ctx context.Context, dedupKey string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM processed_signals WHERE dedup_key = $1)`

	if err := r.db.GetContext(ctx, &exists, query, dedupKey); err != nil {
		return false, fmt.Errorf("failed to check signal: %w", err)
	}

	return exists, nil
}

// MarkSignalSeen durably records a processed dedup key. Re-marking an
// already seen key is not an error.
func (r *SignalRepository) MarkSignalSeen(ctx context.Context, signal *domain.Signal, dedupKey string) error {
	query := `
		INSERT INTO processed_signals (dedup_key, source, signal_url, signal_type)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (dedup_key) DO NOTHING
	`

	if _, err := r.db.ExecContext(ctx, query, dedupKey, signal.Source, signal.URL, signal.SignalType); err != nil {
		return fmt.Errorf("failed to mark signal seen: %w", err)
	}

	return nil
}
