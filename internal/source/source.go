// Package source provides signal source adapters: each adapter fetches raw
// market signals (news items, tender notices) from one kind of upstream and
// normalizes them into domain signals.
package source

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonesrussell/north-cloud/lead-engine/internal/domain"
)

// Adapter fetches signals from one upstream source.
type Adapter interface {
	// Name identifies the source; it is recorded on every emitted signal.
	Name() string
	// Fetch retrieves the source's current signals. Implementations return
	// whatever they could fetch; a partial result with an error is valid.
	Fetch(ctx context.Context) ([]domain.Signal, error)
}

// Registry holds the configured adapters in registration order.
type Registry struct {
	adapters []Adapter
}

// NewRegistry creates an empty adapter registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds an adapter. Duplicate names are rejected so signal
// provenance stays unambiguous.
func (r *Registry) Register(a Adapter) error {
	for _, existing := range r.adapters {
		if existing.Name() == a.Name() {
			return fmt.Errorf("source %q already registered", a.Name())
		}
	}
	r.adapters = append(r.adapters, a)
	return nil
}

// Adapters returns the registered adapters in registration order.
func (r *Registry) Adapters() []Adapter {
	return r.adapters
}

// Relevant reports whether text mentions at least one of the given
// keywords, case-insensitively. An empty keyword list matches everything.
func Relevant(text string, keywords []string) bool {
	if len(keywords) == 0 {
		return true
	}
	lower := strings.ToLower(text)
	for _, kw := range keywords {
		if kw != "" && strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
