package domain

import "time"

// Company represents an organization observed in one or more signals.
// Companies are created by the resolver on first sighting and only ever
// enriched afterwards, never destructively overwritten.
type Company struct {
	ID             int64     `db:"id"              json:"id"`
	Name           string    `db:"name"            json:"name"`
	NormalizedName string    `db:"normalized_name" json:"normalized_name"`
	Industry       string    `db:"industry"        json:"industry,omitempty"`
	City           string    `db:"city"            json:"city,omitempty"`
	State          string    `db:"state"           json:"state,omitempty"`
	CreatedAt      time.Time `db:"created_at"      json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"      json:"updated_at"`
}
