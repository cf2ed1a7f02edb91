package models

import "github.com/google/uuid"

// UserRecord is the slice of the user document the engine reads: identity
// plus the cross-module spice preference used as a quiet-dining heuristic.
type UserRecord struct {
	ID              uuid.UUID `json:"id" db:"id"`
	SpicePreference string    `json:"spice_preference,omitempty" db:"spice_preference"`
}

// UserFeatures is the per-user preference profile derived from recent
// interaction history by the dataset loader.
type UserFeatures struct {
	UserID             uuid.UUID `json:"user_id"`
	PreferredGroupSize int       `json:"preferred_group_size"`
	PreferredOccasion  string    `json:"preferred_occasion"`
	PrefersQuiet       bool      `json:"prefers_quiet"`
	PrefersWindow      bool      `json:"prefers_window"`
	PrefersPrivate     bool      `json:"prefers_private"`
}
