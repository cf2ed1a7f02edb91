package models

import (
	"time"

	"github.com/google/uuid"
)

// Reason tags recorded on ranked candidates.
const (
	ReasonCollaborative = "collaborative_filtering"
	ReasonContentBased  = "content_based"
	ReasonHybrid        = "hybrid"
	ReasonSmartMatching = "smart_matching"
	ReasonPopularity    = "popularity"
)

// Confidence tiers.
const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
)

// ContextFactors captures why a candidate matched the request context.
type ContextFactors struct {
	Occasion        string   `json:"occasion,omitempty"`
	TimePreference  string   `json:"time_preference,omitempty"`
	PartySize       int      `json:"party_size,omitempty"`
	Ambiance        string   `json:"ambiance,omitempty"`
	Location        string   `json:"location,omitempty"`
	MatchingFactors []string `json:"matching_factors,omitempty"`
}

// RankedCandidate is the one canonical recommendation shape, populated
// uniformly regardless of which stage produced it.
type RankedCandidate struct {
	TableID        uuid.UUID       `json:"table_id"`
	Score          float64         `json:"score"`
	Reason         string          `json:"reason"`
	Confidence     string          `json:"confidence"`
	Rank           int             `json:"rank"`
	Explanation    string          `json:"explanation,omitempty"`
	Table          *Table          `json:"table,omitempty"`
	ContextFactors *ContextFactors `json:"context_factors,omitempty"`
}

// RecommendationEvent records a click or reservation on a previously
// recommended table, stamped with the original rank for attrition analysis.
type RecommendationEvent struct {
	TableID       uuid.UUID  `json:"table_id"`
	At            time.Time  `json:"at"`
	Rank          int        `json:"rank"`
	ReservationID *uuid.UUID `json:"reservation_id,omitempty"`
}

// RecommendationCacheTTL bounds how long a generated result may be reused.
const RecommendationCacheTTL = time.Hour

// RecommendationCacheEntry is a materialized ranked result for one
// (user, context) pair. Superseded, never mutated, by the next generation.
type RecommendationCacheEntry struct {
	UserID          uuid.UUID             `json:"user_id"`
	Recommendations []RankedCandidate     `json:"recommendations"`
	Context         DiningContext         `json:"context"`
	GeneratedAt     time.Time             `json:"generated_at"`
	ExpiresAt       time.Time             `json:"expires_at"`
	ClickedTables   []RecommendationEvent `json:"clicked_tables,omitempty"`
	ReservedTables  []RecommendationEvent `json:"reserved_tables,omitempty"`
}

// Expired reports whether the entry is no longer eligible for reuse.
func (e *RecommendationCacheEntry) Expired(now time.Time) bool {
	return !now.Before(e.ExpiresAt)
}

// ReservedTable is a reservation made from a recommendation, flattened out of
// the cache entry it was tracked on together with that entry's context.
type ReservedTable struct {
	Table         *Table        `json:"table"`
	ReservedAt    time.Time     `json:"reserved_at"`
	Rank          int           `json:"rank"`
	ReservationID *uuid.UUID    `json:"reservation_id,omitempty"`
	Context       DiningContext `json:"recommendation_context"`
	GeneratedAt   time.Time     `json:"generated_at"`
}

type RecommendationResponse struct {
	Success         bool              `json:"success"`
	Recommendations []RankedCandidate `json:"recommendations"`
	Cached          bool              `json:"cached"`
	Fallback        bool              `json:"fallback,omitempty"`
	Message         string            `json:"message,omitempty"`
	GeneratedAt     time.Time         `json:"generated_at"`
}

// ModelInfo describes the dataset loader's state for diagnostics.
type ModelInfo struct {
	Loaded       bool         `json:"loaded"`
	DatasetSizes DatasetSizes `json:"dataset_sizes"`
}

type DatasetSizes struct {
	Tables       int `json:"tables"`
	Users        int `json:"users"`
	Interactions int `json:"interactions"`
}
