package models

import (
	"time"

	"github.com/google/uuid"
)

// Interaction types, ordered by implied engagement strength.
const (
	InteractionView     = "view"
	InteractionInquiry  = "inquiry"
	InteractionFavorite = "favorite"
	InteractionShare    = "share"
	InteractionRating   = "rating"
	InteractionBooking  = "booking"
)

// InteractionRetention is how long interaction records are kept before they
// expire for data-minimization.
const InteractionRetention = 30 * 24 * time.Hour

// DiningContext is the normalized (occasion, party size, time slot) tuple
// describing the dining scenario for a request or interaction.
type DiningContext struct {
	Occasion  string `json:"occasion"`
	PartySize int    `json:"party_size"`
	TimeSlot  string `json:"time_slot"`
}

// TableInteraction is an event linking a user to a table. Rating is present
// iff Type is "rating"; never updated after creation.
type TableInteraction struct {
	ID              uuid.UUID     `json:"id" db:"id"`
	UserID          uuid.UUID     `json:"user_id" db:"user_id" validate:"required"`
	TableID         uuid.UUID     `json:"table_id" db:"table_id" validate:"required"`
	Type            string        `json:"interaction_type" db:"interaction_type" validate:"required,oneof=view inquiry favorite share rating booking"`
	Rating          *float64      `json:"rating,omitempty" db:"rating"`
	SessionDuration *int          `json:"session_duration,omitempty" db:"session_duration"` // seconds
	DeviceType      string        `json:"device_type" db:"device_type"`
	Source          string        `json:"source" db:"source"`
	Context         DiningContext `json:"context" db:"context"`
	Timestamp       time.Time     `json:"timestamp" db:"timestamp"`
	ExpiresAt       time.Time     `json:"expires_at" db:"expires_at"`
}

// InteractionFilter narrows interaction queries.
type InteractionFilter struct {
	UserID  uuid.UUID
	TableID uuid.UUID
	Type    string
	Limit   int
}

type RecordInteractionRequest struct {
	UserID          uuid.UUID `json:"user_id" validate:"required"`
	TableID         uuid.UUID `json:"table_id" validate:"required"`
	Type            string    `json:"interaction_type" validate:"required,oneof=view inquiry favorite share rating booking"`
	Rating          *float64  `json:"rating,omitempty" validate:"omitempty,min=1,max=5"`
	SessionDuration *int      `json:"session_duration,omitempty"`
	Source          string    `json:"source,omitempty"`
	DeviceType      string    `json:"-"` // derived from the User-Agent, never client-supplied
	Occasion        string    `json:"occasion,omitempty"`
	PartySize       int       `json:"party_size,omitempty"`
	TimeSlot        string    `json:"time_slot,omitempty"`
}

type RecordInteractionResponse struct {
	ID        uuid.UUID `json:"id"`
	Type      string    `json:"interaction_type"`
	Timestamp time.Time `json:"timestamp"`
}
