package models

import (
	"time"

	"github.com/google/uuid"
)

// Table locations.
const (
	LocationWindow      = "Window"
	LocationGarden      = "Garden"
	LocationMainHall    = "Main Hall"
	LocationPrivateRoom = "Private Room"
	LocationBarArea     = "Bar Area"
	LocationTerrace     = "Terrace"
	LocationCorner      = "Corner"
	LocationCenter      = "Center"
)

// Table ambiances.
const (
	AmbianceRomantic = "Romantic"
	AmbianceCasual   = "Casual"
	AmbianceFormal   = "Formal"
	AmbianceLively   = "Lively"
	AmbianceQuiet    = "Quiet"
	AmbianceIntimate = "Intimate"
	AmbianceSocial   = "Social"
)

// Price tiers.
const (
	PriceTierBudget   = "Budget"
	PriceTierMidRange = "Mid-range"
	PriceTierPremium  = "Premium"
)

// Table statuses.
const (
	TableStatusAvailable = "Available"
	TableStatusBooked    = "Booked"
	TableStatusReserved  = "Reserved"
)

type Table struct {
	ID            uuid.UUID `json:"id" db:"id"`
	TableName     string    `json:"table_name" db:"table_name" validate:"required"`
	TableType     string    `json:"table_type" db:"table_type"`
	Capacity      int       `json:"capacity" db:"capacity" validate:"min=1"`
	Status        string    `json:"status" db:"status"`
	Location      string    `json:"location" db:"location"`
	Ambiance      string    `json:"ambiance" db:"ambiance"`
	HasWindowView bool      `json:"has_window_view" db:"has_window_view"`
	IsPrivate     bool      `json:"is_private" db:"is_private"`
	PriceTier     string    `json:"price_tier" db:"price_tier"`
	Features      []string  `json:"features,omitempty" db:"features"`
	AvgRating     float64   `json:"avg_rating" db:"avg_rating"`
	TotalBookings int       `json:"total_bookings" db:"total_bookings"`
	Image         *string   `json:"image,omitempty" db:"image"`
	Description   *string   `json:"description,omitempty" db:"description"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// TableFilter narrows QueryAvailableTables. Zero values mean "no constraint".
type TableFilter struct {
	MinCapacity int
	MaxCapacity int
	Ambiances   []string
}
