package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/mirovate/tablematch/pkg/models"
)

// TableStore is the table side of the storage collaborator.
type TableStore interface {
	QueryAvailableTables(ctx context.Context, filter models.TableFilter, limit int) ([]models.Table, error)
	ListTables(ctx context.Context) ([]models.Table, error)
	GetTableByID(ctx context.Context, id uuid.UUID) (*models.Table, error)
	IncrementBookingCount(ctx context.Context, id uuid.UUID) error
	UpdateRating(ctx context.Context, id uuid.UUID, newAverage float64) error
}

// InteractionStore persists and queries interaction events.
type InteractionStore interface {
	InsertInteraction(ctx context.Context, interaction *models.TableInteraction) error
	QueryInteractions(ctx context.Context, filter models.InteractionFilter) ([]models.TableInteraction, error)
}

// UserStore exposes the minimal user projection the engine reads.
type UserStore interface {
	ListUsers(ctx context.Context) ([]models.UserRecord, error)
}

// RecommendationStore owns RecommendationCacheEntry persistence.
type RecommendationStore interface {
	GetCachedRecommendation(ctx context.Context, userID uuid.UUID, occasion string, partySize int) (*models.RecommendationCacheEntry, error)
	UpsertRecommendation(ctx context.Context, entry *models.RecommendationCacheEntry) error
	ListRecommendationsByUser(ctx context.Context, userID uuid.UUID) ([]models.RecommendationCacheEntry, error)
	AppendClicked(ctx context.Context, entry *models.RecommendationCacheEntry, event models.RecommendationEvent) error
	AppendReserved(ctx context.Context, entry *models.RecommendationCacheEntry, event models.RecommendationEvent) error
	DeleteAllRecommendations(ctx context.Context) error
}

// DatasetProvider is what the orchestrator needs from the dataset loader.
type DatasetProvider interface {
	Snapshot(ctx context.Context) *DatasetSnapshot
	Ready() bool
	ModelInfo() models.ModelInfo
	Refresh(ctx context.Context) error
}

// InteractionRecorder records interactions and maintains denormalized table
// counters.
type InteractionRecorder interface {
	RecordInteraction(ctx context.Context, req *models.RecordInteractionRequest) (*models.RecordInteractionResponse, error)
	ListInteractions(ctx context.Context, userID uuid.UUID, limit int) ([]models.TableInteraction, error)
}

// RecommendationOrchestratorInterface is the engine's entry point as exposed
// to the HTTP layer.
type RecommendationOrchestratorInterface interface {
	GetRecommendations(ctx context.Context, req *RecommendationRequest) (*models.RecommendationResponse, error)
	TrackClick(ctx context.Context, userID, tableID uuid.UUID) (int, error)
	TrackReservation(ctx context.Context, userID, tableID uuid.UUID, reservationID *uuid.UUID) (int, error)
}
