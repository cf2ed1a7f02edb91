package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mirovate/tablematch/pkg/models"
)

func romanticTestSnapshot(userID uuid.UUID) *DatasetSnapshot {
	return &DatasetSnapshot{
		Tables: []models.Table{
			{
				ID: uuid.New(), TableName: "Garden Nook", Capacity: 2,
				Ambiance: models.AmbianceIntimate, HasWindowView: true, IsPrivate: true,
			},
			{
				ID: uuid.New(), TableName: "Banquet Hall", Capacity: 12,
				Ambiance: models.AmbianceLively,
			},
		},
		Users: map[uuid.UUID]models.UserFeatures{
			userID: {
				UserID:             userID,
				PreferredGroupSize: 2,
				PreferredOccasion:  OccasionRomantic,
				PrefersWindow:      true,
				PrefersPrivate:     true,
			},
		},
	}
}

func TestContentBasedRecommendations_RomanticFullMatch(t *testing.T) {
	userID := uuid.New()
	snap := romanticTestSnapshot(userID)
	dc := models.DiningContext{Occasion: OccasionRomantic, TimeSlot: TimeSlotPrimeDinner, PartySize: 2}

	results := contentBasedRecommendations(snap, userID, dc, 10)
	require.Len(t, results, 1) // banquet hall scores zero and is dropped

	// 0.3 capacity + 0.4 ambiance + 0.2 window + 0.2 private, clamped to 1.0
	assert.InDelta(t, 1.0, results[0].Score, 1e-9)
	assert.Equal(t, models.ConfidenceHigh, results[0].Confidence)
	assert.Equal(t, models.ReasonContentBased, results[0].Reason)
}

func TestContentBasedRecommendations_ScoresWithinUnitInterval(t *testing.T) {
	userID := uuid.New()
	snap := romanticTestSnapshot(userID)
	dc := models.DiningContext{Occasion: OccasionRomantic, PartySize: 2}

	for _, r := range contentBasedRecommendations(snap, userID, dc, 10) {
		assert.Greater(t, r.Score, 0.0)
		assert.LessOrEqual(t, r.Score, 1.0)
	}
}

func TestContentBasedRecommendations_OccasionBranchesExclusive(t *testing.T) {
	userID := uuid.New()
	snap := romanticTestSnapshot(userID)

	// Same table, Business occasion: the Intimate ambiance no longer pays.
	dc := models.DiningContext{Occasion: OccasionBusiness, PartySize: 2}
	results := contentBasedRecommendations(snap, userID, dc, 10)
	require.Len(t, results, 1)
	assert.InDelta(t, 0.7, results[0].Score, 1e-9) // capacity + window + private
}

func TestContentBasedRecommendations_UnknownUser(t *testing.T) {
	snap := romanticTestSnapshot(uuid.New())
	dc := models.DiningContext{Occasion: OccasionRomantic, PartySize: 2}

	assert.Empty(t, contentBasedRecommendations(snap, uuid.New(), dc, 10))
}

func TestContentBasedRecommendations_MediumConfidenceBelowThreshold(t *testing.T) {
	userID := uuid.New()
	snap := &DatasetSnapshot{
		Tables: []models.Table{
			{ID: uuid.New(), Capacity: 3, Ambiance: models.AmbianceSocial},
		},
		Users: map[uuid.UUID]models.UserFeatures{
			userID: {UserID: userID, PreferredGroupSize: 2},
		},
	}
	dc := models.DiningContext{Occasion: OccasionCasual, PartySize: 2}

	results := contentBasedRecommendations(snap, userID, dc, 10)
	require.Len(t, results, 1)
	assert.InDelta(t, 0.3, results[0].Score, 1e-9)
	assert.Equal(t, models.ConfidenceMedium, results[0].Confidence)
}
