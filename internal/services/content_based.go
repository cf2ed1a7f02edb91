package services

import (
	"math"
	"sort"

	"github.com/google/uuid"

	"github.com/mirovate/tablematch/pkg/models"
)

// Additive feature bonuses for the content-based scorer.
const (
	capacityBonus = 0.3
	ambianceBonus = 0.4
	windowBonus   = 0.2
	privateBonus  = 0.2
)

// contentBasedRecommendations scores every table against the user's derived
// preferences and the normalized request context. Scores are clamped to
// [0,1]; tables scoring zero are dropped entirely. An unknown user yields an
// empty result.
func contentBasedRecommendations(
	snap *DatasetSnapshot,
	userID uuid.UUID,
	dc models.DiningContext,
	limit int,
) []models.RankedCandidate {
	user, ok := snap.Users[userID]
	if !ok {
		return nil
	}

	var results []models.RankedCandidate
	for _, table := range snap.Tables {
		score := 0.0

		if math.Abs(float64(table.Capacity-user.PreferredGroupSize)) <= 2 {
			score += capacityBonus
		}

		// Mutually exclusive occasion branches: only the requested occasion's
		// ambiance pairing contributes.
		switch dc.Occasion {
		case OccasionRomantic:
			if table.Ambiance == models.AmbianceIntimate {
				score += ambianceBonus
			}
		case OccasionBusiness:
			if table.Ambiance == models.AmbianceFormal {
				score += ambianceBonus
			}
		}

		if user.PrefersWindow && table.HasWindowView {
			score += windowBonus
		}
		if user.PrefersPrivate && table.IsPrivate {
			score += privateBonus
		}

		if score == 0 {
			continue
		}

		confidence := models.ConfidenceMedium
		if score > 0.5 {
			confidence = models.ConfidenceHigh
		}

		results = append(results, models.RankedCandidate{
			TableID:     table.ID,
			Score:       math.Min(score, 1.0),
			Reason:      models.ReasonContentBased,
			Confidence:  confidence,
			Explanation: "This table matches your dining preferences",
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > limit {
		results = results[:limit]
	}
	return results
}
