package services

import (
	"github.com/google/uuid"

	"github.com/mirovate/tablematch/pkg/models"
)

// collaborativeRecommendations scores candidate tables by co-interaction
// overlap. Dining context is ignored here. A user with no interaction history
// yields an empty result; the orchestrator's fallback chain absorbs that.
//
// Candidates are not deduplicated: when several neighbors interacted with the
// same table it appears once per neighbor interaction, letting the hybrid
// stage weight by signal density.
func collaborativeRecommendations(snap *DatasetSnapshot, userID uuid.UUID, limit int) []models.RankedCandidate {
	interacted := make(map[uuid.UUID]bool)
	for _, i := range snap.Interactions {
		if i.UserID == userID {
			interacted[i.TableID] = true
		}
	}
	if len(interacted) == 0 {
		return nil
	}

	neighbors := make(map[uuid.UUID]bool)
	for _, i := range snap.Interactions {
		if i.UserID != userID && interacted[i.TableID] {
			neighbors[i.UserID] = true
		}
	}

	var results []models.RankedCandidate
	for _, i := range snap.Interactions {
		if !neighbors[i.UserID] || interacted[i.TableID] {
			continue
		}
		results = append(results, models.RankedCandidate{
			TableID:     i.TableID,
			Score:       i.Weight / 5.0,
			Reason:      models.ReasonCollaborative,
			Confidence:  models.ConfidenceMedium,
			Explanation: "Users with similar preferences also liked this table",
		})
		if len(results) == limit {
			break
		}
	}
	return results
}
