package services

import (
	"sort"

	"github.com/google/uuid"

	"github.com/mirovate/tablematch/pkg/models"
)

// HybridRanker blends the collaborative and content-based scorers with fixed
// weights. Linear rank-fusion, not a learned ensemble.
type HybridRanker struct {
	collaborativeWeight float64
	contentWeight       float64
}

func NewHybridRanker(collaborativeWeight, contentWeight float64) *HybridRanker {
	return &HybridRanker{
		collaborativeWeight: collaborativeWeight,
		contentWeight:       contentWeight,
	}
}

// Recommend merges both scorers' outputs keyed by table id. A table present
// in both sources gets the weighted scores summed and the explanations
// concatenated. Duplicate collaborative candidates for the same table are not
// aggregated; the last one wins the collaborative contribution.
func (h *HybridRanker) Recommend(
	snap *DatasetSnapshot,
	userID uuid.UUID,
	dc models.DiningContext,
	limit int,
) []models.RankedCandidate {
	cf := collaborativeRecommendations(snap, userID, limit)
	cb := contentBasedRecommendations(snap, userID, dc, limit)

	combined := make(map[uuid.UUID]*models.RankedCandidate)
	var order []uuid.UUID

	for _, rec := range cf {
		if _, seen := combined[rec.TableID]; !seen {
			order = append(order, rec.TableID)
		}
		merged := rec
		merged.Score = rec.Score * h.collaborativeWeight
		merged.Reason = models.ReasonHybrid
		combined[rec.TableID] = &merged
	}

	for _, rec := range cb {
		if existing, ok := combined[rec.TableID]; ok {
			existing.Score += rec.Score * h.contentWeight
			existing.Explanation = existing.Explanation + "; " + rec.Explanation
			continue
		}
		merged := rec
		merged.Score = rec.Score * h.contentWeight
		merged.Reason = models.ReasonHybrid
		combined[rec.TableID] = &merged
		order = append(order, rec.TableID)
	}

	results := make([]models.RankedCandidate, 0, len(combined))
	for _, id := range order {
		results = append(results, *combined[id])
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > limit {
		results = results[:limit]
	}
	for i := range results {
		results[i].Rank = i + 1
	}
	return results
}
