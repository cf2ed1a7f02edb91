package services

import (
	"fmt"
	"strings"

	"github.com/mirovate/tablematch/pkg/models"
)

// Ambiance allow-lists per occasion, shared by smart matching and the
// explanation synthesizer.
var occasionAmbiances = map[string][]string{
	OccasionRomantic:    {models.AmbianceIntimate, models.AmbianceRomantic, models.AmbianceQuiet},
	OccasionBusiness:    {models.AmbianceFormal, models.AmbianceQuiet},
	OccasionCelebration: {models.AmbianceLively, models.AmbianceSocial},
}

func ambianceMatchesOccasion(ambiance, occasion string) bool {
	for _, a := range occasionAmbiances[occasion] {
		if a == ambiance {
			return true
		}
	}
	return false
}

// explanationFactors lists the human-readable reasons a table fits the
// request context.
func explanationFactors(table *models.Table, dc models.DiningContext) []string {
	var factors []string

	if table.Capacity >= dc.PartySize && table.Capacity <= dc.PartySize+2 {
		factors = append(factors, fmt.Sprintf("perfect size for %d guests", dc.PartySize))
	}

	if ambianceMatchesOccasion(table.Ambiance, dc.Occasion) {
		ambiance := strings.ToLower(table.Ambiance)
		switch dc.Occasion {
		case OccasionRomantic:
			factors = append(factors, fmt.Sprintf("%s ambiance ideal for romantic dining", ambiance))
		case OccasionBusiness:
			factors = append(factors, fmt.Sprintf("%s setting perfect for business meetings", ambiance))
		case OccasionCelebration:
			factors = append(factors, fmt.Sprintf("%s atmosphere great for celebrations", ambiance))
		}
	}

	if table.HasWindowView {
		factors = append(factors, "beautiful window view")
	}
	if table.IsPrivate {
		factors = append(factors, "private dining experience")
	}
	if table.AvgRating >= 4.0 {
		factors = append(factors, fmt.Sprintf("highly rated (%.1f/5 stars)", table.AvgRating))
	}

	return factors
}

// synthesizeExplanation builds the contextual explanation for an enriched
// candidate. Falls back to a generic occasion-based sentence when no factors
// matched.
func synthesizeExplanation(factors []string, occasion string) string {
	if len(factors) == 0 {
		return genericExplanation(occasion)
	}
	return "Recommended for " + strings.Join(factors, ", ")
}

func genericExplanation(occasion string) string {
	return fmt.Sprintf("Great table for %s dining", strings.ToLower(occasion))
}
