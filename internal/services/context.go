package services

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/mirovate/tablematch/pkg/models"
)

// Canonical occasions.
const (
	OccasionRomantic    = "Romantic"
	OccasionBusiness    = "Business"
	OccasionFamily      = "Family"
	OccasionFriends     = "Friends"
	OccasionCelebration = "Celebration"
	OccasionCasual      = "Casual"
)

// Canonical time slots.
const (
	TimeSlotLunch       = "Lunch"
	TimeSlotEarlyDinner = "Early Dinner"
	TimeSlotPrimeDinner = "Prime Dinner"
	TimeSlotLateDinner  = "Late Dinner"
)

const (
	defaultPartySize = 2
	minPartySize     = 1
	maxPartySize     = 20
)

var validOccasions = map[string]bool{
	OccasionRomantic:    true,
	OccasionBusiness:    true,
	OccasionFamily:      true,
	OccasionFriends:     true,
	OccasionCelebration: true,
	OccasionCasual:      true,
}

// timeSlotSynonyms maps lower-cased inputs to canonical labels. Canonical
// labels map to themselves so normalization is idempotent.
var timeSlotSynonyms = map[string]string{
	"lunch":        TimeSlotLunch,
	"early":        TimeSlotEarlyDinner,
	"early dinner": TimeSlotEarlyDinner,
	"evening":      TimeSlotPrimeDinner,
	"prime":        TimeSlotPrimeDinner,
	"prime dinner": TimeSlotPrimeDinner,
	"dinner":       TimeSlotPrimeDinner,
	"late":         TimeSlotLateDinner,
	"late dinner":  TimeSlotLateDinner,
}

var titleCaser = cases.Title(language.English)

// NormalizeOccasion canonicalizes a free-form occasion string. Anything
// outside the fixed vocabulary, including empty input, resolves to Casual.
func NormalizeOccasion(raw string) string {
	normalized := titleCaser.String(strings.ToLower(strings.TrimSpace(raw)))
	if validOccasions[normalized] {
		return normalized
	}
	return OccasionCasual
}

// NormalizeTimeSlot canonicalizes a free-form time-slot string. Unmatched
// input resolves to Prime Dinner.
func NormalizeTimeSlot(raw string) string {
	if slot, ok := timeSlotSynonyms[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return slot
	}
	return TimeSlotPrimeDinner
}

// ParsePartySize parses a numeric-ish party size. Non-numeric or missing
// input resolves to the default of 2; range checking is left to
// ValidatePartySize so callers can surface it as a boundary error.
func ParsePartySize(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return defaultPartySize
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return defaultPartySize
	}
	return n
}

// ValidatePartySize rejects party sizes outside [1,20]. Out-of-range values
// are a caller error, not something to clamp silently.
func ValidatePartySize(n int) error {
	if n < minPartySize || n > maxPartySize {
		return fmt.Errorf("invalid party size %d: must be between %d and %d", n, minPartySize, maxPartySize)
	}
	return nil
}

// NormalizeContext canonicalizes a raw request context. Pure and idempotent.
func NormalizeContext(occasion, timeSlot, partySize string) models.DiningContext {
	return models.DiningContext{
		Occasion:  NormalizeOccasion(occasion),
		TimeSlot:  NormalizeTimeSlot(timeSlot),
		PartySize: ParsePartySize(partySize),
	}
}
