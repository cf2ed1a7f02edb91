package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeOccasion(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"romantic", OccasionRomantic},
		{"ROMANTIC", OccasionRomantic},
		{"  business ", OccasionBusiness},
		{"Family", OccasionFamily},
		{"friends", OccasionFriends},
		{"celebration", OccasionCelebration},
		{"casual", OccasionCasual},
		{"anniversary", OccasionCasual},
		{"", OccasionCasual},
		{"🎉", OccasionCasual},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, NormalizeOccasion(tt.input), "input %q", tt.input)
	}
}

func TestNormalizeOccasion_Idempotent(t *testing.T) {
	for _, input := range []string{"romantic", "brunch", "", "Celebration"} {
		once := NormalizeOccasion(input)
		assert.Equal(t, once, NormalizeOccasion(once))
	}
}

func TestNormalizeTimeSlot(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"lunch", TimeSlotLunch},
		{"early", TimeSlotEarlyDinner},
		{"evening", TimeSlotPrimeDinner},
		{"prime", TimeSlotPrimeDinner},
		{"dinner", TimeSlotPrimeDinner},
		{"late", TimeSlotLateDinner},
		{"midnight", TimeSlotPrimeDinner},
		{"", TimeSlotPrimeDinner},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, NormalizeTimeSlot(tt.input), "input %q", tt.input)
	}
}

func TestNormalizeTimeSlot_Idempotent(t *testing.T) {
	for _, input := range []string{"lunch", "early", "dinner", "late", "brunch"} {
		once := NormalizeTimeSlot(input)
		assert.Equal(t, once, NormalizeTimeSlot(once))
	}
}

func TestParsePartySize(t *testing.T) {
	assert.Equal(t, 4, ParsePartySize("4"))
	assert.Equal(t, 2, ParsePartySize(""))
	assert.Equal(t, 2, ParsePartySize("four"))
	assert.Equal(t, 25, ParsePartySize("25")) // range checked separately
}

func TestValidatePartySize(t *testing.T) {
	assert.NoError(t, ValidatePartySize(1))
	assert.NoError(t, ValidatePartySize(20))
	assert.Error(t, ValidatePartySize(0))
	assert.Error(t, ValidatePartySize(21))
	assert.Error(t, ValidatePartySize(-3))
}

func TestNormalizeContext(t *testing.T) {
	dc := NormalizeContext("ROMANTIC", "evening", "4")
	assert.Equal(t, OccasionRomantic, dc.Occasion)
	assert.Equal(t, TimeSlotPrimeDinner, dc.TimeSlot)
	assert.Equal(t, 4, dc.PartySize)

	// Re-normalizing a normalized context is a no-op.
	again := NormalizeContext(dc.Occasion, dc.TimeSlot, "4")
	assert.Equal(t, dc, again)
}
