package services

import (
	"time"

	"github.com/google/uuid"

	"github.com/mirovate/tablematch/pkg/models"
)

// Built-in fixture set used when a storage load fails. Small but shaped like
// real data so the scorers behave sensibly during an outage.

var (
	fixtureTableBar     = uuid.MustParse("1b9d6bcd-bbfd-4b2d-9b5d-ab8dfbbd4001")
	fixtureTableGarden  = uuid.MustParse("1b9d6bcd-bbfd-4b2d-9b5d-ab8dfbbd4002")
	fixtureTableHall    = uuid.MustParse("1b9d6bcd-bbfd-4b2d-9b5d-ab8dfbbd4003")
	fixtureTableBooth   = uuid.MustParse("1b9d6bcd-bbfd-4b2d-9b5d-ab8dfbbd4004")
	fixtureTableTerrace = uuid.MustParse("1b9d6bcd-bbfd-4b2d-9b5d-ab8dfbbd4005")

	fixtureUserFriends  = uuid.MustParse("6ec0bd7f-11c0-43da-975e-2a8ad9eba001")
	fixtureUserRomantic = uuid.MustParse("6ec0bd7f-11c0-43da-975e-2a8ad9eba002")
	fixtureUserBusiness = uuid.MustParse("6ec0bd7f-11c0-43da-975e-2a8ad9eba003")
)

func fixtureTables() []models.Table {
	return []models.Table{
		{ID: fixtureTableBar, TableName: "Bar 1", Capacity: 4, Status: models.TableStatusAvailable, Location: models.LocationBarArea, Ambiance: models.AmbianceFormal, PriceTier: models.PriceTierMidRange, AvgRating: 3.7},
		{ID: fixtureTableGarden, TableName: "Garden 2", Capacity: 2, Status: models.TableStatusAvailable, Location: models.LocationGarden, Ambiance: models.AmbianceIntimate, HasWindowView: true, IsPrivate: true, PriceTier: models.PriceTierMidRange, AvgRating: 4.0},
		{ID: fixtureTableHall, TableName: "Hall 3", Capacity: 2, Status: models.TableStatusAvailable, Location: models.LocationMainHall, Ambiance: models.AmbianceSocial, HasWindowView: true, PriceTier: models.PriceTierMidRange, AvgRating: 4.2},
		{ID: fixtureTableBooth, TableName: "Booth 4", Capacity: 4, Status: models.TableStatusAvailable, Location: models.LocationBarArea, Ambiance: models.AmbianceSocial, HasWindowView: true, IsPrivate: true, PriceTier: models.PriceTierPremium, AvgRating: 3.3},
		{ID: fixtureTableTerrace, TableName: "Terrace 5", Capacity: 2, Status: models.TableStatusAvailable, Location: models.LocationTerrace, Ambiance: models.AmbianceLively, IsPrivate: true, PriceTier: models.PriceTierPremium, AvgRating: 4.7},
	}
}

func fixtureUsers() map[uuid.UUID]models.UserFeatures {
	return map[uuid.UUID]models.UserFeatures{
		fixtureUserFriends: {
			UserID:             fixtureUserFriends,
			PreferredGroupSize: 8,
			PreferredOccasion:  OccasionFriends,
			PrefersQuiet:       true,
		},
		fixtureUserRomantic: {
			UserID:             fixtureUserRomantic,
			PreferredGroupSize: 4,
			PreferredOccasion:  OccasionRomantic,
			PrefersQuiet:       true,
			PrefersPrivate:     true,
		},
		fixtureUserBusiness: {
			UserID:             fixtureUserBusiness,
			PreferredGroupSize: 2,
			PreferredOccasion:  OccasionBusiness,
			PrefersQuiet:       true,
			PrefersWindow:      true,
			PrefersPrivate:     true,
		},
	}
}

func fixtureInteractions() []InteractionRecord {
	now := time.Now()
	return []InteractionRecord{
		{UserID: fixtureUserFriends, TableID: fixtureTableBar, Type: models.InteractionView, Weight: 1.0, Timestamp: now.Add(-72 * time.Hour)},
		{UserID: fixtureUserFriends, TableID: fixtureTableGarden, Type: models.InteractionFavorite, Weight: 3.0, Timestamp: now.Add(-48 * time.Hour)},
		{UserID: fixtureUserRomantic, TableID: fixtureTableGarden, Type: models.InteractionBooking, Weight: 5.0, Timestamp: now.Add(-24 * time.Hour)},
		{UserID: fixtureUserBusiness, TableID: fixtureTableHall, Type: models.InteractionInquiry, Weight: 2.0, Timestamp: now.Add(-12 * time.Hour)},
	}
}
