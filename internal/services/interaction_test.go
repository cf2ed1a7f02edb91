package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mirovate/tablematch/internal/storage"
	"github.com/mirovate/tablematch/pkg/models"
)

func float64Ptr(v float64) *float64 { return &v }

func TestRecordInteraction_View(t *testing.T) {
	userID := uuid.New()
	table := models.Table{ID: uuid.New(), TableName: "Window 1", Capacity: 2}

	tables := &MockTableStore{}
	tables.On("GetTableByID", mock.Anything, table.ID).Return(&table, nil)

	interactions := &MockInteractionStore{}
	interactions.On("InsertInteraction", mock.Anything, mock.MatchedBy(func(i *models.TableInteraction) bool {
		return i.UserID == userID &&
			i.TableID == table.ID &&
			i.Type == models.InteractionView &&
			i.Context.Occasion == OccasionRomantic &&
			i.Context.TimeSlot == TimeSlotPrimeDinner &&
			i.ExpiresAt.Sub(i.Timestamp) == models.InteractionRetention
	})).Return(nil)

	svc := NewInteractionService(interactions, tables, nil, testLogger())

	resp, err := svc.RecordInteraction(context.Background(), &models.RecordInteractionRequest{
		UserID:   userID,
		TableID:  table.ID,
		Type:     models.InteractionView,
		Occasion: "romantic",
		TimeSlot: "evening",
	})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, resp.ID)
	assert.Equal(t, models.InteractionView, resp.Type)
	interactions.AssertExpectations(t)
}

func TestRecordInteraction_StripsRatingOutsideRatingType(t *testing.T) {
	table := models.Table{ID: uuid.New(), TableName: "Corner 3", Capacity: 4}

	tables := &MockTableStore{}
	tables.On("GetTableByID", mock.Anything, table.ID).Return(&table, nil)

	interactions := &MockInteractionStore{}
	interactions.On("InsertInteraction", mock.Anything, mock.MatchedBy(func(i *models.TableInteraction) bool {
		return i.Type == models.InteractionView && i.Rating == nil
	})).Return(nil)

	svc := NewInteractionService(interactions, tables, nil, testLogger())

	_, err := svc.RecordInteraction(context.Background(), &models.RecordInteractionRequest{
		UserID:  uuid.New(),
		TableID: table.ID,
		Type:    models.InteractionView,
		Rating:  float64Ptr(5),
	})
	require.NoError(t, err)

	// A smuggled rating must not touch the table aggregate either.
	tables.AssertNotCalled(t, "UpdateRating", mock.Anything, mock.Anything, mock.Anything)
	interactions.AssertExpectations(t)
}

func TestRecordInteraction_StripsSessionDurationOutsideViewType(t *testing.T) {
	table := models.Table{ID: uuid.New(), TableName: "Corner 3", Capacity: 4}

	tables := &MockTableStore{}
	tables.On("GetTableByID", mock.Anything, table.ID).Return(&table, nil)
	tables.On("IncrementBookingCount", mock.Anything, table.ID).Return(nil)

	interactions := &MockInteractionStore{}
	interactions.On("InsertInteraction", mock.Anything, mock.MatchedBy(func(i *models.TableInteraction) bool {
		return i.Type == models.InteractionBooking && i.SessionDuration == nil
	})).Return(nil)

	svc := NewInteractionService(interactions, tables, nil, testLogger())

	duration := 120
	_, err := svc.RecordInteraction(context.Background(), &models.RecordInteractionRequest{
		UserID:          uuid.New(),
		TableID:         table.ID,
		Type:            models.InteractionBooking,
		SessionDuration: &duration,
	})
	require.NoError(t, err)
	interactions.AssertExpectations(t)
}

func TestRecordInteraction_TableNotFound(t *testing.T) {
	tables := &MockTableStore{}
	tables.On("GetTableByID", mock.Anything, mock.Anything).Return(nil, storage.ErrNotFound)

	svc := NewInteractionService(&MockInteractionStore{}, tables, nil, testLogger())

	_, err := svc.RecordInteraction(context.Background(), &models.RecordInteractionRequest{
		UserID:  uuid.New(),
		TableID: uuid.New(),
		Type:    models.InteractionView,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, storage.ErrNotFound))
}

func TestRecordInteraction_RatingUpdatesAverage(t *testing.T) {
	userID := uuid.New()
	table := models.Table{ID: uuid.New(), TableName: "Booth 2", AvgRating: 4.0}

	tables := &MockTableStore{}
	tables.On("GetTableByID", mock.Anything, table.ID).Return(&table, nil)
	// Three existing 4.0 ratings plus the new 5.0: mean 4.25, not 4.3.
	tables.On("UpdateRating", mock.Anything, table.ID, 4.25).Return(nil)

	interactions := &MockInteractionStore{}
	interactions.On("InsertInteraction", mock.Anything, mock.Anything).Return(nil)
	interactions.On("QueryInteractions", mock.Anything, models.InteractionFilter{
		TableID: table.ID,
		Type:    models.InteractionRating,
	}).Return([]models.TableInteraction{
		{TableID: table.ID, Type: models.InteractionRating, Rating: float64Ptr(4.0)},
		{TableID: table.ID, Type: models.InteractionRating, Rating: float64Ptr(4.0)},
		{TableID: table.ID, Type: models.InteractionRating, Rating: float64Ptr(4.0)},
		{TableID: table.ID, Type: models.InteractionRating, Rating: float64Ptr(5.0)},
	}, nil)

	svc := NewInteractionService(interactions, tables, nil, testLogger())

	_, err := svc.RecordInteraction(context.Background(), &models.RecordInteractionRequest{
		UserID:  userID,
		TableID: table.ID,
		Type:    models.InteractionRating,
		Rating:  float64Ptr(5.0),
	})
	require.NoError(t, err)

	tables.AssertCalled(t, "UpdateRating", mock.Anything, table.ID, 4.25)
}

func TestRecordInteraction_BookingIncrementsCount(t *testing.T) {
	table := models.Table{ID: uuid.New(), TableName: "Hall 3"}

	tables := &MockTableStore{}
	tables.On("GetTableByID", mock.Anything, table.ID).Return(&table, nil)
	tables.On("IncrementBookingCount", mock.Anything, table.ID).Return(nil)

	interactions := &MockInteractionStore{}
	interactions.On("InsertInteraction", mock.Anything, mock.Anything).Return(nil)

	svc := NewInteractionService(interactions, tables, nil, testLogger())

	_, err := svc.RecordInteraction(context.Background(), &models.RecordInteractionRequest{
		UserID:  uuid.New(),
		TableID: table.ID,
		Type:    models.InteractionBooking,
	})
	require.NoError(t, err)

	tables.AssertCalled(t, "IncrementBookingCount", mock.Anything, table.ID)
}

func TestRecordInteraction_StorageErrorPropagates(t *testing.T) {
	table := models.Table{ID: uuid.New()}

	tables := &MockTableStore{}
	tables.On("GetTableByID", mock.Anything, table.ID).Return(&table, nil)

	interactions := &MockInteractionStore{}
	interactions.On("InsertInteraction", mock.Anything, mock.Anything).
		Return(errors.New("insert failed"))

	svc := NewInteractionService(interactions, tables, nil, testLogger())

	_, err := svc.RecordInteraction(context.Background(), &models.RecordInteractionRequest{
		UserID:  uuid.New(),
		TableID: table.ID,
		Type:    models.InteractionView,
	})
	assert.Error(t, err)
}

func TestListInteractions(t *testing.T) {
	userID := uuid.New()

	interactions := &MockInteractionStore{}
	interactions.On("QueryInteractions", mock.Anything, models.InteractionFilter{
		UserID: userID,
		Limit:  25,
	}).Return([]models.TableInteraction{
		{UserID: userID, Type: models.InteractionView},
	}, nil)

	svc := NewInteractionService(interactions, &MockTableStore{}, nil, testLogger())

	result, err := svc.ListInteractions(context.Background(), userID, 25)
	require.NoError(t, err)
	assert.Len(t, result, 1)
}
