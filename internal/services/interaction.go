package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/mirovate/tablematch/internal/messaging"
	"github.com/mirovate/tablematch/pkg/models"
)

// InteractionService records user/table interactions and maintains the
// aggregate table signals (average rating, booking count) they feed.
type InteractionService struct {
	interactions InteractionStore
	tables       TableStore
	producer     *messaging.InteractionProducer
	logger       *logrus.Logger
}

func NewInteractionService(
	interactions InteractionStore,
	tables TableStore,
	producer *messaging.InteractionProducer,
	logger *logrus.Logger,
) *InteractionService {
	return &InteractionService{
		interactions: interactions,
		tables:       tables,
		producer:     producer,
		logger:       logger,
	}
}

// RecordInteraction validates the target table, persists the interaction with
// a normalized context snapshot and a 30-day expiry, and updates the table's
// aggregates for rating and booking interactions.
func (s *InteractionService) RecordInteraction(
	ctx context.Context,
	req *models.RecordInteractionRequest,
) (*models.RecordInteractionResponse, error) {
	table, err := s.tables.GetTableByID(ctx, req.TableID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve table %s: %w", req.TableID, err)
	}

	// Rating is only meaningful on rating interactions and session duration
	// only on views; strip them elsewhere so stored rows stay unambiguous.
	var rating *float64
	if req.Type == models.InteractionRating {
		rating = req.Rating
	}
	var sessionDuration *int
	if req.Type == models.InteractionView {
		sessionDuration = req.SessionDuration
	}

	now := time.Now()
	interaction := &models.TableInteraction{
		ID:              uuid.New(),
		UserID:          req.UserID,
		TableID:         req.TableID,
		Type:            req.Type,
		Rating:          rating,
		SessionDuration: sessionDuration,
		DeviceType:      req.DeviceType,
		Source:          req.Source,
		Context: models.DiningContext{
			Occasion:  NormalizeOccasion(req.Occasion),
			TimeSlot:  NormalizeTimeSlot(req.TimeSlot),
			PartySize: req.PartySize,
		},
		Timestamp: now,
		ExpiresAt: now.Add(models.InteractionRetention),
	}
	if interaction.Context.PartySize == 0 {
		interaction.Context.PartySize = defaultPartySize
	}

	if err := s.interactions.InsertInteraction(ctx, interaction); err != nil {
		return nil, fmt.Errorf("failed to record interaction: %w", err)
	}

	switch req.Type {
	case models.InteractionRating:
		if req.Rating != nil {
			s.refreshTableRating(ctx, table, req.TableID)
		}
	case models.InteractionBooking:
		if err := s.tables.IncrementBookingCount(ctx, req.TableID); err != nil {
			s.logger.WithError(err).WithField("table_id", req.TableID).Warn("Failed to increment booking count")
		}
	}

	s.publish(ctx, interaction)

	return &models.RecordInteractionResponse{
		ID:        interaction.ID,
		Type:      interaction.Type,
		Timestamp: interaction.Timestamp,
	}, nil
}

// ListInteractions returns a user's recorded interactions, newest first.
func (s *InteractionService) ListInteractions(
	ctx context.Context,
	userID uuid.UUID,
	limit int,
) ([]models.TableInteraction, error) {
	filter := models.InteractionFilter{UserID: userID, Limit: limit}
	interactions, err := s.interactions.QueryInteractions(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query interactions: %w", err)
	}
	return interactions, nil
}

// refreshTableRating recomputes the table's mean rating over all rating
// interactions and stores it rounded to two decimals.
func (s *InteractionService) refreshTableRating(ctx context.Context, table *models.Table, tableID uuid.UUID) {
	ratings, err := s.interactions.QueryInteractions(ctx, models.InteractionFilter{
		TableID: tableID,
		Type:    models.InteractionRating,
	})
	if err != nil {
		s.logger.WithError(err).WithField("table_id", tableID).Warn("Failed to load ratings for aggregate update")
		return
	}

	sum := 0.0
	n := 0
	for _, r := range ratings {
		if r.Rating != nil {
			sum += *r.Rating
			n++
		}
	}
	if n == 0 {
		return
	}

	avg := math.Round(sum/float64(n)*100) / 100
	if err := s.tables.UpdateRating(ctx, tableID, avg); err != nil {
		s.logger.WithError(err).WithField("table_id", tableID).Warn("Failed to update table rating")
		return
	}
	table.AvgRating = avg
}

// publish emits the interaction to Kafka on a best-effort basis.
func (s *InteractionService) publish(ctx context.Context, interaction *models.TableInteraction) {
	if s.producer == nil {
		return
	}
	if err := s.producer.PublishInteraction(ctx, interaction); err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"interaction_id": interaction.ID,
			"table_id":       interaction.TableID,
		}).Warn("Failed to publish interaction event")
	}
}
