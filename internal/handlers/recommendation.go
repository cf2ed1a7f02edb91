package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/mirovate/tablematch/internal/services"
	"github.com/mirovate/tablematch/pkg/models"
)

const maxRecommendationCount = 50

type RecommendationHandler struct {
	orchestrator services.RecommendationOrchestratorInterface
	interactions services.InteractionRecorder
	logger       *logrus.Logger
}

func NewRecommendationHandler(
	orchestrator services.RecommendationOrchestratorInterface,
	interactions services.InteractionRecorder,
	logger *logrus.Logger,
) *RecommendationHandler {
	return &RecommendationHandler{
		orchestrator: orchestrator,
		interactions: interactions,
		logger:       logger,
	}
}

// Get serves GET /api/v1/recommendations/:userId. The literal user id
// "guest" requests anonymous recommendations.
func (h *RecommendationHandler) Get(c *gin.Context) {
	userIDStr := c.Param("userId")
	userID := uuid.Nil
	if userIDStr != "guest" {
		parsed, err := uuid.Parse(userIDStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": gin.H{
					"code":    "INVALID_USER_ID",
					"message": "Invalid user ID format",
				},
			})
			return
		}
		userID = parsed
	}

	partySize := services.ParsePartySize(c.Query("partySize"))
	if err := services.ValidatePartySize(partySize); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{
				"code":    "INVALID_PARTY_SIZE",
				"message": err.Error(),
			},
		})
		return
	}

	count := 0
	if countStr := c.Query("count"); countStr != "" {
		if parsed, err := strconv.Atoi(countStr); err == nil && parsed > 0 && parsed <= maxRecommendationCount {
			count = parsed
		}
	}

	req := &services.RecommendationRequest{
		UserID:    userID,
		Occasion:  c.Query("occasion"),
		TimeSlot:  c.Query("timeSlot"),
		PartySize: partySize,
		Count:     count,
		UseCache:  c.DefaultQuery("useCache", "true") != "false",
	}

	resp, err := h.orchestrator.GetRecommendations(c.Request.Context(), req)
	if err != nil {
		h.logger.WithError(err).WithField("user_id", userID).Error("Failed to generate recommendations")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": gin.H{
				"code":    "RECOMMENDATION_GENERATION_FAILED",
				"message": "Failed to generate recommendations",
			},
		})
		return
	}

	c.JSON(http.StatusOK, resp)
}

type trackClickRequest struct {
	UserID  uuid.UUID `json:"user_id" binding:"required"`
	TableID uuid.UUID `json:"table_id" binding:"required"`
}

// TrackClick serves POST /api/v1/recommendations/track/click.
func (h *RecommendationHandler) TrackClick(c *gin.Context) {
	var req trackClickRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{
				"code":    "INVALID_REQUEST_BODY",
				"message": err.Error(),
			},
		})
		return
	}

	rank, err := h.orchestrator.TrackClick(c.Request.Context(), req.UserID, req.TableID)
	if err != nil {
		h.logger.WithError(err).WithField("user_id", req.UserID).Error("Failed to track click")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": gin.H{
				"code":    "TRACKING_FAILED",
				"message": "Failed to track recommendation click",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "rank": rank})
}

type trackReservationRequest struct {
	UserID        uuid.UUID  `json:"user_id" binding:"required"`
	TableID       uuid.UUID  `json:"table_id" binding:"required"`
	ReservationID *uuid.UUID `json:"reservation_id,omitempty"`
	PartySize     int        `json:"party_size,omitempty"`
	Occasion      string     `json:"occasion,omitempty"`
	TimeSlot      string     `json:"time_slot,omitempty"`
}

// TrackReservation serves POST /api/v1/recommendations/track/reservation.
// Besides stamping the originating recommendation, it records a booking
// interaction so the model and booking counters see the conversion.
func (h *RecommendationHandler) TrackReservation(c *gin.Context) {
	var req trackReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{
				"code":    "INVALID_REQUEST_BODY",
				"message": err.Error(),
			},
		})
		return
	}

	rank, err := h.orchestrator.TrackReservation(c.Request.Context(), req.UserID, req.TableID, req.ReservationID)
	if err != nil {
		h.logger.WithError(err).WithField("user_id", req.UserID).Error("Failed to track reservation")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": gin.H{
				"code":    "TRACKING_FAILED",
				"message": "Failed to track recommendation reservation",
			},
		})
		return
	}

	if _, err := h.interactions.RecordInteraction(c.Request.Context(), &models.RecordInteractionRequest{
		UserID:     req.UserID,
		TableID:    req.TableID,
		Type:       models.InteractionBooking,
		Source:     "recommendation",
		DeviceType: deviceTypeFromUserAgent(c.Request.UserAgent()),
		Occasion:   req.Occasion,
		PartySize:  req.PartySize,
		TimeSlot:   req.TimeSlot,
	}); err != nil {
		h.logger.WithError(err).WithField("table_id", req.TableID).Warn("Failed to record booking interaction")
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "rank": rank})
}
