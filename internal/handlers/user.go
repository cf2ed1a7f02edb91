package handlers

import (
	"fmt"
	"net/http"
	"sort"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/mirovate/tablematch/internal/services"
	"github.com/mirovate/tablematch/pkg/models"
)

type UserHandler struct {
	logger   *logrus.Logger
	recorder services.InteractionRecorder
	recs     services.RecommendationStore
	tables   services.TableStore
}

func NewUserHandler(
	logger *logrus.Logger,
	recorder services.InteractionRecorder,
	recs services.RecommendationStore,
	tables services.TableStore,
) *UserHandler {
	return &UserHandler{
		logger:   logger,
		recorder: recorder,
		recs:     recs,
		tables:   tables,
	}
}

// Interactions serves GET /api/v1/users/:userId/interactions.
func (h *UserHandler) Interactions(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{
				"code":    "INVALID_USER_ID",
				"message": "Invalid user ID format",
			},
		})
		return
	}

	limit := 50
	if limitStr := c.Query("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 && parsed <= 500 {
			limit = parsed
		}
	}

	interactions, err := h.recorder.ListInteractions(c.Request.Context(), userID, limit)
	if err != nil {
		h.logger.WithError(err).WithField("user_id", userID).Error("Failed to list interactions")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": gin.H{
				"code":    "INTERACTION_QUERY_FAILED",
				"message": "Failed to load interactions",
			},
		})
		return
	}

	summary := make(map[string]int)
	for _, interaction := range interactions {
		summary[interaction.Type]++
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"interactions": interactions,
		"count":        len(interactions),
		"summary":      summary,
	})
}

// ReservedTables serves GET /api/v1/users/:userId/reserved-tables: the tables
// the user reserved from recommendations, newest first, each with the context
// of the recommendation that led to it.
func (h *UserHandler) ReservedTables(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{
				"code":    "INVALID_USER_ID",
				"message": "Invalid user ID format",
			},
		})
		return
	}

	limit := 10
	if limitStr := c.Query("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}

	entries, err := h.recs.ListRecommendationsByUser(c.Request.Context(), userID)
	if err != nil {
		h.logger.WithError(err).WithField("user_id", userID).Error("Failed to list recommendations")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": gin.H{
				"code":    "RESERVED_TABLES_QUERY_FAILED",
				"message": "Failed to load reserved tables",
			},
		})
		return
	}

	reserved := make([]models.ReservedTable, 0)
	for _, entry := range entries {
		for _, event := range entry.ReservedTables {
			table, err := h.tables.GetTableByID(c.Request.Context(), event.TableID)
			if err != nil {
				// Tables removed since the reservation simply drop out.
				continue
			}
			reserved = append(reserved, models.ReservedTable{
				Table:         table,
				ReservedAt:    event.At,
				Rank:          event.Rank,
				ReservationID: event.ReservationID,
				Context:       entry.Context,
				GeneratedAt:   entry.GeneratedAt,
			})
		}
	}
	sort.Slice(reserved, func(i, j int) bool {
		return reserved[i].ReservedAt.After(reserved[j].ReservedAt)
	})
	total := len(reserved)
	if len(reserved) > limit {
		reserved = reserved[:limit]
	}

	message := "No tables reserved from recommendations yet"
	if total > 0 {
		message = fmt.Sprintf("Found %d tables reserved from recommendations", total)
	}
	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"reserved_tables": reserved,
		"total":           total,
		"message":         message,
	})
}
