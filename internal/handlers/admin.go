package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/mirovate/tablematch/internal/services"
)

type AdminHandler struct {
	logger  *logrus.Logger
	dataset services.DatasetProvider
	recs    services.RecommendationStore
}

func NewAdminHandler(logger *logrus.Logger, dataset services.DatasetProvider, recs services.RecommendationStore) *AdminHandler {
	return &AdminHandler{
		logger:  logger,
		dataset: dataset,
		recs:    recs,
	}
}

// ModelInfo serves GET /api/v1/admin/model.
func (h *AdminHandler) ModelInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"model":   h.dataset.ModelInfo(),
	})
}

// RefreshModel serves POST /api/v1/admin/model/refresh. The next snapshot
// request reloads from storage.
func (h *AdminHandler) RefreshModel(c *gin.Context) {
	if err := h.dataset.Refresh(c.Request.Context()); err != nil {
		h.logger.WithError(err).Error("Model refresh failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": gin.H{
				"code":    "MODEL_REFRESH_FAILED",
				"message": "Failed to refresh recommendation model",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"model":   h.dataset.ModelInfo(),
	})
}

// BustCache serves DELETE /api/v1/admin/recommendations, dropping every cached
// recommendation so fresh results reflect a refreshed model.
func (h *AdminHandler) BustCache(c *gin.Context) {
	if err := h.recs.DeleteAllRecommendations(c.Request.Context()); err != nil {
		h.logger.WithError(err).Error("Cache bust failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": gin.H{
				"code":    "CACHE_BUST_FAILED",
				"message": "Failed to clear recommendation cache",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// UserAnalytics serves GET /api/v1/admin/users/:userId/analytics: counts of
// shown, clicked and reserved recommendations for one user's live cache
// entries.
func (h *AdminHandler) UserAnalytics(c *gin.Context) {
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

	entries, err := h.recs.ListRecommendationsByUser(c.Request.Context(), userID)
	if err != nil {
		h.logger.WithError(err).WithField("user_id", userID).Error("Failed to load recommendation analytics")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": gin.H{
				"code":    "ANALYTICS_QUERY_FAILED",
				"message": "Failed to load recommendation analytics",
			},
		})
		return
	}

	shown, clicked, reserved := 0, 0, 0
	for _, entry := range entries {
		shown += len(entry.Recommendations)
		clicked += len(entry.ClickedTables)
		reserved += len(entry.ReservedTables)
	}

	ctr := 0.0
	if shown > 0 {
		ctr = float64(clicked) / float64(shown)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"analytics": gin.H{
			"user_id":            userID,
			"entries":            len(entries),
			"recommendations":    shown,
			"clicked":            clicked,
			"reserved":           reserved,
			"click_through_rate": ctr,
		},
	})
}
