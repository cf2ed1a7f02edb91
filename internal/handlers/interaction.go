package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/mirovate/tablematch/internal/services"
	"github.com/mirovate/tablematch/internal/storage"
	"github.com/mirovate/tablematch/pkg/models"
)

type InteractionHandler struct {
	logger   *logrus.Logger
	recorder services.InteractionRecorder
	validate *validator.Validate
}

func NewInteractionHandler(logger *logrus.Logger, recorder services.InteractionRecorder) *InteractionHandler {
	return &InteractionHandler{
		logger:   logger,
		recorder: recorder,
		validate: validator.New(),
	}
}

// Record serves POST /api/v1/interactions.
func (h *InteractionHandler) Record(c *gin.Context) {
	var req models.RecordInteractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{
				"code":    "INVALID_REQUEST_BODY",
				"message": err.Error(),
			},
		})
		return
	}

	if err := h.validate.Struct(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{
				"code":    "VALIDATION_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	if req.Type == models.InteractionRating && req.Rating == nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{
				"code":    "VALIDATION_FAILED",
				"message": "rating interactions require a rating value",
			},
		})
		return
	}

	req.DeviceType = deviceTypeFromUserAgent(c.Request.UserAgent())

	resp, err := h.recorder.RecordInteraction(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": gin.H{
					"code":    "TABLE_NOT_FOUND",
					"message": "Table not found",
				},
			})
			return
		}
		h.logger.WithError(err).WithField("table_id", req.TableID).Error("Failed to record interaction")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": gin.H{
				"code":    "INTERACTION_RECORDING_FAILED",
				"message": "Failed to record interaction",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "interaction": resp})
}

// deviceTypeFromUserAgent classifies the caller as mobile or desktop.
func deviceTypeFromUserAgent(ua string) string {
	if strings.Contains(strings.ToLower(ua), "mobile") {
		return "mobile"
	}
	return "desktop"
}
