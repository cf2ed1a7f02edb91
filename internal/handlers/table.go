package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/mirovate/tablematch/internal/services"
	"github.com/mirovate/tablematch/pkg/models"
)

type TableHandler struct {
	logger *logrus.Logger
	tables services.TableStore
}

func NewTableHandler(logger *logrus.Logger, tables services.TableStore) *TableHandler {
	return &TableHandler{
		logger: logger,
		tables: tables,
	}
}

// Popular serves GET /api/v1/tables/popular: available tables ranked by
// rating and booking count.
func (h *TableHandler) Popular(c *gin.Context) {
	limit := 10
	if limitStr := c.Query("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}

	tables, err := h.tables.QueryAvailableTables(c.Request.Context(), models.TableFilter{}, limit)
	if err != nil {
		h.logger.WithError(err).Error("Failed to load popular tables")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": gin.H{
				"code":    "TABLE_QUERY_FAILED",
				"message": "Failed to load popular tables",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"tables":  tables,
		"count":   len(tables),
	})
}
