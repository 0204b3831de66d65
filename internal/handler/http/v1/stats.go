package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// @Summary Get alert statistics
// @Description Totals for both alert channels: all time, today, last 24 hours and last 7 days. Requires API key.
// @Tags Statistics
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} Response{data=models.AlertSummary}
// @Failure 401 {object} Response "Unauthorized"
// @Failure 500 {object} Response "Internal server error"
// @Router /alerts/statistics [get]
func (h *Handler) getStatistics(c *gin.Context) {
	log := h.logger.WithField("method", "getStatistics")

	summary, err := h.statsService.Summary(c.Request.Context())
	if err != nil {
		handleServiceError(c, log, err, "statistics not found")
		return
	}
	respondData(c, http.StatusOK, summary)
}
