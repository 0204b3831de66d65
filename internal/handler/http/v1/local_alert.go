package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shenikar/accident_alert_system/internal/models"
)

// @Summary Broadcast a local alert
// @Description Store a BLE alert with status broadcast and hand it to the beacon gateway. Requires API key.
// @Tags Local alerts
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param alert body LocalAlertRequest true "Local alert"
// @Success 201 {object} Response{data=LocalAlertResponse}
// @Failure 400 {object} Response "Invalid request body or validation error"
// @Failure 401 {object} Response "Unauthorized"
// @Failure 500 {object} Response "Internal server error"
// @Router /local-alerts [post]
func (h *Handler) broadcastLocalAlert(c *gin.Context) {
	var input LocalAlertRequest
	log := h.logger.WithField("method", "broadcastLocalAlert")

	if !h.bindAndValidate(c, log, &input) {
		return
	}

	alert := DTOToLocalAlertModel(input)
	if err := h.localAlertService.Broadcast(c.Request.Context(), alert); err != nil {
		handleServiceError(c, log, err, "local alert not found")
		return
	}
	respondData(c, http.StatusCreated, ModelToLocalAlertResponse(alert))
}

// @Summary List local alerts
// @Description Newest first, with counts by severity and status. Requires API key.
// @Tags Local alerts
// @Produce json
// @Security ApiKeyAuth
// @Param severity query string false "Severity filter" Enums(low, medium, high, unknown)
// @Param status query string false "Status filter" Enums(broadcast, received, expired)
// @Param hours query int false "Only alerts from the last N hours, 0 for all" default(24)
// @Success 200 {object} Response{data=LocalAlertListResponse}
// @Failure 400 {object} Response "Invalid filter"
// @Failure 401 {object} Response "Unauthorized"
// @Failure 500 {object} Response "Internal server error"
// @Router /local-alerts [get]
func (h *Handler) listLocalAlerts(c *gin.Context) {
	log := h.logger.WithField("method", "listLocalAlerts")

	since, err := h.parseSince(c, "24")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	list, err := h.localAlertService.ListAlerts(c.Request.Context(), models.LocalAlertFilter{
		Severity: models.Severity(c.Query("severity")),
		Status:   models.LocalAlertStatus(c.Query("status")),
		Since:    since,
	})
	if err != nil {
		handleServiceError(c, log, err, "local alert not found")
		return
	}
	respondData(c, http.StatusOK, ModelToLocalAlertListResponse(list))
}

// @Summary Get local alert by ID
// @Description A broadcast whose duration has passed is reported as expired. Requires API key.
// @Tags Local alerts
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Local alert ID"
// @Success 200 {object} Response{data=LocalAlertResponse}
// @Failure 400 {object} Response "Invalid alert ID"
// @Failure 401 {object} Response "Unauthorized"
// @Failure 404 {object} Response "Local alert not found"
// @Failure 500 {object} Response "Internal server error"
// @Router /local-alerts/{id} [get]
func (h *Handler) getLocalAlert(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid alert ID")
		return
	}
	log := h.logger.WithField("method", "getLocalAlert").WithField("id", id)

	alert, err := h.localAlertService.GetAlert(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, log, err, "local alert not found")
		return
	}
	respondData(c, http.StatusOK, ModelToLocalAlertResponse(alert))
}

// @Summary Acknowledge or expire a local alert
// @Description Moves a broadcast alert to received or expired. Any other transition is rejected with 409. Requires API key.
// @Tags Local alerts
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Local alert ID"
// @Param status body LocalAlertStatusRequest true "New status"
// @Success 200 {object} Response{data=LocalAlertResponse}
// @Failure 400 {object} Response "Invalid alert ID or request body"
// @Failure 401 {object} Response "Unauthorized"
// @Failure 404 {object} Response "Local alert not found"
// @Failure 409 {object} Response "Invalid status transition"
// @Failure 500 {object} Response "Internal server error"
// @Router /local-alerts/{id}/status [post]
func (h *Handler) updateLocalAlertStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid alert ID")
		return
	}
	log := h.logger.WithField("method", "updateLocalAlertStatus").WithField("id", id)

	var input LocalAlertStatusRequest
	if !h.bindAndValidate(c, log, &input) {
		return
	}

	alert, err := h.localAlertService.UpdateStatus(c.Request.Context(), id, models.LocalAlertStatus(input.Status))
	if err != nil {
		handleServiceError(c, log, err, "local alert not found")
		return
	}
	respondData(c, http.StatusOK, ModelToLocalAlertResponse(alert))
}
