package v1

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shenikar/accident_alert_system/internal/models"
)

// @Summary Send a cloud alert
// @Description Store a push notification with status sent and queue it for delivery. device_token is required. Requires API key.
// @Tags Cloud alerts
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param alert body CloudAlertRequest true "Cloud alert"
// @Success 201 {object} Response{data=CloudAlertResponse}
// @Failure 400 {object} Response "Missing device token or validation error"
// @Failure 401 {object} Response "Unauthorized"
// @Failure 500 {object} Response "Internal server error"
// @Router /cloud-alerts [post]
func (h *Handler) sendCloudAlert(c *gin.Context) {
	var input CloudAlertRequest
	log := h.logger.WithField("method", "sendCloudAlert")

	if !h.bindAndValidate(c, log, &input) {
		return
	}

	alert := DTOToCloudAlertModel(input)
	if err := h.cloudAlertService.Send(c.Request.Context(), alert); err != nil {
		handleServiceError(c, log, err, "cloud alert not found")
		return
	}
	respondData(c, http.StatusCreated, ModelToCloudAlertResponse(alert))
}

// @Summary List cloud alerts
// @Description Newest first, with counts by status and emergency flag. Requires API key.
// @Tags Cloud alerts
// @Produce json
// @Security ApiKeyAuth
// @Param status query string false "Status filter" Enums(sent, delivered, failed, read)
// @Param is_emergency query bool false "Emergency flag filter"
// @Param hours query int false "Only alerts from the last N hours, 0 for all" default(24)
// @Success 200 {object} Response{data=CloudAlertListResponse}
// @Failure 400 {object} Response "Invalid filter"
// @Failure 401 {object} Response "Unauthorized"
// @Failure 500 {object} Response "Internal server error"
// @Router /cloud-alerts [get]
func (h *Handler) listCloudAlerts(c *gin.Context) {
	log := h.logger.WithField("method", "listCloudAlerts")

	since, err := h.parseSince(c, "24")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	filter := models.CloudAlertFilter{
		Status: models.CloudAlertStatus(c.Query("status")),
		Since:  since,
	}
	if raw, ok := c.GetQuery("is_emergency"); ok {
		isEmergency, err := strconv.ParseBool(raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, "is_emergency must be true or false")
			return
		}
		filter.IsEmergency = &isEmergency
	}

	list, err := h.cloudAlertService.ListAlerts(c.Request.Context(), filter)
	if err != nil {
		handleServiceError(c, log, err, "cloud alert not found")
		return
	}
	respondData(c, http.StatusOK, ModelToCloudAlertListResponse(list))
}

// @Summary Get cloud alert by ID
// @Description Requires API key.
// @Tags Cloud alerts
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Cloud alert ID"
// @Success 200 {object} Response{data=CloudAlertResponse}
// @Failure 400 {object} Response "Invalid alert ID"
// @Failure 401 {object} Response "Unauthorized"
// @Failure 404 {object} Response "Cloud alert not found"
// @Failure 500 {object} Response "Internal server error"
// @Router /cloud-alerts/{id} [get]
func (h *Handler) getCloudAlert(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid alert ID")
		return
	}
	log := h.logger.WithField("method", "getCloudAlert").WithField("id", id)

	alert, err := h.cloudAlertService.GetAlert(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, log, err, "cloud alert not found")
		return
	}
	respondData(c, http.StatusOK, ModelToCloudAlertResponse(alert))
}

// @Summary Delivery status callback
// @Description Called by the push delivery provider. The body must be signed with HMAC-SHA256 in the X-Webhook-Signature header. failure_reason is required for failed and forbidden otherwise.
// @Tags Cloud alerts
// @Accept json
// @Produce json
// @Param X-Webhook-Signature header string true "Hex HMAC-SHA256 of the request body"
// @Param id path string true "Cloud alert ID"
// @Param status body CloudAlertStatusRequest true "Delivery result"
// @Success 200 {object} Response{data=CloudAlertResponse}
// @Failure 400 {object} Response "Invalid alert ID or request body"
// @Failure 401 {object} Response "Invalid signature"
// @Failure 404 {object} Response "Cloud alert not found"
// @Failure 409 {object} Response "Invalid status transition"
// @Failure 500 {object} Response "Internal server error"
// @Router /cloud-alerts/{id}/status [post]
func (h *Handler) updateCloudAlertStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid alert ID")
		return
	}
	log := h.logger.WithField("method", "updateCloudAlertStatus").WithField("id", id)

	var input CloudAlertStatusRequest
	if !h.bindAndValidate(c, log, &input) {
		return
	}

	alert, err := h.cloudAlertService.UpdateStatus(c.Request.Context(), id, models.CloudAlertStatus(input.Status), input.FailureReason)
	if err != nil {
		handleServiceError(c, log, err, "cloud alert not found")
		return
	}
	respondData(c, http.StatusOK, ModelToCloudAlertResponse(alert))
}
