package v1

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shenikar/accident_alert_system/internal/models"
)

// @Summary Report an accident from sensor data
// @Description Classify an accelerometer/gyroscope sample and store the incident. Optional bearer JWT identifies the reporter.
// @Tags Accidents
// @Accept json
// @Produce json
// @Param event body SensorEventRequest true "Sensor sample"
// @Success 201 {object} Response{data=IncidentResponse}
// @Failure 400 {object} Response "Invalid request body or validation error"
// @Failure 500 {object} Response "Internal server error"
// @Router /accidents/sensor [post]
func (h *Handler) reportSensor(c *gin.Context) {
	var input SensorEventRequest
	log := h.logger.WithField("method", "reportSensor")

	if !h.bindAndValidate(c, log, &input) {
		return
	}

	incident, err := h.incidentService.ReportFromSensor(
		c.Request.Context(),
		DTOToSensorSample(input),
		coordinateOf(input.Latitude, input.Longitude),
		reporterID(c),
	)
	if err != nil {
		handleServiceError(c, log, err, "incident not found")
		return
	}
	respondData(c, http.StatusCreated, ModelToIncidentResponse(incident))
}

// @Summary Report an accident from a voice transcript
// @Description Store a high severity incident when the transcript asks for help. Otherwise returns status=false without creating anything.
// @Tags Accidents
// @Accept json
// @Produce json
// @Param event body VoiceEventRequest true "Voice transcript"
// @Success 201 {object} Response{data=IncidentResponse}
// @Success 200 {object} Response "No emergency detected"
// @Failure 400 {object} Response "Invalid request body or validation error"
// @Failure 500 {object} Response "Internal server error"
// @Router /accidents/voice [post]
func (h *Handler) reportVoice(c *gin.Context) {
	var input VoiceEventRequest
	log := h.logger.WithField("method", "reportVoice")

	if !h.bindAndValidate(c, log, &input) {
		return
	}

	incident, err := h.incidentService.ReportFromVoice(
		c.Request.Context(),
		input.VoiceText,
		coordinateOf(input.Latitude, input.Longitude),
		reporterID(c),
	)
	if err != nil {
		if errors.Is(err, models.ErrNoEmergencyDetected) {
			c.JSON(http.StatusOK, Response{Message: "No emergency detected in voice"})
			return
		}
		handleServiceError(c, log, err, "incident not found")
		return
	}
	respondData(c, http.StatusCreated, ModelToIncidentResponse(incident))
}

// @Summary Report an accident manually
// @Description Store an incident from explicit input and optionally dispatch local and cloud alerts for it.
// @Tags Accidents
// @Accept json
// @Produce json
// @Param incident body ManualIncidentRequest true "Manual report"
// @Success 201 {object} Response{data=ManualIncidentResponse}
// @Failure 400 {object} Response "Invalid request body or validation error"
// @Failure 500 {object} Response "Internal server error"
// @Router /accidents/manual [post]
func (h *Handler) reportManual(c *gin.Context) {
	var input ManualIncidentRequest
	log := h.logger.WithField("method", "reportManual")

	if !h.bindAndValidate(c, log, &input) {
		return
	}

	result, err := h.incidentService.ReportManual(c.Request.Context(), DTOToManualReport(input, reporterID(c)))
	if err != nil {
		handleServiceError(c, log, err, "incident not found")
		return
	}
	respondData(c, http.StatusCreated, ModelToManualIncidentResponse(result))
}

// @Summary Get a list of incidents
// @Description Newest first. Requires API key.
// @Tags Accidents
// @Produce json
// @Security ApiKeyAuth
// @Param reported_via query string false "Origin filter" Enums(sensor, voice, manual)
// @Param severity query string false "Severity filter" Enums(low, medium, high)
// @Param hours query int false "Only incidents from the last N hours, 0 for all"
// @Param limit query int false "Maximum number of incidents" default(100)
// @Success 200 {object} Response{data=[]IncidentResponse}
// @Failure 400 {object} Response "Invalid filter"
// @Failure 401 {object} Response "Unauthorized"
// @Failure 500 {object} Response "Internal server error"
// @Router /accidents [get]
func (h *Handler) listIncidents(c *gin.Context) {
	log := h.logger.WithField("method", "listIncidents")

	since, err := h.parseSince(c, "")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "limit must be an integer")
		return
	}

	incidents, err := h.incidentService.ListIncidents(c.Request.Context(), models.IncidentFilter{
		Origin:   models.Origin(c.Query("reported_via")),
		Severity: models.Severity(c.Query("severity")),
		Since:    since,
		Limit:    limit,
	})
	if err != nil {
		handleServiceError(c, log, err, "incident not found")
		return
	}

	respondData(c, http.StatusOK, ModelsToIncidentResponses(incidents))
}

// @Summary Get incident by ID
// @Description Get a single incident by its ID. Requires API key.
// @Tags Accidents
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Incident ID"
// @Success 200 {object} Response{data=IncidentResponse}
// @Failure 400 {object} Response "Invalid incident ID"
// @Failure 401 {object} Response "Unauthorized"
// @Failure 404 {object} Response "Incident not found"
// @Failure 500 {object} Response "Internal server error"
// @Router /accidents/{id} [get]
func (h *Handler) getIncident(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid incident ID")
		return
	}
	log := h.logger.WithField("method", "getIncident").WithField("id", id)

	incident, err := h.incidentService.GetIncident(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, log, err, "incident not found")
		return
	}
	respondData(c, http.StatusOK, ModelToIncidentResponse(incident))
}
