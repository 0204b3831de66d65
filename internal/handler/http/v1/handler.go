package v1

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shenikar/accident_alert_system/internal/config"
	"github.com/shenikar/accident_alert_system/internal/models"
	"github.com/shenikar/accident_alert_system/internal/service"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	incidentService   service.IncidentService
	localAlertService service.LocalAlertService
	cloudAlertService service.CloudAlertService
	statsService      service.StatsService
	logger            *logrus.Logger
	validate          *validator.Validate
	cfg               *config.Config
	now               func() time.Time
}

func NewHandler(
	incidentService service.IncidentService,
	localAlertService service.LocalAlertService,
	cloudAlertService service.CloudAlertService,
	statsService service.StatsService,
	logger *logrus.Logger,
	cfg *config.Config,
) *Handler {
	return &Handler{
		incidentService:   incidentService,
		localAlertService: localAlertService,
		cloudAlertService: cloudAlertService,
		statsService:      statsService,
		logger:            logger,
		validate:          validator.New(),
		cfg:               cfg,
		now:               time.Now,
	}
}

func respondData(c *gin.Context, code int, data any) {
	c.JSON(code, Response{Status: true, Data: data})
}

func respondError(c *gin.Context, code int, msg string) {
	c.JSON(code, Response{Error: msg})
}

// handleServiceError переводит ошибку сервиса в HTTP-статус.
// Внутренние ошибки наружу не раскрываются.
func handleServiceError(c *gin.Context, log *logrus.Entry, err error, notFoundMsg string) {
	switch {
	case errors.Is(err, models.ErrInvalidInput):
		log.WithError(err).Warn("Request rejected by service")
		respondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, models.ErrNotFound):
		log.WithError(err).Info("Resource not found")
		respondError(c, http.StatusNotFound, notFoundMsg)
	case errors.Is(err, models.ErrInvalidTransition):
		log.WithError(err).Warn("Status transition rejected")
		respondError(c, http.StatusConflict, "invalid status transition")
	default:
		log.WithError(err).Error("Service call failed")
		respondError(c, http.StatusInternalServerError, "internal server error")
	}
}

// bindAndValidate разбирает JSON тела и проверяет его тегами validate
func (h *Handler) bindAndValidate(c *gin.Context, log *logrus.Entry, input any) bool {
	if err := c.ShouldBindJSON(input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		respondError(c, http.StatusBadRequest, "invalid request body")
		return false
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		respondError(c, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

// maxSinceHours - сто лет, больше time.Duration переполняется
const maxSinceHours = 24 * 365 * 100

// parseSince читает окно выборки в часах. hours=0 отключает окно.
func (h *Handler) parseSince(c *gin.Context, defaultHours string) (*time.Time, error) {
	raw := c.DefaultQuery("hours", defaultHours)
	if raw == "" {
		return nil, nil
	}
	hours, err := strconv.Atoi(raw)
	if err != nil || hours < 0 {
		return nil, fmt.Errorf("hours must be a non-negative integer")
	}
	if hours > maxSinceHours {
		return nil, fmt.Errorf("hours must not exceed %d", maxSinceHours)
	}
	if hours == 0 {
		return nil, nil
	}
	since := h.now().Add(-time.Duration(hours) * time.Hour)
	return &since, nil
}

// @Summary Get application health status
// @Description Get health status of the application
// @Tags System
// @Accept json
// @Produce json
// @Success 200 {object} Response "Status OK"
// @Router /system/health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, Response{Status: true, Message: "ok"})
}
