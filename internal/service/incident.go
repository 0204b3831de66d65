package service

//go:generate mockgen -source=incident.go -destination=mocks/mock_incident.go -package=mocks

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shenikar/accident_alert_system/internal/models"
	"github.com/sirupsen/logrus"
)

const defaultManualDescription = "Emergency Alert Triggered"

// IncidentRepository определяет контракт для работы с бд инцидентов
type IncidentRepository interface {
	Create(ctx context.Context, incident *models.Incident) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Incident, error)
	List(ctx context.Context, filter models.IncidentFilter) ([]*models.Incident, error)
	GetIncidentFromCache(ctx context.Context, id uuid.UUID) (*models.Incident, error)
	SetIncidentCache(ctx context.Context, incident *models.Incident) error
}

// IncidentService определяет контракт конвейера обнаружения ДТП
type IncidentService interface {
	ReportFromSensor(ctx context.Context, sample models.SensorSample, coord models.Coordinate, reporterID *string) (*models.Incident, error)
	ReportFromVoice(ctx context.Context, transcript string, coord models.Coordinate, reporterID *string) (*models.Incident, error)
	ReportManual(ctx context.Context, report models.ManualReport) (*models.ManualReportResult, error)
	GetIncident(ctx context.Context, id uuid.UUID) (*models.Incident, error)
	ListIncidents(ctx context.Context, filter models.IncidentFilter) ([]*models.Incident, error)
}

type incidentService struct {
	repo       IncidentRepository
	classifier SeverityClassifier
	detector   IntentDetector
	local      LocalAlertService
	cloud      CloudAlertService
	logger     *logrus.Logger
}

func NewIncidentService(
	repo IncidentRepository,
	classifier SeverityClassifier,
	detector IntentDetector,
	local LocalAlertService,
	cloud CloudAlertService,
	logger *logrus.Logger,
) IncidentService {
	return &incidentService{
		repo:       repo,
		classifier: classifier,
		detector:   detector,
		local:      local,
		cloud:      cloud,
		logger:     logger,
	}
}

// ReportFromSensor классифицирует показание датчиков и сохраняет инцидент
func (s *incidentService) ReportFromSensor(ctx context.Context, sample models.SensorSample, coord models.Coordinate, reporterID *string) (*models.Incident, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "incident",
		"method":  "ReportFromSensor",
	})

	severity := s.classifier.Classify(sample)
	log.WithField("severity", severity).Info("Sensor sample classified")

	description := fmt.Sprintf(
		"Sensor data detected accident: acc_x=%g, acc_y=%g, acc_z=%g, gyro_x=%g, gyro_y=%g, gyro_z=%g",
		sample.AccX, sample.AccY, sample.AccZ, sample.GyroX, sample.GyroY, sample.GyroZ,
	)
	incident := &models.Incident{
		ReporterID:  reporterID,
		Latitude:    coord.Latitude,
		Longitude:   coord.Longitude,
		Severity:    severity,
		Description: description,
		Origin:      models.OriginSensor,
	}
	if err := s.create(ctx, log, incident); err != nil {
		return nil, err
	}
	return incident, nil
}

// ReportFromVoice создает инцидент высокой серьезности, если в речи есть просьба о помощи.
// Иначе возвращает models.ErrNoEmergencyDetected и ничего не сохраняет.
func (s *incidentService) ReportFromVoice(ctx context.Context, transcript string, coord models.Coordinate, reporterID *string) (*models.Incident, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "incident",
		"method":  "ReportFromVoice",
	})

	if !s.detector.Detect(transcript) {
		log.Info("No emergency detected in voice transcript")
		return nil, models.ErrNoEmergencyDetected
	}

	incident := &models.Incident{
		ReporterID:  reporterID,
		Latitude:    coord.Latitude,
		Longitude:   coord.Longitude,
		Severity:    models.SeverityHigh,
		Description: "Voice detected: " + transcript,
		Origin:      models.OriginVoice,
	}
	if err := s.create(ctx, log, incident); err != nil {
		return nil, err
	}
	return incident, nil
}

// ReportManual сохраняет ручное сообщение и при необходимости рассылает оповещения.
// Ошибки рассылки не отменяют инцидент.
func (s *incidentService) ReportManual(ctx context.Context, report models.ManualReport) (*models.ManualReportResult, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "incident",
		"method":  "ReportManual",
	})

	if report.Latitude == nil || report.Longitude == nil {
		log.Warn("Manual report without coordinates")
		return nil, fmt.Errorf("%w: latitude and longitude required", models.ErrInvalidInput)
	}

	severity := report.Severity
	if severity == "" {
		severity = models.SeverityMedium
	}
	if !severity.Valid() {
		return nil, fmt.Errorf("%w: unknown severity %q", models.ErrInvalidInput, severity)
	}

	origin := report.Origin
	if origin == "" {
		origin = models.OriginManual
	}
	if !origin.Valid() {
		return nil, fmt.Errorf("%w: unknown origin %q", models.ErrInvalidInput, origin)
	}

	description := report.Description
	if description == "" {
		description = defaultManualDescription
	}

	incident := &models.Incident{
		ReporterID:  report.ReporterID,
		Latitude:    *report.Latitude,
		Longitude:   *report.Longitude,
		Severity:    severity,
		Description: description,
		Origin:      origin,
	}
	if err := s.create(ctx, log, incident); err != nil {
		return nil, err
	}

	result := &models.ManualReportResult{Incident: incident}
	s.dispatch(ctx, log, incident, report.Dispatch, result)
	return result, nil
}

func (s *incidentService) dispatch(ctx context.Context, log *logrus.Entry, incident *models.Incident, opts models.DispatchOptions, result *models.ManualReportResult) {
	if opts.BroadcastLocal {
		lat, lon := incident.Latitude, incident.Longitude
		alert := &models.LocalAlert{
			IncidentID:      &incident.ID,
			Message:         incident.Description,
			Latitude:        &lat,
			Longitude:       &lon,
			Severity:        incident.Severity,
			DurationSeconds: opts.DurationSeconds,
		}
		if err := s.local.Broadcast(ctx, alert); err != nil {
			log.WithError(err).Error("Failed to dispatch local alert for incident")
		} else {
			result.LocalAlert = alert
		}
	}

	for _, token := range opts.DeviceTokens {
		alert := &models.CloudAlert{
			IncidentID:  &incident.ID,
			DeviceToken: token,
			Body:        incident.Description,
			Payload: map[string]any{
				"incident_id": incident.ID.String(),
				"severity":    string(incident.Severity),
				"latitude":    incident.Latitude,
				"longitude":   incident.Longitude,
			},
			IsEmergency: incident.Severity == models.SeverityHigh,
		}
		if err := s.cloud.Send(ctx, alert); err != nil {
			log.WithError(err).Error("Failed to dispatch cloud alert for incident")
			continue
		}
		result.CloudAlerts = append(result.CloudAlerts, alert)
	}
}

func (s *incidentService) create(ctx context.Context, log *logrus.Entry, incident *models.Incident) error {
	if err := s.repo.Create(ctx, incident); err != nil {
		log.WithError(err).Error("Failed to create incident in repository")
		return fmt.Errorf("service: could not create incident: %w", err)
	}
	log.WithFields(logrus.Fields{
		"incident_id": incident.ID,
		"origin":      incident.Origin,
		"severity":    incident.Severity,
	}).Info("Incident created successfully")
	return nil
}

// GetIncident получает инцидент по ID: сначала из кеша, затем из бд
func (s *incidentService) GetIncident(ctx context.Context, id uuid.UUID) (*models.Incident, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "incident",
		"method":      "GetIncident",
		"incident_id": id,
	})

	cached, err := s.repo.GetIncidentFromCache(ctx, id)
	if err != nil {
		log.WithError(err).Warn("Failed to read incident cache")
	}
	if cached != nil {
		log.Debug("Incident served from cache")
		return cached, nil
	}

	incident, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			log.Info("Incident not found")
		} else {
			log.WithError(err).Error("Failed to get incident in repository")
		}
		return nil, fmt.Errorf("service: could not get incident: %w", err)
	}

	// инциденты неизменяемы, поэтому кеш не нужно инвалидировать
	if err := s.repo.SetIncidentCache(ctx, incident); err != nil {
		log.WithError(err).Warn("Failed to cache incident")
	}
	return incident, nil
}

// ListIncidents возвращает инциденты, новые первыми
func (s *incidentService) ListIncidents(ctx context.Context, filter models.IncidentFilter) ([]*models.Incident, error) {
	if filter.Limit < 1 || filter.Limit > 500 {
		filter.Limit = 100
	}
	log := s.logger.WithFields(logrus.Fields{
		"service": "incident",
		"method":  "ListIncidents",
		"limit":   filter.Limit,
	})

	if filter.Severity != "" && !filter.Severity.Valid() {
		return nil, fmt.Errorf("%w: unknown severity %q", models.ErrInvalidInput, filter.Severity)
	}
	if filter.Origin != "" && !filter.Origin.Valid() {
		return nil, fmt.Errorf("%w: unknown origin %q", models.ErrInvalidInput, filter.Origin)
	}

	incidents, err := s.repo.List(ctx, filter)
	if err != nil {
		log.WithError(err).Error("Failed to list incidents from repository")
		return nil, fmt.Errorf("service: could not list incidents: %w", err)
	}

	log.WithField("count", len(incidents)).Info("Incidents listed successfully")
	return incidents, nil
}
