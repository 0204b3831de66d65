package service

//go:generate mockgen -source=local_alert.go -destination=mocks/mock_local_alert.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/accident_alert_system/internal/broadcast"
	"github.com/shenikar/accident_alert_system/internal/models"
	"github.com/sirupsen/logrus"
)

// LocalAlertRepository определяет контракт хранения локальных оповещений.
// List и UpdateStatus учитывают ленивое истечение относительно now.
type LocalAlertRepository interface {
	Create(ctx context.Context, alert *models.LocalAlert) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.LocalAlert, error)
	List(ctx context.Context, filter models.LocalAlertFilter, now time.Time) ([]*models.LocalAlert, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.LocalAlertStatus, from []models.LocalAlertStatus, now time.Time) (*models.LocalAlert, error)
	InvalidateSummaryCache(ctx context.Context) error
}

// LocalAlertService - диспетчер ближнего (BLE) канала
type LocalAlertService interface {
	Broadcast(ctx context.Context, alert *models.LocalAlert) error
	GetAlert(ctx context.Context, id uuid.UUID) (*models.LocalAlert, error)
	ListAlerts(ctx context.Context, filter models.LocalAlertFilter) (*models.LocalAlertList, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.LocalAlertStatus) (*models.LocalAlert, error)
}

type localAlertService struct {
	repo    LocalAlertRepository
	emitter broadcast.Emitter
	logger  *logrus.Logger
	now     func() time.Time
}

func NewLocalAlertService(repo LocalAlertRepository, emitter broadcast.Emitter, logger *logrus.Logger) LocalAlertService {
	return &localAlertService{
		repo:    repo,
		emitter: emitter,
		logger:  logger,
		now:     time.Now,
	}
}

// Broadcast сохраняет оповещение и передает его на маяки.
// Сбой передачи только логируется: запись остается в статусе broadcast.
func (s *localAlertService) Broadcast(ctx context.Context, alert *models.LocalAlert) error {
	log := s.logger.WithFields(logrus.Fields{
		"service": "local_alert",
		"method":  "Broadcast",
	})

	if strings.TrimSpace(alert.Message) == "" {
		alert.Message = models.DefaultLocalAlertMessage
	}
	if alert.Severity == "" {
		alert.Severity = models.SeverityUnknown
	}
	if !alert.Severity.Valid() && alert.Severity != models.SeverityUnknown {
		return fmt.Errorf("%w: unknown severity %q", models.ErrInvalidInput, alert.Severity)
	}
	if alert.DurationSeconds == 0 {
		alert.DurationSeconds = models.DefaultBroadcastDuration
	}
	if alert.DurationSeconds < 0 {
		return fmt.Errorf("%w: duration_seconds must be positive", models.ErrInvalidInput)
	}
	if alert.DurationSeconds > models.MaxBroadcastDuration {
		return fmt.Errorf("%w: duration_seconds must not exceed %d", models.ErrInvalidInput, models.MaxBroadcastDuration)
	}
	alert.Status = models.LocalAlertBroadcast

	if err := s.repo.Create(ctx, alert); err != nil {
		log.WithError(err).Error("Failed to create local alert in repository")
		return fmt.Errorf("service: could not create local alert: %w", err)
	}
	log = log.WithField("alert_id", alert.ID)
	s.invalidateSummary(ctx, log)

	if err := s.emitter.Emit(ctx, alert); err != nil {
		log.WithError(err).Warn("BLE broadcast failed, alert record kept")
	}

	log.WithFields(logrus.Fields{
		"severity":         alert.Severity,
		"duration_seconds": alert.DurationSeconds,
	}).Info("Local alert broadcast")
	return nil
}

// GetAlert возвращает оповещение с учетом ленивого истечения
func (s *localAlertService) GetAlert(ctx context.Context, id uuid.UUID) (*models.LocalAlert, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":  "local_alert",
		"method":   "GetAlert",
		"alert_id": id,
	})

	alert, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, models.ErrNotFound) {
			log.WithError(err).Error("Failed to get local alert in repository")
		}
		return nil, fmt.Errorf("service: could not get local alert: %w", err)
	}
	alert.Status = alert.EffectiveStatus(s.now())
	return alert, nil
}

// ListAlerts возвращает оповещения (новые первыми) и сводку по выборке
func (s *localAlertService) ListAlerts(ctx context.Context, filter models.LocalAlertFilter) (*models.LocalAlertList, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":  "local_alert",
		"method":   "ListAlerts",
		"severity": filter.Severity,
		"status":   filter.Status,
	})

	if filter.Severity != "" && !filter.Severity.Valid() && filter.Severity != models.SeverityUnknown {
		return nil, fmt.Errorf("%w: unknown severity %q", models.ErrInvalidInput, filter.Severity)
	}
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", models.ErrInvalidInput, filter.Status)
	}

	alerts, err := s.repo.List(ctx, filter, s.now())
	if err != nil {
		log.WithError(err).Error("Failed to list local alerts from repository")
		return nil, fmt.Errorf("service: could not list local alerts: %w", err)
	}

	log.WithField("count", len(alerts)).Info("Local alerts listed successfully")
	return &models.LocalAlertList{
		Alerts: alerts,
		Counts: models.CountLocalAlerts(alerts),
	}, nil
}

// UpdateStatus подтверждает получение или истечение трансляции.
// Обратный переход из received/expired отклоняется с ErrInvalidTransition.
func (s *localAlertService) UpdateStatus(ctx context.Context, id uuid.UUID, status models.LocalAlertStatus) (*models.LocalAlert, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":  "local_alert",
		"method":   "UpdateStatus",
		"alert_id": id,
		"status":   status,
	})

	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", models.ErrInvalidInput, status)
	}
	from := models.LocalAlertSourcesFor(status)
	if len(from) == 0 {
		return nil, fmt.Errorf("%w: nothing can transition to %q", models.ErrInvalidTransition, status)
	}

	alert, err := s.repo.UpdateStatus(ctx, id, status, from, s.now())
	if err != nil {
		if errors.Is(err, models.ErrInvalidTransition) || errors.Is(err, models.ErrNotFound) {
			log.WithError(err).Warn("Local alert status update rejected")
		} else {
			log.WithError(err).Error("Failed to update local alert status in repository")
		}
		return nil, fmt.Errorf("service: could not update local alert status: %w", err)
	}
	s.invalidateSummary(ctx, log)

	log.Info("Local alert status updated")
	return alert, nil
}

func (s *localAlertService) invalidateSummary(ctx context.Context, log *logrus.Entry) {
	if err := s.repo.InvalidateSummaryCache(ctx); err != nil {
		log.WithError(err).Warn("Failed to invalidate statistics cache")
	}
}
