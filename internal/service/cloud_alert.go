package service

//go:generate mockgen -source=cloud_alert.go -destination=mocks/mock_cloud_alert.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shenikar/accident_alert_system/internal/models"
	"github.com/shenikar/accident_alert_system/internal/push"
	"github.com/sirupsen/logrus"
)

// CloudAlertRepository определяет контракт хранения push-уведомлений
type CloudAlertRepository interface {
	Create(ctx context.Context, alert *models.CloudAlert) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.CloudAlert, error)
	List(ctx context.Context, filter models.CloudAlertFilter) ([]*models.CloudAlert, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.CloudAlertStatus, reason *string, from []models.CloudAlertStatus) (*models.CloudAlert, error)
	InvalidateSummaryCache(ctx context.Context) error
}

// CloudAlertService - диспетчер облачного (push) канала
type CloudAlertService interface {
	Send(ctx context.Context, alert *models.CloudAlert) error
	GetAlert(ctx context.Context, id uuid.UUID) (*models.CloudAlert, error)
	ListAlerts(ctx context.Context, filter models.CloudAlertFilter) (*models.CloudAlertList, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.CloudAlertStatus, reason *string) (*models.CloudAlert, error)
}

type cloudAlertService struct {
	repo      CloudAlertRepository
	publisher push.Publisher
	logger    *logrus.Logger
}

func NewCloudAlertService(repo CloudAlertRepository, publisher push.Publisher, logger *logrus.Logger) CloudAlertService {
	return &cloudAlertService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
	}
}

// Send сохраняет уведомление со статусом sent и ставит его в очередь доставки.
// Без токена устройства возвращает ErrMissingDeviceToken и ничего не сохраняет.
func (s *cloudAlertService) Send(ctx context.Context, alert *models.CloudAlert) error {
	log := s.logger.WithFields(logrus.Fields{
		"service": "cloud_alert",
		"method":  "Send",
	})

	alert.DeviceToken = strings.TrimSpace(alert.DeviceToken)
	if alert.DeviceToken == "" {
		log.Warn("Cloud alert without device token")
		return models.ErrMissingDeviceToken
	}
	if alert.Title == "" {
		alert.Title = models.DefaultCloudAlertTitle
	}
	if alert.Body == "" {
		alert.Body = models.DefaultCloudAlertBody
	}
	if alert.Payload == nil {
		alert.Payload = map[string]any{}
	}
	alert.Status = models.CloudAlertSent
	alert.FailureReason = nil

	if err := s.repo.Create(ctx, alert); err != nil {
		log.WithError(err).Error("Failed to create cloud alert in repository")
		return fmt.Errorf("service: could not create cloud alert: %w", err)
	}
	log = log.WithField("alert_id", alert.ID)
	s.invalidateSummary(ctx, log)

	if err := s.publisher.Publish(ctx, push.NewJob(alert)); err != nil {
		log.WithError(err).Warn("Failed to hand cloud alert to push delivery, alert record kept")
	}

	log.WithField("is_emergency", alert.IsEmergency).Info("Cloud alert sent")
	return nil
}

func (s *cloudAlertService) GetAlert(ctx context.Context, id uuid.UUID) (*models.CloudAlert, error) {
	alert, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, models.ErrNotFound) {
			s.logger.WithFields(logrus.Fields{
				"service":  "cloud_alert",
				"method":   "GetAlert",
				"alert_id": id,
			}).WithError(err).Error("Failed to get cloud alert in repository")
		}
		return nil, fmt.Errorf("service: could not get cloud alert: %w", err)
	}
	return alert, nil
}

// ListAlerts возвращает уведомления (новые первыми) и сводку по выборке
func (s *cloudAlertService) ListAlerts(ctx context.Context, filter models.CloudAlertFilter) (*models.CloudAlertList, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "cloud_alert",
		"method":  "ListAlerts",
		"status":  filter.Status,
	})

	if filter.Status != "" && !filter.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", models.ErrInvalidInput, filter.Status)
	}

	alerts, err := s.repo.List(ctx, filter)
	if err != nil {
		log.WithError(err).Error("Failed to list cloud alerts from repository")
		return nil, fmt.Errorf("service: could not list cloud alerts: %w", err)
	}

	log.WithField("count", len(alerts)).Info("Cloud alerts listed successfully")
	return &models.CloudAlertList{
		Alerts: alerts,
		Counts: models.CountCloudAlerts(alerts),
	}, nil
}

// UpdateStatus применяет результат доставки. Причина обязательна для failed
// и недопустима для остальных статусов.
func (s *cloudAlertService) UpdateStatus(ctx context.Context, id uuid.UUID, status models.CloudAlertStatus, reason *string) (*models.CloudAlert, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":  "cloud_alert",
		"method":   "UpdateStatus",
		"alert_id": id,
		"status":   status,
	})

	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", models.ErrInvalidInput, status)
	}
	if status == models.CloudAlertFailed {
		if reason == nil || strings.TrimSpace(*reason) == "" {
			return nil, fmt.Errorf("%w: failure_reason is required for status failed", models.ErrInvalidInput)
		}
	} else if reason != nil {
		return nil, fmt.Errorf("%w: failure_reason is only allowed with status failed", models.ErrInvalidInput)
	}

	from := models.CloudAlertSourcesFor(status)
	if len(from) == 0 {
		return nil, fmt.Errorf("%w: nothing can transition to %q", models.ErrInvalidTransition, status)
	}

	alert, err := s.repo.UpdateStatus(ctx, id, status, reason, from)
	if err != nil {
		if errors.Is(err, models.ErrInvalidTransition) || errors.Is(err, models.ErrNotFound) {
			log.WithError(err).Warn("Cloud alert status update rejected")
		} else {
			log.WithError(err).Error("Failed to update cloud alert status in repository")
		}
		return nil, fmt.Errorf("service: could not update cloud alert status: %w", err)
	}
	s.invalidateSummary(ctx, log)

	log.Info("Cloud alert status updated")
	return alert, nil
}

func (s *cloudAlertService) invalidateSummary(ctx context.Context, log *logrus.Entry) {
	if err := s.repo.InvalidateSummaryCache(ctx); err != nil {
		log.WithError(err).Warn("Failed to invalidate statistics cache")
	}
}
