package service

//go:generate mockgen -source=stats.go -destination=mocks/mock_stats.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"github.com/shenikar/accident_alert_system/internal/models"
	"github.com/sirupsen/logrus"
)

// StatsRepository считает оповещения по временным окнам и хранит кеш сводки
type StatsRepository interface {
	LocalAlertStats(ctx context.Context, windows models.StatsWindows) (*models.LocalAlertStats, error)
	CloudAlertStats(ctx context.Context, windows models.StatsWindows) (*models.CloudAlertStats, error)
	GetSummaryFromCache(ctx context.Context) (*models.AlertSummary, error)
	SetSummaryCache(ctx context.Context, summary *models.AlertSummary, generation int64, ttl time.Duration) (bool, error)
	SummaryGeneration(ctx context.Context) (int64, error)
}

type StatsService interface {
	Summary(ctx context.Context) (*models.AlertSummary, error)
}

type statsService struct {
	repo     StatsRepository
	logger   *logrus.Logger
	location *time.Location
	cacheTTL time.Duration
	now      func() time.Time
}

// NewStatsService: location задает границу "сегодня", cacheTTL <= 0 отключает кеш
func NewStatsService(repo StatsRepository, logger *logrus.Logger, location *time.Location, cacheTTL time.Duration) StatsService {
	if location == nil {
		location = time.UTC
	}
	return &statsService{
		repo:     repo,
		logger:   logger,
		location: location,
		cacheTTL: cacheTTL,
		now:      time.Now,
	}
}

// Summary возвращает сводную статистику по обоим каналам
func (s *statsService) Summary(ctx context.Context) (*models.AlertSummary, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "stats",
		"method":  "Summary",
	})

	// поколение читается до подсчета: если запись оповещения случится во время подсчета, сводка не попадет в кеш
	cacheable := s.cacheTTL > 0
	var generation int64
	if cacheable {
		cached, err := s.repo.GetSummaryFromCache(ctx)
		if err != nil {
			log.WithError(err).Warn("Failed to read statistics cache")
		}
		if cached != nil {
			return cached, nil
		}
		generation, err = s.repo.SummaryGeneration(ctx)
		if err != nil {
			log.WithError(err).Warn("Failed to read statistics cache generation")
			cacheable = false
		}
	}

	windows := models.NewStatsWindows(s.now(), s.location)

	local, err := s.repo.LocalAlertStats(ctx, windows)
	if err != nil {
		log.WithError(err).Error("Failed to count local alerts")
		return nil, fmt.Errorf("service: could not get local alert stats: %w", err)
	}
	cloud, err := s.repo.CloudAlertStats(ctx, windows)
	if err != nil {
		log.WithError(err).Error("Failed to count cloud alerts")
		return nil, fmt.Errorf("service: could not get cloud alert stats: %w", err)
	}

	summary := &models.AlertSummary{
		Local:       *local,
		Cloud:       *cloud,
		GrandTotal:  local.Total + cloud.Total,
		GeneratedAt: windows.Now,
	}

	if cacheable {
		stored, err := s.repo.SetSummaryCache(ctx, summary, generation, s.cacheTTL)
		switch {
		case err != nil:
			log.WithError(err).Warn("Failed to cache statistics")
		case !stored:
			log.Debug("Alerts changed while counting, statistics not cached")
		}
	}
	return summary, nil
}
