package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shenikar/accident_alert_system/internal/models"
	"github.com/shenikar/accident_alert_system/internal/service"
)

type StatsRepository struct {
	db          DB
	redisClient *redis.Client
}

func NewStatsRepository(db DB, redisClient *redis.Client) service.StatsRepository {
	return &StatsRepository{
		db:          db,
		redisClient: redisClient,
	}
}

// LocalAlertStats считает локальные оповещения по окнам и серьезности одним запросом
func (r *StatsRepository) LocalAlertStats(ctx context.Context, windows models.StatsWindows) (*models.LocalAlertStats, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE created_at >= $1),
			COUNT(*) FILTER (WHERE created_at >= $2),
			COUNT(*) FILTER (WHERE created_at >= $3),
			COUNT(*) FILTER (WHERE severity = 'high'),
			COUNT(*) FILTER (WHERE severity = 'medium'),
			COUNT(*) FILTER (WHERE severity = 'low'),
			COUNT(*) FILTER (WHERE severity = 'unknown')
		FROM local_alerts;
	`
	var high, medium, low, unknown int
	stats := &models.LocalAlertStats{}
	err := r.db.QueryRow(ctx, query, windows.StartOfDay, windows.Last24h, windows.Last7d).Scan(
		&stats.Total,
		&stats.Today,
		&stats.Last24h,
		&stats.Last7d,
		&high,
		&medium,
		&low,
		&unknown,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to count local alerts: %w", models.ErrPersistence, err)
	}
	stats.BySeverity = map[models.Severity]int{
		models.SeverityHigh:    high,
		models.SeverityMedium:  medium,
		models.SeverityLow:     low,
		models.SeverityUnknown: unknown,
	}
	return stats, nil
}

// CloudAlertStats считает push-уведомления по окнам, статусу и флагу экстренности
func (r *StatsRepository) CloudAlertStats(ctx context.Context, windows models.StatsWindows) (*models.CloudAlertStats, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE created_at >= $1),
			COUNT(*) FILTER (WHERE created_at >= $2),
			COUNT(*) FILTER (WHERE created_at >= $3),
			COUNT(*) FILTER (WHERE is_emergency),
			COUNT(*) FILTER (WHERE status = 'sent'),
			COUNT(*) FILTER (WHERE status = 'delivered'),
			COUNT(*) FILTER (WHERE status = 'failed'),
			COUNT(*) FILTER (WHERE status = 'read')
		FROM cloud_alerts;
	`
	var sent, delivered, failed, read int
	stats := &models.CloudAlertStats{}
	err := r.db.QueryRow(ctx, query, windows.StartOfDay, windows.Last24h, windows.Last7d).Scan(
		&stats.Total,
		&stats.Today,
		&stats.Last24h,
		&stats.Last7d,
		&stats.EmergencyCount,
		&sent,
		&delivered,
		&failed,
		&read,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to count cloud alerts: %w", models.ErrPersistence, err)
	}
	stats.ByStatus = map[models.CloudAlertStatus]int{
		models.CloudAlertSent:      sent,
		models.CloudAlertDelivered: delivered,
		models.CloudAlertFailed:    failed,
		models.CloudAlertRead:      read,
	}
	return stats, nil
}

// GetSummaryFromCache возвращает (nil, nil) при промахе
func (r *StatsRepository) GetSummaryFromCache(ctx context.Context) (*models.AlertSummary, error) {
	val, err := r.redisClient.Get(ctx, summaryCacheKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get summary from cache: %w", err)
	}

	summary := &models.AlertSummary{}
	if err := json.Unmarshal(val, summary); err != nil {
		return nil, fmt.Errorf("failed to unmarshal summary from cache: %w", err)
	}
	return summary, nil
}

// SummaryGeneration возвращает текущее поколение кеша сводки, 0 если инвалидаций еще не было
func (r *StatsRepository) SummaryGeneration(ctx context.Context) (int64, error) {
	gen, err := r.redisClient.Get(ctx, summaryGenerationKey).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get summary generation: %w", err)
	}
	return gen, nil
}

var errStaleSummary = errors.New("summary generation changed")

// SetSummaryCache кладет сводку, только если с момента чтения generation не было инвалидаций.
// false без ошибки означает, что сводка устарела и не сохранена.
func (r *StatsRepository) SetSummaryCache(ctx context.Context, summary *models.AlertSummary, generation int64, ttl time.Duration) (bool, error) {
	val, err := json.Marshal(summary)
	if err != nil {
		return false, fmt.Errorf("failed to marshal summary for cache: %w", err)
	}

	err = r.redisClient.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, summaryGenerationKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != generation {
			return errStaleSummary
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, summaryCacheKey, val, ttl)
			return nil
		})
		return err
	}, summaryGenerationKey)

	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, errStaleSummary), errors.Is(err, redis.TxFailedErr):
		return false, nil
	default:
		return false, fmt.Errorf("failed to set summary in cache: %w", err)
	}
}
