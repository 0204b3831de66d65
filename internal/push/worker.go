package push

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shenikar/accident_alert_system/internal/models"
	"github.com/sirupsen/logrus"
)

const (
	popTimeout   = 5 * time.Second
	errorBackoff = 2 * time.Second
)

// StatusUpdater применяет результат доставки к сохраненному оповещению
type StatusUpdater interface {
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.CloudAlertStatus, reason *string) (*models.CloudAlert, error)
}

// Worker - структура для обработки очереди push-заданий
type Worker struct {
	redisClient *redis.Client
	pusher      Pusher
	updater     StatusUpdater
	logger      *logrus.Logger
	done        chan struct{}
}

// NewWorker создает новый Worker
func NewWorker(redisClient *redis.Client, pusher Pusher, updater StatusUpdater, logger *logrus.Logger) *Worker {
	return &Worker{
		redisClient: redisClient,
		pusher:      pusher,
		updater:     updater,
		logger:      logger,
		done:        make(chan struct{}),
	}
}

// Start запускает горутину для обработки очереди. Повторных попыток нет:
// каждое задание отправляется ровно один раз.
func (w *Worker) Start(ctx context.Context) {
	w.logger.Info("Starting push worker...")
	go func() {
		defer close(w.done)
		for {
			select {
			case <-ctx.Done():
				w.logger.Info("Stopping push worker.")
				return
			default:
				result, err := w.redisClient.BRPop(ctx, popTimeout, pushQueueKey).Result()
				if err != nil {
					if errors.Is(err, redis.Nil) || errors.Is(err, context.Canceled) {
						continue
					}
					w.logger.WithError(err).Error("Failed to pop push job from Redis")
					time.Sleep(errorBackoff)
					continue
				}

				// result[0] - ключ, result[1] - значение
				var job Job
				if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
					w.logger.WithError(err).Error("Failed to unmarshal push job from Redis")
					continue
				}

				w.processJob(ctx, job)
			}
		}
	}()
}

// Done закрывается, когда воркер остановлен
func (w *Worker) Done() <-chan struct{} {
	return w.done
}

func (w *Worker) processJob(ctx context.Context, job Job) {
	log := w.logger.WithFields(logrus.Fields{
		"alert_id":     job.AlertID,
		"is_emergency": job.IsEmergency,
	})
	log.Debug("Processing push job...")

	result, err := w.pusher.Push(ctx, job)
	if err != nil {
		// запись остается в статусе sent: доставка best-effort
		log.WithError(err).Warn("Push delivery collaborator unavailable")
		return
	}

	if result.Accepted {
		log.Info("Push notification accepted for delivery")
		return
	}

	reason := result.Reason
	if reason == "" {
		reason = "rejected by push provider"
	}
	if _, err := w.updater.UpdateStatus(ctx, job.AlertID, models.CloudAlertFailed, &reason); err != nil {
		log.WithError(err).Error("Failed to mark rejected push notification as failed")
		return
	}
	log.WithField("reason", reason).Warn("Push notification rejected")
}
