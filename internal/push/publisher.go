// Package push доставляет облачные оповещения на устройства через AWS SNS.
// Отправка асинхронная: сервис кладет задание в очередь Redis, воркер его забирает.
package push

//go:generate mockgen -source=publisher.go -destination=mocks/mock_publisher.go -package=mocks

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shenikar/accident_alert_system/internal/models"
)

const (
	pushQueueKey = "push_jobs"
)

// Job - задание на отправку одного push-уведомления
type Job struct {
	AlertID     uuid.UUID      `json:"alert_id"`
	DeviceToken string         `json:"device_token"`
	Title       string         `json:"title"`
	Body        string         `json:"body"`
	Payload     map[string]any `json:"payload,omitempty"`
	IsEmergency bool           `json:"is_emergency"`
}

// NewJob строит задание по сохраненному оповещению
func NewJob(alert *models.CloudAlert) Job {
	return Job{
		AlertID:     alert.ID,
		DeviceToken: alert.DeviceToken,
		Title:       alert.Title,
		Body:        alert.Body,
		Payload:     alert.Payload,
		IsEmergency: alert.IsEmergency,
	}
}

// Publisher - интерфейс постановки заданий в очередь
type Publisher interface {
	Publish(ctx context.Context, job Job) error
}

// RedisPublisher - реализация Publisher, использующая список Redis как очередь
type RedisPublisher struct {
	redisClient *redis.Client
}

// NewRedisPublisher создает новый RedisPublisher
func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{
		redisClient: client,
	}
}

// Publish кладет задание в левую часть списка, воркер забирает справа
func (p *RedisPublisher) Publish(ctx context.Context, job Job) error {
	payload, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal push job: %w", err)
	}

	if err := p.redisClient.LPush(ctx, pushQueueKey, payload).Err(); err != nil {
		return fmt.Errorf("%w: failed to enqueue push job: %v", models.ErrTransport, err)
	}
	return nil
}
