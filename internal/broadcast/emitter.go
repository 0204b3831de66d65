// Package broadcast передает локальные оповещения на BLE-маяки,
// которые транслируют их находящимся рядом устройствам без связи.
package broadcast

//go:generate mockgen -source=emitter.go -destination=mocks/mock_emitter.go -package=mocks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/shenikar/accident_alert_system/internal/models"
	"github.com/sirupsen/logrus"
)

// Emitter - канал ближней широковещательной рассылки. Подтверждения доставки нет.
type Emitter interface {
	Emit(ctx context.Context, alert *models.LocalAlert) error
}

// Message - то, что получает шлюз BLE-маяков
type Message struct {
	AlertID         string          `json:"alert_id"`
	Message         string          `json:"message"`
	Severity        models.Severity `json:"severity"`
	DurationSeconds int             `json:"duration_seconds"`
	Latitude        *float64        `json:"latitude,omitempty"`
	Longitude       *float64        `json:"longitude,omitempty"`
	LocationName    *string         `json:"location_name,omitempty"`
	IssuedAt        time.Time       `json:"issued_at"`
}

func NewMessage(alert *models.LocalAlert) Message {
	return Message{
		AlertID:         alert.ID.String(),
		Message:         alert.Message,
		Severity:        alert.Severity,
		DurationSeconds: alert.DurationSeconds,
		Latitude:        alert.Latitude,
		Longitude:       alert.Longitude,
		LocationName:    alert.LocationName,
		IssuedAt:        alert.CreatedAt,
	}
}

// publisher - часть pahomqtt.Client, нужная для рассылки
type publisher interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) pahomqtt.Token
}

// MQTTEmitter публикует оповещение в топик, на который подписаны шлюзы маяков
type MQTTEmitter struct {
	client  publisher
	topic   string
	timeout time.Duration
}

func NewMQTTEmitter(client pahomqtt.Client, topic string, timeout time.Duration) *MQTTEmitter {
	return &MQTTEmitter{client: client, topic: topic, timeout: timeout}
}

func (e *MQTTEmitter) Emit(ctx context.Context, alert *models.LocalAlert) error {
	payload, err := json.Marshal(NewMessage(alert))
	if err != nil {
		return fmt.Errorf("failed to marshal broadcast message: %w", err)
	}

	token := e.client.Publish(e.topic, 1, false, payload)

	timeout := e.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if left := time.Until(deadline); left < timeout {
			timeout = left
		}
	}
	if !token.WaitTimeout(timeout) {
		return fmt.Errorf("%w: publish to %s timed out", models.ErrTransport, e.topic)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("%w: publish to %s: %v", models.ErrTransport, e.topic, err)
	}
	return nil
}

// LogEmitter только пишет оповещение в лог. Используется, когда брокер не настроен.
type LogEmitter struct {
	logger *logrus.Logger
}

func NewLogEmitter(logger *logrus.Logger) *LogEmitter {
	return &LogEmitter{logger: logger}
}

func (e *LogEmitter) Emit(_ context.Context, alert *models.LocalAlert) error {
	e.logger.WithFields(logrus.Fields{
		"alert_id":         alert.ID,
		"severity":         alert.Severity,
		"duration_seconds": alert.DurationSeconds,
	}).Infof("BLE broadcast (no broker configured): %s", alert.Message)
	return nil
}
