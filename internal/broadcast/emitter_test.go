package broadcast

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
	"github.com/shenikar/accident_alert_system/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeToken struct {
	completed bool
	err       error
}

func (t *fakeToken) Wait() bool                     { return t.completed }
func (t *fakeToken) WaitTimeout(time.Duration) bool { return t.completed }
func (t *fakeToken) Done() <-chan struct{} {
	ch := make(chan struct{})
	if t.completed {
		close(ch)
	}
	return ch
}
func (t *fakeToken) Error() error { return t.err }

type fakePublisher struct {
	topic   string
	qos     byte
	payload []byte
	token   *fakeToken
}

func (p *fakePublisher) Publish(topic string, qos byte, _ bool, payload interface{}) pahomqtt.Token {
	p.topic = topic
	p.qos = qos
	p.payload = payload.([]byte)
	return p.token
}

func testAlert() *models.LocalAlert {
	lat, lon := 55.75, 37.61
	return &models.LocalAlert{
		ID:              uuid.New(),
		Message:         "Crash detected",
		Latitude:        &lat,
		Longitude:       &lon,
		Severity:        models.SeverityHigh,
		DurationSeconds: 30,
		Status:          models.LocalAlertBroadcast,
		CreatedAt:       time.Now(),
	}
}

func TestMQTTEmitter_Emit(t *testing.T) {
	pub := &fakePublisher{token: &fakeToken{completed: true}}
	emitter := &MQTTEmitter{client: pub, topic: "alerts/ble/broadcast", timeout: time.Second}
	alert := testAlert()

	err := emitter.Emit(context.Background(), alert)
	require.NoError(t, err)

	assert.Equal(t, "alerts/ble/broadcast", pub.topic)
	assert.Equal(t, byte(1), pub.qos)

	var msg Message
	require.NoError(t, json.Unmarshal(pub.payload, &msg))
	assert.Equal(t, alert.ID.String(), msg.AlertID)
	assert.Equal(t, "Crash detected", msg.Message)
	assert.Equal(t, 30, msg.DurationSeconds)
	assert.Equal(t, models.SeverityHigh, msg.Severity)
}

func TestMQTTEmitter_Timeout(t *testing.T) {
	pub := &fakePublisher{token: &fakeToken{completed: false}}
	emitter := &MQTTEmitter{client: pub, topic: "t", timeout: time.Millisecond}

	err := emitter.Emit(context.Background(), testAlert())
	assert.ErrorIs(t, err, models.ErrTransport)
	assert.ErrorContains(t, err, "timed out")
}

func TestMQTTEmitter_BrokerError(t *testing.T) {
	pub := &fakePublisher{token: &fakeToken{completed: true, err: errors.New("not connected")}}
	emitter := &MQTTEmitter{client: pub, topic: "t", timeout: time.Second}

	err := emitter.Emit(context.Background(), testAlert())
	assert.ErrorIs(t, err, models.ErrTransport)
	assert.ErrorContains(t, err, "not connected")
}

func TestLogEmitter_Emit(t *testing.T) {
	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&buf)

	err := NewLogEmitter(logger).Emit(context.Background(), testAlert())
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Crash detected")
}
