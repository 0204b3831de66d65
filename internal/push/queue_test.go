package push

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shenikar/accident_alert_system/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type channelPusher struct {
	jobs chan Job
}

func (p *channelPusher) Push(_ context.Context, job Job) (Result, error) {
	p.jobs <- job
	return Accepted(), nil
}

func TestRedisPublisher_Publish(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	alert := &models.CloudAlert{
		ID:          uuid.New(),
		DeviceToken: "device-1",
		Title:       models.DefaultCloudAlertTitle,
		Body:        "Crash nearby",
		Payload:     map[string]any{"incident_id": "abc"},
		IsEmergency: true,
	}
	require.NoError(t, NewRedisPublisher(client).Publish(context.Background(), NewJob(alert)))

	items, err := mr.List(pushQueueKey)
	require.NoError(t, err)
	require.Len(t, items, 1)

	var job Job
	require.NoError(t, json.Unmarshal([]byte(items[0]), &job))
	assert.Equal(t, alert.ID, job.AlertID)
	assert.Equal(t, "device-1", job.DeviceToken)
	assert.Equal(t, "abc", job.Payload["incident_id"])
	assert.True(t, job.IsEmergency)
}

func TestRedisPublisher_BrokerDown(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer client.Close()
	mr.Close()

	err := NewRedisPublisher(client).Publish(context.Background(), Job{AlertID: uuid.New()})
	assert.ErrorIs(t, err, models.ErrTransport)
}

func TestWorker_DeliversQueuedJob(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})

	pusher := &channelPusher{jobs: make(chan Job, 1)}
	worker := NewWorker(client, pusher, &recordingUpdater{}, logger)

	ctx, cancel := context.WithCancel(context.Background())
	worker.Start(ctx)

	id := uuid.New()
	require.NoError(t, NewRedisPublisher(client).Publish(ctx, Job{AlertID: id, DeviceToken: "device-2"}))

	select {
	case job := <-pusher.jobs:
		assert.Equal(t, id, job.AlertID)
	case <-time.After(3 * time.Second):
		t.Fatal("job was not delivered")
	}

	cancel()
	select {
	case <-worker.Done():
	case <-time.After(popTimeout + 2*time.Second):
		t.Fatal("worker did not stop")
	}
}
