package push

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/smithy-go"
	"github.com/google/uuid"
	"github.com/shenikar/accident_alert_system/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSNS struct {
	endpointErr error
	publishErr  error
	published   *sns.PublishInput
	token       string
}

func (f *fakeSNS) CreatePlatformEndpoint(_ context.Context, params *sns.CreatePlatformEndpointInput, _ ...func(*sns.Options)) (*sns.CreatePlatformEndpointOutput, error) {
	if f.endpointErr != nil {
		return nil, f.endpointErr
	}
	f.token = aws.ToString(params.Token)
	return &sns.CreatePlatformEndpointOutput{EndpointArn: aws.String("arn:aws:sns:eu-central-1:123:endpoint/GCM/app/" + f.token)}, nil
}

func (f *fakeSNS) Publish(_ context.Context, params *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	if f.publishErr != nil {
		return nil, f.publishErr
	}
	f.published = params
	return &sns.PublishOutput{MessageId: aws.String("msg-1")}, nil
}

func testJob() Job {
	return Job{
		AlertID:     uuid.New(),
		DeviceToken: "device-token-1",
		Title:       "Emergency Alert",
		Body:        "Crash detected 200m ahead",
		Payload:     map[string]any{"incident_id": "abc", "distance_m": 200},
		IsEmergency: true,
	}
}

func TestSNSPusher_Accepted(t *testing.T) {
	client := &fakeSNS{}
	pusher := &SNSPusher{client: client, platformARN: "arn:aws:sns:eu-central-1:123:app/GCM/app"}
	job := testJob()

	result, err := pusher.Push(context.Background(), job)
	require.NoError(t, err)
	assert.True(t, result.Accepted)
	assert.Equal(t, "device-token-1", client.token)

	require.NotNil(t, client.published)
	assert.Equal(t, "json", aws.ToString(client.published.MessageStructure))
	assert.Contains(t, aws.ToString(client.published.TargetArn), "device-token-1")

	var msg map[string]string
	require.NoError(t, json.Unmarshal([]byte(aws.ToString(client.published.Message)), &msg))
	assert.Equal(t, job.Body, msg["default"])

	var gcm struct {
		Notification map[string]string `json:"notification"`
		Data         map[string]string `json:"data"`
		Priority     string            `json:"priority"`
	}
	require.NoError(t, json.Unmarshal([]byte(msg["GCM"]), &gcm))
	assert.Equal(t, job.Title, gcm.Notification["title"])
	assert.Equal(t, "abc", gcm.Data["incident_id"])
	assert.Equal(t, "200", gcm.Data["distance_m"])
	assert.Equal(t, job.AlertID.String(), gcm.Data["alert_id"])
	assert.Equal(t, "high", gcm.Priority)
}

func TestSNSPusher_ClientErrorIsRejection(t *testing.T) {
	client := &fakeSNS{publishErr: &smithy.GenericAPIError{
		Code:    "EndpointDisabled",
		Message: "Endpoint is disabled",
		Fault:   smithy.FaultClient,
	}}
	pusher := &SNSPusher{client: client, platformARN: "arn"}

	result, err := pusher.Push(context.Background(), testJob())
	require.NoError(t, err)
	assert.False(t, result.Accepted)
	assert.Equal(t, "EndpointDisabled: Endpoint is disabled", result.Reason)
}

func TestSNSPusher_ServerErrorIsTransport(t *testing.T) {
	client := &fakeSNS{endpointErr: &smithy.GenericAPIError{
		Code:  "InternalError",
		Fault: smithy.FaultServer,
	}}
	pusher := &SNSPusher{client: client, platformARN: "arn"}

	_, err := pusher.Push(context.Background(), testJob())
	assert.ErrorIs(t, err, models.ErrTransport)
}

func TestSNSPusher_NetworkErrorIsTransport(t *testing.T) {
	client := &fakeSNS{endpointErr: errors.New("dial tcp: i/o timeout")}
	pusher := &SNSPusher{client: client, platformARN: "arn"}

	_, err := pusher.Push(context.Background(), testJob())
	assert.ErrorIs(t, err, models.ErrTransport)
	assert.ErrorContains(t, err, "i/o timeout")
}

func TestLogPusher_AcceptsEverything(t *testing.T) {
	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&buf)

	result, err := NewLogPusher(logger).Push(context.Background(), testJob())
	require.NoError(t, err)
	assert.True(t, result.Accepted)
	assert.Contains(t, buf.String(), "Crash detected 200m ahead")
}
