package push

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/smithy-go"
	"github.com/shenikar/accident_alert_system/internal/models"
	"github.com/sirupsen/logrus"
)

// Result - ответ сервиса доставки: принято или отклонено с причиной
type Result struct {
	Accepted bool
	Reason   string
}

func Accepted() Result { return Result{Accepted: true} }

func Rejected(reason string) Result { return Result{Reason: reason} }

// Pusher - внешний сервис доставки push-уведомлений.
// Ошибка означает недоступность сервиса (ErrTransport), а не отказ.
type Pusher interface {
	Push(ctx context.Context, job Job) (Result, error)
}

// snsAPI - методы клиента SNS, которые использует SNSPusher
type snsAPI interface {
	CreatePlatformEndpoint(ctx context.Context, params *sns.CreatePlatformEndpointInput, optFns ...func(*sns.Options)) (*sns.CreatePlatformEndpointOutput, error)
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// SNSPusher регистрирует токен устройства в platform application и публикует уведомление
type SNSPusher struct {
	client      snsAPI
	platformARN string
}

func NewSNSPusher(client *sns.Client, platformARN string) *SNSPusher {
	return &SNSPusher{client: client, platformARN: platformARN}
}

func (p *SNSPusher) Push(ctx context.Context, job Job) (Result, error) {
	endpoint, err := p.client.CreatePlatformEndpoint(ctx, &sns.CreatePlatformEndpointInput{
		PlatformApplicationArn: aws.String(p.platformARN),
		Token:                  aws.String(job.DeviceToken),
	})
	if err != nil {
		return classify(err)
	}

	message, err := snsMessage(job)
	if err != nil {
		return Result{}, err
	}

	_, err = p.client.Publish(ctx, &sns.PublishInput{
		MessageStructure: aws.String("json"),
		Message:          aws.String(message),
		TargetArn:        endpoint.EndpointArn,
	})
	if err != nil {
		return classify(err)
	}
	return Accepted(), nil
}

// classify: клиентские ошибки API - это отказ, все остальное - сбой транспорта
func classify(err error) (Result, error) {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) && apiErr.ErrorFault() == smithy.FaultClient {
		return Rejected(fmt.Sprintf("%s: %s", apiErr.ErrorCode(), apiErr.ErrorMessage())), nil
	}
	return Result{}, fmt.Errorf("%w: sns: %v", models.ErrTransport, err)
}

// snsMessage собирает сообщение для MessageStructure=json.
// Значения для платформ в SNS сами являются JSON-строками.
func snsMessage(job Job) (string, error) {
	data := make(map[string]string, len(job.Payload)+2)
	for k, v := range job.Payload {
		if s, ok := v.(string); ok {
			data[k] = s
			continue
		}
		raw, err := json.Marshal(v)
		if err != nil {
			return "", fmt.Errorf("failed to marshal payload field %q: %w", k, err)
		}
		data[k] = string(raw)
	}
	data["alert_id"] = job.AlertID.String()
	data["is_emergency"] = fmt.Sprintf("%t", job.IsEmergency)

	priority := "normal"
	if job.IsEmergency {
		priority = "high"
	}
	gcm, err := json.Marshal(map[string]any{
		"notification": map[string]string{"title": job.Title, "body": job.Body},
		"data":         data,
		"priority":     priority,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal GCM message: %w", err)
	}
	apns, err := json.Marshal(map[string]any{
		"aps":  map[string]any{"alert": map[string]string{"title": job.Title, "body": job.Body}, "sound": "default"},
		"data": data,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal APNS message: %w", err)
	}

	msg, err := json.Marshal(map[string]string{
		"default": job.Body,
		"GCM":     string(gcm),
		"APNS":    string(apns),
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal SNS message: %w", err)
	}
	return string(msg), nil
}

// LogPusher принимает любое уведомление и пишет его в лог. Используется без SNS.
type LogPusher struct {
	logger *logrus.Logger
}

func NewLogPusher(logger *logrus.Logger) *LogPusher {
	return &LogPusher{logger: logger}
}

func (p *LogPusher) Push(_ context.Context, job Job) (Result, error) {
	p.logger.WithFields(logrus.Fields{
		"alert_id":     job.AlertID,
		"is_emergency": job.IsEmergency,
	}).Infof("Push notification (SNS not configured): %s - %s", job.Title, job.Body)
	return Accepted(), nil
}
