package v1

import (
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/accident_alert_system/internal/models"
)

// Response - общий конверт всех ответов API
// @Description Конверт ответа: status и одно из data, error, message
type Response struct {
	Status  bool   `json:"status"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// SensorEventRequest DTO показания датчиков
// @Description DTO показания акселерометра и гироскопа
type SensorEventRequest struct {
	AccX      *float64 `json:"acc_x" validate:"required"`
	AccY      *float64 `json:"acc_y" validate:"required"`
	AccZ      *float64 `json:"acc_z" validate:"required"`
	GyroX     *float64 `json:"gyro_x" validate:"required"`
	GyroY     *float64 `json:"gyro_y" validate:"required"`
	GyroZ     *float64 `json:"gyro_z" validate:"required"`
	Latitude  *float64 `json:"latitude" validate:"omitempty,latitude"`
	Longitude *float64 `json:"longitude" validate:"omitempty,longitude"`
}

// VoiceEventRequest DTO расшифровки голосового сообщения
// @Description DTO расшифровки голосового сообщения
type VoiceEventRequest struct {
	VoiceText string   `json:"voice_text"`
	Latitude  *float64 `json:"latitude" validate:"omitempty,latitude"`
	Longitude *float64 `json:"longitude" validate:"omitempty,longitude"`
}

// ManualIncidentRequest DTO ручного сообщения о ДТП
// @Description DTO ручного сообщения о ДТП с необязательной рассылкой
type ManualIncidentRequest struct {
	Latitude        *float64 `json:"latitude" validate:"required,latitude"`
	Longitude       *float64 `json:"longitude" validate:"required,longitude"`
	Severity        string   `json:"severity" validate:"omitempty,oneof=low medium high"`
	Description     string   `json:"description,omitempty" validate:"max=2000"`
	ReportedVia     string   `json:"reported_via" validate:"omitempty,oneof=sensor voice manual"`
	BroadcastLocal  bool     `json:"broadcast_local"`
	DurationSeconds int      `json:"duration_seconds" validate:"gte=0,lte=86400"`
	DeviceTokens    []string `json:"device_tokens" validate:"max=100"`
}

// IncidentResponse DTO для ответа с информацией об инциденте
// @Description DTO для ответа с информацией об инциденте
type IncidentResponse struct {
	ID          uuid.UUID `json:"id"`
	ReporterID  *string   `json:"reporter_id,omitempty"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	Severity    string    `json:"severity"`
	Description string    `json:"description"`
	ReportedVia string    `json:"reported_via"`
	CreatedAt   time.Time `json:"created_at"`
}

// ManualIncidentResponse DTO инцидента вместе с созданными оповещениями
// @Description DTO инцидента вместе с созданными оповещениями
type ManualIncidentResponse struct {
	Incident    *IncidentResponse     `json:"incident"`
	LocalAlert  *LocalAlertResponse   `json:"local_alert,omitempty"`
	CloudAlerts []*CloudAlertResponse `json:"cloud_alerts"`
}

// LocalAlertRequest DTO для широковещательного оповещения
// @Description DTO для широковещательного (BLE) оповещения
type LocalAlertRequest struct {
	IncidentID      *uuid.UUID `json:"incident_id"`
	Message         string     `json:"message" validate:"max=500"`
	Latitude        *float64   `json:"latitude" validate:"omitempty,latitude"`
	Longitude       *float64   `json:"longitude" validate:"omitempty,longitude"`
	Severity        string     `json:"severity" validate:"omitempty,oneof=low medium high unknown"`
	LocationName    *string    `json:"location_name" validate:"omitempty,max=255"`
	DurationSeconds int        `json:"duration_seconds" validate:"gte=0,lte=86400"`
}

// LocalAlertStatusRequest DTO подтверждения получения или истечения
// @Description DTO подтверждения получения или истечения
type LocalAlertStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=received expired"`
}

// LocalAlertResponse DTO локального оповещения
// @Description DTO локального оповещения
type LocalAlertResponse struct {
	ID              uuid.UUID  `json:"id"`
	IncidentID      *uuid.UUID `json:"incident_id,omitempty"`
	Message         string     `json:"message"`
	Latitude        *float64   `json:"latitude,omitempty"`
	Longitude       *float64   `json:"longitude,omitempty"`
	Severity        string     `json:"severity"`
	LocationName    *string    `json:"location_name,omitempty"`
	DurationSeconds int        `json:"duration_seconds"`
	Status          string     `json:"status"`
	CreatedAt       time.Time  `json:"created_at"`
}

// LocalAlertListResponse DTO выборки локальных оповещений со сводкой
// @Description DTO выборки локальных оповещений со сводкой
type LocalAlertListResponse struct {
	Count      int                     `json:"count"`
	Statistics models.LocalAlertCounts `json:"statistics"`
	Alerts     []*LocalAlertResponse   `json:"alerts"`
}

// CloudAlertRequest DTO для отправки push-уведомления.
// body и message - синонимы, body приоритетнее.
// @Description DTO для отправки push-уведомления
type CloudAlertRequest struct {
	IncidentID  *uuid.UUID     `json:"incident_id"`
	DeviceToken string         `json:"device_token"`
	Title       string         `json:"title" validate:"max=255"`
	Body        string         `json:"body" validate:"max=2000"`
	Message     string         `json:"message" validate:"max=2000"`
	IsEmergency bool           `json:"is_emergency"`
	Data        map[string]any `json:"data"`
}

// CloudAlertStatusRequest DTO обратного вызова о доставке
// @Description DTO обратного вызова о доставке
type CloudAlertStatusRequest struct {
	Status        string  `json:"status" validate:"required,oneof=delivered failed read"`
	FailureReason *string `json:"failure_reason" validate:"omitempty,max=1000"`
}

// CloudAlertResponse DTO push-уведомления
// @Description DTO push-уведомления
type CloudAlertResponse struct {
	ID            uuid.UUID      `json:"id"`
	IncidentID    *uuid.UUID     `json:"incident_id,omitempty"`
	DeviceToken   string         `json:"device_token"`
	Title         string         `json:"title"`
	Body          string         `json:"body"`
	Data          map[string]any `json:"data"`
	IsEmergency   bool           `json:"is_emergency"`
	Status        string         `json:"status"`
	FailureReason *string        `json:"failure_reason,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
}

// CloudAlertListResponse DTO выборки push-уведомлений со сводкой
// @Description DTO выборки push-уведомлений со сводкой
type CloudAlertListResponse struct {
	Count      int                     `json:"count"`
	Statistics models.CloudAlertCounts `json:"statistics"`
	Alerts     []*CloudAlertResponse   `json:"alerts"`
}
