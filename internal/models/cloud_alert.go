package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	DefaultCloudAlertTitle = "Emergency Alert"
	DefaultCloudAlertBody  = "Emergency alert!"
)

// CloudAlertStatus - состояние доставки push-уведомления
type CloudAlertStatus string

const (
	CloudAlertSent      CloudAlertStatus = "sent"
	CloudAlertDelivered CloudAlertStatus = "delivered"
	CloudAlertFailed    CloudAlertStatus = "failed"
	CloudAlertRead      CloudAlertStatus = "read"
)

func (s CloudAlertStatus) Valid() bool {
	switch s {
	case CloudAlertSent, CloudAlertDelivered, CloudAlertFailed, CloudAlertRead:
		return true
	}
	return false
}

// CanTransitionTo: sent -> delivered|failed|read, delivered -> read. failed и read конечные.
func (s CloudAlertStatus) CanTransitionTo(next CloudAlertStatus) bool {
	switch s {
	case CloudAlertSent:
		return next == CloudAlertDelivered || next == CloudAlertFailed || next == CloudAlertRead
	case CloudAlertDelivered:
		return next == CloudAlertRead
	}
	return false
}

func CloudAlertSourcesFor(next CloudAlertStatus) []CloudAlertStatus {
	sources := make([]CloudAlertStatus, 0, 2)
	for _, s := range []CloudAlertStatus{CloudAlertSent, CloudAlertDelivered, CloudAlertFailed, CloudAlertRead} {
		if s.CanTransitionTo(next) {
			sources = append(sources, s)
		}
	}
	return sources
}

// CloudAlert - одна попытка отправки push-уведомления на конкретное устройство
type CloudAlert struct {
	ID            uuid.UUID        `json:"id"`
	IncidentID    *uuid.UUID       `json:"incident_id,omitempty"`
	DeviceToken   string           `json:"device_token"`
	Title         string           `json:"title"`
	Body          string           `json:"body"`
	Payload       map[string]any   `json:"payload"`
	IsEmergency   bool             `json:"is_emergency"`
	Status        CloudAlertStatus `json:"status"`
	FailureReason *string          `json:"failure_reason,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
}

// CloudAlertFilter - параметры выборки push-уведомлений
type CloudAlertFilter struct {
	Status      CloudAlertStatus
	IsEmergency *bool
	Since       *time.Time
}

type CloudAlertCounts struct {
	Total     int                      `json:"total"`
	Emergency int                      `json:"emergency"`
	ByStatus  map[CloudAlertStatus]int `json:"by_status"`
}

type CloudAlertList struct {
	Alerts []*CloudAlert
	Counts CloudAlertCounts
}

// CountCloudAlerts считает уведомления по статусу и флагу экстренности
func CountCloudAlerts(alerts []*CloudAlert) CloudAlertCounts {
	counts := CloudAlertCounts{
		Total: len(alerts),
		ByStatus: map[CloudAlertStatus]int{
			CloudAlertSent:      0,
			CloudAlertDelivered: 0,
			CloudAlertFailed:    0,
			CloudAlertRead:      0,
		},
	}
	for _, a := range alerts {
		counts.ByStatus[a.Status]++
		if a.IsEmergency {
			counts.Emergency++
		}
	}
	return counts
}
