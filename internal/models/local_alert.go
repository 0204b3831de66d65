package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	DefaultLocalAlertMessage = "Emergency detected nearby!"
	DefaultBroadcastDuration = 30
	// MaxBroadcastDuration - сутки, дольше BLE-трансляция не держится
	MaxBroadcastDuration = 86400
)

// LocalAlertStatus - состояние доставки локального (BLE) оповещения
type LocalAlertStatus string

const (
	LocalAlertBroadcast LocalAlertStatus = "broadcast"
	LocalAlertReceived  LocalAlertStatus = "received"
	LocalAlertExpired   LocalAlertStatus = "expired"
)

func (s LocalAlertStatus) Valid() bool {
	switch s {
	case LocalAlertBroadcast, LocalAlertReceived, LocalAlertExpired:
		return true
	}
	return false
}

// CanTransitionTo сообщает, разрешен ли переход. Статус двигается только вперед.
func (s LocalAlertStatus) CanTransitionTo(next LocalAlertStatus) bool {
	return s == LocalAlertBroadcast && (next == LocalAlertReceived || next == LocalAlertExpired)
}

// LocalAlertSourcesFor возвращает статусы, из которых допустим переход в next
func LocalAlertSourcesFor(next LocalAlertStatus) []LocalAlertStatus {
	sources := make([]LocalAlertStatus, 0, 1)
	for _, s := range []LocalAlertStatus{LocalAlertBroadcast, LocalAlertReceived, LocalAlertExpired} {
		if s.CanTransitionTo(next) {
			sources = append(sources, s)
		}
	}
	return sources
}

// LocalAlert - одна попытка широковещательной рассылки по ближнему каналу
type LocalAlert struct {
	ID              uuid.UUID        `json:"id"`
	IncidentID      *uuid.UUID       `json:"incident_id,omitempty"`
	Message         string           `json:"message"`
	Latitude        *float64         `json:"latitude,omitempty"`
	Longitude       *float64         `json:"longitude,omitempty"`
	Severity        Severity         `json:"severity"`
	LocationName    *string          `json:"location_name,omitempty"`
	DurationSeconds int              `json:"duration_seconds"`
	Status          LocalAlertStatus `json:"status"`
	CreatedAt       time.Time        `json:"created_at"`
}

// ExpiresAt - момент окончания трансляции
func (a *LocalAlert) ExpiresAt() time.Time {
	return a.CreatedAt.Add(time.Duration(a.DurationSeconds) * time.Second)
}

// EffectiveStatus вычисляет статус с учетом ленивого истечения:
// неподтвержденная трансляция после окончания срока считается expired.
func (a *LocalAlert) EffectiveStatus(now time.Time) LocalAlertStatus {
	if a.Status == LocalAlertBroadcast && !now.Before(a.ExpiresAt()) {
		return LocalAlertExpired
	}
	return a.Status
}

// LocalAlertFilter - параметры выборки локальных оповещений
type LocalAlertFilter struct {
	Severity Severity
	Status   LocalAlertStatus
	Since    *time.Time
}

// LocalAlertCounts - сводка по выборке локальных оповещений
type LocalAlertCounts struct {
	Total      int                      `json:"total"`
	BySeverity map[Severity]int         `json:"by_severity"`
	ByStatus   map[LocalAlertStatus]int `json:"by_status"`
}

// LocalAlertList - выборка вместе со сводкой
type LocalAlertList struct {
	Alerts []*LocalAlert
	Counts LocalAlertCounts
}

// CountLocalAlerts считает оповещения по серьезности и статусу
func CountLocalAlerts(alerts []*LocalAlert) LocalAlertCounts {
	counts := LocalAlertCounts{
		Total: len(alerts),
		BySeverity: map[Severity]int{
			SeverityHigh:    0,
			SeverityMedium:  0,
			SeverityLow:     0,
			SeverityUnknown: 0,
		},
		ByStatus: map[LocalAlertStatus]int{
			LocalAlertBroadcast: 0,
			LocalAlertReceived:  0,
			LocalAlertExpired:   0,
		},
	}
	for _, a := range alerts {
		counts.BySeverity[a.Severity]++
		counts.ByStatus[a.Status]++
	}
	return counts
}
