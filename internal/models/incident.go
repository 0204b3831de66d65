package models

import (
	"time"

	"github.com/google/uuid"
)

// Severity - уровень срочности инцидента или оповещения
type Severity string

const (
	SeverityLow     Severity = "low"
	SeverityMedium  Severity = "medium"
	SeverityHigh    Severity = "high"
	SeverityUnknown Severity = "unknown" // только для локальных оповещений
)

// Valid сообщает, допустима ли серьезность для инцидента
func (s Severity) Valid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh:
		return true
	}
	return false
}

// Origin - способ, которым был обнаружен инцидент
type Origin string

const (
	OriginSensor Origin = "sensor"
	OriginVoice  Origin = "voice"
	OriginManual Origin = "manual"
)

func (o Origin) Valid() bool {
	switch o {
	case OriginSensor, OriginVoice, OriginManual:
		return true
	}
	return false
}

// Coordinate - точка на карте
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// SensorSample - одно показание акселерометра и гироскопа
type SensorSample struct {
	AccX  float64 `json:"acc_x"`
	AccY  float64 `json:"acc_y"`
	AccZ  float64 `json:"acc_z"`
	GyroX float64 `json:"gyro_x"`
	GyroY float64 `json:"gyro_y"`
	GyroZ float64 `json:"gyro_z"`
}

// Features возвращает признаки в порядке, в котором их ожидает модель
func (s SensorSample) Features() [6]float64 {
	return [6]float64{s.AccX, s.AccY, s.AccZ, s.GyroX, s.GyroY, s.GyroZ}
}

// Incident - зарегистрированное ДТП. Запись создается один раз и больше не меняется.
type Incident struct {
	ID          uuid.UUID `json:"id"`
	ReporterID  *string   `json:"reporter_id,omitempty"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	Severity    Severity  `json:"severity"`
	Description string    `json:"description"`
	Origin      Origin    `json:"origin"`
	CreatedAt   time.Time `json:"created_at"`
}

// IncidentFilter - параметры выборки инцидентов
type IncidentFilter struct {
	Origin   Origin
	Severity Severity
	Since    *time.Time
	Limit    int
}

// DispatchOptions описывает, по каким каналам разослать оповещения о ручном инциденте
type DispatchOptions struct {
	BroadcastLocal  bool
	DurationSeconds int
	DeviceTokens    []string
}

// ManualReport - ручное сообщение о ДТП (кнопка SOS, оператор)
type ManualReport struct {
	Latitude    *float64
	Longitude   *float64
	Severity    Severity
	Description string
	Origin      Origin
	ReporterID  *string
	Dispatch    DispatchOptions
}

// ManualReportResult - инцидент и оповещения, созданные вместе с ним
type ManualReportResult struct {
	Incident    *Incident
	LocalAlert  *LocalAlert
	CloudAlerts []*CloudAlert
}
